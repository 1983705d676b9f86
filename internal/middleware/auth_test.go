package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/webkit/internal/config"
	"github.com/deppfellow/webkit/internal/errs"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestRequireAuthPublicPath(t *testing.T) {
	s := newTestServer(t, nil)
	e := newTestEcho(s)
	e.GET("/status", okHandler, NewAuthMiddleware(s).RequireAuth)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuthRejectsMissingSession(t *testing.T) {
	s := newTestServer(t, nil)
	e := newTestEcho(s)
	e.POST("/api/v1/merge", okHandler, NewAuthMiddleware(s).RequireAuth)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/merge", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "UNAUTHORIZED", body.Code)
	assert.Equal(t, http.StatusUnauthorized, body.Status)
}

func TestRequireAuthDisabled(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.Auth.Disabled = true
	})
	e := newTestEcho(s)
	e.POST("/api/v1/merge", okHandler, NewAuthMiddleware(s).RequireAuth)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/merge", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
