package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/webkit/internal/config"
	"github.com/deppfellow/webkit/internal/database"
	"github.com/deppfellow/webkit/internal/handler"
	"github.com/deppfellow/webkit/internal/server"
	"github.com/deppfellow/webkit/internal/service"
)

func newTestRouter(t *testing.T, mutate func(cfg *config.Config)) (*echo.Echo, *server.Server) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Primary.Env = "test"
	cfg.Auth.Disabled = true
	if mutate != nil {
		mutate(cfg)
	}

	logger := zerolog.Nop()
	registry := prometheus.NewRegistry()
	s := &server.Server{
		Config:   cfg,
		Logger:   &logger,
		DB:       database.NewCache(cfg, &logger, nil),
		Registry: registry,
		Metrics:  server.NewMetrics(registry, cfg.Observability.Metrics.Namespace),
	}

	if cfg.Redis.Address != "" {
		s.Redis = redis.NewClient(&redis.Options{Addr: cfg.Redis.Address})
		t.Cleanup(func() { _ = s.Redis.Close() })
	}

	services := service.NewServices(s)
	return NewRouter(s, handler.NewHandlers(s, services), services), s
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSystemRoutes(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	rec := serve(e, http.MethodGet, "/status", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	rec = serve(e, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/docs", rec.Header().Get(echo.HeaderLocation))

	rec = serve(e, http.MethodGet, "/docs", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, http.MethodGet, "/static/openapi.json", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpointExposesRequests(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	serve(e, http.MethodPost, "/api/v1/merge", `{"base":{"a":1}}`)

	rec := serve(e, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "webkit_http_requests_total")
	assert.Contains(t, rec.Body.String(), `route="/api/v1/merge"`)
}

func TestAPIRoutes(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	tests := []struct {
		method string
		target string
		body   string
	}{
		{http.MethodPost, "/api/v1/query/set", `{"key":"page","value":"1"}`},
		{http.MethodPost, "/api/v1/query/remove", `{"query":"a=1","keys":["a"]}`},
		{http.MethodPost, "/api/v1/query/decode", `{"query":"a=1"}`},
		{http.MethodPost, "/api/v1/merge", `{"base":{"a":1}}`},
		{http.MethodPost, "/api/v1/classnames", `{"classes":["flex"]}`},
		{http.MethodGet, "/api/v1/images/size?dimension=width", ""},
		{http.MethodGet, "/api/v1/images/placeholder", ""},
		{http.MethodGet, "/api/v1/images/aspect-ratios", ""},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := serve(e, tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		})
	}
}

func TestAPIRequiresSession(t *testing.T) {
	e, _ := newTestRouter(t, func(cfg *config.Config) {
		cfg.Auth.Disabled = false
		cfg.Auth.SecretKey = "sk_test_webkit"
	})

	rec := serve(e, http.MethodPost, "/api/v1/merge", `{"base":{"a":1}}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(e, http.MethodGet, "/status", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDownloadIsRateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	e, _ := newTestRouter(t, func(cfg *config.Config) {
		cfg.Redis.Address = mr.Addr()
		cfg.RateLimit.Enabled = true
		cfg.RateLimit.Requests = 1
	})

	rec := serve(e, http.MethodPost, "/api/v1/download", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, http.MethodPost, "/api/v1/download", `{}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// Other routes are not limited.
	rec = serve(e, http.MethodPost, "/api/v1/merge", `{"base":{"a":1}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}
