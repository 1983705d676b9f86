package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/webkit/internal/config"
	"github.com/deppfellow/webkit/internal/errs"
	"github.com/deppfellow/webkit/internal/server"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Auth.Disabled = true
	cfg.Download.MaxBytes = 16
	cfg.Download.AllowPrivateNetworks = true

	logger := zerolog.Nop()
	registry := prometheus.NewRegistry()
	return &server.Server{
		Config:   cfg,
		Logger:   &logger,
		Registry: registry,
		Metrics:  server.NewMetrics(registry, "webkit"),
	}
}

func TestDownload(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("png-bytes"))
		case "/big.png":
			_, _ = w.Write([]byte("this body is longer than sixteen bytes"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer upstream.Close()

	s := newTestServer(t)
	svc := NewServices(s).Download
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		file, err := svc.Download(ctx, &logger, upstream.URL+"/ok.png", "My photo")
		require.NoError(t, err)
		assert.Equal(t, "My_photo.png", file.Name)
		assert.Equal(t, "image/png", file.ContentType)
		assert.Equal(t, float64(1), testutil.ToFloat64(s.Metrics.DownloadsTotal.WithLabelValues("ok")))
	})

	tests := []struct {
		name       string
		url        string
		wantStatus int
		wantCode   string
	}{
		{"missing url", "", http.StatusBadRequest, "URL_REQUIRED"},
		{"too large", upstream.URL + "/big.png", http.StatusBadRequest, "FILE_TOO_LARGE"},
		{"upstream 404", upstream.URL + "/missing.png", http.StatusBadGateway, "BAD_GATEWAY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Download(ctx, &logger, tt.url, "x")

			var httpErr *errs.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.wantStatus, httpErr.Status)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}

	t.Run("transport failure", func(t *testing.T) {
		_, err := svc.Download(ctx, &logger, "http://127.0.0.1:1/unreachable.png", "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Error: ")
	})
}

func TestDownloadRejectsPrivateHosts(t *testing.T) {
	s := newTestServer(t)
	s.Config.Download.AllowPrivateNetworks = false
	logger := zerolog.Nop()

	_, err := NewServices(s).Download.Download(context.Background(), &logger, "http://127.0.0.1:8080/admin", "x")

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "HOST_NOT_ALLOWED", httpErr.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(s.Metrics.DownloadsTotal.WithLabelValues("invalid")))
}

func TestAuthServiceDisabled(t *testing.T) {
	s := newTestServer(t)
	assert.False(t, NewAuthService(s).Enabled())
}
