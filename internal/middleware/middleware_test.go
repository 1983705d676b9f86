package middleware

import (
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/deppfellow/webkit/internal/config"
	"github.com/deppfellow/webkit/internal/database"
	"github.com/deppfellow/webkit/internal/server"
)

func newTestServer(t *testing.T, mutate func(cfg *config.Config)) *server.Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Primary.Env = "test"
	if mutate != nil {
		mutate(cfg)
	}

	logger := zerolog.Nop()
	registry := prometheus.NewRegistry()

	return &server.Server{
		Config:   cfg,
		Logger:   &logger,
		DB:       database.NewCache(cfg, &logger, nil),
		Registry: registry,
		Metrics:  server.NewMetrics(registry, cfg.Observability.Metrics.Namespace),
	}
}

func newTestEcho(s *server.Server) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	e.Use(RequestID())
	e.Use(NewContextEnhancer(s).EnhanceContext())
	return e
}
