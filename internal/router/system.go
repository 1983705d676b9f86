package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/deppfellow/webkit/internal/handler"
	"github.com/deppfellow/webkit/internal/server"
)

// registerSystemRoutes registers endpoints that are not part of the API:
// health, docs, the assets the docs page loads, and the metrics scrape.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/docs")
	})

	r.GET("/status", h.Health.CheckHealth)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/static/*", h.OpenAPI.Static())

	r.GET(s.Config.Observability.Metrics.Path, echo.WrapHandler(promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{
		Registry:          s.Registry,
		EnableOpenMetrics: true,
	})))
}
