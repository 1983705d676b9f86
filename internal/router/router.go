// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/webkit/internal/handler"
	"github.com/deppfellow/webkit/internal/middleware"
	"github.com/deppfellow/webkit/internal/server"
	"github.com/deppfellow/webkit/internal/service"
)

// NewRouter builds the echo instance with global middlewares, system routes
// and the authenticated /api/v1 group.
func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request id and the New Relic transaction must exist
	// before the logger is enriched, and the logger before anything logs.
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Instrument(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
	)

	registerSystemRoutes(router, s, h)

	v1 := router.Group("/api/v1", middlewares.Auth.RequireAuth)
	registerV1Routes(v1, h, middlewares)

	if services.Auth.Enabled() {
		s.Logger.Info().Strs("public_paths", s.Config.Auth.PublicPaths).Msg("authentication enabled")
	}

	return router
}

func registerV1Routes(v1 *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	q := v1.Group("/query")
	q.POST("/set", h.Query.SetParam())
	q.POST("/remove", h.Query.RemoveParams())
	q.POST("/decode", h.Query.Decode())

	v1.POST("/merge", h.Merge.Merge())
	v1.POST("/classnames", h.ClassNames.Merge())

	images := v1.Group("/images")
	images.GET("/size", h.Image.Size())
	images.GET("/placeholder", h.Image.Placeholder())
	images.GET("/aspect-ratios", h.Image.AspectRatios())

	v1.POST("/download", h.Download.Download(), m.RateLimit.Limit("download"))
}
