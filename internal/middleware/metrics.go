package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/webkit/internal/errs"
	"github.com/deppfellow/webkit/internal/server"
)

// MetricsMiddleware records Prometheus request counts and latencies.
type MetricsMiddleware struct {
	server *server.Server
}

func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	return &MetricsMiddleware{server: s}
}

// Instrument observes every request under its route template, so path
// parameters don't explode label cardinality. Unmatched routes share one
// "unmatched" label.
func (mm *MetricsMiddleware) Instrument() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			mm.server.Metrics.RequestDuration.
				WithLabelValues(method, route).
				Observe(time.Since(start).Seconds())
			mm.server.Metrics.RequestsTotal.
				WithLabelValues(method, route, strconv.Itoa(responseStatus(c, err))).
				Inc()

			return err
		}
	}
}

// responseStatus resolves the status the global error handler will write,
// since it has not run yet when the handler returned an error.
func responseStatus(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}

	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &echoErr):
		return echoErr.Code
	default:
		return 500
	}
}
