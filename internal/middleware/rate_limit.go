package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/webkit/internal/errs"
	"github.com/deppfellow/webkit/internal/lib/ratelimit"
	"github.com/deppfellow/webkit/internal/lib/utils"
	"github.com/deppfellow/webkit/internal/server"
)

// unavailableLogWait collapses a burst of redis failures into one warning.
const unavailableLogWait = 5 * time.Second

// RateLimitMiddleware guards expensive routes with the redis fixed-window
// limiter. It is a pass-through when rate_limit.enabled is false or no
// redis is configured.
type RateLimitMiddleware struct {
	server          *server.Server
	limiter         *ratelimit.Limiter
	unavailableWarn *utils.Debouncer
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	rl := &RateLimitMiddleware{
		server:          s,
		unavailableWarn: utils.NewDebouncer(unavailableLogWait),
	}

	cfg := s.Config.RateLimit
	if cfg.Enabled && s.Redis != nil {
		rl.limiter = ratelimit.New(s.Redis, cfg.Requests, cfg.Window)
	}
	return rl
}

// Limit returns middleware that counts hits per caller under scope. Callers
// are identified by user id when authenticated, by IP otherwise.
//
// A redis outage lets requests through; it is logged once per burst, not
// surfaced.
func (r *RateLimitMiddleware) Limit(scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if r.limiter == nil {
			return next
		}

		return func(c echo.Context) error {
			identity := GetUserID(c)
			if identity == "" {
				identity = "ip:" + c.RealIP()
			}

			result, err := r.limiter.Allow(c.Request().Context(), scope+":"+identity)
			switch {
			case errors.Is(err, ratelimit.ErrRateLimited):
				r.RecordRateLimitHit(c.Path())
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(result.ResetIn.Seconds())))
				return errs.NewTooManyRequestsError("Too many requests, please try again later")
			case err != nil:
				logger := GetLogger(c)
				r.unavailableWarn.Trigger(func() {
					logger.Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable, allowing requests")
				})
				return next(c)
			}

			header := c.Response().Header()
			header.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			header.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

			return next(c)
		}
	}
}

// RecordRateLimitHit counts a rejected request in Prometheus and, when the
// agent runs, as a New Relic custom event.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	r.server.Metrics.RateLimitHits.WithLabelValues(endpoint).Inc()

	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
}
