package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/deppfellow/webkit/internal/database"
	"github.com/deppfellow/webkit/internal/middleware"
	"github.com/deppfellow/webkit/internal/server"
)

// HealthHandler serves /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// Check status values.
const (
	statusHealthy       = "healthy"
	statusUnhealthy     = "unhealthy"
	statusNotConfigured = "not_configured"
)

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time,omitempty"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth pings the dependencies listed in
// observability.health_checks.checks.
//
// A failing database answers 503. An unconfigured database is reported but
// does not fail the check, and neither does redis, since the rate limiter
// fails open without it.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	cfg := h.server.Config.Observability.HealthChecks

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      statusHealthy,
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]checkResult),
	}

	if cfg.Enabled("database") {
		result := h.runCheck(c.Request().Context(), &logger, "database", h.pingDatabase)
		if result.Status == statusUnhealthy {
			response.Status = statusUnhealthy
		}
		response.Checks["database"] = result
	}

	if cfg.Enabled("redis") {
		if h.server.Redis == nil {
			response.Checks["redis"] = checkResult{Status: statusNotConfigured}
		} else {
			response.Checks["redis"] = h.runCheck(c.Request().Context(), &logger, "redis", func(ctx context.Context) error {
				return h.server.Redis.Ping(ctx).Err()
			})
		}
	}

	if response.Status != statusHealthy {
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		h.recordFailure("overall", nil, time.Since(start))
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) pingDatabase(ctx context.Context) error {
	db, err := h.server.DB.Get(ctx)
	if err != nil {
		return err
	}
	return db.Pool.Ping(ctx)
}

func (h *HealthHandler) runCheck(ctx context.Context, logger *zerolog.Logger, name string, ping func(context.Context) error) checkResult {
	ctx, cancel := context.WithTimeout(ctx, h.server.Config.Observability.HealthChecks.Timeout)
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, database.ErrMissingDatabaseURL):
		return checkResult{Status: statusNotConfigured}
	case err != nil:
		logger.Error().Err(err).Str("check", name).Dur("response_time", elapsed).Msg("health check failed")
		h.recordFailure(name, err, elapsed)
		return checkResult{
			Status:       statusUnhealthy,
			ResponseTime: elapsed.String(),
			Error:        err.Error(),
		}
	default:
		return checkResult{Status: statusHealthy, ResponseTime: elapsed.String()}
	}
}

func (h *HealthHandler) recordFailure(check string, err error, elapsed time.Duration) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	event := map[string]any{
		"check_type":       check,
		"operation":        "health_check",
		"error_type":       check + "_unhealthy",
		"response_time_ms": elapsed.Milliseconds(),
	}
	if err != nil {
		event["error_message"] = err.Error()
	}
	app.RecordCustomEvent("HealthCheckError", event)
}
