package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/biztime/internal/middleware"
	"github.com/deppfellow/biztime/internal/server"
	"github.com/labstack/echo/v4"
)

const defaultHealthTimeout = 5 * time.Second

// HealthHandler reports whether the service and its database are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth returns 200 when every check passes and 503 otherwise.
//
// The database check pings the pool within the configured health check
// timeout. With health checks disabled only liveness is reported.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := map[string]interface{}{}
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	enabled, timeout := true, defaultHealthTimeout
	if obs := h.server.Config.Observability; obs != nil {
		enabled = obs.HealthChecks.Enabled
		if obs.HealthChecks.Timeout > 0 {
			timeout = obs.HealthChecks.Timeout
		}
	}

	isHealthy := true

	if enabled {
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		defer cancel()

		dbStart := time.Now()
		err := h.pingDatabase(ctx)

		if err != nil {
			isHealthy = false
			checks["database"] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": time.Since(dbStart).String(),
				"error":         err.Error(),
			}

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(dbStart)).
				Msg("database health check failed")

			if app := h.server.LoggerService.GetApplication(); app != nil {
				app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
					"check_type":       "database",
					"operation":        "health_check",
					"error_type":       "database_unhealthy",
					"response_time_ms": time.Since(dbStart).Milliseconds(),
					"error_message":    err.Error(),
				})
			}
		} else {
			checks["database"] = map[string]interface{}{
				"status":        "healthy",
				"response_time": time.Since(dbStart).String(),
			}
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) pingDatabase(ctx context.Context) error {
	if h.server.DB == nil || h.server.DB.Pool == nil {
		return fmt.Errorf("database not initialized")
	}
	return h.server.DB.Pool.Ping(ctx)
}
