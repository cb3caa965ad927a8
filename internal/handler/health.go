package handler

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/deppfellow/form-builder/internal/middleware"
	"github.com/deppfellow/form-builder/internal/server"
	"github.com/labstack/echo/v4"
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

// checkResult is one dependency's entry in the health response.
type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// enabledChecks lists the dependency checks to run. An empty configured
// list means all of them.
func (h *HealthHandler) enabledChecks() []string {
	obs := h.server.Config.Observability
	if obs == nil || len(obs.HealthChecks.Checks) == 0 {
		return []string{"database", "redis"}
	}
	return obs.HealthChecks.Checks
}

func (h *HealthHandler) checkTimeout() time.Duration {
	obs := h.server.Config.Observability
	if obs == nil || obs.HealthChecks.Timeout <= 0 {
		return 5 * time.Second
	}
	return obs.HealthChecks.Timeout
}

// recordFailure emits a HealthCheckError custom event to New Relic.
func (h *HealthHandler) recordFailure(check string, took time.Duration, err error) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}
	h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", map[string]any{
		"check_type":       check,
		"operation":        "health_check",
		"error_type":       check + "_unhealthy",
		"response_time_ms": took.Milliseconds(),
		"error_message":    err.Error(),
	})
}

func (h *HealthHandler) runCheck(ctx context.Context, name string, ping func(context.Context) error) checkResult {
	ctx, cancel := context.WithTimeout(ctx, h.checkTimeout())
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	took := time.Since(start)

	if err != nil {
		h.recordFailure(name, took, err)
		return checkResult{Status: "unhealthy", ResponseTime: took.String(), Error: err.Error()}
	}
	return checkResult{Status: "healthy", ResponseTime: took.String()}
}

// CheckHealth reports overall status plus the database and Redis checks.
//
// The database is required: its failure turns the response into 503.
// Redis only degrades rate limiting and notifications, so its failure is
// reported but the status stays 200.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]checkResult),
	}

	checks := h.enabledChecks()
	ctx := c.Request().Context()

	if slices.Contains(checks, "database") && h.server.DB != nil {
		result := h.runCheck(ctx, "database", h.server.DB.Ping)
		response.Checks["database"] = result
		if result.Status != "healthy" {
			response.Status = "unhealthy"
			logger.Error().Str("error", result.Error).Msg("database health check failed")
		}
	}

	if slices.Contains(checks, "redis") && h.server.Redis != nil {
		result := h.runCheck(ctx, "redis", func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
		response.Checks["redis"] = result
		if result.Status != "healthy" {
			logger.Warn().Str("error", result.Error).Msg("redis health check failed")
		}
	}

	if response.Status != "healthy" {
		return c.JSON(http.StatusServiceUnavailable, response)
	}
	return c.JSON(http.StatusOK, response)
}
