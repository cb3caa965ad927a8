package router

import (
	"github.com/deppfellow/form-builder/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints outside the versioned API:
// health, the docs UI and the static assets it loads.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.StaticFS("/static", h.OpenAPI.StaticFS())
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
