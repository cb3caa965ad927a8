package router

import (
	"net/http"

	"github.com/deppfellow/form-builder/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerFormRoutes mounts the form endpoints on the authenticated API
// group.
func registerFormRoutes(g *echo.Group, h *handler.Handlers) {
	forms := g.Group("/forms")

	forms.GET("/stats", handler.Handle(h.Form.GetFormStats, http.StatusOK))
	forms.GET("", handler.Handle(h.Form.GetForms, http.StatusOK))
	forms.POST("", handler.Handle(h.Form.CreateForm, http.StatusCreated))
	forms.GET("/:id", handler.Handle(h.Form.GetFormByID, http.StatusOK))
}
