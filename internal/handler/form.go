package handler

import (
	"github.com/deppfellow/form-builder/internal/middleware"
	"github.com/deppfellow/form-builder/internal/model"
	"github.com/deppfellow/form-builder/internal/server"
	"github.com/deppfellow/form-builder/internal/service"
	"github.com/labstack/echo/v4"
)

// FormHandler exposes the form operations under /api/v1/forms. The caller
// is whoever the auth middleware resolved; anonymous callers reach the
// service with an empty user id.
type FormHandler struct {
	Handler
	formService *service.FormService
}

func NewFormHandler(s *server.Server, formService *service.FormService) *FormHandler {
	return &FormHandler{
		Handler:     NewHandler(s),
		formService: formService,
	}
}

func (h *FormHandler) GetFormStats(c echo.Context, _ *model.GetFormStatsPayload) (*model.FormStats, error) {
	return h.formService.GetFormStats(c.Request().Context(), middleware.GetUserID(c))
}

func (h *FormHandler) CreateForm(c echo.Context, payload *model.CreateFormPayload) (*model.CreateFormResponse, error) {
	return h.formService.CreateForm(c.Request().Context(), middleware.GetUserID(c), payload)
}

func (h *FormHandler) GetForms(c echo.Context, _ *model.ListFormsPayload) ([]model.Form, error) {
	return h.formService.GetForms(c.Request().Context(), middleware.GetUserID(c))
}

func (h *FormHandler) GetFormByID(c echo.Context, payload *model.GetFormByIDPayload) (*model.Form, error) {
	return h.formService.GetFormByID(c.Request().Context(), middleware.GetUserID(c), payload.ID)
}
