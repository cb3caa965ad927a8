package handler

import (
	"github.com/deppfellow/form-builder/internal/server"
	"github.com/deppfellow/form-builder/internal/service"
)

// Handlers groups every HTTP handler so the router receives them as one
// value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Form    *FormHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Form:    NewFormHandler(s, services.Form),
	}
}
