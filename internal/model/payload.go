package model

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every payload; validator caches struct metadata
// per instance, so one instance is reused.
var validate = validator.New()

const (
	// FormNameMaxLength bounds the length of a form name.
	FormNameMaxLength = 100
	// FormDescriptionMaxLength bounds the length of a form description.
	FormDescriptionMaxLength = 500
)

// CreateFormPayload is the candidate form definition sent by the client.
type CreateFormPayload struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// Validate trims surrounding whitespace from both fields and checks them
// against the schema. On success the payload holds the normalized values.
func (p *CreateFormPayload) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)

	return validate.Struct(p)
}

// ListFormsPayload carries no input; it exists so the list endpoint goes
// through the same bind/validate pipeline as every other route.
type ListFormsPayload struct{}

func (p *ListFormsPayload) Validate() error {
	return nil
}

// GetFormStatsPayload carries no input.
type GetFormStatsPayload struct{}

func (p *GetFormStatsPayload) Validate() error {
	return nil
}

// GetFormByIDPayload selects a single form by its path parameter.
type GetFormByIDPayload struct {
	ID int64 `param:"id" validate:"required,min=1"`
}

func (p *GetFormByIDPayload) Validate() error {
	return validate.Struct(p)
}
