// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/form-builder/internal/model"
)

var (
	// ErrFormNotFound is returned when no form matches the lookup.
	ErrFormNotFound = errors.New("form not found")

	// ErrDuplicateFormName is returned by Insert when the store rejects the
	// row because the owner already has a form with the same name.
	ErrDuplicateFormName = errors.New("form name already exists for owner")
)

// FormRepository is the persistence boundary for forms.
//
// Every query is scoped by the owning user id.
type FormRepository interface {
	// SumVisitsAndSubmissions totals the counters across the owner's forms.
	// An owner without forms gets (0, 0).
	SumVisitsAndSubmissions(ctx context.Context, userID string) (visits, submissions int64, err error)

	// FindByOwnerAndName returns ErrFormNotFound when there is no match.
	FindByOwnerAndName(ctx context.Context, userID, name string) (*model.Form, error)

	// FindByOwnerAndID returns ErrFormNotFound when the form does not exist
	// or belongs to someone else.
	FindByOwnerAndID(ctx context.Context, userID string, id int64) (*model.Form, error)

	// Insert stores a new form with zeroed counters and returns the
	// created record.
	Insert(ctx context.Context, draft model.FormDraft) (*model.Form, error)

	// ListByOwner returns the owner's forms, newest first.
	ListByOwner(ctx context.Context, userID string) ([]model.Form, error)
}
