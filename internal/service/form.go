package service

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/form-builder/internal/errs"
	"github.com/deppfellow/form-builder/internal/lib/job"
	"github.com/deppfellow/form-builder/internal/model"
	"github.com/deppfellow/form-builder/internal/repository"
	"github.com/deppfellow/form-builder/internal/server"
	"github.com/deppfellow/form-builder/internal/sqlerr"
	"github.com/deppfellow/form-builder/internal/validation"
)

// TaskEnqueuer is the part of *asynq.Client the service needs.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// FormService implements the form operations. Every method takes the
// caller's user id explicitly; an empty id is rejected before the store is
// touched.
type FormService struct {
	server   *server.Server
	forms    repository.FormRepository
	enqueuer TaskEnqueuer
}

// NewFormService builds a FormService. enqueuer may be nil, in which case
// no notification tasks are scheduled.
func NewFormService(s *server.Server, forms repository.FormRepository, enqueuer TaskEnqueuer) *FormService {
	return &FormService{
		server:   s,
		forms:    forms,
		enqueuer: enqueuer,
	}
}

func errUnauthenticated() error {
	return errs.NewUnauthorizedError("Unauthorized", false)
}

func errDuplicateName() error {
	code := errs.CodeFormNameTaken
	return errs.NewConflictError("A form with this name already exists", true, &code)
}

func errFormNotFound() error {
	code := errs.CodeFormNotFound
	return errs.NewNotFoundError("Form not found", true, &code)
}

// logger prefers the request-scoped logger placed in ctx by the HTTP
// middleware and falls back to the server logger.
func (s *FormService) logger(ctx context.Context, userID string) zerolog.Logger {
	base := s.server.Logger
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		base = l
	}
	return base.With().
		Str("service", "form").
		Str("user_id", userID).
		Logger()
}

// persistenceError logs the underlying failure and returns the error sent
// to the client. Data the store rejected through a constraint is reported
// as a 400 naming the field; any other failure is an opaque 500.
func (s *FormService) persistenceError(ctx context.Context, userID, op string, err error) error {
	log := s.logger(ctx, userID)

	if sqlerr.IsConstraintViolation(err) {
		log.Warn().Err(err).Str("operation", op).Msg("form rejected by store constraint")
		return sqlerr.HandleError(err)
	}

	log.Error().Err(err).Str("operation", op).Msg("form store failure")
	return errs.NewInternalServerErrorWithCode(errs.CodeFormPersistFailed)
}

// GetFormStats totals visits and submissions over every form the user owns
// and derives the submission and bounce rates.
func (s *FormService) GetFormStats(ctx context.Context, userID string) (*model.FormStats, error) {
	if userID == "" {
		return nil, errUnauthenticated()
	}

	visits, submissions, err := s.forms.SumVisitsAndSubmissions(ctx, userID)
	if err != nil {
		return nil, s.persistenceError(ctx, userID, "sum_stats", err)
	}

	stats := model.NewFormStats(visits, submissions)
	return &stats, nil
}

// CreateForm validates the payload, checks the caller, rejects a name the
// caller already uses and stores the new form.
//
// Validation runs first, so an invalid payload is reported even for an
// anonymous caller.
func (s *FormService) CreateForm(ctx context.Context, userID string, payload *model.CreateFormPayload) (*model.CreateFormResponse, error) {
	if err := validation.Validate(payload); err != nil {
		return nil, err
	}

	if userID == "" {
		return nil, errUnauthenticated()
	}

	_, err := s.forms.FindByOwnerAndName(ctx, userID, payload.Name)
	switch {
	case err == nil:
		return nil, errDuplicateName()
	case !errors.Is(err, repository.ErrFormNotFound):
		return nil, s.persistenceError(ctx, userID, "find_by_name", err)
	}

	form, err := s.forms.Insert(ctx, model.FormDraft{
		UserID:      userID,
		Name:        payload.Name,
		Description: payload.Description,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateFormName) {
			return nil, errDuplicateName()
		}
		return nil, s.persistenceError(ctx, userID, "insert", err)
	}
	if form == nil {
		return nil, s.persistenceError(ctx, userID, "insert", errors.New("store returned no form"))
	}

	s.notifyCreated(ctx, form)

	return &model.CreateFormResponse{ID: form.ID}, nil
}

// notifyCreated schedules the owner notification. Failures are logged and
// do not affect the created form.
func (s *FormService) notifyCreated(ctx context.Context, form *model.Form) {
	if s.enqueuer == nil {
		return
	}

	log := s.logger(ctx, form.UserID)

	task, err := job.NewFormCreatedTask(job.FormCreatedPayload{
		FormID: form.ID,
		UserID: form.UserID,
		Name:   form.Name,
	})
	if err != nil {
		log.Error().Err(err).Int64("form_id", form.ID).Msg("failed to build form created task")
		return
	}

	info, err := s.enqueuer.EnqueueContext(ctx, task)
	if err != nil {
		log.Error().Err(err).Int64("form_id", form.ID).Msg("failed to enqueue form created task")
		return
	}

	log.Debug().Int64("form_id", form.ID).Str("task_id", info.ID).Msg("form created task enqueued")
}

// GetForms lists the caller's forms, newest first. A caller without forms
// gets an empty, non-nil slice.
func (s *FormService) GetForms(ctx context.Context, userID string) ([]model.Form, error) {
	if userID == "" {
		return nil, errUnauthenticated()
	}

	forms, err := s.forms.ListByOwner(ctx, userID)
	if err != nil {
		return nil, s.persistenceError(ctx, userID, "list", err)
	}
	if forms == nil {
		forms = []model.Form{}
	}

	return forms, nil
}

// GetFormByID returns one of the caller's forms. A form owned by someone
// else is reported exactly like a missing one.
func (s *FormService) GetFormByID(ctx context.Context, userID string, id int64) (*model.Form, error) {
	if userID == "" {
		return nil, errUnauthenticated()
	}

	form, err := s.forms.FindByOwnerAndID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			return nil, errFormNotFound()
		}
		return nil, s.persistenceError(ctx, userID, "find_by_id", err)
	}

	return form, nil
}
