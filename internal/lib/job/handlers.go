package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/user"
	"github.com/deppfellow/form-builder/internal/config"
	"github.com/deppfellow/form-builder/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Mailer sends the notification emails used by job handlers.
type Mailer interface {
	SendFormCreatedEmail(to, formName string, formID int64) error
}

// OwnerDirectory resolves a user id to a deliverable email address.
type OwnerDirectory interface {
	PrimaryEmail(ctx context.Context, userID string) (string, error)
}

// ClerkOwnerDirectory looks owners up through the Clerk Backend API.
// It relies on the key set by clerk.SetKey at startup.
type ClerkOwnerDirectory struct{}

func (ClerkOwnerDirectory) PrimaryEmail(ctx context.Context, userID string) (string, error) {
	usr, err := user.Get(ctx, userID)
	if err != nil {
		return "", errors.Wrapf(err, "failed to fetch clerk user %s", userID)
	}
	return primaryEmail(usr)
}

// errNoEmail marks owners that cannot be notified; retrying won't help.
var errNoEmail = fmt.Errorf("user has no email address: %w", asynq.SkipRetry)

func primaryEmail(usr *clerk.User) (string, error) {
	if usr == nil || len(usr.EmailAddresses) == 0 {
		return "", errNoEmail
	}

	if usr.PrimaryEmailAddressID != nil {
		for _, addr := range usr.EmailAddresses {
			if addr != nil && addr.ID == *usr.PrimaryEmailAddressID {
				return addr.EmailAddress, nil
			}
		}
	}

	if first := usr.EmailAddresses[0]; first != nil && first.EmailAddress != "" {
		return first.EmailAddress, nil
	}
	return "", errNoEmail
}

// InitHandlers wires the dependencies used by job handlers.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.mailer = email.NewClient(cfg, logger)
	j.owners = ClerkOwnerDirectory{}
}

// handleFormCreatedTask processes the form-created notification.
//
// Steps:
//   - Parse JSON payload from the Asynq task
//   - Resolve the owner's email address
//   - Send the notification
//
// A returned error makes Asynq retry the task, except for errors wrapping
// asynq.SkipRetry.
func (j *JobService) handleFormCreatedTask(ctx context.Context, t *asynq.Task) error {
	var p FormCreatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal form created payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskFormCreated).
		Int64("form_id", p.FormID).
		Str("user_id", p.UserID).
		Logger()

	log.Info().Msg("Processing form created task")

	to, err := j.owners.PrimaryEmail(ctx, p.UserID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve owner email")
		return err
	}

	if err := j.mailer.SendFormCreatedEmail(to, p.Name, p.FormID); err != nil {
		log.Error().Err(err).Msg("Failed to send form created email")
		return err
	}

	log.Info().Msg("Successfully sent form created email")

	return nil
}
