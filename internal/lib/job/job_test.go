package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentEmail struct {
	to       string
	formName string
	formID   int64
}

type fakeMailer struct {
	sent []sentEmail
	err  error
}

func (m *fakeMailer) SendFormCreatedEmail(to, formName string, formID int64) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentEmail{to: to, formName: formName, formID: formID})
	return nil
}

type fakeOwners map[string]string

func (o fakeOwners) PrimaryEmail(_ context.Context, userID string) (string, error) {
	addr, ok := o[userID]
	if !ok {
		return "", errNoEmail
	}
	return addr, nil
}

func newTestJobService(mailer Mailer, owners OwnerDirectory) *JobService {
	logger := zerolog.Nop()
	return &JobService{logger: &logger, mailer: mailer, owners: owners}
}

func TestNewFormCreatedTask(t *testing.T) {
	task, err := NewFormCreatedTask(FormCreatedPayload{FormID: 7, UserID: "user_a", Name: "Survey"})
	require.NoError(t, err)

	assert.Equal(t, TaskFormCreated, task.Type())
	assert.JSONEq(t, `{"form_id":7,"user_id":"user_a","name":"Survey"}`, string(task.Payload()))
}

func TestHandleFormCreatedTaskSendsEmail(t *testing.T) {
	mailer := &fakeMailer{}
	j := newTestJobService(mailer, fakeOwners{"user_a": "a@example.com"})

	task, err := NewFormCreatedTask(FormCreatedPayload{FormID: 7, UserID: "user_a", Name: "Survey"})
	require.NoError(t, err)

	require.NoError(t, j.handleFormCreatedTask(context.Background(), task))
	assert.Equal(t, []sentEmail{{to: "a@example.com", formName: "Survey", formID: 7}}, mailer.sent)
}

func TestHandleFormCreatedTaskMailerErrorIsRetried(t *testing.T) {
	sendErr := errors.New("provider unavailable")
	j := newTestJobService(&fakeMailer{err: sendErr}, fakeOwners{"user_a": "a@example.com"})

	task, err := NewFormCreatedTask(FormCreatedPayload{FormID: 1, UserID: "user_a", Name: "Survey"})
	require.NoError(t, err)

	err = j.handleFormCreatedTask(context.Background(), task)
	assert.ErrorIs(t, err, sendErr)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleFormCreatedTaskUnknownOwnerSkipsRetry(t *testing.T) {
	mailer := &fakeMailer{}
	j := newTestJobService(mailer, fakeOwners{})

	task, err := NewFormCreatedTask(FormCreatedPayload{FormID: 1, UserID: "ghost", Name: "Survey"})
	require.NoError(t, err)

	err = j.handleFormCreatedTask(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, mailer.sent)
}

func TestHandleFormCreatedTaskBadPayload(t *testing.T) {
	j := newTestJobService(&fakeMailer{}, fakeOwners{})

	err := j.handleFormCreatedTask(context.Background(), asynq.NewTask(TaskFormCreated, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestPrimaryEmail(t *testing.T) {
	primaryID := "idn_2"

	addr, err := primaryEmail(&clerk.User{
		PrimaryEmailAddressID: &primaryID,
		EmailAddresses: []*clerk.EmailAddress{
			{ID: "idn_1", EmailAddress: "old@example.com"},
			{ID: "idn_2", EmailAddress: "primary@example.com"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "primary@example.com", addr)

	addr, err = primaryEmail(&clerk.User{
		EmailAddresses: []*clerk.EmailAddress{{ID: "idn_1", EmailAddress: "only@example.com"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "only@example.com", addr)

	_, err = primaryEmail(&clerk.User{})
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestNewServeMuxRoutesFormCreated(t *testing.T) {
	mailer := &fakeMailer{}
	j := newTestJobService(mailer, fakeOwners{"user_a": "a@example.com"})

	payload, err := json.Marshal(FormCreatedPayload{FormID: 3, UserID: "user_a", Name: "Poll"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, j.NewServeMux().ProcessTask(ctx, asynq.NewTask(TaskFormCreated, payload)))
	assert.Len(t, mailer.sent, 1)
}
