package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskFormCreated is the job type name stored in Redis.
	// Asynq uses task type strings to route to handlers.
	TaskFormCreated = "form:created"
)

// FormCreatedPayload is the JSON payload for the form-created notification.
type FormCreatedPayload struct {
	FormID int64  `json:"form_id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// NewFormCreatedTask constructs an Asynq task notifying the owner of a new
// form.
//
// Task options:
//   - MaxRetry(3): retry up to 3 times on failure
//   - Queue("default"): send into the "default" queue
//   - Timeout(30s): kill the task if handler runs longer than 30 seconds
func NewFormCreatedTask(p FormCreatedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskFormCreated,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
