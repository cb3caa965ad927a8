package service

import (
	"github.com/deppfellow/form-builder/internal/lib/job"
	"github.com/deppfellow/form-builder/internal/repository"
	"github.com/deppfellow/form-builder/internal/server"
)

// Services groups every service so handlers receive them as one value.
type Services struct {
	Auth *AuthService
	Job  *job.JobService
	Form *FormService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	authService := NewAuthService(s)

	var enqueuer TaskEnqueuer
	if s.Job != nil && s.Job.Client != nil {
		enqueuer = s.Job.Client
	}

	return &Services{
		Auth: authService,
		Job:  s.Job,
		Form: NewFormService(s, repos.Form, enqueuer),
	}, nil
}
