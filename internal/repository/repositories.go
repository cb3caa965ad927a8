package repository

import (
	"github.com/deppfellow/form-builder/internal/server"
)

// Repositories is a container for all repository instances.
//
// It is built once at startup and handed to the service layer.
type Repositories struct {
	Form FormRepository
}

// NewRepositories constructs the repository container.
//
// The form repository implementation follows the configured driver:
// s.DB.SQL (sqlite) or s.DB.Pool (postgres).
func NewRepositories(s *server.Server) *Repositories {
	var forms FormRepository
	if s.DB.SQL != nil {
		forms = NewSQLiteFormRepository(s.DB.SQL)
	} else {
		forms = NewPgFormRepository(s.DB.Pool)
	}

	return &Repositories{
		Form: forms,
	}
}
