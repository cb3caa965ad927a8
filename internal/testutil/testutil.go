// Package testutil holds shared helpers for package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/deppfellow/form-builder/internal/config"
	"github.com/deppfellow/form-builder/internal/database"
)

// NewSQLiteDB opens a fresh SQLite store with the forms schema in a
// per-test temporary directory. It is closed when the test ends.
func NewSQLiteDB(t *testing.T) *database.Database {
	t.Helper()

	logger := zerolog.Nop()
	db, err := database.NewSQLite(filepath.Join(t.TempDir(), "forms.db"), &logger)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Failed to close test database: %v", err)
		}
	})

	return db
}

// NewTestConfig returns a minimal valid configuration backed by SQLite.
func NewTestConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:              "8080",
			ReadTimeout:       5,
			WriteTimeout:      5,
			IdleTimeout:       5,
			RateLimitRequests: 20,
			RateLimitWindow:   time.Second,
		},
		Database: config.DatabaseConfig{
			Driver: config.DriverSQLite,
			Path:   filepath.Join(t.TempDir(), "forms.db"),
		},
		Observability: config.DefaultObservabilityConfig(),
	}
}

// NewTestLogger returns a logger that discards everything.
func NewTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}
