package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/form-builder/internal/config"
)

func TestRootRegistersSubcommands(t *testing.T) {
	for _, name := range []string{"serve", "migrate", "email-preview"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestServeFlagDefaults(t *testing.T) {
	flags := serveCmd.Flags()

	noWorker, err := flags.GetBool("no-worker")
	require.NoError(t, err)
	assert.False(t, noWorker)

	wait, err := flags.GetDuration("shutdown-timeout")
	require.NoError(t, err)
	assert.Equal(t, defaultShutdownTimeout, wait)
}

func TestBootstrapFailsWithoutConfig(t *testing.T) {
	t.Setenv(config.EnvPrefix+"PRIMARY.ENV", "")

	_, _, _, err := bootstrap()
	assert.Error(t, err)
}

func TestMigrateSQLiteIsNoop(t *testing.T) {
	vars := map[string]string{
		"PRIMARY.ENV":                 "test",
		"SERVER.PORT":                 "8080",
		"SERVER.READ_TIMEOUT":         "30",
		"SERVER.WRITE_TIMEOUT":        "30",
		"SERVER.IDLE_TIMEOUT":         "60",
		"SERVER.CORS_ALLOWED_ORIGINS": "*",
		"DATABASE.DRIVER":             "sqlite",
		"DATABASE.PATH":               filepath.Join(t.TempDir(), "forms.db"),
		"REDIS.ADDRESS":               "localhost:6379",
		"AUTH.SECRET_KEY":             "sk_test_123",
	}
	for k, v := range vars {
		t.Setenv(config.EnvPrefix+k, v)
	}
	migrateTimeout = 5 * time.Second

	rootCmd.SetArgs([]string{"migrate"})
	assert.NoError(t, rootCmd.Execute())
}

func TestEmailPreview(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	rootCmd.SetArgs([]string{"email-preview"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "form_created\n", out.String())

	out.Reset()
	rootCmd.SetArgs([]string{"email-preview", "form_created"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Customer Feedback")

	rootCmd.SetArgs([]string{"email-preview", "missing"})
	assert.Error(t, rootCmd.Execute())
}
