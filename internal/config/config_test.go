package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "user-1", cfg.CurrentUserID)
	assert.True(t, cfg.StatusCheck)
	assert.Equal(t, ":8787", cfg.Relay.Addr)
	assert.Equal(t, "sqlite", cfg.Relay.Recorder)
	assert.Equal(t, "https://api.resend.com/emails", cfg.Email.ResendURL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "BUGSQUASH_USER=user-3\nRELAY_RECORDER=postgres\nSMTP_ENABLED=true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// godotenv does not override variables that are already set
	t.Setenv("RELAY_ADDR", ":9999")
	t.Cleanup(func() {
		os.Unsetenv("BUGSQUASH_USER")
		os.Unsetenv("RELAY_RECORDER")
		os.Unsetenv("SMTP_ENABLED")
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "user-3", cfg.CurrentUserID)
	assert.Equal(t, "postgres", cfg.Relay.Recorder)
	assert.True(t, cfg.Email.SMTPEnabled)
	assert.Equal(t, ":9999", cfg.Relay.Addr)
}
