package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/h0rv/bugsquash/internal/config"
)

func relayConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Relay: config.RelayConfig{Recorder: BackendSQLite, Directory: BackendFixture, DataDir: t.TempDir()},
		Email: config.EmailConfig{
			FromEmail:    "notifications@bugsquash.com",
			ResendAPIKey: "re_test",
			ResendURL:    "http://127.0.0.1:0/emails",
		},
	}
}

func TestBuild_SQLiteAndFixture(t *testing.T) {
	relay, cleanup, err := Build(context.Background(), relayConfig(t), testUsers(), zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, &SQLiteRecorder{}, relay.recorder)
	assert.IsType(t, &FixtureDirectory{}, relay.directory)
	assert.IsType(t, &ResendMailer{}, relay.mailer)
	assert.Equal(t, "notifications@bugsquash.com", relay.from)
}

func TestBuild_Supabase(t *testing.T) {
	cfg := relayConfig(t)
	cfg.Relay.Recorder = BackendSupabase
	cfg.Relay.Directory = BackendSupabase
	cfg.Supabase = config.SupabaseConfig{URL: "https://example.supabase.co", AnonKey: "anon"}

	relay, cleanup, err := Build(context.Background(), cfg, nil, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, &Supabase{}, relay.recorder)
	assert.Same(t, relay.recorder, relay.directory)
}

func TestBuild_UnknownBackends(t *testing.T) {
	cfg := relayConfig(t)
	cfg.Relay.Recorder = "redis"
	_, cleanup, err := Build(context.Background(), cfg, nil, zap.NewNop())
	cleanup()
	assert.ErrorContains(t, err, `unknown recorder "redis"`)

	cfg = relayConfig(t)
	cfg.Relay.Directory = "ldap"
	_, cleanup, err = Build(context.Background(), cfg, nil, zap.NewNop())
	cleanup()
	assert.ErrorContains(t, err, `unknown directory "ldap"`)
}

func TestBuild_SupabaseNeedsConfig(t *testing.T) {
	cfg := relayConfig(t)
	cfg.Relay.Recorder = BackendSupabase

	_, cleanup, err := Build(context.Background(), cfg, nil, zap.NewNop())
	cleanup()
	assert.ErrorContains(t, err, "supabase URL is not configured")
}
