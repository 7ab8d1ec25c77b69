package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/h0rv/bugsquash/internal/config"
	"github.com/h0rv/bugsquash/internal/domain"
	"github.com/h0rv/bugsquash/internal/supabase"
)

// Backend names accepted by RELAY_RECORDER and RELAY_DIRECTORY.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendSupabase = "supabase"
	BackendFixture  = "fixture"
)

// Build wires a Relay from configuration. users backs the fixture directory.
// The returned cleanup closes any database handles that were opened.
func Build(ctx context.Context, cfg *config.Config, users []domain.User, log *zap.Logger) (*Relay, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var (
		pg *Postgres
		sb *Supabase
	)
	postgres := func() (*Postgres, error) {
		if pg != nil {
			return pg, nil
		}
		p, err := OpenPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		closers = append(closers, p.Close)
		pg = p
		return pg, nil
	}
	supabaseBackend := func() (*Supabase, error) {
		if sb != nil {
			return sb, nil
		}
		c, err := supabase.New(cfg.Supabase.URL, cfg.Supabase.AnonKey, "")
		if err != nil {
			return nil, err
		}
		sb = NewSupabase(c)
		return sb, nil
	}

	var recorder Recorder
	switch cfg.Relay.Recorder {
	case BackendSQLite:
		r, err := OpenSQLite(cfg.Relay.DataDir)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, func() { _ = r.Close() })
		recorder = r
	case BackendPostgres:
		p, err := postgres()
		if err != nil {
			return nil, cleanup, err
		}
		recorder = p
	case BackendSupabase:
		s, err := supabaseBackend()
		if err != nil {
			return nil, cleanup, err
		}
		recorder = s
	default:
		return nil, cleanup, fmt.Errorf("unknown recorder %q", cfg.Relay.Recorder)
	}

	var directory Directory
	switch cfg.Relay.Directory {
	case BackendFixture:
		directory = NewFixtureDirectory(users)
	case BackendPostgres:
		p, err := postgres()
		if err != nil {
			return nil, cleanup, err
		}
		directory = p
	case BackendSupabase:
		s, err := supabaseBackend()
		if err != nil {
			return nil, cleanup, err
		}
		directory = s
	default:
		return nil, cleanup, fmt.Errorf("unknown directory %q", cfg.Relay.Directory)
	}

	mailer, err := NewMailer(cfg.Email)
	if err != nil {
		return nil, cleanup, err
	}

	log.Info("relay configured",
		zap.String("recorder", cfg.Relay.Recorder),
		zap.String("directory", cfg.Relay.Directory),
		zap.Bool("smtp", cfg.Email.SMTPEnabled),
	)

	return NewRelay(recorder, directory, mailer, cfg.Email.FromEmail, WithRelayLogger(log)), cleanup, nil
}
