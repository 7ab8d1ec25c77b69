package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/h0rv/bugsquash/internal/auth"
	"github.com/h0rv/bugsquash/internal/config"
	"github.com/h0rv/bugsquash/internal/fixtures"
	"github.com/h0rv/bugsquash/internal/logging"
	"github.com/h0rv/bugsquash/internal/notify"
	"github.com/h0rv/bugsquash/internal/store"
	"github.com/h0rv/bugsquash/internal/tui"
)

var (
	// CLI flags
	envFileFlag string
	userFlag    string
	seedFlag    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bugsquash",
		Short: "Terminal issue tracker",
		Long: `bugsquash is a terminal issue tracker with kanban boards.

Projects, issues and comments live in memory for the session, seeded from
built-in sample data or a YAML seed file (BUGSQUASH_SEED or --seed).

Configuration is read from the environment and an optional .env file.
Set BUGSQUASH_RELAY_URL to send assignment and comment notifications
through a running 'bugsquash relay'.`,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env", "", "Path to a .env file (default .env or $ENV_PATH)")
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "", "Act as this user ID (overrides BUGSQUASH_USER)")
	rootCmd.PersistentFlags().StringVar(&seedFlag, "seed", "", "YAML seed file (overrides BUGSQUASH_SEED)")

	rootCmd.AddCommand(newRelayCmd(), newExportCmd(), newInboxCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(envFileFlag)
	if err != nil {
		return nil, err
	}
	if userFlag != "" {
		cfg.CurrentUserID = userFlag
	}
	if seedFlag != "" {
		cfg.SeedFile = seedFlag
	}
	return cfg, nil
}

// initialState returns the seed file's state, or the built-in snapshot.
func initialState(cfg *config.Config) (store.State, error) {
	if cfg.SeedFile == "" {
		return fixtures.Snapshot(), nil
	}
	return fixtures.Load(cfg.SeedFile)
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The terminal belongs to Bubble Tea, so logs go to a file
	logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	st, err := initialState(cfg)
	if err != nil {
		return err
	}
	if _, err := store.UserByID(st, cfg.CurrentUserID); err != nil {
		return fmt.Errorf("unknown user %q: %w", cfg.CurrentUserID, err)
	}

	s := store.New(st,
		store.WithLogger(logger),
		store.WithStatusCheck(cfg.StatusCheck),
	)

	var notifier notify.Notifier = notify.Nop{}
	if cfg.RelayURL != "" {
		notifier = notify.NewClient(cfg.RelayURL)
	}

	// Clears the local session even when the backend is unreachable
	signOut := func(ctx context.Context) error {
		return auth.SignOut(ctx, cfg.Supabase.URL, cfg.Supabase.AnonKey)
	}

	logger.Info("starting",
		zap.String("user", cfg.CurrentUserID),
		zap.Int("projects", len(st.Projects)),
		zap.Int("issues", len(st.Issues)),
		zap.Bool("relay", cfg.RelayURL != ""),
	)

	app := tui.NewAppModel(cmd.Context(), s, tui.Options{
		CurrentUserID: cfg.CurrentUserID,
		BaseURL:       cfg.BaseURL,
		Notifier:      notifier,
		SignOut:       signOut,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}

	return nil
}
