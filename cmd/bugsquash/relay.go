package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/h0rv/bugsquash/internal/logging"
	"github.com/h0rv/bugsquash/internal/notify"
)

func newRelayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "relay",
		Short: "Run the notification relay",
		Long: `Serve POST /send-notification on RELAY_ADDR. Each request is recorded (RELAY_RECORDER:
sqlite, postgres or supabase), the recipient is looked up (RELAY_DIRECTORY:
fixture, postgres or supabase) and an e-mail is sent through Resend or SMTP.`,
		Args: cobra.NoArgs,
		RunE: runRelay,
	}
}

func runRelay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, "stderr")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	st, err := initialState(cfg)
	if err != nil {
		return err
	}

	relay, cleanup, err := notify.Build(cmd.Context(), cfg, st.Users, logger)
	defer cleanup()
	if err != nil {
		return err
	}

	logger.Info("starting relay", zap.String("addr", cfg.Relay.Addr))
	server := notify.StartServer(cfg.Relay.Addr, relay, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	const shutdownTimeout = 10 * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown HTTP server", zap.Error(err))
		return err
	}
	logger.Info("relay stopped")
	return nil
}
