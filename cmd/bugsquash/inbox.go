package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/h0rv/bugsquash/internal/notify"
)

func newInboxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inbox",
		Short: "List notifications the relay recorded for the current user",
		Long: `Read the relay's local SQLite store (RELAY_DATA_DIR) and print the current
user's notifications, newest first. Use --user to pick another user.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			rec, err := notify.OpenSQLite(cfg.Relay.DataDir)
			if err != nil {
				return err
			}
			defer rec.Close()

			list, err := rec.ListForUser(cmd.Context(), cfg.CurrentUserID)
			if err != nil {
				return err
			}
			return writeInbox(cmd.OutOrStdout(), list, time.Now())
		},
	}
}

func writeInbox(w io.Writer, list []notify.Notification, now time.Time) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No notifications")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, n := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", humanize.RelTime(n.CreatedAt, now, "ago", "from now"), n.Title, n.Content)
	}
	return tw.Flush()
}
