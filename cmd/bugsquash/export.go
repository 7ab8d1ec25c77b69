package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/h0rv/bugsquash/internal/fixtures"
)

func newExportCmd() *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the seed data as YAML or JSON",
		Long: `Print the starting users, projects and issues. The YAML output can be
edited and passed back with --seed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := initialState(cfg)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			return fixtures.Write(w, st, fixtures.Format(format))
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", string(fixtures.FormatYAML), "Output format: yaml or json")
	cmd.Flags().StringVar(&out, "file", "", "Write to this file instead of stdout")
	return cmd
}
