// Package cli implements the clubledger command line: serve, seed and report.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/clubledger/internal/config"
	"github.com/mmynk/clubledger/internal/storage/sqlite"
	"github.com/mmynk/clubledger/pkg/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	DBPath     string
	LogLevel   string

	// Config is loaded before any subcommand runs.
	Config config.Config
	Logger *slog.Logger
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "clubledger",
		Short: "Payment reconciliation for sports organizations",
		Long: `clubledger tracks what athletes confirmed and what staff recorded as paid
for events and championships, and reports totals and discrepancies.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return err
			}
			if opts.DBPath != "" {
				cfg.DBPath = opts.DBPath
			}
			if opts.LogLevel != "" {
				cfg.LogLevel = opts.LogLevel
			}
			opts.Config = cfg
			opts.Logger = logging.New(cmd.ErrOrStderr(), cfg.Level())
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "SQLite database path (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "debug, info, warn or error")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))

	return cmd
}

func openStore(opts *RootOptions) (*sqlite.SQLiteStore, error) {
	store, err := sqlite.New(opts.Config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", opts.Config.DBPath, err)
	}
	return store, nil
}
