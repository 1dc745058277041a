// Package cmd defines and implements the CLI commands for the flagfetch
// executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/flagfetch/internal/config"
	"github.com/JakeFAU/flagfetch/internal/logging"
	"github.com/JakeFAU/flagfetch/internal/metrics"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flagfetch",
		Short: "A concurrency-capped downloader for country flag images.",
		Long: `flagfetch downloads flag images and country metadata for a list of
country codes, capping how many requests are in flight at once so the
upstream CDN is never overwhelmed. Partial failures are classified and
tallied per outcome instead of aborting the run.

It also ships a small search service over Unicode character names; see
the serve command.`,
		SilenceUsage: true,
	}

	cobra.OnInitialize(func() {
		config.Init(cfgFile)
		metrics.Init()
	})

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.flagfetch/config.yaml)")

	cmd.AddCommand(newFetchCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "flagfetch: %v\n", err)
		os.Exit(1)
	}
}

// buildLogger constructs a command-scoped logger from the loaded config.
// The caller owns the returned flush function.
func buildLogger(cfg config.Config) (*zap.Logger, func(), error) {
	logger, err := logging.New(cfg.Development)
	if err != nil {
		return nil, nil, fmt.Errorf("logger init failed: %w", err)
	}
	return logger, func() { _ = logger.Sync() }, nil
}
