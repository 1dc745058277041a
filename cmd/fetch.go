package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/JakeFAU/flagfetch/internal/config"
	"github.com/JakeFAU/flagfetch/internal/fetch"
	"github.com/JakeFAU/flagfetch/internal/progress"
	"github.com/JakeFAU/flagfetch/internal/remote"
	"github.com/JakeFAU/flagfetch/internal/store"
)

// newFetchCmd creates and configures the 'fetch' subcommand.
func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch CC [CC...]",
		Short: "Download flag images and metadata for country codes",
		Long: `Downloads the flag image and country metadata for each given country
code, at most --concurrency requests in flight at once, and prints a
per-outcome tally when done. Interrupting the run (Ctrl-C) reports the
partial tally for whatever finished before the interrupt.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runFetchCommand,
	}

	cmd.Flags().IntP("concurrency", "c", fetch.DefaultConcurrency,
		fmt.Sprintf("max concurrent requests (1-%d)", fetch.MaxConcurrency))
	cmd.Flags().BoolP("verbose", "v", false, "log one line per country code instead of a progress counter")
	cmd.Flags().String("base-url", "", "flag CDN base URL")
	cmd.Flags().String("out", "", "directory for downloaded images")

	mustBindFlag("concurrency", cmd, "concurrency")
	mustBindFlag("verbose", cmd, "verbose")
	mustBindFlag("base_url", cmd, "base-url")
	mustBindFlag("output_dir", cmd, "out")

	return cmd
}

func runFetchCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	logger, flush, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer flush()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := remote.New(remote.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.RequestTimeout,
	}, logger)
	flagStore, err := store.New(cfg.OutputDir)
	if err != nil {
		return err
	}

	// Normalize before wiring the progress bar so its denominator matches
	// the de-duplicated run, not the raw argument count.
	keys := normalizeKeys(args)

	var emitter progress.Emitter
	if !cfg.Verbose {
		tracker := progress.NewTracker(uuid.New(),
			progress.NewBarSink(cmd.ErrOrStderr(), len(keys)),
			progress.NewLogSink(logger),
			progress.NewPromSink(),
		)
		defer func() {
			if err := tracker.Close(); err != nil {
				logger.Warn("progress close failed", zap.Error(err))
			}
		}()
		emitter = tracker
	}

	orch := fetch.NewOrchestrator(client, flagStore, emitter, logger)
	counts, err := orch.Run(ctx, keys, fetch.Options{
		Concurrency: cfg.Concurrency,
		Verbose:     cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("run fetch: %w", err)
	}

	for _, outcome := range fetch.Outcomes {
		fmt.Fprintf(cmd.OutOrStdout(), "%3d %s\n", counts[outcome], outcome)
	}
	return nil
}

// normalizeKeys lowercases and de-duplicates the requested country codes.
func normalizeKeys(args []string) []string {
	seen := make(map[string]struct{}, len(args))
	keys := make([]string, 0, len(args))
	for _, arg := range args {
		cc := strings.ToLower(strings.TrimSpace(arg))
		if cc == "" {
			continue
		}
		if _, dup := seen[cc]; dup {
			continue
		}
		seen[cc] = struct{}{}
		keys = append(keys, cc)
	}
	return keys
}

// mustBindFlag wires a cobra flag into the global Viper; binding only fails
// on a missing flag, which is a programming error.
func mustBindFlag(key string, cmd *cobra.Command, flag string) {
	if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic(err)
	}
}
