package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/JakeFAU/flagfetch/internal/config"
	"github.com/JakeFAU/flagfetch/internal/index"
	"github.com/JakeFAU/flagfetch/internal/server"
)

const shutdownGrace = 5 * time.Second

// newServeCmd creates and configures the 'serve' subcommand.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the Unicode character-name search index",
		Long: `Builds the in-memory inverted index over Unicode character names and
serves it until signalled, over an HTTP JSON API and a line-oriented
TCP protocol.`,
		RunE: runServeCommand,
	}

	cmd.Flags().String("http-addr", "", "HTTP listen address")
	cmd.Flags().String("tcp-addr", "", "TCP listen address")

	mustBindFlag("http_addr", cmd, "http-addr")
	mustBindFlag("tcp_addr", cmd, "tcp-addr")

	return cmd
}

func runServeCommand(cmd *cobra.Command, _ []string) error {
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

	start := time.Now()
	logger.Info("building index")
	ix := index.NewDefault()
	logger.Info("index ready", zap.Duration("took", time.Since(start)))

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.NewHTTPServer(ix, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	tcpLn, err := net.Listen("tcp", cfg.TCPAddr)
	if err != nil {
		return fmt.Errorf("listen tcp %s: %w", cfg.TCPAddr, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return server.NewTCPServer(ix, logger).Serve(ctx, tcpLn)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server shut down")
	return nil
}
