package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modboard/modboard/internal/auth/providers"
	"github.com/modboard/modboard/internal/config"
	httpapp "github.com/modboard/modboard/internal/http"
	"github.com/modboard/modboard/internal/metrics"
	"github.com/modboard/modboard/internal/sync"
	"github.com/spf13/cobra"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:         "serve",
	Short:       "Run the dashboard HTTP server and the background refresh loop.",
	Args:        cobra.NoArgs,
	Annotations: structuredLog,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	logger, err := commandLogger(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dash, err := newDashboardClient(ctx, cfg, logger)
	if err != nil {
		return err
	}
	provider, err := providers.NewPasswordProvider(cfg.AdminUserID, cfg.AdminPasswordHash)
	if err != nil {
		return err
	}

	scheduler := sync.Scheduler{Runner: dash, Interval: cfg.RefreshInterval, Logger: logger}
	go scheduler.Run(ctx)

	_, metricsErrCh := metrics.StartServer(ctx, cfg.MetricsAddr, logger)

	srv, err := httpapp.NewEchoServer(cfg, dash, provider, logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr, "bot_api", cfg.BotAPIURL, "features", dash.Features().String())
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		return nil
	case err := <-metricsErrCh:
		return err
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
