package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/modboard/modboard/internal/botapi"
	"github.com/modboard/modboard/internal/config"
	"github.com/modboard/modboard/internal/dashboard"
	"github.com/modboard/modboard/internal/logging"
	"github.com/modboard/modboard/internal/secrets"
	"github.com/modboard/modboard/internal/sync"
	"github.com/spf13/cobra"
)

func commandLogger(cmd *cobra.Command) (*slog.Logger, error) {
	return logging.BootstrapFromEnv(logging.BootstrapOptions{
		Command: cmd.CommandPath(),
		Writer:  os.Stderr,
	})
}

func newBotAPIClient(ctx context.Context, cfg config.Config) (*botapi.Client, error) {
	token, err := secrets.Resolve(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return botapi.New(botapi.Config{
		BaseURL:            cfg.BotAPIURL,
		Token:              token,
		Timeout:            cfg.BotAPITimeout,
		MutationsPerMinute: cfg.BotAPIMutationRPM,
	})
}

func newDashboardClient(ctx context.Context, cfg config.Config, logger *slog.Logger) (*dashboard.Client, error) {
	features, err := dashboard.ParseFeatures(cfg.BotAPIFeatures)
	if err != nil {
		return nil, fmt.Errorf("BOT_API_FEATURES: %w", err)
	}
	api, err := newBotAPIClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return dashboard.New(api, dashboard.Options{
		Features: features,
		Reporter: &sync.LogReporter{Logger: logger},
		Logger:   logger,

		RefreshTimeout: cfg.BotAPITimeout,
	})
}
