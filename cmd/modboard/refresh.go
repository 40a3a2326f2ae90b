package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/modboard/modboard/internal/config"
	"github.com/modboard/modboard/internal/dashboard"
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:         "refresh",
	Short:       "Run one refresh cycle against the bot API and print what was received.",
	Args:        cobra.NoArgs,
	Annotations: structuredLog,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRefresh(cmd)
	},
}

func runRefresh(cmd *cobra.Command) error {
	logger, err := commandLogger(cmd)
	if err != nil {
		return err
	}
	cfg, err := config.LoadWithOptions(config.LoadOptions{RequireBotAPI: true})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dash, err := newDashboardClient(ctx, cfg, logger)
	if err != nil {
		return err
	}

	runErr := dash.RunOnce(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	snap := dash.Snapshot()
	printRefreshSummary(cmd.OutOrStdout(), snap)

	if runErr != nil {
		return &exitError{code: exitCodePartial, err: runErr}
	}
	return nil
}

func printRefreshSummary(w io.Writer, snap *dashboard.Snapshot) {
	for _, r := range snap.Features.Resources() {
		status := "ok"
		if msg, failed := snap.LastErrors[r]; failed {
			status = "failed: " + msg
		}
		if r == dashboard.ResourceStats {
			fmt.Fprintf(w, "%-22s members=%d open_tickets=%d pending_applications=%d  %s\n",
				r, snap.Stats.Members, snap.Stats.Tickets.Open, snap.Stats.Applications.Pending, status)
			continue
		}
		fmt.Fprintf(w, "%-22s %5d  %s\n", r, snap.Count(r), status)
	}
}
