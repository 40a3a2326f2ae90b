package sync

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler runs Runner once at startup and then every Interval until ctx is
// cancelled. Ticks that fire while a pass is still running are dropped by the
// ticker, so passes never overlap.
type Scheduler struct {
	Runner   Runner
	Interval time.Duration
	Logger   *slog.Logger
}

func (s *Scheduler) Run(ctx context.Context) {
	if s.Runner == nil || s.Interval <= 0 {
		return
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Run immediately at startup.
	if err := s.Runner.RunOnce(ctx); err != nil && ctx.Err() == nil {
		logger.Error("initial refresh failed", "err", err)
	}

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			if err := s.Runner.RunOnce(ctx); err != nil && ctx.Err() == nil {
				logger.Warn("scheduled refresh failed", "err", err)
			}
		}
	}
}
