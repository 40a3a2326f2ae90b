package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/modboard/modboard/internal/botapi"
	"github.com/modboard/modboard/internal/metrics"
	"github.com/modboard/modboard/internal/sync"
	"golang.org/x/sync/errgroup"
)

// RunOnce issues one GET per enabled resource concurrently and applies the
// results in a single swap once every request has settled. A failed resource
// keeps its previous value and is recorded in Snapshot.LastErrors; the
// returned error joins every per-resource failure.
//
// If ctx is cancelled before the batch settles nothing is applied.
func (c *Client) RunOnce(ctx context.Context) error {
	started := c.now()
	resources := c.features.Resources()
	total := int64(len(resources))

	updates := make([]update, len(resources))
	var settled atomic.Int64
	var g errgroup.Group
	for i, r := range resources {
		stamp := c.store.issue()
		g.Go(func() error {
			apply, err := c.fetch(ctx, r)
			updates[i] = update{resource: r, stamp: stamp, apply: apply, err: err}
			c.reporter.Report(sync.Event{
				Source:  eventSource,
				Stage:   "refresh",
				Current: settled.Add(1),
				Total:   total,
				Message: "fetching bot api resources",
			})
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	res := c.store.commit(updates, true, c.now())
	for _, r := range res.stale {
		metrics.StaleResponsesTotal.WithLabelValues(string(r)).Inc()
	}

	snap := c.store.load()
	for _, r := range res.applied {
		if r != ResourceStats {
			metrics.ResourceItems.WithLabelValues(string(r)).Set(float64(snap.Count(r)))
		}
	}

	var errs []error
	for _, u := range updates {
		if u.err == nil {
			continue
		}
		metrics.ResourceFetchFailuresTotal.WithLabelValues(string(u.resource)).Inc()
		c.reporter.Report(sync.Event{Source: eventSource, Stage: string(u.resource), Err: u.err})
		errs = append(errs, fmt.Errorf("%s: %w", u.resource, u.err))
	}

	metrics.RefreshDuration.Observe(time.Since(started).Seconds())
	switch {
	case len(errs) == 0:
		metrics.RefreshRunsTotal.WithLabelValues("success").Inc()
		metrics.RefreshLastSuccessTimestamp.Set(float64(c.now().Unix()))
		c.reporter.Report(sync.Event{
			Source:  eventSource,
			Stage:   "refresh",
			Current: total,
			Total:   total,
			Message: "refresh complete",
			Done:    true,
		})
	case len(errs) == len(updates):
		metrics.RefreshRunsTotal.WithLabelValues("failure").Inc()
	default:
		metrics.RefreshRunsTotal.WithLabelValues("partial").Inc()
	}
	return errors.Join(errs...)
}

// RefreshNow runs a refresh cycle on behalf of an operator. Concurrent calls
// share one cycle. The cycle keeps running if the caller that started it
// goes away, so the others still get its result.
func (c *Client) RefreshNow(ctx context.Context) error {
	_, err, _ := c.refresh.Do("refresh", func() (any, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.refreshTimeout)
		defer cancel()
		return nil, c.RunOnce(runCtx)
	})
	return err
}

func (c *Client) fetch(ctx context.Context, r Resource) (func(*Snapshot), error) {
	switch r {
	case ResourceStats:
		return fetchInto(ctx, c.api.GetStats, func(s *Snapshot, v botapi.Stats) { s.Stats = v })
	case ResourceTickets:
		return fetchInto(ctx, c.api.ListTickets, func(s *Snapshot, v []botapi.Ticket) { s.Tickets = v })
	case ResourceApplications:
		return fetchInto(ctx, c.api.ListApplications, func(s *Snapshot, v []botapi.Application) { s.Applications = v })
	case ResourceWarnings:
		return fetchInto(ctx, c.api.ListWarnings, func(s *Snapshot, v []botapi.Warning) { s.Warnings = v })
	case ResourceBans:
		return fetchInto(ctx, c.api.ListBans, func(s *Snapshot, v []botapi.Ban) { s.Bans = v })
	case ResourceStaff:
		return fetchInto(ctx, c.api.ListStaff, func(s *Snapshot, v []botapi.StaffMember) { s.Staff = v })
	case ResourceMessageLogs:
		return fetchInto(ctx, c.api.ListMessageLogs, func(s *Snapshot, v []botapi.MessageLog) { s.MessageLogs = v })
	case ResourceSettings:
		return fetchInto(ctx, c.api.GetSettings, func(s *Snapshot, v botapi.Settings) { s.Settings = v })
	case ResourceQuestions:
		return fetchInto(ctx, c.api.GetQuestions, func(s *Snapshot, v botapi.QuestionSet) { s.Questions = v })
	default:
		return nil, fmt.Errorf("unknown resource %q", r)
	}
}

func fetchInto[T any](ctx context.Context, get func(context.Context) (T, error), set func(*Snapshot, T)) (func(*Snapshot), error) {
	v, err := get(ctx)
	if err != nil {
		return nil, err
	}
	return func(s *Snapshot) { set(s, v) }, nil
}
