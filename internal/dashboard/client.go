// Package dashboard holds the dashboard state: the mirrored snapshot of the
// bot API, the refresh cycle that keeps it current, and the mutations that
// relay operator edits back to the bot.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/modboard/modboard/internal/botapi"
	"github.com/modboard/modboard/internal/sync"
	"golang.org/x/sync/singleflight"
)

const (
	eventSource = "bot-api"

	defaultRefreshTimeout = 30 * time.Second
)

// API is the subset of the bot API the dashboard depends on. *botapi.Client
// implements it.
type API interface {
	GetStats(context.Context) (botapi.Stats, error)
	ListTickets(context.Context) ([]botapi.Ticket, error)
	ListApplications(context.Context) ([]botapi.Application, error)
	ListWarnings(context.Context) ([]botapi.Warning, error)
	ListBans(context.Context) ([]botapi.Ban, error)
	ListStaff(context.Context) ([]botapi.StaffMember, error)
	ListMessageLogs(context.Context) ([]botapi.MessageLog, error)
	GetSettings(context.Context) (botapi.Settings, error)
	GetQuestions(context.Context) (botapi.QuestionSet, error)

	UpdateSettings(context.Context, botapi.Settings) (botapi.Settings, error)
	UpdateQuestions(ctx context.Context, qtype string, questions []string) ([]string, error)
	ReviewApplication(ctx context.Context, id string, req botapi.ReviewRequest) error
	SendMessage(context.Context, botapi.SendMessageRequest) error
}

type Options struct {
	// Features selects the optional resources to mirror.
	Features Features
	Reporter sync.Reporter
	Logger   *slog.Logger
	Now      func() time.Time

	// RefreshTimeout bounds an operator-triggered refresh cycle, which runs
	// detached from the requests waiting on it.
	RefreshTimeout time.Duration
}

// Client owns the snapshot. It is safe for concurrent use.
type Client struct {
	api      API
	features Features
	reporter sync.Reporter
	logger   *slog.Logger
	now      func() time.Time

	refreshTimeout time.Duration

	store   *store
	refresh singleflight.Group
}

func New(api API, opts Options) (*Client, error) {
	if api == nil {
		return nil, errors.New("dashboard: bot api client is required")
	}
	c := &Client{
		api:      api,
		features: opts.Features,
		reporter: opts.Reporter,
		logger:   opts.Logger,
		now:      opts.Now,
		store:    newStore(opts.Features),

		refreshTimeout: opts.RefreshTimeout,
	}
	if c.reporter == nil {
		c.reporter = sync.NopReporter{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.refreshTimeout <= 0 {
		c.refreshTimeout = defaultRefreshTimeout
	}
	return c, nil
}

func (c *Client) Features() Features {
	return c.features
}

// Snapshot returns the current snapshot. It never touches the network.
func (c *Client) Snapshot() *Snapshot {
	return c.store.load()
}
