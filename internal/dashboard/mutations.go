package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modboard/modboard/internal/botapi"
	"github.com/modboard/modboard/internal/metrics"
)

// SaveSettings sends the full draft and, on success, replaces the local
// settings with the copy the bot returns. On failure the snapshot is left
// untouched.
func (c *Client) SaveSettings(ctx context.Context, draft botapi.Settings) (botapi.Settings, error) {
	stamp := c.store.issue()
	saved, err := c.api.UpdateSettings(ctx, draft)
	c.observeMutation("save_settings", err)
	if err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}

	c.applyMutation(update{
		resource: ResourceSettings,
		stamp:    stamp,
		apply:    func(s *Snapshot) { s.Settings = saved },
	})
	return saved.Clone(), nil
}

// SaveQuestions replaces the questions for one application type. Only that
// type's list changes locally.
func (c *Client) SaveQuestions(ctx context.Context, qtype string, questions []string) ([]string, error) {
	if !botapi.IsQuestionType(qtype) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuestionType, qtype)
	}

	stamp := c.store.issue()
	saved, err := c.api.UpdateQuestions(ctx, qtype, questions)
	c.observeMutation("save_questions", err)
	if err != nil {
		return nil, fmt.Errorf("save %s questions: %w", qtype, err)
	}

	c.applyMutation(update{
		resource: ResourceQuestions,
		stamp:    stamp,
		apply:    func(s *Snapshot) { s.Questions = s.Questions.With(qtype, saved) },
	})
	return append([]string(nil), saved...), nil
}

// ReviewApplication approves or denies an application. When the bot answers
// with a success status exactly one refresh cycle runs so the snapshot picks
// up the authoritative status, and reviewed is true. An unsuccessful status
// is not an error: reviewed is false and nothing else happens. Transport
// failures are returned.
func (c *Client) ReviewApplication(ctx context.Context, id string, action botapi.ReviewAction, reviewerID string) (reviewed bool, err error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, ErrMissingApplication
	}
	if !action.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidReviewAction, action)
	}

	err = c.api.ReviewApplication(ctx, id, botapi.ReviewRequest{Action: action, ReviewerID: reviewerID})
	if err != nil {
		if botapi.IsStatus(err) {
			metrics.MutationsTotal.WithLabelValues("review_application", "rejected").Inc()
			c.logger.DebugContext(ctx, "application review not accepted", "application_id", id, "action", action, "err", err)
			return false, nil
		}
		metrics.MutationsTotal.WithLabelValues("review_application", "failure").Inc()
		return false, fmt.Errorf("review application %s: %w", id, err)
	}
	metrics.MutationsTotal.WithLabelValues("review_application", "success").Inc()

	if err := c.RunOnce(ctx); err != nil {
		c.logger.WarnContext(ctx, "refresh after review incomplete", "application_id", id, "err", err)
	}
	return true, nil
}

// SendMessage relays a direct message through the bot. A blank recipient or
// message returns ErrEmptyMessage without any request. The snapshot is not
// changed; the message log picks the message up on a later refresh.
func (c *Client) SendMessage(ctx context.Context, fromStaff, toUser, message string) error {
	toUser = strings.TrimSpace(toUser)
	message = strings.TrimSpace(message)
	if toUser == "" || message == "" {
		return ErrEmptyMessage
	}

	err := c.api.SendMessage(ctx, botapi.SendMessageRequest{
		FromStaff: strings.TrimSpace(fromStaff),
		ToUser:    toUser,
		Message:   message,
	})
	c.observeMutation("send_message", err)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func (c *Client) applyMutation(u update) {
	res := c.store.commit([]update{u}, false, time.Time{})
	for _, r := range res.stale {
		metrics.StaleResponsesTotal.WithLabelValues(string(r)).Inc()
		c.logger.Debug("discarded stale save response", "resource", r)
	}
}

func (c *Client) observeMutation(op string, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.MutationsTotal.WithLabelValues(op, status).Inc()
}
