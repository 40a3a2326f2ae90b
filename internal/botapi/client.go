// Package botapi is a client for the moderation bot's REST API.
package botapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout  = 15 * time.Second
	maxResponseSize = 4 << 20 // 4 MiB
	userAgent       = "modboard"
)

// Config is the injected connection configuration for the bot API.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	// MutationsPerMinute throttles PUT/POST calls. Zero disables throttling.
	MutationsPerMinute int
}

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client

	limiter *rate.Limiter
}

// New validates cfg and returns a client.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	token := strings.TrimSpace(cfg.Token)
	if base == "" {
		return nil, errors.New("bot api base URL is required")
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("bot api base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("bot api base URL must be http or https, got %q", u.Scheme)
	}
	if token == "" {
		return nil, errors.New("bot api token is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		BaseURL: base,
		Token:   token,
		HTTP:    &http.Client{Timeout: timeout},
	}
	if cfg.MutationsPerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.MutationsPerMinute)), cfg.MutationsPerMinute)
	}
	return c, nil
}

func (c *Client) GetStats(ctx context.Context) (Stats, error) {
	return getJSON[Stats](ctx, c, "/stats")
}

func (c *Client) ListTickets(ctx context.Context) ([]Ticket, error) {
	return getJSON[[]Ticket](ctx, c, "/tickets")
}

func (c *Client) ListApplications(ctx context.Context) ([]Application, error) {
	return getJSON[[]Application](ctx, c, "/applications")
}

func (c *Client) ListWarnings(ctx context.Context) ([]Warning, error) {
	return getJSON[[]Warning](ctx, c, "/warnings")
}

func (c *Client) ListBans(ctx context.Context) ([]Ban, error) {
	return getJSON[[]Ban](ctx, c, "/bans")
}

func (c *Client) ListStaff(ctx context.Context) ([]StaffMember, error) {
	return getJSON[[]StaffMember](ctx, c, "/staff")
}

func (c *Client) ListMessageLogs(ctx context.Context) ([]MessageLog, error) {
	return getJSON[[]MessageLog](ctx, c, "/message-logs")
}

func (c *Client) GetSettings(ctx context.Context) (Settings, error) {
	return getJSON[Settings](ctx, c, "/settings")
}

func (c *Client) GetQuestions(ctx context.Context) (QuestionSet, error) {
	return getJSON[QuestionSet](ctx, c, "/application-questions")
}

// UpdateSettings replaces the bot settings and returns the stored copy. The
// bot answers either {"settings": {...}} or the bare settings object.
func (c *Client) UpdateSettings(ctx context.Context, settings Settings) (Settings, error) {
	body, err := c.mutate(ctx, http.MethodPut, "/settings", settings)
	if err != nil {
		return nil, err
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode PUT /settings response: %w", err)
	}
	payload := json.RawMessage(body)
	if inner, ok := envelope["settings"]; ok && len(bytes.TrimSpace(inner)) > 0 && bytes.TrimSpace(inner)[0] == '{' {
		payload = inner
	}

	var out Settings
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("decode PUT /settings response: %w", err)
	}
	return out, nil
}

// UpdateQuestions replaces the questions for one application type and returns
// the stored list.
func (c *Client) UpdateQuestions(ctx context.Context, qtype string, questions []string) ([]string, error) {
	if questions == nil {
		questions = []string{}
	}
	body, err := c.mutate(ctx, http.MethodPut, "/application-questions", questionsUpdate{Type: qtype, Questions: questions})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Questions *[]string `json:"questions"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode PUT /application-questions response: %w", err)
	}
	if payload.Questions == nil {
		return nil, errors.New("decode PUT /application-questions response: missing questions")
	}
	return *payload.Questions, nil
}

// ReviewApplication approves or denies an application. A non-2xx answer is
// returned as *APIError.
func (c *Client) ReviewApplication(ctx context.Context, id string, req ReviewRequest) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("application id is required")
	}
	_, err := c.mutate(ctx, http.MethodPost, "/applications/"+url.PathEscape(id)+"/review", req)
	return err
}

// SendMessage relays a direct message through the bot.
func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest) error {
	body, err := c.mutate(ctx, http.MethodPost, "/send-message", req)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			var result SendMessageResult
			if json.Unmarshal(apiErr.Body, &result) == nil && strings.TrimSpace(result.Error) != "" {
				return &RejectedError{Reason: strings.TrimSpace(result.Error), cause: err}
			}
		}
		return err
	}

	var result SendMessageResult
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("decode POST /send-message response: %w", err)
	}
	if !result.Success {
		return &RejectedError{Reason: strings.TrimSpace(result.Error)}
	}
	return nil
}

func getJSON[T any](ctx context.Context, c *Client, path string) (T, error) {
	var out T
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("decode GET %s response: %w", path, err)
	}
	return out, nil
}

func (c *Client) mutate(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return c.do(ctx, method, path, payload)
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if c.HTTP == nil {
		return nil, errors.New("bot api http client is not configured")
	}

	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}
