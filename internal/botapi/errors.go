package botapi

import (
	"errors"
	"fmt"
	"strings"
)

const maxErrorSnippet = 256

// APIError is a non-2xx answer from the bot API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	snippet := strings.TrimSpace(string(e.Body))
	if len(snippet) > maxErrorSnippet {
		snippet = snippet[:maxErrorSnippet] + "..."
	}
	if snippet == "" {
		return fmt.Sprintf("bot api %s %s failed (%d)", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("bot api %s %s failed (%d): %s", e.Method, e.Path, e.StatusCode, snippet)
}

// RejectedError is returned when the bot accepted a send-message request but
// reported that delivery failed.
type RejectedError struct {
	Reason string
	cause  error
}

func (e *RejectedError) Error() string {
	if e.Reason == "" {
		return "bot rejected the message"
	}
	return "bot rejected the message: " + e.Reason
}

func (e *RejectedError) Unwrap() error {
	return e.cause
}

// IsStatus reports whether err is an *APIError. It is how callers tell an
// answered-but-unsuccessful request apart from a transport failure.
func IsStatus(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
