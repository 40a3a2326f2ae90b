package providers

import (
	"context"

	"github.com/modboard/modboard/internal/auth"
)

type Provider interface {
	Name() string
	Authenticate(ctx context.Context, userID, password string) (auth.Principal, error)
	// Lookup returns the principal for a user id carried in a session, or
	// false when the id no longer names an operator.
	Lookup(ctx context.Context, userID string) (auth.Principal, bool)
}
