package providers

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/modboard/modboard/internal/auth"
)

// PasswordProvider authenticates the single configured operator against an
// argon2id hash.
type PasswordProvider struct {
	UserID       string
	PasswordHash string
}

func NewPasswordProvider(userID, passwordHash string) (*PasswordProvider, error) {
	userID = auth.NormalizeUserID(userID)
	passwordHash = strings.TrimSpace(passwordHash)
	if userID == "" {
		return nil, errors.New("operator user id is required")
	}
	if err := auth.ValidateHash(passwordHash); err != nil {
		return nil, err
	}
	return &PasswordProvider{UserID: userID, PasswordHash: passwordHash}, nil
}

func (p *PasswordProvider) Name() string {
	return auth.MethodPassword
}

func (p *PasswordProvider) Authenticate(ctx context.Context, userID, password string) (auth.Principal, error) {
	userID = auth.NormalizeUserID(userID)
	if userID == "" || password == "" {
		return auth.Principal{}, auth.ErrInvalidCredentials
	}

	// The hash is compared even for an unknown user id.
	match, err := auth.ComparePassword(password, p.PasswordHash)
	if err != nil {
		return auth.Principal{}, err
	}
	if !match || !p.sameUser(userID) {
		return auth.Principal{}, auth.ErrInvalidCredentials
	}
	return p.principal(), nil
}

func (p *PasswordProvider) Lookup(_ context.Context, userID string) (auth.Principal, bool) {
	if userID == "" || !p.sameUser(userID) {
		return auth.Principal{}, false
	}
	return p.principal(), true
}

func (p *PasswordProvider) sameUser(userID string) bool {
	return subtle.ConstantTimeCompare([]byte(userID), []byte(p.UserID)) == 1
}

func (p *PasswordProvider) principal() auth.Principal {
	return auth.Principal{
		UserID: p.UserID,
		Role:   auth.RoleAdmin,
		Method: auth.MethodPassword,
	}
}
