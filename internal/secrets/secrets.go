// Package secrets resolves the bearer credential used against the bot API.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modboard/modboard/internal/config"
)

// Source yields the bot API bearer credential.
type Source interface {
	BotAPISecret(context.Context) (string, error)
}

// Static is a credential supplied directly through the environment.
type Static string

func (s Static) BotAPISecret(context.Context) (string, error) {
	secret := strings.TrimSpace(string(s))
	if secret == "" {
		return "", errors.New("bot api secret is empty")
	}
	return secret, nil
}

// FromConfig picks the credential source. A static BOT_API_SECRET wins over
// Vault.
func FromConfig(ctx context.Context, cfg config.Config) (Source, error) {
	if cfg.BotAPISecret != "" {
		return Static(cfg.BotAPISecret), nil
	}
	if !cfg.UsesVault() {
		return nil, errors.New("no bot api secret source configured")
	}
	v, err := NewVault(ctx, VaultOptions{
		Address:          cfg.VaultAddr,
		Namespace:        cfg.VaultNamespace,
		AuthType:         cfg.VaultAuthType,
		Token:            cfg.VaultToken,
		AppRoleMountPath: cfg.VaultAppRoleMount,
		AppRoleRoleID:    cfg.VaultAppRoleRoleID,
		AppRoleSecretID:  cfg.VaultAppRoleSecretID,
		Mount:            cfg.VaultKVMount,
		Path:             cfg.BotAPISecretVaultPath,
		Field:            cfg.BotAPISecretVaultField,
	})
	if err != nil {
		return nil, fmt.Errorf("vault secret source: %w", err)
	}
	return v, nil
}

// Resolve reads the credential once.
func Resolve(ctx context.Context, cfg config.Config) (string, error) {
	src, err := FromConfig(ctx, cfg)
	if err != nil {
		return "", err
	}
	return src.BotAPISecret(ctx)
}
