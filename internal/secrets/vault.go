package secrets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	vaultapi "github.com/hashicorp/vault/api"
)

const (
	vaultAuthTypeToken   = "token"
	vaultAuthTypeAppRole = "approle"

	defaultKVMount = "secret"
	defaultField   = "token"
	vaultTimeout   = 30 * time.Second
)

type VaultOptions struct {
	Address          string
	Namespace        string
	AuthType         string
	Token            string
	AppRoleMountPath string
	AppRoleRoleID    string
	AppRoleSecretID  string

	// Mount is the KV v2 mount, Path the secret path below it and Field the
	// key inside the secret data holding the credential.
	Mount string
	Path  string
	Field string
}

// Vault reads the credential from a KV v2 secret.
type Vault struct {
	client *vaultapi.Client
	mount  string
	path   string
	field  string
}

func NewVault(ctx context.Context, opts VaultOptions) (*Vault, error) {
	address := strings.TrimSpace(opts.Address)
	if address == "" {
		return nil, errors.New("vault address is required")
	}
	path := strings.Trim(strings.TrimSpace(opts.Path), "/")
	if path == "" {
		return nil, errors.New("vault secret path is required")
	}

	cfg := vaultapi.DefaultConfig()
	cfg.Address = address
	cfg.HttpClient = &http.Client{Timeout: vaultTimeout}

	client, err := vaultapi.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault client setup: %w", err)
	}
	if ns := strings.TrimSpace(opts.Namespace); ns != "" {
		client.SetNamespace(ns)
	}

	authType := strings.ToLower(strings.TrimSpace(opts.AuthType))
	if authType == "" {
		authType = vaultAuthTypeToken
	}
	switch authType {
	case vaultAuthTypeToken:
		token := strings.TrimSpace(opts.Token)
		if token == "" {
			return nil, errors.New("vault token is required")
		}
		client.SetToken(token)
	case vaultAuthTypeAppRole:
		if err := appRoleLogin(ctx, client, opts); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("vault auth type %q is invalid", opts.AuthType)
	}

	mount := strings.Trim(strings.TrimSpace(opts.Mount), "/")
	if mount == "" {
		mount = defaultKVMount
	}
	field := strings.TrimSpace(opts.Field)
	if field == "" {
		field = defaultField
	}
	return &Vault{client: client, mount: mount, path: path, field: field}, nil
}

func appRoleLogin(ctx context.Context, client *vaultapi.Client, opts VaultOptions) error {
	roleID := strings.TrimSpace(opts.AppRoleRoleID)
	secretID := strings.TrimSpace(opts.AppRoleSecretID)
	mountPath := strings.Trim(strings.TrimSpace(opts.AppRoleMountPath), "/")
	if mountPath == "" {
		mountPath = "approle"
	}
	if roleID == "" {
		return errors.New("vault AppRole role ID is required")
	}
	if secretID == "" {
		return errors.New("vault AppRole secret ID is required")
	}

	loginPath := "auth/" + mountPath + "/login"
	secret, err := client.Logical().WriteWithContext(ctx, loginPath, map[string]any{
		"role_id":   roleID,
		"secret_id": secretID,
	})
	if err != nil {
		return fmt.Errorf("vault approle login at %s: %w", loginPath, err)
	}
	if secret == nil || secret.Auth == nil || strings.TrimSpace(secret.Auth.ClientToken) == "" {
		return errors.New("vault approle login succeeded without client token")
	}
	client.SetToken(secret.Auth.ClientToken)
	return nil
}

func (v *Vault) BotAPISecret(ctx context.Context) (string, error) {
	secret, err := v.client.KVv2(v.mount).Get(ctx, v.path)
	if err != nil {
		return "", fmt.Errorf("read %s/%s: %w", v.mount, v.path, err)
	}
	raw, ok := secret.Data[v.field]
	if !ok {
		return "", fmt.Errorf("vault secret %s/%s has no %q field", v.mount, v.path, v.field)
	}
	value, ok := raw.(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("vault secret %s/%s field %q is not a non-empty string", v.mount, v.path, v.field)
	}
	return strings.TrimSpace(value), nil
}
