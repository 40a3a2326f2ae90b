package secrets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/modboard/modboard/internal/config"
)

func writeJSON(t *testing.T, w http.ResponseWriter, payload any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func kvResponse(data map[string]any) map[string]any {
	return map[string]any{
		"data": map[string]any{
			"data": data,
			"metadata": map[string]any{
				"created_time":    "2025-01-02T03:04:05.000000000Z",
				"custom_metadata": nil,
				"deletion_time":   "",
				"destroyed":       false,
				"version":         3,
			},
		},
	}
}

func newVaultServer(t *testing.T, data map[string]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Vault-Token") != "vault-token" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if r.URL.Path != "/v1/kv/data/modboard/bot" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(t, w, kvResponse(data))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestStaticSecret(t *testing.T) {
	t.Parallel()

	got, err := Static(" abc ").BotAPISecret(context.Background())
	if err != nil || got != "abc" {
		t.Fatalf("Static = %q, %v", got, err)
	}
	if _, err := Static("  ").BotAPISecret(context.Background()); err == nil {
		t.Fatal("expected error for blank static secret")
	}
}

func TestVaultReadsKVv2Field(t *testing.T) {
	t.Parallel()

	server := newVaultServer(t, map[string]any{"token": "bot-bearer", "other": 1})

	v, err := NewVault(context.Background(), VaultOptions{
		Address: server.URL,
		Token:   "vault-token",
		Mount:   "kv",
		Path:    "/modboard/bot/",
	})
	if err != nil {
		t.Fatalf("NewVault() error = %v", err)
	}
	got, err := v.BotAPISecret(context.Background())
	if err != nil {
		t.Fatalf("BotAPISecret() error = %v", err)
	}
	if got != "bot-bearer" {
		t.Fatalf("secret = %q", got)
	}
}

func TestVaultMissingFieldIsAnError(t *testing.T) {
	t.Parallel()

	server := newVaultServer(t, map[string]any{"password": "nope"})

	v, err := NewVault(context.Background(), VaultOptions{
		Address: server.URL,
		Token:   "vault-token",
		Mount:   "kv",
		Path:    "modboard/bot",
		Field:   "token",
	})
	if err != nil {
		t.Fatalf("NewVault() error = %v", err)
	}
	_, err = v.BotAPISecret(context.Background())
	if err == nil || !strings.Contains(err.Error(), `"token"`) {
		t.Fatalf("expected missing field error, got %v", err)
	}
}

func TestVaultAppRoleLogin(t *testing.T) {
	t.Parallel()

	var loginCalled bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/auth/approle/login":
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("decode login body: %v", err)
			}
			if body["role_id"] != "role-id" || body["secret_id"] != "secret-id" {
				t.Errorf("unexpected login body: %v", body)
			}
			loginCalled = true
			writeJSON(t, w, map[string]any{"auth": map[string]any{"client_token": "vault-token"}})
		case "/v1/secret/data/modboard":
			if r.Header.Get("X-Vault-Token") != "vault-token" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			writeJSON(t, w, kvResponse(map[string]any{"token": "from-approle"}))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	v, err := NewVault(context.Background(), VaultOptions{
		Address:         server.URL,
		AuthType:        "approle",
		AppRoleRoleID:   "role-id",
		AppRoleSecretID: "secret-id",
		Path:            "modboard",
	})
	if err != nil {
		t.Fatalf("NewVault(approle) error = %v", err)
	}
	if !loginCalled {
		t.Fatal("expected approle login endpoint to be called")
	}
	got, err := v.BotAPISecret(context.Background())
	if err != nil || got != "from-approle" {
		t.Fatalf("secret = %q, %v", got, err)
	}
}

func TestNewVaultValidatesOptions(t *testing.T) {
	t.Parallel()

	cases := []VaultOptions{
		{Token: "t", Path: "p"},
		{Address: "http://127.0.0.1:8200", Token: "t"},
		{Address: "http://127.0.0.1:8200", Path: "p", AuthType: "token"},
		{Address: "http://127.0.0.1:8200", Path: "p", AuthType: "approle", AppRoleRoleID: "r"},
		{Address: "http://127.0.0.1:8200", Path: "p", AuthType: "kerberos", Token: "t"},
	}
	for i, opts := range cases {
		if _, err := NewVault(context.Background(), opts); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestFromConfigPrefersStaticSecret(t *testing.T) {
	t.Parallel()

	src, err := FromConfig(context.Background(), config.Config{
		BotAPISecret:          "static",
		BotAPISecretVaultPath: "modboard/bot",
		VaultAddr:             "http://127.0.0.1:8200",
	})
	if err != nil {
		t.Fatalf("FromConfig() error = %v", err)
	}
	if _, ok := src.(Static); !ok {
		t.Fatalf("expected static source, got %T", src)
	}

	if _, err := FromConfig(context.Background(), config.Config{}); err == nil {
		t.Fatal("expected error without a secret source")
	}
}
