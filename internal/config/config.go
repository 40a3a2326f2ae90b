package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultBotAPIURL       = "http://localhost:3001/api"
	defaultRefreshInterval = 10 * time.Second
)

type Config struct {
	BotAPIURL              string        `env:"BOT_API_URL" envDefault:"http://localhost:3001/api"`
	BotAPISecret           string        `env:"BOT_API_SECRET"`
	BotAPISecretVaultPath  string        `env:"BOT_API_SECRET_VAULT_PATH"`
	BotAPISecretVaultField string        `env:"BOT_API_SECRET_VAULT_FIELD" envDefault:"token"`
	BotAPIFeatures         string        `env:"BOT_API_FEATURES" envDefault:"bans,staff,messages"`
	BotAPITimeout          time.Duration `env:"BOT_API_TIMEOUT" envDefault:"15s"`
	BotAPIMutationRPM      int           `env:"BOT_API_MUTATION_RPM" envDefault:"60"`

	VaultAddr            string `env:"VAULT_ADDR"`
	VaultNamespace       string `env:"VAULT_NAMESPACE"`
	VaultAuthType        string `env:"VAULT_AUTH_TYPE" envDefault:"token"`
	VaultToken           string `env:"VAULT_TOKEN"`
	VaultAppRoleMount    string `env:"VAULT_APPROLE_MOUNT" envDefault:"approle"`
	VaultAppRoleRoleID   string `env:"VAULT_ROLE_ID"`
	VaultAppRoleSecretID string `env:"VAULT_SECRET_ID"`
	VaultKVMount         string `env:"VAULT_KV_MOUNT" envDefault:"secret"`

	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"10s"`

	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9090"`

	AdminUserID       string `env:"ADMIN_USER_ID"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	AuthCookieSecure  bool   `env:"AUTH_COOKIE_SECURE"`
}

type LoadOptions struct {
	// RequireBotAPI makes Load fail when no bot API credential source is
	// configured.
	RequireBotAPI bool
	// RequireOperator makes Load fail without operator login settings.
	RequireOperator bool
}

// Load reads .env (if present) and the environment for the serve command.
func Load() (Config, error) {
	return LoadWithOptions(LoadOptions{RequireBotAPI: true, RequireOperator: true})
}

func LoadWithOptions(opts LoadOptions) (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(opts); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.BotAPIURL = strings.TrimSpace(c.BotAPIURL)
	if c.BotAPIURL == "" {
		c.BotAPIURL = defaultBotAPIURL
	}
	c.BotAPISecret = strings.TrimSpace(c.BotAPISecret)
	c.BotAPISecretVaultPath = strings.Trim(strings.TrimSpace(c.BotAPISecretVaultPath), "/")
	c.VaultAddr = strings.TrimSpace(c.VaultAddr)
	c.VaultKVMount = strings.Trim(strings.TrimSpace(c.VaultKVMount), "/")
	c.AdminUserID = strings.TrimSpace(c.AdminUserID)
	c.AdminPasswordHash = strings.TrimSpace(c.AdminPasswordHash)
	if c.RefreshInterval == 0 {
		c.RefreshInterval = defaultRefreshInterval
	}
}

// UsesVault reports whether the bot API secret is read from Vault.
func (c Config) UsesVault() bool {
	return c.BotAPISecret == "" && c.BotAPISecretVaultPath != ""
}

func (c Config) Validate(opts LoadOptions) error {
	var errs []error

	u, err := url.Parse(c.BotAPIURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("BOT_API_URL: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, errors.New("BOT_API_URL must be an http or https URL"))
	case u.Host == "":
		errs = append(errs, errors.New("BOT_API_URL must include a host"))
	}
	if c.RefreshInterval < 0 {
		errs = append(errs, errors.New("REFRESH_INTERVAL must be positive"))
	}
	if c.BotAPITimeout < 0 {
		errs = append(errs, errors.New("BOT_API_TIMEOUT must be positive"))
	}
	if c.BotAPIMutationRPM < 0 {
		errs = append(errs, errors.New("BOT_API_MUTATION_RPM must not be negative"))
	}

	if opts.RequireBotAPI && c.BotAPISecret == "" {
		switch {
		case c.BotAPISecretVaultPath == "":
			errs = append(errs, errors.New("BOT_API_SECRET or BOT_API_SECRET_VAULT_PATH is required"))
		case c.VaultAddr == "":
			errs = append(errs, errors.New("VAULT_ADDR is required when BOT_API_SECRET_VAULT_PATH is set"))
		}
	}
	if opts.RequireOperator {
		if c.AdminUserID == "" {
			errs = append(errs, errors.New("ADMIN_USER_ID is required"))
		}
		if c.AdminPasswordHash == "" {
			errs = append(errs, errors.New("ADMIN_PASSWORD_HASH is required"))
		}
	}
	return errors.Join(errs...)
}
