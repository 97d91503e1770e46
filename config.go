package auth

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-errors"
)

// Config holds the process-wide auth settings. It is loaded once at startup
// and read-only afterwards; nothing in this package mutates it.
type Config struct {
	SigningKey string        `env:"AUTH_SIGNING_KEY"`
	TokenTTL   time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"1h"`
	Issuer     string        `env:"AUTH_ISSUER" envDefault:"webshopd"`
	Audience   []string      `env:"AUTH_AUDIENCE" envSeparator:","`

	GithubClientID     string `env:"AUTH_GITHUB_CLIENT_ID"`
	GithubClientSecret string `env:"AUTH_GITHUB_CLIENT_SECRET"`
	GithubCallbackURL  string `env:"AUTH_GITHUB_CALLBACK_URL"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, errors.CategoryInternal, "failed to parse auth environment")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the settings the engine cannot run without.
func (c Config) Validate() error {
	if c.SigningKey == "" {
		return errors.New("signing key is required", errors.CategoryValidation).
			WithTextCode("MISSING_SIGNING_KEY")
	}
	if c.TokenTTL <= 0 {
		return errors.New("token TTL must be positive", errors.CategoryValidation).
			WithTextCode("INVALID_TOKEN_TTL")
	}
	return nil
}

// GetSigningKey returns the process-wide signing secret.
func (c Config) GetSigningKey() string { return c.SigningKey }

// GetTokenTTL returns the login token lifetime.
func (c Config) GetTokenTTL() time.Duration { return c.TokenTTL }

// GetIssuer returns the token issuer claim.
func (c Config) GetIssuer() string { return c.Issuer }

// GetAudience returns the token audience claim.
func (c Config) GetAudience() []string { return c.Audience }
