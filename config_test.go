package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/webshopd/go-auth"
)

func TestLoadConfig(t *testing.T) {
	t.Run("reads settings from the environment", func(t *testing.T) {
		t.Setenv("AUTH_SIGNING_KEY", "env-signing-key")
		t.Setenv("AUTH_TOKEN_TTL", "30m")
		t.Setenv("AUTH_ISSUER", "example-issuer")
		t.Setenv("AUTH_AUDIENCE", "api,web")

		cfg, err := auth.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "env-signing-key", cfg.GetSigningKey())
		assert.Equal(t, 30*time.Minute, cfg.GetTokenTTL())
		assert.Equal(t, "example-issuer", cfg.GetIssuer())
		assert.Equal(t, []string{"api", "web"}, cfg.GetAudience())
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("AUTH_SIGNING_KEY", "env-signing-key")
		t.Setenv("AUTH_TOKEN_TTL", "")
		t.Setenv("AUTH_ISSUER", "")

		cfg, err := auth.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, time.Hour, cfg.GetTokenTTL())
		assert.Equal(t, "webshopd", cfg.GetIssuer())
	})

	t.Run("missing signing key fails", func(t *testing.T) {
		t.Setenv("AUTH_SIGNING_KEY", "")

		_, err := auth.LoadConfig()
		assert.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	base := auth.Config{SigningKey: "key", TokenTTL: time.Hour}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base.Validate())
	})

	t.Run("signing key required", func(t *testing.T) {
		cfg := base
		cfg.SigningKey = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("ttl must be positive", func(t *testing.T) {
		cfg := base
		cfg.TokenTTL = 0
		assert.Error(t, cfg.Validate())

		cfg.TokenTTL = -time.Minute
		assert.Error(t, cfg.Validate())
	})
}
