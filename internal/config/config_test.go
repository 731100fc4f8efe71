package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_DSN", "file::memory:")
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5*time.Second, cfg.DBQueryTimeout)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "redis", cfg.SessionStore)
	assert.True(t, cfg.SessionCookieSecure)
	assert.False(t, cfg.GoogleEnabled())
	assert.False(t, cfg.FacebookEnabled())
}

func TestLoadRequiresSecretAndDSN(t *testing.T) {
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("SESSION_SECRET", "x")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_DSN")

	t.Setenv("DATABASE_DSN", "postgres://localhost/app")
	t.Setenv("SESSION_SECRET", "")

	_, err = Load()
	assert.ErrorContains(t, err, "SESSION_SECRET")
}

func TestProvidersEnabledOnlyWhenComplete(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://localhost/app")
	t.Setenv("SESSION_SECRET", "x")
	t.Setenv("GOOGLE_CLIENT_ID", "id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")
	t.Setenv("GOOGLE_REDIRECT_URL", "http://localhost:3000/auth/google/callback")
	t.Setenv("FACEBOOK_CLIENT_ID", "id")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.GoogleEnabled())
	assert.False(t, cfg.FacebookEnabled())
}

func TestValidateRejectsUnknownStore(t *testing.T) {
	cfg := Config{
		DatabaseDSN:   "x",
		SessionSecret: "y",
		SessionTTL:    time.Hour,
		SessionStore:  "memcached",
	}
	assert.ErrorContains(t, cfg.Validate(), "memcached")
}
