package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "nexus_session", cfg.Auth.SessionCookieName)
	assert.Equal(t, 12*time.Hour, cfg.Auth.SessionTTL())
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AUTH_SESSION_TTL_MINUTES", "5")
	t.Setenv("AUTH_SESSION_COOKIE_NAME", "sid")
	t.Setenv("APP_PORT", "9999")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.Auth.SessionTTL())
	assert.Equal(t, "sid", cfg.Auth.SessionCookieName)
	assert.Equal(t, "0.0.0.0:9999", cfg.App.Addr())
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	_, err := Load()
	assert.Error(t, err)
}

func TestSessionTTL_FallbackWhenUnset(t *testing.T) {
	assert.Equal(t, 12*time.Hour, AuthConfig{}.SessionTTL())
	assert.Equal(t, time.Duration(0), AppConfig{}.RequestTimeout())
}
