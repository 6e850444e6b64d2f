package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 168, cfg.Auth.SessionTTLHours)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.False(t, cfg.Auth.RequireEmailVerification)
	assert.NotEmpty(t, cfg.Auth.TrustedOrigins)
	assert.Equal(t, "8080", cfg.App.Port)
}

func TestSessionTTL(t *testing.T) {
	assert.Equal(t, 168*time.Hour, AuthConfig{SessionTTLHours: 168}.SessionTTL())
	assert.Equal(t, 24*time.Hour, AuthConfig{SessionTTLHours: 24}.SessionTTL())
	assert.Equal(t, 168*time.Hour, AuthConfig{}.SessionTTL(), "zero falls back to seven days")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AUTH_SESSION_TTL_HOURS", "24")
	t.Setenv("AUTH_BCRYPT_COST", "12")
	t.Setenv("AUTH_TRUSTED_ORIGINS", "https://app.example.com, https://mobile.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.Auth.SessionTTLHours)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, []string{"https://app.example.com", "https://mobile.example.com"}, cfg.Auth.TrustedOrigins)
}

func TestRequestTimeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, AppConfig{RequestTimeoutSeconds: 30}.RequestTimeout())
	assert.Equal(t, time.Duration(0), AppConfig{}.RequestTimeout())
}
