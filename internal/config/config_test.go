package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setDBEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_NAME", "enlaceiba")
}

func TestLoadUsesTokenDefaults(t *testing.T) {
	setDBEnv(t)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")
	t.Setenv("JWT_EXPIRES_IN", "")
	t.Setenv("JWT_REFRESH_EXPIRES_IN", "")

	cfg := Load()

	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, DefaultJWTRefreshSecret, cfg.JWTRefreshSecret)
	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, time.Hour, cfg.ResetTokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "3306", cfg.DBPort)
	assert.False(t, cfg.TrustProxy)
}

func TestLoadParsesDurations(t *testing.T) {
	setDBEnv(t)
	t.Setenv("JWT_EXPIRES_IN", "15m")
	t.Setenv("JWT_REFRESH_EXPIRES_IN", "30d")

	cfg := Load()

	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.RefreshTTL)
}

func TestValidate(t *testing.T) {
	base := Config{
		Env:              "production",
		JWTSecret:        "a-very-long-production-access-secret",
		JWTRefreshSecret: "a-very-long-production-refresh-secret",
		AccessTTL:        time.Hour,
		RefreshTTL:       24 * time.Hour,
		BcryptCost:       10,
	}
	require.NoError(t, base.Validate())

	withDefaults := base
	withDefaults.JWTSecret = DefaultJWTSecret
	assert.Error(t, withDefaults.Validate())

	shared := base
	shared.JWTRefreshSecret = shared.JWTSecret
	assert.Error(t, shared.Validate())

	dev := base
	dev.Env = "development"
	dev.JWTSecret = DefaultJWTSecret
	dev.JWTRefreshSecret = DefaultJWTRefreshSecret
	assert.NoError(t, dev.Validate())

	badCost := base
	badCost.BcryptCost = 2
	assert.Error(t, badCost.Validate())
}

func TestSensitiveRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "100")
	t.Setenv("RATE_LIMIT_SENSITIVE_CAPACITY", "5")

	cfg := LoadRateLimitConfig()
	s := cfg.Sensitive()

	assert.Equal(t, 100, cfg.Capacity)
	assert.Equal(t, 5, s.Capacity)
	assert.Equal(t, "rl:sensitive", s.Prefix)
	assert.Equal(t, "ip_route", s.KeyStrategy)
}
