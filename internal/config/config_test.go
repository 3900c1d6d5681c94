package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Parse()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestParseDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", " SQLite ")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, 15, cfg.JWT.AccessTTLMin)
	assert.Equal(t, 7, cfg.JWT.RefreshTTLDays)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.False(t, cfg.Queue.Enabled)
	assert.True(t, cfg.Cache.Methods["GET"])
}

func TestSeedHasNoDefaultAdminPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SEED_ADMIN_PASSWORD", "")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.True(t, cfg.Seed.Enabled)
	assert.Empty(t, cfg.Seed.AdminPassword)

	t.Setenv("SEED_ADMIN_PASSWORD", "chosen-by-operator")
	cfg, err = Parse()
	require.NoError(t, err)
	assert.Equal(t, "chosen-by-operator", cfg.Seed.AdminPassword)
}

func TestParseNormalisesLimiterAndCache(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	t.Setenv("CACHE_METHODS", "get, head")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.RateLimit.Capacity)
	assert.Equal(t, 1, cfg.RateLimit.RefillTokens)
	assert.Equal(t, 2*time.Second, cfg.RateLimit.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.RateLimit.TTL)
	assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, cfg.Cache.Methods)
}

func TestParseRejectsMalformedValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	_, err := Parse()
	assert.Error(t, err)
}

func TestRedisAddress(t *testing.T) {
	assert.Equal(t, "cache:6380", Redis{Host: "cache", Port: "6380", Addr: "x:1"}.Address())
	assert.Equal(t, "x:1", Redis{Addr: "x:1"}.Address())
	assert.Equal(t, "localhost:6379", Redis{}.Address())
}
