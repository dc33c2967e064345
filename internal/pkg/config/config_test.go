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

	assert.Equal(t, "pricing-service", cfg.App.ServiceName)
	assert.Equal(t, StoreSpanner, cfg.App.Store)
	assert.True(t, cfg.App.UsesSpanner())
	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.PubSub.Enabled())
	assert.True(t, cfg.Outbox.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PRICING_STORE", "memory")
	t.Setenv("PRICING_HTTP_PORT", "9999")
	t.Setenv("PRICING_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("PRICING_CACHE_TTL", "30s")
	t.Setenv("PRICING_LOG_WARN_STACK", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.App.UsesSpanner())
	assert.Equal(t, "9999", cfg.App.HTTPPort)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
	assert.True(t, cfg.App.LogWarnStack)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("unknown store", func(t *testing.T) {
		t.Setenv("PRICING_STORE", "postgres")
		_, err := Load()
		assert.ErrorContains(t, err, "unsupported PRICING_STORE")
	})

	t.Run("empty spanner database", func(t *testing.T) {
		t.Setenv("PRICING_SPANNER_DATABASE", " ")
		_, err := Load()
		assert.ErrorContains(t, err, "PRICING_SPANNER_DATABASE")
	})

	t.Run("topic without project", func(t *testing.T) {
		t.Setenv("PRICING_PUBSUB_TOPIC", "pricing-events")
		_, err := Load()
		assert.ErrorContains(t, err, "PRICING_PUBSUB_PROJECT_ID")
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("PRICING_CACHE_TTL", "soon")
		_, err := Load()
		assert.ErrorContains(t, err, "parsing config")
	})
}
