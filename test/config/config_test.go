package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyper-a11/cyber-gst-info/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.NotEmpty(t, cfg.UpstreamURL)
	assert.Equal(t, "", cfg.RedisURL)
	assert.Equal(t, 60, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, "@ZEXX_CYBER", cfg.BrandSource)
	assert.Equal(t, "@CYBER×CHAT", cfg.BrandPoweredBy)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("UPSTREAM_URL", "https://example.com/gst")
	t.Setenv("UPSTREAM_TIMEOUT", "5s")
	t.Setenv("RATE_LIMIT", "5")
	t.Setenv("API_KEYS", "KEY1=2030-01-01")
	t.Setenv("BRAND_SOURCE", "@custom")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.ServerPort)
	assert.Equal(t, "https://example.com/gst", cfg.UpstreamURL)
	assert.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 5, cfg.RateLimit)
	assert.Equal(t, "KEY1=2030-01-01", cfg.APIKeysInline)
	assert.Equal(t, "@custom", cfg.BrandSource)
}

func TestLoad_TimeoutAsSeconds(t *testing.T) {
	t.Setenv("UPSTREAM_TIMEOUT", "7")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, cfg.UpstreamTimeout)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT", "not-a-number")
	t.Setenv("UPSTREAM_TIMEOUT", "soon")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.RateLimit)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
}
