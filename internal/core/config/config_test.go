package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BANNER_API_URL", "https://api.shop.test")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 10*time.Second, cfg.BannerAPI.Timeout())
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL())
	assert.Equal(t, 6*time.Second, cfg.Carousel.Interval())
	assert.False(t, cfg.Admin.MainBannersEnabled)
	assert.False(t, cfg.Proxy.Enabled)
	assert.Empty(t, cfg.Cache.RedisURL)
}

// TestLoad_EnvVars verifies that environment variables override defaults.
func TestLoad_EnvVars(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BANNER_API_URL", "https://example.com/api")
	t.Setenv("BANNER_API_TOKEN", "secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CAROUSEL_INTERVAL_SECONDS", "3")
	t.Setenv("ADMIN_MAIN_BANNERS_ENABLED", "true")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "https://example.com/api", cfg.BannerAPI.URL)
	assert.Equal(t, "secret", cfg.BannerAPI.Token)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Cache.RedisURL)
	assert.Equal(t, 3*time.Second, cfg.Carousel.Interval())
	assert.True(t, cfg.Admin.MainBannersEnabled)
}

// TestLoad_File verifies that values are loaded from a .env file.
func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
APP_ENV=staging
LOG_LEVEL=warn
SERVER_PORT=7070
BANNER_API_URL=https://staging.example.com/api
CACHE_TTL_SECONDS=30
`)
	require.NoError(t, os.WriteFile(dir+"/.env", content, 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 7070, cfg.ServerPort)
	assert.Equal(t, "https://staging.example.com/api", cfg.BannerAPI.URL)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL())
}

// TestLoad_ValidationFailure verifies that missing required fields return an error.
func TestLoad_ValidationFailure(t *testing.T) {
	t.Setenv("BANNER_API_URL", "")

	cfg, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "missing required configuration: BANNER_API_URL")
}

// TestLoad_InvalidInterval verifies that a non-positive carousel period is rejected.
func TestLoad_InvalidInterval(t *testing.T) {
	t.Setenv("BANNER_API_URL", "https://api.shop.test")
	t.Setenv("CAROUSEL_INTERVAL_SECONDS", "0")

	cfg, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "CAROUSEL_INTERVAL_SECONDS")
}
