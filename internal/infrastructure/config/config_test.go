package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir in Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 0, cfg.Fetch.RetryCount)
	assert.Equal(t, int64(10*1024*1024), cfg.Fetch.MaxSizeBytes)
	assert.Equal(t, "horizontal", cfg.Layout.Preset)
	assert.Equal(t, int64(178956970), cfg.Compose.MaxPixels)
	assert.Equal(t, "clothing-combiner", cfg.App.Name)
	assert.Equal(t, time.Duration(0), cfg.DedupWindow)
}

func TestLoadConfigEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "8088")
	t.Setenv("LAYOUT_PRESET", "labeled")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("DEDUP_WINDOW", "2s")
	t.Setenv("COMPOSE_MAX_PIXELS", "4000000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, "labeled", cfg.Layout.Preset)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 2*time.Second, cfg.DedupWindow)
	assert.Equal(t, int64(4000000), cfg.Compose.MaxPixels)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: 5000, RequestTimeout: time.Minute},
			Fetch:     FetchConfig{Timeout: time.Second, MaxSizeBytes: 1024},
			Layout:    LayoutConfig{Preset: "horizontal"},
			Compose:   ComposeConfig{MaxPixels: 1000},
			RateLimit: RateLimitConfig{Enabled: true, Requests: 1, Window: time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "zero port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "port out of range", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "zero fetch timeout", mutate: func(c *Config) { c.Fetch.Timeout = 0 }, wantErr: true},
		{name: "negative retries", mutate: func(c *Config) { c.Fetch.RetryCount = -1 }, wantErr: true},
		{name: "empty preset", mutate: func(c *Config) { c.Layout.Preset = "" }, wantErr: true},
		{name: "zero max pixels", mutate: func(c *Config) { c.Compose.MaxPixels = 0 }, wantErr: true},
		{name: "rate limit without requests", mutate: func(c *Config) { c.RateLimit.Requests = 0 }, wantErr: true},
		{name: "rate limit disabled ignores requests", mutate: func(c *Config) {
			c.RateLimit.Enabled = false
			c.RateLimit.Requests = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
