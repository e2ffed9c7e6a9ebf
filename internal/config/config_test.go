package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:3000", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.GetSuccessDisplay())
	assert.Equal(t, 10*time.Second, cfg.GetRequestTimeout())
	assert.False(t, cfg.Logging.DebugMode)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().API, cfg.API)
	assert.Equal(t, DefaultConfig().UI, cfg.UI)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.API.BaseURL = "https://posts.example.com"
	cfg.UI.SuccessDisplay = "2s"
	cfg.Logging.DebugMode = true
	cfg.Logging.Categories = map[string]bool{"api": true, "form": false}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://posts.example.com", loaded.API.BaseURL)
	assert.Equal(t, 2*time.Second, loaded.GetSuccessDisplay())
	assert.True(t, loaded.Logging.DebugMode)
	assert.False(t, loaded.Logging.IsCategoryEnabled("form"))
	assert.True(t, loaded.Logging.IsCategoryEnabled("api"))
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  timeout: 3s\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.GetRequestTimeout())
	assert.Equal(t, "http://localhost:3000", cfg.API.BaseURL)
	assert.Equal(t, ":3000", cfg.MockAPI.Addr)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDurationFallbacks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.Timeout = "soon"
	cfg.UI.SuccessDisplay = "-1s"

	assert.Equal(t, 10*time.Second, cfg.GetRequestTimeout())
	assert.Equal(t, 5*time.Second, cfg.GetSuccessDisplay())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"https", func(c *Config) { c.API.BaseURL = "https://example.com/base" }, false},
		{"no scheme", func(c *Config) { c.API.BaseURL = "localhost:3000" }, true},
		{"ftp", func(c *Config) { c.API.BaseURL = "ftp://example.com" }, true},
		{"bad timeout", func(c *Config) { c.API.Timeout = "ten" }, true},
		{"bad display", func(c *Config) { c.UI.SuccessDisplay = "x" }, true},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsCategoryEnabled(t *testing.T) {
	c := LoggingConfig{}
	assert.False(t, c.IsCategoryEnabled("api"))

	c.DebugMode = true
	assert.True(t, c.IsCategoryEnabled("api"))

	c.Categories = map[string]bool{"api": false}
	assert.False(t, c.IsCategoryEnabled("api"))
	assert.True(t, c.IsCategoryEnabled("list"))
}
