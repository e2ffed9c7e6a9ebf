package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("POSTDESK_API_BASE_URL overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		cfg := DefaultConfig()
		cfg.API.BaseURL = "http://from-file:1"
		require.NoError(t, cfg.Save(path))

		t.Setenv("POSTDESK_API_BASE_URL", "http://from-env:2")

		loaded, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "http://from-env:2", loaded.API.BaseURL)
	})

	t.Run("POSTDESK_UI_SUCCESS_DISPLAY", func(t *testing.T) {
		t.Setenv("POSTDESK_UI_SUCCESS_DISPLAY", "250ms")

		loaded, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 250*time.Millisecond, loaded.GetSuccessDisplay())
	})

	t.Run("POSTDESK_LOGGING_DEBUG_MODE", func(t *testing.T) {
		t.Setenv("POSTDESK_LOGGING_DEBUG_MODE", "true")

		loaded, err := Load("")
		require.NoError(t, err)
		assert.True(t, loaded.Logging.DebugMode)
	})
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("POSTDESK_API_BASE_URL", "http://from-env:2")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("api-url", "", "")
	require.NoError(t, flags.Parse([]string{"--api-url", "http://from-flag:3"}))

	v := viper.New()
	require.NoError(t, v.BindPFlag("api.base_url", flags.Lookup("api-url")))

	loaded, err := LoadWith(v, "")
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag:3", loaded.API.BaseURL)
}

func TestUnsetFlagDoesNotOverride(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("api-url", "", "")
	require.NoError(t, flags.Parse(nil))

	v := viper.New()
	require.NoError(t, v.BindPFlag("api.base_url", flags.Lookup("api-url")))

	loaded, err := LoadWith(v, "")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", loaded.API.BaseURL)
}
