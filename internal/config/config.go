// Package config loads postdesk configuration. Values are layered in this
// order: built-in defaults, the YAML config file, POSTDESK_* environment
// variables, then any command-line flags bound by the caller.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. POSTDESK_API_BASE_URL.
const EnvPrefix = "POSTDESK"

// Config holds all postdesk configuration.
type Config struct {
	// Remote posts API
	API APIConfig `yaml:"api" mapstructure:"api"`

	// Terminal UI behavior
	UI UIConfig `yaml:"ui" mapstructure:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`

	// Local stand-in for the remote API
	MockAPI MockAPIConfig `yaml:"mockapi" mapstructure:"mockapi"`
}

// APIConfig configures the posts API client.
type APIConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Timeout string `yaml:"timeout" mapstructure:"timeout"`
}

// UIConfig configures the interactive client.
type UIConfig struct {
	Theme          string `yaml:"theme" mapstructure:"theme"`                     // light, dark, auto
	SuccessDisplay string `yaml:"success_display" mapstructure:"success_display"` // how long the submit confirmation stays visible
}

// MockAPIConfig configures `postdesk mockapi`.
type MockAPIConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
	Seed bool   `yaml:"seed" mapstructure:"seed"` // start with a few example posts
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:3000",
			Timeout: "10s",
		},
		UI: UIConfig{
			Theme:          "auto",
			SuccessDisplay: "5s",
		},
		Logging: LoggingConfig{
			Level:     "info",
			DebugMode: false,
			Dir:       ".postdesk",
		},
		MockAPI: MockAPIConfig{
			Addr: ":3000",
			Seed: true,
		},
	}
}

// DefaultPath returns the config file location: ./.postdesk/config.yaml when
// that directory exists, otherwise ~/.postdesk/config.yaml.
func DefaultPath() string {
	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, ".postdesk")
		if stat, err := os.Stat(local); err == nil && stat.IsDir() {
			return filepath.Join(local, "config.yaml")
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".postdesk", "config.yaml")
	}
	return filepath.Join(home, ".postdesk", "config.yaml")
}

// Load reads configuration from path using a fresh viper instance.
func Load(path string) (*Config, error) {
	return LoadWith(viper.New(), path)
}

// LoadWith reads configuration into v. Callers bind flags on v before
// calling so they take precedence over file and environment values.
// A missing file is not an error.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("ui.success_display", d.UI.SuccessDisplay)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.debug_mode", d.Logging.DebugMode)
	v.SetDefault("logging.dir", d.Logging.Dir)
	v.SetDefault("logging.categories", map[string]bool{})
	v.SetDefault("mockapi.addr", d.MockAPI.Addr)
	v.SetDefault("mockapi.seed", d.MockAPI.Seed)
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetRequestTimeout returns the API request timeout as a duration.
func (c *Config) GetRequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// GetSuccessDisplay returns how long the submit confirmation stays visible.
func (c *Config) GetSuccessDisplay() time.Duration {
	d, err := time.ParseDuration(c.UI.SuccessDisplay)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

// ValidThemes lists the accepted ui.theme values.
var ValidThemes = []string{"auto", "light", "dark"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid api.base_url %q: %w", c.API.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api.base_url %q: scheme must be http or https", c.API.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid api.base_url %q: missing host", c.API.BaseURL)
	}

	if _, err := time.ParseDuration(c.API.Timeout); err != nil {
		return fmt.Errorf("invalid api.timeout %q: %w", c.API.Timeout, err)
	}
	if _, err := time.ParseDuration(c.UI.SuccessDisplay); err != nil {
		return fmt.Errorf("invalid ui.success_display %q: %w", c.UI.SuccessDisplay, err)
	}

	validTheme := false
	for _, t := range ValidThemes {
		if c.UI.Theme == t {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("invalid ui.theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}

	return nil
}
