package config

import "path/filepath"

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level" mapstructure:"level"`           // debug, info, warn, error
	DebugMode  bool            `yaml:"debug_mode" mapstructure:"debug_mode"` // Master toggle - false = no log file
	Dir        string          `yaml:"dir" mapstructure:"dir"`               // logs go to <dir>/logs
	Categories map[string]bool `yaml:"categories,omitempty" mapstructure:"categories"`
}

// IsCategoryEnabled returns whether logging is enabled for a category.
// Returns false if debug_mode is false.
// Returns true if debug_mode is true and category is enabled (or not specified).
func (c *LoggingConfig) IsCategoryEnabled(category string) bool {
	if !c.DebugMode {
		return false
	}
	if c.Categories == nil {
		return true
	}
	enabled, exists := c.Categories[category]
	if !exists {
		return true
	}
	return enabled
}

// LogsDir returns the directory log files are written to.
func (c *LoggingConfig) LogsDir() string {
	return filepath.Join(c.Dir, "logs")
}
