// Package logging provides config-driven categorized logging for postdesk.
// Logs are written as JSON lines to <logging.dir>/logs/postdesk.log.
// Logging is controlled by logging.debug_mode - when false, no logs are written,
// which keeps the terminal UI's stdout clean.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"postdesk/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup, config resolution
	CategoryAPI     Category = "api"     // Remote posts API calls
	CategoryList    Category = "list"    // Post list page: fetch, filter, view more
	CategoryForm    Category = "form"    // Creation form: validation, submission
	CategoryDetail  Category = "detail"  // Single post page
	CategoryNav     Category = "nav"     // Route changes
	CategoryMockAPI Category = "mockapi" // Local stand-in API server
)

// LogFileName is the file created under the logs directory.
const LogFileName = "postdesk.log"

// Logger writes printf-style messages for one category.
// The zero value (and any logger obtained while logging is disabled) is a no-op.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
}

var (
	mu      sync.RWMutex
	base    *zap.Logger
	file    *os.File
	current config.LoggingConfig
	loggers = make(map[Category]*Logger)
)

// Initialize sets up logging from cfg. With debug_mode off it is a silent
// no-op. Calling it again replaces the previous setup.
func Initialize(cfg config.LoggingConfig) error {
	CloseAll()

	if !cfg.DebugMode {
		mu.Lock()
		current = cfg
		mu.Unlock()
		return nil
	}

	dir := cfg.LogsDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	path := filepath.Join(dir, LogFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), level)

	mu.Lock()
	current = cfg
	file = f
	base = zap.New(core)
	mu.Unlock()

	boot := Get(CategoryBoot)
	boot.Info("=== postdesk logging initialized ===")
	boot.Info("Log file: %s", path)
	boot.Info("Log level: %s", level)
	return nil
}

// InitializeWithCore routes every enabled category to core. Used by tests and
// by callers that already own a zap core.
func InitializeWithCore(cfg config.LoggingConfig, core zapcore.Core) {
	CloseAll()

	mu.Lock()
	defer mu.Unlock()
	current = cfg
	base = zap.New(core)
}

// IsDebugMode returns whether debug logging is enabled
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return current.DebugMode
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return current.IsCategoryEnabled(string(category))
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if debug mode is disabled or category is disabled.
func Get(category Category) *Logger {
	if !IsCategoryEnabled(category) {
		return &Logger{category: category}
	}

	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()

	if l, ok := loggers[category]; ok {
		return l
	}
	if base == nil {
		return &Logger{category: category}
	}

	l := &Logger{
		category: category,
		sugar:    base.Named(string(category)).Sugar(),
	}
	loggers[category] = l
	return l
}

// CloseAll flushes and closes the log file and forgets cached loggers.
func CloseAll() {
	mu.Lock()
	defer mu.Unlock()

	if base != nil {
		_ = base.Sync()
	}
	if file != nil {
		_ = file.Close()
	}
	base = nil
	file = nil
	loggers = make(map[Category]*Logger)
}

// Category returns the logger's category.
func (l *Logger) Category() Category {
	return l.category
}

// With returns a logger that attaches the given key/value pairs to every entry.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	if l.sugar == nil {
		return l
	}
	return &Logger{category: l.category, sugar: l.sugar.With(keysAndValues...)}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Debugf(format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Infof(format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Warnf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Errorf(format, args...)
}
