package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultConfigFileName is the name of the TOML config file inside the
// application directory.
const DefaultConfigFileName = "config.toml"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML config file (created on first run)
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	// Step 1: Start with defaults (already done in NewConfig)

	// Step 2: Load from the config file if one exists
	if err := l.loadFromFile(); err != nil {
		return nil, err
	}

	// Step 3: Load from environment variables
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	// Step 4: Validate the configuration
	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// loadFromFile reads the TOML config file from the application directory,
// writing the defaults there on first run. RK_DB_DIR moves the whole
// application directory, so it is consulted before the file is resolved.
func (l *Loader) loadFromFile() error {
	dir := l.config.Database.Dir
	if envDir := os.Getenv("RK_DB_DIR"); envDir != "" {
		dir = envDir
	}
	path := filepath.Join(dir, DefaultConfigFileName)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if mkErr := os.MkdirAll(dir, os.FileMode(l.config.Database.DirPermissions)); mkErr != nil {
			return mkErr
		}
		data, marshalErr := toml.Marshal(l.config)
		if marshalErr != nil {
			return marshalErr
		}
		return os.WriteFile(path, data, 0o644)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return toml.Unmarshal(data, l.config)
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDir      *string
	DBFilename *string

	// Server overrides
	ServerHost      *string
	ServerPort      *int
	ServerStaticDir *string

	// Sync overrides
	SyncServerURL *string
	SyncInterval  *time.Duration

	// Viewer overrides
	ViewerQuotesFile *string

	// Application overrides
	Timeout  *time.Duration
	Verbose  *bool
	LogLevel *string
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Database overrides
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}

	// Server overrides
	if overrides.ServerHost != nil {
		config.Server.Host = *overrides.ServerHost
	}
	if overrides.ServerPort != nil {
		config.Server.Port = *overrides.ServerPort
	}
	if overrides.ServerStaticDir != nil {
		config.Server.StaticDir = *overrides.ServerStaticDir
	}

	// Sync overrides
	if overrides.SyncServerURL != nil {
		config.Sync.ServerURL = *overrides.SyncServerURL
	}
	if overrides.SyncInterval != nil {
		config.Sync.Interval = *overrides.SyncInterval
	}

	// Viewer overrides
	if overrides.ViewerQuotesFile != nil {
		config.Viewer.QuotesFile = *overrides.ViewerQuotesFile
	}

	// Application overrides
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
	if overrides.LogLevel != nil {
		config.Application.LogLevel = *overrides.LogLevel
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}
