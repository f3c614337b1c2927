package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the reminder application
type Config struct {
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
	Sync        SyncConfig        `toml:"sync"`
	Viewer      ViewerConfig      `toml:"viewer"`
	Validation  ValidationConfig  `toml:"validation"`
	Application ApplicationConfig `toml:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `toml:"dir" env:"RK_DB_DIR"`
	Filename       string        `toml:"filename" env:"RK_DB_FILENAME"`
	QueryTimeout   time.Duration `toml:"query_timeout" env:"RK_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `toml:"write_timeout" env:"RK_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `toml:"dir_permissions" env:"RK_DB_DIR_PERMISSIONS"`
}

// ServerConfig holds sync server configuration
type ServerConfig struct {
	Host         string        `toml:"host" env:"RK_SERVER_HOST"`
	Port         int           `toml:"port" env:"RK_SERVER_PORT"`
	StaticDir    string        `toml:"static_dir" env:"RK_SERVER_STATIC_DIR"`
	ReadTimeout  time.Duration `toml:"read_timeout" env:"RK_SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `toml:"write_timeout" env:"RK_SERVER_WRITE_TIMEOUT"`
}

// SyncConfig holds sync client configuration
type SyncConfig struct {
	ServerURL      string        `toml:"server_url" env:"RK_SYNC_SERVER_URL"`
	Interval       time.Duration `toml:"interval" env:"RK_SYNC_INTERVAL"`
	RequestTimeout time.Duration `toml:"request_timeout" env:"RK_SYNC_REQUEST_TIMEOUT"`
}

// ViewerConfig holds countdown viewer configuration
type ViewerConfig struct {
	TickInterval time.Duration `toml:"tick_interval" env:"RK_VIEWER_TICK_INTERVAL"`
	QuotesFile   string        `toml:"quotes_file" env:"RK_VIEWER_QUOTES_FILE"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TextMinLength int `toml:"text_min_length" env:"RK_VALIDATION_TEXT_MIN"`
	TextMaxLength int `toml:"text_max_length" env:"RK_VALIDATION_TEXT_MAX"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout  time.Duration `toml:"timeout" env:"RK_APP_TIMEOUT"`
	Verbose  bool          `toml:"verbose" env:"RK_APP_VERBOSE"`
	LogLevel string        `toml:"log_level" env:"RK_APP_LOG_LEVEL"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDir := filepath.Join(homeDir, ".remindik")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDir,
			Filename:       "remindik.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         3000,
			StaticDir:    "",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Sync: SyncConfig{
			ServerURL:      "",
			Interval:       30 * time.Second,
			RequestTimeout: 10 * time.Second,
		},
		Viewer: ViewerConfig{
			TickInterval: time.Second,
			QuotesFile:   filepath.Join(defaultDir, "quotes.txt"),
		},
		Validation: ValidationConfig{
			TextMinLength: 1,
			TextMaxLength: 255,
		},
		Application: ApplicationConfig{
			Timeout:  60 * time.Second,
			Verbose:  false,
			LogLevel: "info",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// GetServerAddr returns the host:port listen address for the sync server
func (c *Config) GetServerAddr() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("RK_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("RK_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("RK_DB_QUERY_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.QueryTimeout = d
		}
	}
	if timeout := os.Getenv("RK_DB_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.WriteTimeout = d
		}
	}
	if perms := os.Getenv("RK_DB_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Database.DirPermissions = uint32(p)
		}
	}

	// Server configuration
	if host := os.Getenv("RK_SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("RK_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if dir := os.Getenv("RK_SERVER_STATIC_DIR"); dir != "" {
		c.Server.StaticDir = dir
	}
	if timeout := os.Getenv("RK_SERVER_READ_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Server.ReadTimeout = d
		}
	}
	if timeout := os.Getenv("RK_SERVER_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Server.WriteTimeout = d
		}
	}

	// Sync configuration
	if url := os.Getenv("RK_SYNC_SERVER_URL"); url != "" {
		c.Sync.ServerURL = url
	}
	if interval := os.Getenv("RK_SYNC_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			c.Sync.Interval = d
		}
	}
	if timeout := os.Getenv("RK_SYNC_REQUEST_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Sync.RequestTimeout = d
		}
	}

	// Viewer configuration
	if interval := os.Getenv("RK_VIEWER_TICK_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			c.Viewer.TickInterval = d
		}
	}
	if path := os.Getenv("RK_VIEWER_QUOTES_FILE"); path != "" {
		c.Viewer.QuotesFile = path
	}

	// Validation configuration
	if minLen := os.Getenv("RK_VALIDATION_TEXT_MIN"); minLen != "" {
		if n, err := strconv.Atoi(minLen); err == nil {
			c.Validation.TextMinLength = n
		}
	}
	if maxLen := os.Getenv("RK_VALIDATION_TEXT_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.TextMaxLength = n
		}
	}

	// Application configuration
	if timeout := os.Getenv("RK_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("RK_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}
	if level := os.Getenv("RK_APP_LOG_LEVEL"); level != "" {
		c.Application.LogLevel = level
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate server configuration
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: "port must be between 1 and 65535"}
	}
	if c.Server.ReadTimeout <= 0 {
		return &ConfigError{Field: "server.read_timeout", Message: "read timeout must be positive"}
	}
	if c.Server.WriteTimeout <= 0 {
		return &ConfigError{Field: "server.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate sync configuration
	if c.Sync.Interval <= 0 {
		return &ConfigError{Field: "sync.interval", Message: "sync interval must be positive"}
	}
	if c.Sync.RequestTimeout <= 0 {
		return &ConfigError{Field: "sync.request_timeout", Message: "request timeout must be positive"}
	}

	// Validate viewer configuration
	if c.Viewer.TickInterval < 100*time.Millisecond {
		return &ConfigError{Field: "viewer.tick_interval", Message: "tick interval must be at least 100ms"}
	}

	// Validate validation configuration
	if c.Validation.TextMinLength < 1 {
		return &ConfigError{Field: "validation.text_min_length", Message: "text minimum length must be at least 1"}
	}
	if c.Validation.TextMaxLength < c.Validation.TextMinLength {
		return &ConfigError{Field: "validation.text_max_length", Message: "text maximum length must be greater than minimum length"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	switch c.Application.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "application.log_level", Message: "log level must be one of debug, info, warn, error"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
