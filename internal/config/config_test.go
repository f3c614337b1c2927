package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "remindik.db", cfg.Database.Filename)
	assert.Equal(t, 10*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 5*time.Second, cfg.Database.WriteTimeout)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Sync.Interval)
	assert.Equal(t, time.Second, cfg.Viewer.TickInterval)
	assert.Equal(t, 1, cfg.Validation.TextMinLength)
	assert.Equal(t, 255, cfg.Validation.TextMaxLength)
	assert.Equal(t, "info", cfg.Application.LogLevel)

	assert.NoError(t, cfg.Validate())
}

func TestConfig_GetDatabasePath(t *testing.T) {
	cfg := NewConfig()
	cfg.Database.Dir = "/tmp/rk"
	cfg.Database.Filename = "tasks.db"

	assert.Equal(t, filepath.Join("/tmp/rk", "tasks.db"), cfg.GetDatabasePath())
}

func TestConfig_GetServerAddr(t *testing.T) {
	cfg := NewConfig()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 8080

	assert.Equal(t, "127.0.0.1:8080", cfg.GetServerAddr())
}

func TestConfig_LoadFromEnvironment(t *testing.T) {
	t.Setenv("RK_DB_DIR", "/custom/dir")
	t.Setenv("RK_DB_QUERY_TIMEOUT", "30s")
	t.Setenv("RK_SERVER_PORT", "9090")
	t.Setenv("RK_SYNC_SERVER_URL", "http://sync.local:3000")
	t.Setenv("RK_SYNC_INTERVAL", "1m")
	t.Setenv("RK_APP_VERBOSE", "true")
	t.Setenv("RK_APP_LOG_LEVEL", "debug")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "/custom/dir", cfg.Database.Dir)
	assert.Equal(t, 30*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://sync.local:3000", cfg.Sync.ServerURL)
	assert.Equal(t, time.Minute, cfg.Sync.Interval)
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, "debug", cfg.Application.LogLevel)
}

func TestConfig_LoadFromEnvironment_IgnoresInvalidValues(t *testing.T) {
	t.Setenv("RK_DB_QUERY_TIMEOUT", "not-a-duration")
	t.Setenv("RK_SERVER_PORT", "not-a-number")
	t.Setenv("RK_APP_VERBOSE", "not-a-bool")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, 10*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.False(t, cfg.Application.Verbose)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{
			name:   "valid defaults",
			modify: func(c *Config) {},
		},
		{
			name:      "empty database dir",
			modify:    func(c *Config) { c.Database.Dir = "" },
			wantField: "database.dir",
		},
		{
			name:      "zero query timeout",
			modify:    func(c *Config) { c.Database.QueryTimeout = 0 },
			wantField: "database.query_timeout",
		},
		{
			name:      "port out of range",
			modify:    func(c *Config) { c.Server.Port = 70000 },
			wantField: "server.port",
		},
		{
			name:      "negative sync interval",
			modify:    func(c *Config) { c.Sync.Interval = -time.Second },
			wantField: "sync.interval",
		},
		{
			name:      "tick interval too small",
			modify:    func(c *Config) { c.Viewer.TickInterval = time.Millisecond },
			wantField: "viewer.tick_interval",
		},
		{
			name: "max text length below min",
			modify: func(c *Config) {
				c.Validation.TextMinLength = 10
				c.Validation.TextMaxLength = 5
			},
			wantField: "validation.text_max_length",
		},
		{
			name:      "unknown log level",
			modify:    func(c *Config) { c.Application.LogLevel = "loud" },
			wantField: "application.log_level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var configErr *ConfigError
			require.ErrorAs(t, err, &configErr)
			assert.Equal(t, tt.wantField, configErr.Field)
		})
	}
}

func TestLoader_Load_CreatesConfigFileOnFirstRun(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RK_DB_DIR", dir)

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Database.Dir)

	// Defaults were persisted to disk.
	data, err := os.ReadFile(filepath.Join(dir, DefaultConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[database]")
	assert.Contains(t, string(data), "[server]")
}

func TestLoader_Load_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RK_DB_DIR", dir)

	content := "[server]\nport = 4000\n\n[application]\nlog_level = 'warn'\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFileName), []byte(content), 0o644))

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Application.LogLevel)
	// Untouched sections keep their defaults.
	assert.Equal(t, "remindik.db", cfg.Database.Filename)
}

func TestLoader_Load_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RK_DB_DIR", dir)
	t.Setenv("RK_SERVER_PORT", "5000")

	content := "[server]\nport = 4000\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFileName), []byte(content), 0o644))

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Server.Port)
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RK_DB_DIR", dir)

	port := 8081
	verbose := true
	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{
		ServerPort: &port,
		Verbose:    &verbose,
	})
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.True(t, cfg.Application.Verbose)
}

func TestLoader_LoadWithOverrides_InvalidOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RK_DB_DIR", dir)

	port := -1
	_, err := NewLoader().LoadWithOverrides(&ConfigOverrides{ServerPort: &port})
	require.Error(t, err)

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "server.port", configErr.Field)
}

func TestParseFallbacks(t *testing.T) {
	assert.Equal(t, 5*time.Second, ParseDurationWithFallback("5s", time.Minute))
	assert.Equal(t, time.Minute, ParseDurationWithFallback("bogus", time.Minute))
	assert.Equal(t, 42, ParseIntWithFallback("42", 7))
	assert.Equal(t, 7, ParseIntWithFallback("bogus", 7))
	assert.True(t, ParseBoolWithFallback("true", false))
	assert.False(t, ParseBoolWithFallback("bogus", false))
}
