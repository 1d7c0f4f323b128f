// Package config provides configuration management for findcoffee.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Server: host, port
//   - Cache: backend, sqlite_file, postgres settings
//   - Sync: probe_timeout, fetch_timeout, min_duration
//   - Monitor: internet_url, intervals, timeouts, dismiss_after
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use FINDCOFFEE_ prefix with underscores for nesting:
//
//	FINDCOFFEE_SERVER_HOST=192.168.1.5
//	FINDCOFFEE_SERVER_PORT=5000
//	FINDCOFFEE_CACHE_BACKEND=sqlite
//	FINDCOFFEE_LOG_LEVEL=info
//
// A .env file in the working directory is read before the environment is
// consulted.
package config

import (
	"time"
)

// Config represents the complete findcoffee configuration.
type Config struct {
	// Server is the recipe server the catalog is synced from.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Cache describes where the local recipe cache lives.
	Cache CacheConfig `mapstructure:"cache" yaml:"cache"`

	// Sync contains timing settings for catalog synchronization.
	Sync SyncConfig `mapstructure:"sync" yaml:"sync"`

	// Monitor contains settings of the reachability monitors.
	Monitor MonitorConfig `mapstructure:"monitor" yaml:"monitor"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// ServerConfig holds the address of the recipe server.
type ServerConfig struct {
	// Host is an IP address or a host name. A scheme prefix
	// (http:// or https://) is allowed and removed before use.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the server port kept as a string, the way users type it.
	Port string `mapstructure:"port" yaml:"port"`
}

// CacheConfig selects and configures the cache store backend.
type CacheConfig struct {
	// Backend is either "sqlite" (embedded file, default) or "postgres".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// SQLiteFile is the name of the database file inside the cache
	// directory.
	SQLiteFile string `mapstructure:"sqlite_file" yaml:"sqlite_file"`

	// Postgres is used only when Backend is "postgres".
	Postgres PostgresConfig `mapstructure:"postgres" yaml:"postgres"`
}

// PostgresConfig contains PostgreSQL connection parameters.
type PostgresConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// SyncConfig contains timing settings of the Synchronizer.
type SyncConfig struct {
	// ProbeTimeout limits the reachability check done before a sync.
	ProbeTimeout time.Duration `mapstructure:"probe_timeout" yaml:"probe_timeout"`

	// FetchTimeout limits connect and read time of the catalog request.
	FetchTimeout time.Duration `mapstructure:"fetch_timeout" yaml:"fetch_timeout"`

	// MinDuration pads a sync so that it never finishes sooner than this.
	// Zero disables padding.
	MinDuration time.Duration `mapstructure:"min_duration" yaml:"min_duration"`
}

// MonitorConfig contains settings of the two reachability monitors.
type MonitorConfig struct {
	// InternetURL is a well-known external URL used to detect internet
	// connectivity.
	InternetURL string `mapstructure:"internet_url" yaml:"internet_url"`

	// InternetInterval is the pause between internet probes.
	InternetInterval time.Duration `mapstructure:"internet_interval" yaml:"internet_interval"`

	// InternetTimeout limits a single internet probe.
	InternetTimeout time.Duration `mapstructure:"internet_timeout" yaml:"internet_timeout"`

	// ServerInterval is the pause between recipe server probes.
	ServerInterval time.Duration `mapstructure:"server_interval" yaml:"server_interval"`

	// ServerTimeout limits a single recipe server probe.
	ServerTimeout time.Duration `mapstructure:"server_timeout" yaml:"server_timeout"`

	// DismissAfter is how long a transition message stays visible.
	DismissAfter time.Duration `mapstructure:"dismiss_after" yaml:"dismiss_after"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: "5000",
		},
		Cache: CacheConfig{
			Backend:    "sqlite",
			SQLiteFile: DBFileName,
			Postgres: PostgresConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "postgres",
				Password: "postgres",
				Database: "findcoffee",
				SSLMode:  "disable",
			},
		},
		Sync: SyncConfig{
			ProbeTimeout: 5 * time.Second,
			FetchTimeout: 5 * time.Second,
			MinDuration:  3 * time.Second,
		},
		Monitor: MonitorConfig{
			InternetURL:      "https://www.google.com",
			InternetInterval: time.Second,
			InternetTimeout:  time.Second,
			ServerInterval:   10 * time.Second,
			ServerTimeout:    3 * time.Second,
			DismissAfter:     2500 * time.Millisecond,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
