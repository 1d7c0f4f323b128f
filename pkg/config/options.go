package config

import (
	"strings"
	"time"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptServerHost sets the recipe server host. Surrounding spaces are
// removed, a scheme prefix is kept here and stripped when URLs are built.
func OptServerHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Server Host", s) {
			c.Server.Host = s
		}
	}
}

// OptServerPort sets the recipe server port.
func OptServerPort(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidPort("Server Port", s) {
			c.Server.Port = s
		}
	}
}

// OptCacheBackend selects the cache store backend.
// Valid values: "sqlite", "postgres".
func OptCacheBackend(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Cache.Backend", s) {
			c.Cache.Backend = s
		}
	}
}

// OptCacheSQLiteFile sets the name of the SQLite file in the cache
// directory.
func OptCacheSQLiteFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Cache SQLite File", s) {
			c.Cache.SQLiteFile = s
		}
	}
}

// OptPostgresHost sets the PostgreSQL server hostname or IP address.
func OptPostgresHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Postgres Host", s) {
			c.Cache.Postgres.Host = s
		}
	}
}

// OptPostgresPort sets the PostgreSQL server port number.
func OptPostgresPort(i int) Option {
	return func(c *Config) {
		if isValidInt("Postgres Port", i) {
			c.Cache.Postgres.Port = i
		}
	}
}

// OptPostgresUser sets the PostgreSQL database username.
func OptPostgresUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Postgres User", s) {
			c.Cache.Postgres.User = s
		}
	}
}

// OptPostgresPassword sets the PostgreSQL database password.
func OptPostgresPassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Postgres Password", s) {
			c.Cache.Postgres.Password = s
		}
	}
}

// OptPostgresDatabase sets the PostgreSQL database name to connect to.
func OptPostgresDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Postgres Database", s) {
			c.Cache.Postgres.Database = s
		}
	}
}

// OptPostgresSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptPostgresSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Postgres.SSLMode", s) {
			c.Cache.Postgres.SSLMode = s
		}
	}
}

// OptSyncProbeTimeout sets the timeout of the pre-sync reachability check.
func OptSyncProbeTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Sync Probe Timeout", d) {
			c.Sync.ProbeTimeout = d
		}
	}
}

// OptSyncFetchTimeout sets the timeout of the catalog request.
func OptSyncFetchTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Sync Fetch Timeout", d) {
			c.Sync.FetchTimeout = d
		}
	}
}

// OptSyncMinDuration sets the minimal visible duration of a sync.
// Zero is allowed and disables padding.
func OptSyncMinDuration(d time.Duration) Option {
	return func(c *Config) {
		if d < 0 {
			warnNegative("Sync Min Duration", d)
			return
		}
		c.Sync.MinDuration = d
	}
}

// OptMonitorInternetURL sets the URL probed by the internet monitor.
func OptMonitorInternetURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Monitor Internet URL", s) {
			c.Monitor.InternetURL = s
		}
	}
}

// OptMonitorInternetInterval sets the pause between internet probes.
func OptMonitorInternetInterval(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Monitor Internet Interval", d) {
			c.Monitor.InternetInterval = d
		}
	}
}

// OptMonitorInternetTimeout sets the timeout of one internet probe.
func OptMonitorInternetTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Monitor Internet Timeout", d) {
			c.Monitor.InternetTimeout = d
		}
	}
}

// OptMonitorServerInterval sets the pause between server probes.
func OptMonitorServerInterval(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Monitor Server Interval", d) {
			c.Monitor.ServerInterval = d
		}
	}
}

// OptMonitorServerTimeout sets the timeout of one server probe.
func OptMonitorServerTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Monitor Server Timeout", d) {
			c.Monitor.ServerTimeout = d
		}
	}
}

// OptMonitorDismissAfter sets how long transition messages stay visible.
func OptMonitorDismissAfter(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Monitor Dismiss After", d) {
			c.Monitor.DismissAfter = d
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
