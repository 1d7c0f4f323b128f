package config

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	var d time.Duration

	s = c.Server.Host
	if s != "" {
		res = append(res, OptServerHost(s))
	}
	s = c.Server.Port
	if s != "" {
		res = append(res, OptServerPort(s))
	}

	s = c.Cache.Backend
	if s != "" {
		res = append(res, OptCacheBackend(s))
	}
	s = c.Cache.SQLiteFile
	if s != "" {
		res = append(res, OptCacheSQLiteFile(s))
	}
	s = c.Cache.Postgres.Host
	if s != "" {
		res = append(res, OptPostgresHost(s))
	}
	i = c.Cache.Postgres.Port
	if i > 0 {
		res = append(res, OptPostgresPort(i))
	}
	s = c.Cache.Postgres.User
	if s != "" {
		res = append(res, OptPostgresUser(s))
	}
	s = c.Cache.Postgres.Password
	if s != "" {
		res = append(res, OptPostgresPassword(s))
	}
	s = c.Cache.Postgres.Database
	if s != "" {
		res = append(res, OptPostgresDatabase(s))
	}
	s = c.Cache.Postgres.SSLMode
	if s != "" {
		res = append(res, OptPostgresSSLMode(s))
	}

	d = c.Sync.ProbeTimeout
	if d > 0 {
		res = append(res, OptSyncProbeTimeout(d))
	}
	d = c.Sync.FetchTimeout
	if d > 0 {
		res = append(res, OptSyncFetchTimeout(d))
	}
	// zero is meaningful for MinDuration, so it is always carried over
	res = append(res, OptSyncMinDuration(c.Sync.MinDuration))

	s = c.Monitor.InternetURL
	if s != "" {
		res = append(res, OptMonitorInternetURL(s))
	}
	d = c.Monitor.InternetInterval
	if d > 0 {
		res = append(res, OptMonitorInternetInterval(d))
	}
	d = c.Monitor.InternetTimeout
	if d > 0 {
		res = append(res, OptMonitorInternetTimeout(d))
	}
	d = c.Monitor.ServerInterval
	if d > 0 {
		res = append(res, OptMonitorServerInterval(d))
	}
	d = c.Monitor.ServerTimeout
	if d > 0 {
		res = append(res, OptMonitorServerTimeout(d))
	}
	d = c.Monitor.DismissAfter
	if d > 0 {
		res = append(res, OptMonitorDismissAfter(d))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidPort(name, s string) bool {
	i, err := strconv.Atoi(s)
	res := err == nil && i > 0 && i < 65536
	if !res {
		gn.Warn("<em>%s</em> has to be a number from 1 to 65535, ignoring '%s'",
			name, s)
	}
	return res
}

func isValidDuration(name string, d time.Duration) bool {
	res := d > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive duration, ignoring %s", name, d)
	}
	return res
}

func warnNegative(name string, d time.Duration) {
	gn.Warn("<em>%s</em> cannot be negative, ignoring %s", name, d)
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Cache.Backend": {"sqlite": s, "postgres": s},
		"Postgres.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
