package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "findcoffee"

	// DBFileName is the default name of the embedded cache database.
	DBFileName = "coffee_database.sqlite"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/findcoffee by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/findcoffee by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/findcoffee/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/findcoffee/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// DBFilePath returns the full path to the SQLite cache file.
func (c *Config) DBFilePath() string {
	return filepath.Join(CacheDir(c.HomeDir), c.Cache.SQLiteFile)
}
