// Package iotesting provides shared test utilities: temporary caches
// and fake recipe servers.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"os"
	"strconv"
	"testing"

	"github.com/findcoffee/findcoffee/internal/iostore"
	"github.com/findcoffee/findcoffee/pkg/config"
	"github.com/findcoffee/findcoffee/pkg/store"
)

const (
	// TestDatabaseName is the PostgreSQL database used by integration
	// tests. Tests never touch a real cache.
	TestDatabaseName = "findcoffee_test"
)

// TestConfig returns a configuration with its home directory in a
// temporary directory, so the SQLite cache and logs are removed after the
// test. The cache directory is created.
func TestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptSyncMinDuration(0),
	})
	if err := os.MkdirAll(config.CacheDir(cfg.HomeDir), 0755); err != nil {
		t.Fatalf("Failed to create cache dir: %v", err)
	}
	return cfg
}

// NewStore returns a connected SQLite store in a temporary directory.
// The store is closed when the test finishes.
func NewStore(t *testing.T, cfg *config.Config) store.Store {
	t.Helper()

	st := iostore.New()
	if err := st.Connect(context.Background(), cfg); err != nil {
		t.Fatalf("Failed to open test cache: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

// PostgresTestConfig returns a configuration for PostgreSQL integration
// tests. Connection settings come from FINDCOFFEE_CACHE_POSTGRES_*
// environment variables or defaults. The database name is always
// TestDatabaseName.
func PostgresTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := TestConfig(t)
	opts := []config.Option{config.OptCacheBackend("postgres")}
	if v := os.Getenv("FINDCOFFEE_CACHE_POSTGRES_HOST"); v != "" {
		opts = append(opts, config.OptPostgresHost(v))
	}
	if v := os.Getenv("FINDCOFFEE_CACHE_POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			opts = append(opts, config.OptPostgresPort(port))
		}
	}
	if v := os.Getenv("FINDCOFFEE_CACHE_POSTGRES_USER"); v != "" {
		opts = append(opts, config.OptPostgresUser(v))
	}
	if v := os.Getenv("FINDCOFFEE_CACHE_POSTGRES_PASSWORD"); v != "" {
		opts = append(opts, config.OptPostgresPassword(v))
	}
	opts = append(opts, config.OptPostgresDatabase(TestDatabaseName))
	cfg.Update(opts)
	return cfg
}
