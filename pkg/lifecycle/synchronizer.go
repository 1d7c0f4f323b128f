package lifecycle

import (
	"context"
	"time"

	"github.com/findcoffee/findcoffee/pkg/store"
)

// SyncState is a state of the synchronizer.
type SyncState int

const (
	// Idle waits for a sync request.
	Idle SyncState = iota
	// Checking probes the recipe server.
	Checking
	// Syncing fetches the catalog and rebuilds the cache.
	Syncing
	// Done means the sync finished, successfully or not.
	Done
)

// String returns a human-readable name of the state.
func (s SyncState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Checking:
		return "checking"
	case Syncing:
		return "syncing"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// SyncResult describes a finished sync.
type SyncResult struct {
	// RunID identifies the sync run.
	RunID string

	// Host and Port are the cleaned server address. On success callers
	// use them to build image URLs.
	Host string
	Port string

	// Success is true when the cache was rebuilt.
	Success bool

	// Counts of inserted rows. Zero on failure.
	Counts store.Counts

	// Duration includes the minimum-duration pad.
	Duration time.Duration
}

// Synchronizer probes a recipe server and, if it is reachable, replaces
// the local cache with the server catalog.
type Synchronizer interface {
	// Sync runs Checking and Syncing and ends in Done. On failure the cache
	// is left untouched and the error describes the cause.
	Sync(ctx context.Context, host, port string) (SyncResult, error)

	// State returns the current state.
	State() SyncState
}
