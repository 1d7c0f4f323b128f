// Package iosync implements lifecycle.Synchronizer. A sync probes the
// recipe server, downloads its catalog and rebuilds the local cache in
// one transaction.
package iosync

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/findcoffee/findcoffee/pkg/catalog"
	"github.com/findcoffee/findcoffee/pkg/config"
	"github.com/findcoffee/findcoffee/pkg/lifecycle"
	"github.com/findcoffee/findcoffee/pkg/schema"
	"github.com/findcoffee/findcoffee/pkg/store"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
)

// synchronizer implements lifecycle.Synchronizer.
type synchronizer struct {
	cfg     *config.Config
	store   store.Store
	fetcher lifecycle.Fetcher
	prober  lifecycle.Prober

	onState func(lifecycle.SyncState)
	verbose bool

	// run serializes syncs
	run   sync.Mutex
	mu    sync.Mutex
	state lifecycle.SyncState
}

// Option configures the synchronizer.
type Option func(*synchronizer)

// OptOnState sets a function called on every state change.
func OptOnState(fn func(lifecycle.SyncState)) Option {
	return func(s *synchronizer) {
		s.onState = fn
	}
}

// OptVerbose prints progress and a summary to the terminal.
func OptVerbose(b bool) Option {
	return func(s *synchronizer) {
		s.verbose = b
	}
}

// New creates a Synchronizer for a connected store.
func New(
	cfg *config.Config,
	st store.Store,
	f lifecycle.Fetcher,
	p lifecycle.Prober,
	opts ...Option,
) lifecycle.Synchronizer {
	res := &synchronizer{
		cfg:     cfg,
		store:   st,
		fetcher: f,
		prober:  p,
		state:   lifecycle.Idle,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// State returns the current state.
func (s *synchronizer) State() lifecycle.SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *synchronizer) setState(st lifecycle.SyncState) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	slog.Debug("Sync state", "state", st.String())
	if s.onState != nil {
		s.onState(st)
	}
}

// Sync checks the server and replaces the cache with its catalog.
// Nothing in the cache changes until the catalog is downloaded and
// validated. The whole operation takes at least cfg.Sync.MinDuration.
func (s *synchronizer) Sync(
	ctx context.Context,
	host, port string,
) (lifecycle.SyncResult, error) {
	s.run.Lock()
	defer s.run.Unlock()

	start := time.Now()
	res := lifecycle.SyncResult{
		RunID: uuid.NewString(),
		Host:  catalog.CleanHost(host),
		Port:  port,
	}
	slog.Info("Starting sync",
		"run_id", res.RunID, "host", res.Host, "port", res.Port)

	err := s.sync(ctx, start, &res)

	s.pad(ctx, start)
	res.Duration = time.Since(start)
	s.setState(lifecycle.Done)

	if err != nil {
		if ctx.Err() != nil {
			err = CancelledError(ctx.Err())
		}
		slog.Error("Sync failed", "run_id", res.RunID, "error", err)
		return res, err
	}

	res.Success = true
	slog.Info("Sync complete",
		"run_id", res.RunID,
		"coffees", res.Counts.Coffees,
		"duration", gnfmt.TimeString(res.Duration.Seconds()),
	)
	if s.verbose {
		gn.Info(`Cached <em>%s</em> coffees, %s sizes, %s ingredients, %s steps.
Elapsed time: <em>%s</em>`,
			humanize.Comma(int64(res.Counts.Coffees)),
			humanize.Comma(int64(res.Counts.Sizes)),
			humanize.Comma(int64(res.Counts.Ingredients)),
			humanize.Comma(int64(res.Counts.Steps)),
			gnfmt.TimeString(res.Duration.Seconds()),
		)
	}
	return res, nil
}

func (s *synchronizer) sync(
	ctx context.Context,
	start time.Time,
	res *lifecycle.SyncResult,
) error {
	s.setState(lifecycle.Checking)
	if err := catalog.ValidateAddress(res.Host, res.Port); err != nil {
		return err
	}
	res.Port = strings.TrimSpace(res.Port)

	url := catalog.HealthURL(res.Host, res.Port)
	if s.verbose {
		gn.Info("Checking <em>%s</em>...", url)
	}
	ok, err := s.prober.Probe(ctx, url, s.cfg.Sync.ProbeTimeout)
	if !ok {
		return UnreachableError(res.Host, res.Port, err)
	}

	s.setState(lifecycle.Syncing)
	if s.verbose {
		gn.Info("Downloading recipes...")
	}
	recipes, err := s.fetcher.FetchRecipes(ctx, res.Host, res.Port)
	if err != nil {
		return FetchError(res.Host, res.Port, err)
	}

	run := &schema.SyncRun{
		RunID:      res.RunID,
		Host:       res.Host,
		Port:       res.Port,
		StartedAt:  start,
		FinishedAt: time.Now(),
	}
	counts, err := s.store.Rebuild(ctx, recipes, run)
	if err != nil {
		return err
	}
	res.Counts = counts
	return nil
}

// pad waits until MinDuration has passed since start. It returns early
// if ctx is cancelled.
func (s *synchronizer) pad(ctx context.Context, start time.Time) {
	wait := s.cfg.Sync.MinDuration - time.Since(start)
	if wait <= 0 {
		return
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
