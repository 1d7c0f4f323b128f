// Package iomonitor polls reachability of the internet and of the recipe
// server. Monitors are suture services: they run until their context is
// cancelled.
package iomonitor

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/findcoffee/findcoffee/pkg/catalog"
	"github.com/findcoffee/findcoffee/pkg/config"
	"github.com/findcoffee/findcoffee/pkg/lifecycle"
)

// Mode decides which notices a monitor sends.
type Mode int

const (
	// Persistent sends Offline on every failed probe and Online once
	// reachability returns.
	Persistent Mode = iota
	// Transition sends Down or UpAgain only when reachability changes,
	// and dismisses each of them after a delay.
	Transition
)

// Names of the monitors.
const (
	InternetMonitor = "internet-monitor"
	ServerMonitor   = "server-monitor"
)

var noticeID atomic.Uint64

// Monitor probes one URL on a fixed interval.
type Monitor struct {
	name         string
	url          string
	mode         Mode
	interval     time.Duration
	timeout      time.Duration
	dismissAfter time.Duration

	prober   lifecycle.Prober
	notifier Notifier

	mu        sync.Mutex
	reachable bool
	probes    int
	timers    []*time.Timer
}

// NewInternet creates the generic internet monitor.
func NewInternet(
	cfg *config.Config,
	p lifecycle.Prober,
	n Notifier,
) *Monitor {
	return &Monitor{
		name:      InternetMonitor,
		url:       cfg.Monitor.InternetURL,
		mode:      Persistent,
		interval:  cfg.Monitor.InternetInterval,
		timeout:   cfg.Monitor.InternetTimeout,
		prober:    p,
		notifier:  n,
		reachable: true,
	}
}

// NewServer creates the monitor of the recipe server health path.
func NewServer(
	cfg *config.Config,
	host, port string,
	p lifecycle.Prober,
	n Notifier,
) *Monitor {
	return &Monitor{
		name:         ServerMonitor,
		url:          catalog.HealthURL(host, port),
		mode:         Transition,
		interval:     cfg.Monitor.ServerInterval,
		timeout:      cfg.Monitor.ServerTimeout,
		dismissAfter: cfg.Monitor.DismissAfter,
		prober:       p,
		notifier:     n,
		reachable:    true,
	}
}

// String is the service name used by the supervisor.
func (m *Monitor) String() string {
	return m.name
}

// URL returns the probed URL.
func (m *Monitor) URL() string {
	return m.url
}

// Reachable returns the result of the last probe. It is true before
// the first probe.
func (m *Monitor) Reachable() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reachable
}

// Probes returns the number of finished probes.
func (m *Monitor) Probes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.probes
}

// Serve probes immediately and then every interval until ctx is
// cancelled. Pending dismiss timers are stopped on return.
func (m *Monitor) Serve(ctx context.Context) error {
	slog.Info("Starting monitor",
		"monitor", m.name, "url", m.url, "interval", m.interval)
	defer m.stopTimers()

	m.Check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Monitor stopped", "monitor", m.name)
			return ctx.Err()
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Check runs one probe and sends the notices it causes.
func (m *Monitor) Check(ctx context.Context) bool {
	ok, err := m.prober.Probe(ctx, m.url, m.timeout)
	if ctx.Err() != nil {
		return m.Reachable()
	}

	m.mu.Lock()
	was := m.reachable
	m.reachable = ok
	m.probes++
	m.mu.Unlock()

	if was != ok {
		slog.Info("Reachability changed",
			"monitor", m.name, "url", m.url, "reachable", ok, "error", err)
	}

	switch m.mode {
	case Persistent:
		if !ok {
			m.notify(Offline, MsgOffline)
		} else if !was {
			m.notify(Online, MsgOnline)
		}
	case Transition:
		if was && !ok {
			m.notifyTransient(Down, MsgDown)
		} else if !was && ok {
			m.notifyTransient(UpAgain, MsgUpAgain)
		}
	}
	return ok
}

func (m *Monitor) notify(kind NoticeKind, text string) uint64 {
	id := noticeID.Add(1)
	if m.notifier != nil {
		m.notifier.Notify(Notice{
			ID:      id,
			Monitor: m.name,
			Kind:    kind,
			Text:    text,
			At:      time.Now(),
		})
	}
	return id
}

// notifyTransient sends a notice and dismisses it after dismissAfter,
// whatever happens in between.
func (m *Monitor) notifyTransient(kind NoticeKind, text string) {
	id := m.notify(kind, text)
	t := time.AfterFunc(m.dismissAfter, func() {
		if m.notifier != nil {
			m.notifier.Notify(Notice{
				ID:      id,
				Monitor: m.name,
				Kind:    Dismiss,
				Text:    text,
				At:      time.Now(),
			})
		}
	})

	m.mu.Lock()
	m.timers = append(m.timers, t)
	m.mu.Unlock()
}

func (m *Monitor) stopTimers() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.timers {
		t.Stop()
	}
	m.timers = nil
}
