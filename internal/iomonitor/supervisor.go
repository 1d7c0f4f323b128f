package iomonitor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// NewSupervisor returns a supervisor that restarts monitors if they
// fail. Supervisor events are logged with logger.
func NewSupervisor(logger *slog.Logger, monitors ...*Monitor) *suture.Supervisor {
	handler := &sutureslog.Handler{Logger: logger}
	sup := suture.New("findcoffee-monitors", suture.Spec{
		EventHook:        handler.MustHook(),
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   5 * time.Second,
		Timeout:          5 * time.Second,
	})
	for _, m := range monitors {
		sup.Add(m)
	}
	return sup
}

// Run supervises monitors until ctx is cancelled. Cancellation is not an
// error.
func Run(ctx context.Context, logger *slog.Logger, monitors ...*Monitor) error {
	err := NewSupervisor(logger, monitors...).Serve(ctx)
	if errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
