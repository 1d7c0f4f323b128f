/*
Copyright © 2026 The findcoffee Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/findcoffee/findcoffee/internal/iostore"
	"github.com/findcoffee/findcoffee/pkg/store"
	"github.com/spf13/cobra"
)

// signalContext is cancelled on Ctrl-C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// openStore connects the configured cache.
func openStore(ctx context.Context, opts ...iostore.Option) (store.Store, error) {
	st := iostore.New(opts...)
	if err := st.Connect(ctx, cfg); err != nil {
		return nil, err
	}
	return st, nil
}

// serverAddress picks the recipe server. Flags win, then the server of
// the last successful sync, then the configured server.
func serverAddress(
	ctx context.Context,
	cmd *cobra.Command,
	st store.Store,
) (string, string) {
	if addressFlagsChanged(cmd) || st == nil {
		return cfg.Server.Host, cfg.Server.Port
	}

	run, err := st.LastSyncRun(ctx)
	if err != nil {
		slog.Warn("Cannot read last sync run", "error", err)
		return cfg.Server.Host, cfg.Server.Port
	}
	if run == nil {
		return cfg.Server.Host, cfg.Server.Port
	}
	return run.Host, run.Port
}
