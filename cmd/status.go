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
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/findcoffee/findcoffee/internal/ioclient"
	"github.com/findcoffee/findcoffee/pkg/catalog"
	"github.com/findcoffee/findcoffee/pkg/schema"
	"github.com/findcoffee/findcoffee/pkg/store"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// reachability is the result of one status probe.
type reachability struct {
	url string
	ok  bool
	err error
}

// getStatusCmd returns the status command.
func getStatusCmd() *cobra.Command {
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Probe internet and recipe server once and show the cache state",
		Long: `Probe the internet and the recipe server at the same time, then show
the number of cached records and the last successful sync.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runStatus(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return statusCmd
}

func runStatus(cmd *cobra.Command) error {
	ctx, stop := signalContext()
	defer stop()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	host, port := serverAddress(ctx, cmd, st)
	internet, server := probeBoth(ctx, ioclient.New(cfg), host, port)

	counts, err := st.Counts(ctx)
	if err != nil {
		return err
	}
	run, err := st.LastSyncRun(ctx)
	if err != nil {
		return err
	}

	writeStatus(cmd.OutOrStdout(), internet, server, counts, run)
	return nil
}

// probeBoth probes internet and server concurrently.
func probeBoth(
	ctx context.Context,
	cl *ioclient.Client,
	host, port string,
) (reachability, reachability) {
	internet := reachability{url: cfg.Monitor.InternetURL}
	server := reachability{url: catalog.HealthURL(host, port)}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		internet.ok, internet.err = cl.Probe(ctx, internet.url,
			cfg.Monitor.InternetTimeout)
		return nil
	})
	g.Go(func() error {
		server.ok, server.err = cl.Probe(ctx, server.url,
			cfg.Monitor.ServerTimeout)
		return nil
	})
	_ = g.Wait()

	return internet, server
}

func writeStatus(
	w io.Writer,
	internet, server reachability,
	counts store.Counts,
	run *schema.SyncRun,
) {
	state := func(r reachability) string {
		if r.ok {
			return "reachable"
		}
		return "unreachable"
	}

	fmt.Fprintf(w, "Internet:    %s (%s)\n", state(internet), internet.url)
	fmt.Fprintf(w, "Server:      %s (%s)\n", state(server), server.url)
	fmt.Fprintf(w, "Cache:       %s coffees, %s sizes, %s ingredients, %s steps\n",
		humanize.Comma(int64(counts.Coffees)),
		humanize.Comma(int64(counts.Sizes)),
		humanize.Comma(int64(counts.Ingredients)),
		humanize.Comma(int64(counts.Steps)),
	)

	if run == nil {
		fmt.Fprintln(w, "Last sync:   never")
		return
	}
	dur := run.FinishedAt.Sub(run.StartedAt)
	fmt.Fprintf(w, "Last sync:   %s from %s:%s (%s)\n",
		run.FinishedAt.Local().Format(time.DateTime),
		run.Host, run.Port,
		gnfmt.TimeString(dur.Seconds()),
	)
	fmt.Fprintf(w, "Sync run:    %s\n", run.RunID)
}
