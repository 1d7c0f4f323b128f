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
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/findcoffee/findcoffee/internal/ioclient"
	"github.com/findcoffee/findcoffee/internal/iomonitor"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// terminalNotifier prints reachability notices. Repeated Offline notices
// are printed once, as a message that stays until Online arrives.
type terminalNotifier struct {
	w    io.Writer
	mu   sync.Mutex
	last map[string]iomonitor.NoticeKind
}

func newTerminalNotifier(w io.Writer) *terminalNotifier {
	return &terminalNotifier{
		w:    w,
		last: make(map[string]iomonitor.NoticeKind),
	}
}

// Notify implements iomonitor.Notifier.
func (n *terminalNotifier) Notify(nt iomonitor.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()

	prev, seen := n.last[nt.Monitor]
	if nt.Kind != iomonitor.Dismiss {
		n.last[nt.Monitor] = nt.Kind
	}

	switch nt.Kind {
	case iomonitor.Offline:
		if seen && prev == iomonitor.Offline {
			return
		}
		fmt.Fprintf(n.w, "%s  %s\n", nt.At.Format("15:04:05"), nt.Text)
	case iomonitor.Dismiss:
		slog.Debug("Notice dismissed", "monitor", nt.Monitor, "id", nt.ID)
	default:
		fmt.Fprintf(n.w, "%s  %s\n", nt.At.Format("15:04:05"), nt.Text)
	}
}

// getMonitorCmd returns the monitor command.
func getMonitorCmd() *cobra.Command {
	var internet, server bool

	monitorCmd := &cobra.Command{
		Use:   "monitor",
		Short: "Watch internet and recipe server reachability",
		Long: `Poll reachability until interrupted with Ctrl-C.

The internet monitor probes monitor.internet_url every second and reports
a lost connection for as long as it lasts.

The server monitor probes the /api path of the recipe server every ten
seconds and reports when the server goes down or comes up again. The
server is taken from --host/--port, the last sync, or the config file.

Examples:
  findcoffee monitor
  findcoffee monitor --internet=false --host 192.168.1.5 --port 5000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runMonitor(cmd, internet, server)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	monitorCmd.Flags().BoolVar(&internet, "internet", true,
		"watch internet connection")
	monitorCmd.Flags().BoolVar(&server, "server", true,
		"watch recipe server")

	return monitorCmd
}

func runMonitor(cmd *cobra.Command, internet, server bool) error {
	ctx, stop := signalContext()
	defer stop()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	host, port := serverAddress(ctx, cmd, st)
	_ = st.Close()

	cl := ioclient.New(cfg)
	notifier := newTerminalNotifier(cmd.OutOrStdout())

	var monitors []*iomonitor.Monitor
	if internet {
		monitors = append(monitors, iomonitor.NewInternet(cfg, cl, notifier))
	}
	if server {
		monitors = append(monitors,
			iomonitor.NewServer(cfg, host, port, cl, notifier))
	}
	if len(monitors) == 0 {
		gn.Warn("Nothing to monitor")
		return nil
	}

	for _, m := range monitors {
		gn.Info("Watching <em>%s</em>", m.URL())
	}
	gn.Info("Press Ctrl-C to stop")

	lg := logger
	if lg == nil {
		lg = slog.Default()
	}
	return iomonitor.Run(ctx, lg, monitors...)
}
