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
	"log/slog"

	"github.com/findcoffee/findcoffee/internal/ioclient"
	"github.com/findcoffee/findcoffee/internal/iostore"
	"github.com/findcoffee/findcoffee/internal/iosync"
	"github.com/findcoffee/findcoffee/pkg/catalog"
	"github.com/findcoffee/findcoffee/pkg/config"
	"github.com/findcoffee/findcoffee/pkg/lifecycle"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getSyncCmd returns the sync command.
func getSyncCmd() *cobra.Command {
	var uri string

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Rebuild the local cache from a recipe server",
		Long: `Check that the recipe server answers, download its recipe catalog
and replace the local cache with it.

The cache is replaced in one transaction. If the server is not reachable
or the catalog cannot be read, the previous cache is kept.

The server address comes from --host/--port, from --uri (for example the
content of a QR code), or from the config file.

Examples:
  findcoffee sync --host 192.168.1.5 --port 5000
  findcoffee sync --uri http://192.168.1.5:5000/
  findcoffee sync`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSync(cmd, uri)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	syncCmd.Flags().StringVarP(
		&uri, "uri", "u", "",
		"server URI such as http://HOST:PORT/ (overrides --host and --port)",
	)

	return syncCmd
}

func runSync(cmd *cobra.Command, uri string) error {
	ctx, stop := signalContext()
	defer stop()

	if uri != "" {
		host, port, err := catalog.ParseServerURI(uri)
		if err != nil {
			return err
		}
		cfg.Update([]config.Option{
			config.OptServerHost(host),
			config.OptServerPort(port),
		})
	}

	st, err := openStore(ctx, iostore.OptProgress(true))
	if err != nil {
		return err
	}
	defer st.Close()

	cl := ioclient.New(cfg)
	sn := iosync.New(cfg, st, cl, cl,
		iosync.OptVerbose(true),
		iosync.OptOnState(func(s lifecycle.SyncState) {
			slog.Debug("Sync state changed", "state", s.String())
		}),
	)

	res, err := sn.Sync(ctx, cfg.Server.Host, cfg.Server.Port)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Synced %d coffees from %s\n",
		res.Counts.Coffees, catalog.BaseURL(res.Host, res.Port))
	gn.Info("Coffee images are served from <em>%s%s</em>",
		catalog.BaseURL(res.Host, res.Port), catalog.ImagesPath)
	return nil
}
