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
	"strings"

	"github.com/findcoffee/findcoffee/internal/ioclient"
	"github.com/findcoffee/findcoffee/pkg/catalog"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getListCmd returns the list command.
func getListCmd() *cobra.Command {
	var remote bool

	listCmd := &cobra.Command{
		Use:   "list [query]",
		Short: "List coffees, optionally filtered by a query",
		Long: `List coffee names from the local cache. With a query only names that
contain it (ignoring case) are shown, and matches are marked with [ ].

With --remote names are downloaded from the recipe server instead.

Examples:
  findcoffee list
  findcoffee list latte
  findcoffee list --remote`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var query string
			if len(args) > 0 {
				query = args[0]
			}
			err := runList(cmd, query, remote)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	listCmd.Flags().BoolVarP(
		&remote, "remote", "r", false,
		"read names from the recipe server instead of the cache",
	)

	return listCmd
}

func runList(cmd *cobra.Command, query string, remote bool) error {
	ctx, stop := signalContext()
	defer stop()

	names, err := coffeeNames(ctx, cmd, remote)
	if err != nil {
		return err
	}

	query = strings.TrimSpace(query)
	writeNames(cmd.OutOrStdout(), catalog.FilterNames(names, query), query)
	return nil
}

func coffeeNames(
	ctx context.Context,
	cmd *cobra.Command,
	remote bool,
) ([]string, error) {
	st, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	if remote {
		host, port := serverAddress(ctx, cmd, st)
		return ioclient.New(cfg).FetchCoffeeNames(ctx, host, port)
	}

	names, err := st.CoffeeNames(ctx)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		run, err := st.LastSyncRun(ctx)
		if err != nil {
			return nil, err
		}
		if run == nil {
			return nil, EmptyCacheError()
		}
	}
	return names, nil
}

// writeNames prints one name per line with query matches in brackets.
func writeNames(w io.Writer, names []string, query string) {
	for _, name := range names {
		var sb strings.Builder
		for _, seg := range catalog.Highlight(name, query) {
			if seg.Match {
				sb.WriteString("[" + seg.Text + "]")
				continue
			}
			sb.WriteString(seg.Text)
		}
		fmt.Fprintln(w, sb.String())
	}
}
