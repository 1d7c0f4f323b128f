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
	"slices"
	"strings"

	"github.com/findcoffee/findcoffee/pkg/catalog"
	"github.com/findcoffee/findcoffee/pkg/config"
	"github.com/spf13/cobra"
)

var outputFormats = []string{"text", "json", "yaml"}

// serverFlags turns explicitly set --host and --port flags into options.
func serverFlags(cmd *cobra.Command) []config.Option {
	var res []config.Option
	if cmd.Flags().Changed("host") {
		host, _ := cmd.Flags().GetString("host")
		res = append(res, config.OptServerHost(catalog.CleanHost(host)))
	}
	if cmd.Flags().Changed("port") {
		port, _ := cmd.Flags().GetString("port")
		res = append(res, config.OptServerPort(strings.TrimSpace(port)))
	}
	return res
}

// addressFlagsChanged is true if the user gave the server address on the
// command line.
func addressFlagsChanged(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("host") || cmd.Flags().Changed("port")
}

// formatFlag returns a valid --format value.
func formatFlag(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(strings.TrimSpace(format))
	if !slices.Contains(outputFormats, format) {
		return "", OutputFormatError(format, outputFormats)
	}
	return format, nil
}
