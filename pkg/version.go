// Package findcoffee keeps build information of the findcoffee client.
package findcoffee

var (
	// Version of findcoffee. It is set by build flags.
	Version = "v0.1.0"

	// Build timestamp. It is set by build flags.
	Build = "n/a"
)
