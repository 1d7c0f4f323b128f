// Package lifecycle defines the contracts of the components that move the
// recipe catalog from a recipe server into the local cache.
package lifecycle

import (
	"context"
	"time"

	"github.com/findcoffee/findcoffee/pkg/catalog"
)

// Fetcher downloads data from a recipe server.
//
// A nil error with an empty result means the server has no data. A
// non-nil error means the request failed and no partial result is
// returned.
type Fetcher interface {
	// FetchRecipes downloads and validates the full recipe catalog.
	FetchRecipes(ctx context.Context, host, port string) ([]catalog.Recipe, error)

	// FetchCoffeeNames downloads the list of coffee names.
	FetchCoffeeNames(ctx context.Context, host, port string) ([]string, error)

	// FetchIngredients downloads ingredient quantities of a coffee for
	// one size.
	FetchIngredients(
		ctx context.Context,
		host, port, size, coffee string,
	) (map[string]string, error)
}

// Prober checks whether a URL answers a GET with HTTP 200.
type Prober interface {
	// Probe returns true if the URL is reachable within timeout. When it
	// returns false the error carries the cause.
	Probe(ctx context.Context, url string, timeout time.Duration) (bool, error)
}
