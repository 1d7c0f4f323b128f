// Package store defines the contract of the local recipe cache.
package store

import (
	"context"

	"github.com/findcoffee/findcoffee/pkg/catalog"
	"github.com/findcoffee/findcoffee/pkg/config"
	"github.com/findcoffee/findcoffee/pkg/schema"
)

// Counts holds the number of rows in each recipe collection.
type Counts struct {
	Coffees     int
	Sizes       int
	Ingredients int
	Steps       int
}

// Store is the local cache of the recipe catalog. It has an explicit
// lifecycle: Connect once at startup, pass it to the components that need
// it, Close at shutdown.
//
// No update operation exists. Records change only through delete-all and
// reinsert, which Rebuild does atomically.
//
// Lookups of absent records return nil (or an empty slice) and no error.
type Store interface {
	// Connect opens the cache and migrates its schema.
	Connect(context.Context, *config.Config) error

	// Close releases the underlying connection.
	Close() error

	// InsertCoffee inserts a coffee and returns its generated ID.
	InsertCoffee(ctx context.Context, c *schema.Coffee) (uint, error)
	DeleteAllCoffees(ctx context.Context) error
	// CoffeeByName finds a coffee ignoring case.
	CoffeeByName(ctx context.Context, name string) (*schema.Coffee, error)
	// CoffeeNames returns names of all coffees sorted alphabetically.
	CoffeeNames(ctx context.Context) ([]string, error)

	InsertSize(ctx context.Context, s *schema.Size) (uint, error)
	DeleteAllSizes(ctx context.Context) error
	SizesForCoffee(ctx context.Context, coffeeID uint) ([]schema.Size, error)
	// SizeForCoffeeAndName finds a size of a coffee ignoring case of the
	// label.
	SizeForCoffeeAndName(
		ctx context.Context,
		coffeeID uint,
		size string,
	) (*schema.Size, error)

	InsertIngredient(ctx context.Context, i *schema.Ingredient) (uint, error)
	DeleteAllIngredients(ctx context.Context) error
	// IngredientsForCoffeeAndSize returns ingredients of a coffee for a size
	// label, ignoring case of the label.
	IngredientsForCoffeeAndSize(
		ctx context.Context,
		coffeeID uint,
		size string,
	) ([]schema.Ingredient, error)

	InsertStep(ctx context.Context, s *schema.Step) (uint, error)
	DeleteAllSteps(ctx context.Context) error
	// StepsForCoffee returns steps ordered by step number.
	StepsForCoffee(ctx context.Context, coffeeID uint) ([]schema.Step, error)

	// Rebuild empties the four recipe collections and inserts all recipes
	// in one transaction. If run is not nil it is stored in the same
	// transaction with the resulting counts. On error nothing changes.
	Rebuild(
		ctx context.Context,
		recipes []catalog.Recipe,
		run *schema.SyncRun,
	) (Counts, error)

	// Counts returns the current number of rows per collection.
	Counts(ctx context.Context) (Counts, error)

	// LastSyncRun returns the most recent successful sync, or nil.
	LastSyncRun(ctx context.Context) (*schema.SyncRun, error)
}
