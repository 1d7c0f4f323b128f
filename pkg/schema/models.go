// Package schema provides the GORM models of the local recipe cache.
// Coffee is the root record; sizes, ingredients and steps point to their
// coffee by CoffeeID. No cascading deletes exist, the cache is emptied
// table by table.
package schema

import (
	"time"
)

// Coffee is a coffee from the catalog.
type Coffee struct {
	// ID is generated by the store on insert.
	ID uint `gorm:"primaryKey;autoIncrement"`

	// Category is a label such as "Classic".
	Category string `gorm:"type:varchar(255);not null"`

	// Name is the display key of the coffee. Lookups ignore case.
	Name string `gorm:"type:varchar(255);not null;index"`

	// Notes are optional.
	Notes *string `gorm:"type:text"`
}

// TableName returns the table of coffees.
func (Coffee) TableName() string {
	return "coffees"
}

// Size is the final volume of a coffee for one size label.
type Size struct {
	ID uint `gorm:"primaryKey;autoIncrement"`

	// CoffeeID points to the owning coffee.
	CoffeeID uint `gorm:"not null;index"`

	// Label is the size label, for example "standard".
	Label string `gorm:"column:size;type:varchar(255);not null"`

	// FinalVolume is optional, for example "30ml".
	FinalVolume *string `gorm:"type:varchar(255)"`
}

// TableName returns the table of sizes.
func (Size) TableName() string {
	return "coffee_sizes"
}

// Ingredient is the quantity of one ingredient of a coffee for one size.
type Ingredient struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	CoffeeID uint   `gorm:"not null;index"`
	Size     string `gorm:"column:size;type:varchar(255);not null"`

	// Name is the ingredient name, for example "Coffee".
	Name string `gorm:"column:ingredient;type:varchar(255);not null"`

	Quantity *string `gorm:"type:varchar(255)"`
}

// TableName returns the table of ingredients.
func (Ingredient) TableName() string {
	return "ingredients"
}

// Step is a preparation step of a coffee.
type Step struct {
	ID       uint `gorm:"primaryKey;autoIncrement"`
	CoffeeID uint `gorm:"not null;index"`

	// StepNumber is 1-based and orders steps within a coffee.
	StepNumber  int     `gorm:"not null"`
	Title       *string `gorm:"type:varchar(255)"`
	Description *string `gorm:"type:text"`
}

// TableName returns the table of steps.
func (Step) TableName() string {
	return "steps"
}

// SyncRun records a successful catalog sync.
type SyncRun struct {
	ID uint `gorm:"primaryKey;autoIncrement"`

	// RunID is a UUID assigned when the sync starts.
	RunID string `gorm:"type:varchar(36);not null;uniqueIndex"`

	// Host and Port are the cleaned address of the recipe server.
	Host string `gorm:"type:varchar(255);not null"`
	Port string `gorm:"type:varchar(10);not null"`

	StartedAt  time.Time
	FinishedAt time.Time

	// Counts of inserted records.
	Coffees     int
	Sizes       int
	Ingredients int
	Steps       int
}

// TableName returns the table of sync runs.
func (SyncRun) TableName() string {
	return "sync_runs"
}
