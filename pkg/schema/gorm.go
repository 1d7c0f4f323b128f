package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&Coffee{},
		&Size{},
		&Ingredient{},
		&Step{},
		&SyncRun{},
	}
}

// Table is a model with a fixed table name.
type Table interface {
	TableName() string
}

// RecipeModels returns the four models rebuilt on every sync, in the
// order they are emptied.
func RecipeModels() []Table {
	return []Table{
		&Coffee{},
		&Size{},
		&Ingredient{},
		&Step{},
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
