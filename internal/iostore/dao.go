package iostore

import (
	"context"

	"github.com/findcoffee/findcoffee/pkg/schema"
	"gorm.io/gorm"
)

// deleteAll empties a table. GORM refuses deletes without conditions,
// so the condition is always true.
func deleteAll(db *gorm.DB, model any, table string) error {
	if err := db.Where("1 = 1").Delete(model).Error; err != nil {
		return DeleteError(table, err)
	}
	return nil
}

func (s *gormStore) InsertCoffee(
	ctx context.Context,
	c *schema.Coffee,
) (uint, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return 0, err
	}
	if err = db.Create(c).Error; err != nil {
		return 0, InsertError(schema.Coffee{}.TableName(), err)
	}
	return c.ID, nil
}

func (s *gormStore) DeleteAllCoffees(ctx context.Context) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	return deleteAll(db, &schema.Coffee{}, schema.Coffee{}.TableName())
}

func (s *gormStore) CoffeeByName(
	ctx context.Context,
	name string,
) (*schema.Coffee, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var res []schema.Coffee
	err = db.Where("LOWER(name) = LOWER(?)", name).
		Order("id").Limit(1).Find(&res).Error
	if err != nil {
		return nil, QueryError("coffee "+name, err)
	}
	if len(res) == 0 {
		return nil, nil
	}
	return &res[0], nil
}

func (s *gormStore) CoffeeNames(ctx context.Context) ([]string, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var res []string
	err = db.Model(&schema.Coffee{}).Order("name").Pluck("name", &res).Error
	if err != nil {
		return nil, QueryError("coffee names", err)
	}
	return res, nil
}

func (s *gormStore) InsertSize(
	ctx context.Context,
	sz *schema.Size,
) (uint, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return 0, err
	}
	if err = db.Create(sz).Error; err != nil {
		return 0, InsertError(schema.Size{}.TableName(), err)
	}
	return sz.ID, nil
}

func (s *gormStore) DeleteAllSizes(ctx context.Context) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	return deleteAll(db, &schema.Size{}, schema.Size{}.TableName())
}

func (s *gormStore) SizesForCoffee(
	ctx context.Context,
	coffeeID uint,
) ([]schema.Size, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var res []schema.Size
	err = db.Where("coffee_id = ?", coffeeID).Order("id").Find(&res).Error
	if err != nil {
		return nil, QueryError("sizes", err)
	}
	return res, nil
}

func (s *gormStore) SizeForCoffeeAndName(
	ctx context.Context,
	coffeeID uint,
	size string,
) (*schema.Size, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var res []schema.Size
	err = db.Where("coffee_id = ? AND LOWER(size) = LOWER(?)", coffeeID, size).
		Order("id").Limit(1).Find(&res).Error
	if err != nil {
		return nil, QueryError("size "+size, err)
	}
	if len(res) == 0 {
		return nil, nil
	}
	return &res[0], nil
}

func (s *gormStore) InsertIngredient(
	ctx context.Context,
	ing *schema.Ingredient,
) (uint, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return 0, err
	}
	if err = db.Create(ing).Error; err != nil {
		return 0, InsertError(schema.Ingredient{}.TableName(), err)
	}
	return ing.ID, nil
}

func (s *gormStore) DeleteAllIngredients(ctx context.Context) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	return deleteAll(db, &schema.Ingredient{}, schema.Ingredient{}.TableName())
}

func (s *gormStore) IngredientsForCoffeeAndSize(
	ctx context.Context,
	coffeeID uint,
	size string,
) ([]schema.Ingredient, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var res []schema.Ingredient
	err = db.Where("coffee_id = ? AND LOWER(size) = LOWER(?)", coffeeID, size).
		Order("id").Find(&res).Error
	if err != nil {
		return nil, QueryError("ingredients", err)
	}
	return res, nil
}

func (s *gormStore) InsertStep(
	ctx context.Context,
	st *schema.Step,
) (uint, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return 0, err
	}
	if err = db.Create(st).Error; err != nil {
		return 0, InsertError(schema.Step{}.TableName(), err)
	}
	return st.ID, nil
}

func (s *gormStore) DeleteAllSteps(ctx context.Context) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	return deleteAll(db, &schema.Step{}, schema.Step{}.TableName())
}

func (s *gormStore) StepsForCoffee(
	ctx context.Context,
	coffeeID uint,
) ([]schema.Step, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var res []schema.Step
	err = db.Where("coffee_id = ?", coffeeID).
		Order("step_number").Order("id").Find(&res).Error
	if err != nil {
		return nil, QueryError("steps", err)
	}
	return res, nil
}
