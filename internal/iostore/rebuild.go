package iostore

import (
	"context"
	"log/slog"

	"github.com/cheggaaa/pb/v3"
	"github.com/findcoffee/findcoffee/pkg/catalog"
	"github.com/findcoffee/findcoffee/pkg/schema"
	"github.com/findcoffee/findcoffee/pkg/store"
	"gorm.io/gorm"
)

// Rebuild replaces the four recipe tables with the given recipes in a
// single transaction. Tables are emptied before any insert. For every
// recipe the coffee row is inserted first and its ID is used by its
// sizes, ingredients and steps.
func (s *gormStore) Rebuild(
	ctx context.Context,
	recipes []catalog.Recipe,
	run *schema.SyncRun,
) (store.Counts, error) {
	var res store.Counts
	db, err := s.conn(ctx)
	if err != nil {
		return res, err
	}

	var bar *pb.ProgressBar
	if s.progress && len(recipes) > 0 {
		bar = pb.Full.Start(len(recipes))
		bar.Set("prefix", "Caching recipes: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := truncate(tx); err != nil {
			return err
		}

		var counts store.Counts
		for i := range recipes {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := insertRecipe(tx, &recipes[i], &counts); err != nil {
				return err
			}
			if bar != nil {
				bar.Increment()
			}
		}

		if run != nil {
			run.Coffees = counts.Coffees
			run.Sizes = counts.Sizes
			run.Ingredients = counts.Ingredients
			run.Steps = counts.Steps
			if err := tx.Create(run).Error; err != nil {
				return InsertError(schema.SyncRun{}.TableName(), err)
			}
		}

		res = counts
		return nil
	})
	if err != nil {
		slog.Error("Cache rebuild rolled back", "error", err)
		return store.Counts{}, RebuildError(err)
	}

	slog.Info("Cache rebuilt",
		"coffees", res.Coffees,
		"sizes", res.Sizes,
		"ingredients", res.Ingredients,
		"steps", res.Steps,
	)
	return res, nil
}

func truncate(tx *gorm.DB) error {
	for _, v := range schema.RecipeModels() {
		if err := deleteAll(tx, v, v.TableName()); err != nil {
			return err
		}
	}
	return nil
}

func insertRecipe(
	tx *gorm.DB,
	r *catalog.Recipe,
	counts *store.Counts,
) error {
	coffee := schema.Coffee{
		Category: r.Category,
		Name:     r.Name,
		Notes:    r.Notes,
	}
	if err := tx.Create(&coffee).Error; err != nil {
		return InsertError(coffee.TableName(), err)
	}
	counts.Coffees++

	for _, label := range r.SizeLabels() {
		vol := r.FinalVolume[label]
		size := schema.Size{
			CoffeeID:    coffee.ID,
			Label:       label,
			FinalVolume: &vol,
		}
		if err := tx.Create(&size).Error; err != nil {
			return InsertError(size.TableName(), err)
		}
		counts.Sizes++
	}

	for _, v := range r.IngredientEntries() {
		qty := v.Quantity
		ing := schema.Ingredient{
			CoffeeID: coffee.ID,
			Size:     v.Size,
			Name:     v.Ingredient,
			Quantity: &qty,
		}
		if err := tx.Create(&ing).Error; err != nil {
			return InsertError(ing.TableName(), err)
		}
		counts.Ingredients++
	}

	for _, v := range r.OrderedSteps() {
		step := schema.Step{
			CoffeeID:    coffee.ID,
			StepNumber:  v.Number,
			Title:       v.Title,
			Description: v.Description,
		}
		if err := tx.Create(&step).Error; err != nil {
			return InsertError(step.TableName(), err)
		}
		counts.Steps++
	}
	return nil
}
