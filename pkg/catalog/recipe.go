// Package catalog describes the recipe catalog served by a recipe server
// and contains pure helpers for addressing the server and presenting
// coffees. It performs no I/O.
package catalog

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Recipe is one element of the JSON array returned by the catalog
// endpoint.
type Recipe struct {
	// Category is a label such as "Classic" or "Milk based".
	Category string `json:"category"`

	// Name is the display key of a coffee, unique within a catalog.
	Name string `json:"name"`

	// Notes is optional free text.
	Notes *string `json:"notes,omitempty"`

	// FinalVolume maps a size label to the final volume of the drink.
	FinalVolume map[string]string `json:"final_volume"`

	// Ingredients maps a size label to ingredient quantities for that size.
	Ingredients map[string]map[string]string `json:"ingredients"`

	// Steps maps a 1-based step number written as a string to the step.
	Steps map[string]StepInfo `json:"steps"`
}

// StepInfo is a preparation step as it appears in the catalog.
type StepInfo struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Step is a StepInfo together with its parsed number.
type Step struct {
	Number int
	StepInfo
}

// IngredientEntry is a flattened (size, ingredient, quantity) triple.
type IngredientEntry struct {
	Size       string
	Ingredient string
	Quantity   string
}

// Validate checks the fields that cannot be missing from a recipe.
// Step keys must be distinct numbers starting from 1.
func (r Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return RecordError(r.Name, "name is missing")
	}
	if strings.TrimSpace(r.Category) == "" {
		return RecordError(r.Name, "category is missing")
	}
	seen := make(map[int]string, len(r.Steps))
	for k := range r.Steps {
		num, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return RecordError(r.Name, "step key '"+k+"' is not a number")
		}
		if num < 1 {
			return RecordError(r.Name, "step key '"+k+"' is below 1")
		}
		if prev, ok := seen[num]; ok {
			return RecordError(r.Name,
				"step keys '"+prev+"' and '"+k+"' have the same number")
		}
		seen[num] = k
	}
	return nil
}

// SizeLabels returns size labels of the final-volume map in sorted order.
func (r Recipe) SizeLabels() []string {
	return slices.Sorted(maps.Keys(r.FinalVolume))
}

// IngredientEntries flattens the ingredients map. Entries are sorted by
// size label and then by ingredient name.
func (r Recipe) IngredientEntries() []IngredientEntry {
	var res []IngredientEntry
	for _, size := range slices.Sorted(maps.Keys(r.Ingredients)) {
		ings := r.Ingredients[size]
		for _, name := range slices.Sorted(maps.Keys(ings)) {
			res = append(res, IngredientEntry{
				Size:       size,
				Ingredient: name,
				Quantity:   ings[name],
			})
		}
	}
	return res
}

// OrderedSteps parses step keys and returns steps by ascending number.
// Keys that are not numbers are skipped, Validate reports them.
func (r Recipe) OrderedSteps() []Step {
	res := make([]Step, 0, len(r.Steps))
	for k, v := range r.Steps {
		num, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			continue
		}
		res = append(res, Step{Number: num, StepInfo: v})
	}
	slices.SortFunc(res, func(a, b Step) int {
		return a.Number - b.Number
	})
	return res
}
