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
	"maps"
	"slices"

	"github.com/findcoffee/findcoffee/internal/ioclient"
	"github.com/findcoffee/findcoffee/pkg/catalog"
	"github.com/findcoffee/findcoffee/pkg/schema"
	"github.com/findcoffee/findcoffee/pkg/store"
	"github.com/gnames/gn"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// coffeeView is the printed form of a coffee.
type coffeeView struct {
	Name     string     `json:"name"               yaml:"name"`
	Category string     `json:"category,omitempty" yaml:"category,omitempty"`
	Notes    string     `json:"notes,omitempty"    yaml:"notes,omitempty"`
	ImageURL string     `json:"image_url"          yaml:"image_url"`
	Sizes    []sizeView `json:"sizes"              yaml:"sizes"`
	Steps    []stepView `json:"steps,omitempty"    yaml:"steps,omitempty"`
}

type sizeView struct {
	Size        string           `json:"size"                   yaml:"size"`
	FinalVolume string           `json:"final_volume,omitempty" yaml:"final_volume,omitempty"`
	Ingredients []ingredientView `json:"ingredients"            yaml:"ingredients"`
}

type ingredientView struct {
	Ingredient string `json:"ingredient" yaml:"ingredient"`
	Quantity   string `json:"quantity"   yaml:"quantity"`
}

type stepView struct {
	Number      int    `json:"number"                yaml:"number"`
	Title       string `json:"title,omitempty"       yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// getShowCmd returns the show command.
func getShowCmd() *cobra.Command {
	var (
		size   string
		remote bool
	)

	showCmd := &cobra.Command{
		Use:   "show <coffee>",
		Short: "Show sizes, ingredients and steps of a coffee",
		Long: `Show a coffee from the local cache: its sizes with final volumes,
the ingredients of every size (or only of --size) and preparation steps
in order. The coffee name and size ignore case.

With --remote the ingredients of --size are downloaded from the recipe
server instead.

Examples:
  findcoffee show espresso
  findcoffee show "caffe latte" --size tall
  findcoffee show espresso --format yaml
  findcoffee show espresso --size standard --remote`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runShow(cmd, args[0], size, remote)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	showCmd.Flags().StringVarP(
		&size, "size", "s", "",
		"show ingredients of this size only",
	)
	showCmd.Flags().StringP(
		"format", "f", "text",
		"output format: text, json or yaml",
	)
	showCmd.Flags().BoolVarP(
		&remote, "remote", "r", false,
		"read ingredients from the recipe server (needs --size)",
	)

	return showCmd
}

func runShow(cmd *cobra.Command, name, size string, remote bool) error {
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	host, port := serverAddress(ctx, cmd, st)

	var view *coffeeView
	if remote {
		view, err = remoteCoffee(ctx, host, port, name, size)
	} else {
		view, err = cachedCoffee(ctx, st, name, size)
	}
	if err != nil {
		return err
	}
	view.ImageURL = catalog.ImageURL(host, port, view.Name)

	return writeCoffee(cmd.OutOrStdout(), view, format)
}

func cachedCoffee(
	ctx context.Context,
	st store.Store,
	name, size string,
) (*coffeeView, error) {
	c, err := st.CoffeeByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, CoffeeNotFoundError(name)
	}

	var sizes []schema.Size
	if size == "" {
		if sizes, err = st.SizesForCoffee(ctx, c.ID); err != nil {
			return nil, err
		}
	} else {
		s, err := st.SizeForCoffeeAndName(ctx, c.ID, size)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, SizeNotFoundError(c.Name, size)
		}
		sizes = []schema.Size{*s}
	}

	res := &coffeeView{
		Name:     c.Name,
		Category: c.Category,
		Notes:    deref(c.Notes),
	}

	for _, s := range sizes {
		ings, err := st.IngredientsForCoffeeAndSize(ctx, c.ID, s.Label)
		if err != nil {
			return nil, err
		}
		sv := sizeView{Size: s.Label, FinalVolume: deref(s.FinalVolume)}
		for _, v := range ings {
			sv.Ingredients = append(sv.Ingredients, ingredientView{
				Ingredient: v.Name,
				Quantity:   deref(v.Quantity),
			})
		}
		res.Sizes = append(res.Sizes, sv)
	}

	steps, err := st.StepsForCoffee(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	for _, v := range steps {
		res.Steps = append(res.Steps, stepView{
			Number:      v.StepNumber,
			Title:       deref(v.Title),
			Description: deref(v.Description),
		})
	}
	return res, nil
}

func remoteCoffee(
	ctx context.Context,
	host, port, name, size string,
) (*coffeeView, error) {
	if size == "" {
		return nil, MissingSizeError()
	}

	ings, err := ioclient.New(cfg).FetchIngredients(ctx, host, port, size, name)
	if err != nil {
		return nil, err
	}

	sv := sizeView{Size: size}
	for _, k := range slices.Sorted(maps.Keys(ings)) {
		sv.Ingredients = append(sv.Ingredients, ingredientView{
			Ingredient: k,
			Quantity:   ings[k],
		})
	}
	return &coffeeView{Name: name, Sizes: []sizeView{sv}}, nil
}

func writeCoffee(w io.Writer, view *coffeeView, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	default:
		writeCoffeeText(w, view)
		return nil
	}
}

func writeCoffeeText(w io.Writer, view *coffeeView) {
	fmt.Fprintln(w, view.Name)
	if view.Category != "" {
		fmt.Fprintf(w, "Category: %s\n", view.Category)
	}
	if view.Notes != "" {
		fmt.Fprintf(w, "Notes: %s\n", view.Notes)
	}
	fmt.Fprintf(w, "Image: %s\n", view.ImageURL)

	for _, s := range view.Sizes {
		fmt.Fprintln(w)
		if s.FinalVolume != "" {
			fmt.Fprintf(w, "%s (%s)\n", catalog.DisplayName(s.Size), s.FinalVolume)
		} else {
			fmt.Fprintln(w, catalog.DisplayName(s.Size))
		}
		for _, v := range s.Ingredients {
			fmt.Fprintf(w, "  %-20s %s\n", v.Ingredient, v.Quantity)
		}
	}

	if len(view.Steps) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Steps")
	}
	for _, v := range view.Steps {
		fmt.Fprintf(w, "  %d. %s\n", v.Number, v.Title)
		if v.Description != "" {
			fmt.Fprintf(w, "     %s\n", v.Description)
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
