package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/soko/internal/browse"
	"github.com/Veraticus/soko/internal/cli"
	"github.com/Veraticus/soko/internal/common"
	"github.com/Veraticus/soko/internal/filter"
	"github.com/Veraticus/soko/internal/model"
	"github.com/Veraticus/soko/internal/tui/themes"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <services|businesses|products>",
		Short: "Print the listings near you",
		Long: `Fetch the listings around your location once and print them as a table.

Filters combine: a listing is shown only when it matches the search text,
the category and the price range.`,
		Args: cobra.ExactArgs(1),
		RunE: runList,
	}

	cmd.Flags().StringP("search", "s", "", "match this text in the name or description")
	cmd.Flags().StringP("category", "c", "", "only show this category (by name)")
	cmd.Flags().StringP("price", "p", "", "price range as min-max, e.g. 500-2000")
	cmd.Flags().Bool("expand", false, fmt.Sprintf("search the wider area (%d km by default)", browse.DefaultExpandedRadiusKm))
	addLocationFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	kind, err := parseListingKind(args[0])
	if err != nil {
		return err
	}

	opts, err := listOptionsFromFlags(cmd)
	if err != nil {
		return err
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	resolver, err := a.resolverFor(cmd)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch kind {
	case model.KindService:
		return writePage(ctx, w, servicePage(a, resolver), opts)
	case model.KindBusiness:
		return writePage(ctx, w, businessPage(a, resolver), opts)
	default:
		return writePage(ctx, w, productPage(a, resolver), opts)
	}
}

func listOptionsFromFlags(cmd *cobra.Command) (listOptions, error) {
	flags := cmd.Flags()
	search, _ := flags.GetString("search")
	category, _ := flags.GetString("category")
	price, _ := flags.GetString("price")
	expand, _ := flags.GetBool("expand")

	price = strings.TrimSpace(price)
	if price != "" && filter.ParsePriceRange(price) == nil {
		return listOptions{}, fmt.Errorf("%w: price range %q must be min-max", common.ErrInvalidInput, price)
	}

	return listOptions{
		search:   search,
		category: category,
		price:    price,
		expand:   expand,
	}, nil
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the marketplace categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			categories, err := a.client.Categories.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			return writeCategories(cmd, categories)
		},
	}
}

func writeCategories(cmd *cobra.Command, categories []model.Category) error {
	out := cmd.OutOrStdout()
	if len(categories) == 0 {
		fmt.Fprintln(out, cli.InfoStyle.Render("No categories found."))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n", "ID", "ICON", "NAME")
	fmt.Fprintf(w, "%s\t%s\t%s\n", strings.Repeat("-", 4), strings.Repeat("-", 4), strings.Repeat("-", 24))
	for _, cat := range categories {
		icon := cat.Icon
		if icon == "" {
			icon = themes.GetCategoryIcon(cat.Name)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", cat.ID, icon, cat.Name)
	}
	return w.Flush()
}
