package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/soko/internal/browse"
	"github.com/Veraticus/soko/internal/cli"
	"github.com/Veraticus/soko/internal/geo"
	"github.com/Veraticus/soko/internal/model"
	"github.com/Veraticus/soko/internal/tui"
	"github.com/Veraticus/soko/internal/tui/themes"
)

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse <services|businesses|products>",
		Short: "Browse listings near you interactively",
		Long: `Open the interactive storefront for one kind of listing.

Listings are fetched around your location. Search with /, cycle categories
with c and price ranges with p, press e to widen the search area and s for
AI search suggestions.`,
		Args: cobra.ExactArgs(1),
		RunE: runBrowse,
	}
	cmd.Flags().String("theme", themes.Default.Name, "color theme ("+strings.Join(themes.Names, ", ")+")")
	addLocationFlags(cmd)
	return cmd
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	kind, err := parseListingKind(args[0])
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

	logFile, err := logToFile(a.cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	title := fmt.Sprintf("%s soko", cli.StoreIcon)
	if user := a.session.User(); user != nil {
		title = fmt.Sprintf("%s soko · %s", cli.StoreIcon, user.Username)
	}
	themeName, _ := cmd.Flags().GetString("theme")
	opts := []tui.Option{tui.WithTitle(title), tui.WithTheme(themes.GetTheme(themeName))}
	slog.Info("Starting browse", "kind", kind, "theme", themeName)

	switch kind {
	case model.KindService:
		return tui.Browse(ctx, servicePage(a, resolver), opts...)
	case model.KindBusiness:
		return tui.Browse(ctx, businessPage(a, resolver), opts...)
	default:
		return tui.Browse(ctx, productPage(a, resolver), opts...)
	}
}

func servicePage(a *app, resolver *geo.Resolver) *browse.Page[model.Service] {
	return browse.NewPage[model.Service](model.KindService, a.client.Services, a.client.Categories, resolver, a.pageOptions()...)
}

func businessPage(a *app, resolver *geo.Resolver) *browse.Page[model.Business] {
	return browse.NewPage[model.Business](model.KindBusiness, a.client.Businesses, a.client.Categories, resolver, a.pageOptions()...)
}

func productPage(a *app, resolver *geo.Resolver) *browse.Page[model.Product] {
	return browse.NewPage[model.Product](model.KindProduct, a.client.Products, a.client.Categories, resolver, a.pageOptions()...)
}

// listOptions are the filters of a one-shot listing.
type listOptions struct {
	search   string
	category string
	price    string
	expand   bool
}

// writePage loads page, applies opts and prints the filtered view. A load
// failure is returned so the command exits non-zero.
func writePage[T model.Listing](ctx context.Context, w io.Writer, page *browse.Page[T], opts listOptions) error {
	if err := page.Load(ctx); err != nil {
		return err
	}
	if opts.expand {
		if err := page.ExpandSearch(ctx); err != nil {
			return err
		}
	}

	page.SetSearchTerm(opts.search)
	page.SetCategory(opts.category)
	page.SetPriceRange(opts.price)

	state := page.Snapshot()
	if state.Warning != "" {
		fmt.Fprintln(w, cli.FormatWarning(state.Warning))
	}

	center := state.Criteria.Center
	fmt.Fprintln(w, cli.FormatInfo(fmt.Sprintf("Showing %s near: %s (%d of %d)",
		state.Kind, center, len(state.View), len(state.Raw))))

	if len(state.View) == 0 {
		fmt.Fprintln(w, cli.InfoStyle.Render(browse.EmptyMessage(state.Kind)))
		return nil
	}

	return cli.WriteListings(w, state.View, &center)
}
