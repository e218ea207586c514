package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/soko/internal/geo"
	"github.com/Veraticus/soko/internal/model"
)

const maxNameWidth = 40

// WriteListings prints items as an aligned table. The distance column is
// included when center is known.
func WriteListings[T model.Listing](w io.Writer, items []T, center *model.Coordinate) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := "ID\tNAME\tCATEGORY\tPRICE"
	if center != nil {
		header += "\tDISTANCE"
	}
	if _, err := fmt.Fprintln(tw, header); err != nil {
		return fmt.Errorf("failed to write table header: %w", err)
	}

	for _, item := range items {
		category, ok := item.CategoryName()
		if !ok {
			category = "-"
		}
		price := model.PriceText(item)
		if price == "" {
			price = "-"
		}

		row := []string{
			strconv.Itoa(item.ListingID()),
			truncate(item.DisplayName(), maxNameWidth),
			category,
			price,
		}
		if center != nil {
			dist := geo.DistanceLabel(*center, item)
			if dist == "" {
				dist = "-"
			}
			row = append(row, dist)
		}

		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return fmt.Errorf("failed to write listing %d: %w", item.ListingID(), err)
		}
	}

	return tw.Flush()
}

// RenderListing renders the detail box for one listing.
func RenderListing(item model.Listing, center *model.Coordinate) string {
	var b strings.Builder

	if summary := strings.TrimSpace(item.Summary()); summary != "" {
		b.WriteString(summary)
		b.WriteString("\n\n")
	}
	if category, ok := item.CategoryName(); ok {
		fmt.Fprintf(&b, "%s %s\n", SubtleStyle.Render("Category:"), category)
	}
	if price := model.PriceText(item); price != "" {
		fmt.Fprintf(&b, "%s %s\n", SubtleStyle.Render("Price:   "), price)
	}

	switch v := item.(type) {
	case model.Service:
		fmt.Fprintf(&b, "%s %.0f km\n", SubtleStyle.Render("Area:    "), v.AreaKm())
		if v.Provider != nil {
			fmt.Fprintf(&b, "%s %s\n", SubtleStyle.Render("Provider:"), v.Provider.Username)
		}
	case model.Product:
		fmt.Fprintf(&b, "%s %s, %d in stock\n", SubtleStyle.Render("Stock:   "), v.Condition.Label(), v.Stock)
		if len(v.AITags) > 0 {
			fmt.Fprintf(&b, "%s %s\n", SubtleStyle.Render("Tags:    "), strings.Join(v.AITags, ", "))
		}
	case model.Business:
		if v.Address != "" {
			fmt.Fprintf(&b, "%s %s\n", SubtleStyle.Render("Address: "), v.Address)
		}
		if contact := strings.TrimSpace(v.ContactPhone + " " + v.ContactEmail); contact != "" {
			fmt.Fprintf(&b, "%s %s\n", SubtleStyle.Render("Contact: "), contact)
		}
	}

	if pos, ok := item.Position(); ok {
		line := PinIcon + " " + pos.String()
		if center != nil {
			line += " (" + geo.DistanceLabel(*center, item) + ")"
		}
		b.WriteString(line)
	}

	return RenderBox(kindIcon(item.Kind())+" "+item.DisplayName(), strings.TrimRight(b.String(), "\n"))
}

func kindIcon(kind model.Kind) string {
	switch kind {
	case model.KindBusiness:
		return BusinessIcon
	case model.KindProduct:
		return ProductIcon
	default:
		return ServiceIcon
	}
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
