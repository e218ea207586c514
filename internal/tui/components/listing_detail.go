package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/soko/internal/geo"
	"github.com/Veraticus/soko/internal/model"
	"github.com/Veraticus/soko/internal/tui/themes"
)

// ListingDetailModel renders the detail pane for the selected listing.
type ListingDetailModel struct {
	listing model.Listing
	center  *model.Coordinate
	theme   themes.Theme
	width   int
	height  int
}

// NewListingDetail creates an empty detail pane.
func NewListingDetail(theme themes.Theme) ListingDetailModel {
	return ListingDetailModel{theme: theme, width: 60}
}

// SetListing selects what the pane shows.
func (m *ListingDetailModel) SetListing(listing model.Listing, center *model.Coordinate) {
	m.listing = listing
	m.center = center
}

// Resize updates the component size.
func (m *ListingDetailModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the detail pane.
func (m ListingDetailModel) View() string {
	if m.listing == nil {
		return ""
	}

	label := lipgloss.NewStyle().Foreground(m.theme.Muted).Width(10)
	line := func(name, value string) string {
		return label.Render(name) + value
	}

	sections := []string{m.theme.Title.Render(m.listing.DisplayName())}
	if summary := strings.TrimSpace(m.listing.Summary()); summary != "" {
		sections = append(sections, m.theme.Normal.Width(max(20, m.width-6)).Render(summary), "")
	}

	if category, ok := m.listing.CategoryName(); ok {
		sections = append(sections, line("Category", themes.GetCategoryIcon(category)+" "+category))
	}
	if price := model.PriceText(m.listing); price != "" {
		sections = append(sections, line("Price", price))
	}

	switch v := m.listing.(type) {
	case model.Service:
		sections = append(sections, line("Area", fmt.Sprintf("%.0f km", v.AreaKm())))
		if v.Provider != nil {
			sections = append(sections, line("Provider", v.Provider.Username))
		}
	case model.Product:
		sections = append(sections, line("Stock", fmt.Sprintf("%s, %d in stock", v.Condition.Label(), v.Stock)))
		if len(v.AITags) > 0 {
			sections = append(sections, line("Tags", strings.Join(v.AITags, ", ")))
		}
	case model.Business:
		if v.Address != "" {
			sections = append(sections, line("Address", v.Address))
		}
		if v.ContactPhone != "" {
			sections = append(sections, line("Phone", v.ContactPhone))
		}
		if v.ContactEmail != "" {
			sections = append(sections, line("Email", v.ContactEmail))
		}
		if v.Verified {
			sections = append(sections, m.theme.StatusSuccess.Render("✓ Verified"))
		}
	}

	if pos, ok := m.listing.Position(); ok {
		where := pos.String()
		if m.center != nil {
			where += "  " + geo.DistanceLabel(*m.center, m.listing)
		}
		sections = append(sections, line("Location", where))
	}

	hint := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("[Esc] Back")
	sections = append(sections, "", hint)

	return m.theme.RoundedBox.
		Width(max(30, m.width-2)).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
