// Package components holds the bubbletea building blocks of the browse
// screen.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/soko/internal/geo"
	"github.com/Veraticus/soko/internal/model"
	"github.com/Veraticus/soko/internal/tui/themes"
)

// ListingTableModel shows the filtered listings of one page.
type ListingTableModel[T model.Listing] struct {
	center *model.Coordinate
	theme  themes.Theme
	items  []T
	table  table.Model
	width  int
	height int
}

// NewListingTable creates an empty listing table.
func NewListingTable[T model.Listing](theme themes.Theme) ListingTableModel[T] {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	m := ListingTableModel[T]{
		theme:  theme,
		table:  t,
		width:  80,
		height: 14,
	}
	m.updateColumns()
	return m
}

// SetItems replaces the rows. The cursor is kept when still in range.
func (m *ListingTableModel[T]) SetItems(items []T, center *model.Coordinate) {
	m.items = items
	m.center = center

	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, m.row(item))
	}
	m.table.SetRows(rows)

	if c := m.table.Cursor(); c >= len(items) {
		m.table.SetCursor(max(0, len(items)-1))
	}
}

// Len returns the number of rows.
func (m ListingTableModel[T]) Len() int {
	return len(m.items)
}

// Selected returns the listing under the cursor.
func (m ListingTableModel[T]) Selected() (T, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.items) {
		var zero T
		return zero, false
	}
	return m.items[c], true
}

// Update moves the cursor.
func (m ListingTableModel[T]) Update(msg tea.Msg) (ListingTableModel[T], tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table.
func (m ListingTableModel[T]) View() string {
	return m.table.View()
}

// Resize updates the component size.
func (m *ListingTableModel[T]) Resize(width, height int) {
	m.width = width
	m.height = height
	// Header row and its border take two lines.
	m.table.SetHeight(max(1, height-2))
	m.updateColumns()
}

func (m *ListingTableModel[T]) row(item T) table.Row {
	category, ok := item.CategoryName()
	if ok {
		category = themes.GetCategoryIcon(category) + " " + category
	} else {
		category = "-"
	}

	price := model.PriceText(item)
	if price == "" {
		price = "-"
	}

	distance := "-"
	if m.center != nil {
		if d := geo.DistanceLabel(*m.center, item); d != "" {
			distance = d
		}
	}

	return table.Row{item.DisplayName(), category, price, distance}
}

// updateColumns splits the available width between the columns.
func (m *ListingTableModel[T]) updateColumns() {
	available := max(60, m.width-4)

	m.table.SetColumns([]table.Column{
		{Title: "Name", Width: max(20, int(float64(available)*0.40))},
		{Title: "Category", Width: max(12, int(float64(available)*0.22))},
		{Title: "Price", Width: max(12, int(float64(available)*0.22))},
		{Title: "Distance", Width: max(10, int(float64(available)*0.16))},
	})
}

// EmptyState renders the placeholder shown instead of an empty table.
func EmptyState(theme themes.Theme, message string, width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Muted).
		Italic(true).
		Padding(1, 2)
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(strings.TrimSpace(message))
}
