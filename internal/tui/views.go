package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/soko/internal/browse"
	"github.com/Veraticus/soko/internal/filter"
	"github.com/Veraticus/soko/internal/tui/components"
)

// View renders the UI.
func (m Model[T]) View() string {
	if m.quitting {
		return ""
	}

	if m.mode == ModeDetail {
		return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.detail.View())
	}

	sections := []string{m.renderHeader(), m.renderFilters()}
	if m.mode == ModeSearch {
		sections = append(sections, m.search.View())
	}
	sections = append(sections, m.renderBanners()...)
	sections = append(sections, m.renderBody(), m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title and the search centre.
func (m Model[T]) renderHeader() string {
	title := m.config.Title
	if title == "" {
		title = kindTitle(string(m.state.Kind))
	}

	where := "Locating you..."
	if m.state.Located {
		where = fmt.Sprintf("Showing %s near: %s", m.state.Kind, m.state.Criteria.Center)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.UnsetMarginBottom().Render(title),
		m.theme.Subtitle.Render(where),
	)
}

// renderFilters renders the active criteria on one line.
func (m Model[T]) renderFilters() string {
	c := m.state.Criteria
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)

	search := "-"
	if c.SearchTerm != "" {
		search = fmt.Sprintf("%q", c.SearchTerm)
	}
	category := "All Categories"
	if c.CategoryName != "" {
		category = c.CategoryName
	}

	parts := []string{
		muted.Render("Search: ") + search,
		muted.Render("Category: ") + category,
		muted.Render("Price: ") + filter.PriceLabel(c.PriceToken),
		muted.Render("Radius: ") + fmt.Sprintf("%.0f km", c.RadiusKm),
		muted.Render(fmt.Sprintf("%d of %d", len(m.state.View), len(m.state.Raw))),
	}
	return strings.Join(parts, muted.Render("  │  "))
}

// renderBanners renders the location advisory, the page error, the AI
// suggestions and any transient notice.
func (m Model[T]) renderBanners() []string {
	var banners []string

	if m.state.Warning != "" {
		banners = append(banners, m.theme.StatusWarning.Render("⚠ "+m.state.Warning))
	}
	if m.state.Err != "" {
		banners = append(banners, m.theme.StatusError.Render("✗ "+m.state.Err))
	}
	if len(m.state.Suggestions) > 0 {
		items := make([]string, 0, len(m.state.Suggestions))
		for i, s := range m.state.Suggestions {
			if i == 9 {
				break
			}
			items = append(items, fmt.Sprintf("[%d] %s", i+1, s))
		}
		banners = append(banners, m.theme.StatusInfo.Render("Try: ")+strings.Join(items, "  "))
	}
	if m.notice != "" {
		banners = append(banners, m.theme.StatusPending.Render(m.notice))
	}

	return banners
}

// renderBody renders the table, the loading indicator or the empty state.
func (m Model[T]) renderBody() string {
	switch {
	case !m.loaded, m.state.Loading && len(m.state.View) == 0:
		return lipgloss.NewStyle().Padding(1, 2).
			Render(m.spinner.View() + " Loading " + string(m.state.Kind) + "...")
	case len(m.state.View) == 0:
		return components.EmptyState(m.theme, browse.EmptyMessage(m.state.Kind), m.width)
	default:
		return m.table.View()
	}
}

// renderFooter renders the key hints.
func (m Model[T]) renderFooter() string {
	return m.help.View(m.keymap)
}

func kindTitle(kind string) string {
	if kind == "" {
		return "soko"
	}
	return strings.ToUpper(kind[:1]) + kind[1:]
}
