package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/soko/internal/browse"
	"github.com/Veraticus/soko/internal/model"
)

// loadPage runs the initial page load.
func loadPage[T model.Listing](ctx context.Context, page *browse.Page[T]) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: page.Load(ctx)}
	}
}

// expandSearch refetches with the expanded radius.
func expandSearch[T model.Listing](ctx context.Context, page *browse.Page[T]) tea.Cmd {
	return func() tea.Msg {
		return expandedMsg{err: page.ExpandSearch(ctx)}
	}
}

// fetchSuggestions asks the assistant for related search phrases.
func fetchSuggestions[T model.Listing](ctx context.Context, page *browse.Page[T]) tea.Cmd {
	return func() tea.Msg {
		return suggestionsMsg{suggestions: page.Suggest(ctx)}
	}
}
