package browse

import (
	"context"
	"log/slog"
	"strings"
)

// Suggest asks the assistant for search phrases related to the current
// term. Suggestions are advisory: on failure they are cleared and the error
// is only logged.
func (p *Page[T]) Suggest(ctx context.Context) []string {
	p.mu.RLock()
	term := strings.TrimSpace(p.criteria.SearchTerm)
	assistant := p.assistant
	p.mu.RUnlock()

	if assistant == nil || term == "" {
		p.setSuggestions(nil)
		return nil
	}

	suggestions, err := assistant.Suggestions(ctx, term)
	if err != nil {
		slog.Warn("Search suggestions unavailable", "error", err)
		suggestions = nil
	}
	p.setSuggestions(suggestions)
	return suggestions
}

// ApplySuggestion makes s the search term and dismisses the suggestions.
func (p *Page[T]) ApplySuggestion(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.criteria = p.criteria.WithSearchTerm(s)
	p.suggestions = nil
	p.recompute()
}

func (p *Page[T]) setSuggestions(s []string) {
	p.mu.Lock()
	p.suggestions = s
	p.mu.Unlock()
}
