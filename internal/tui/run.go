package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/soko/internal/browse"
	"github.com/Veraticus/soko/internal/model"
)

// Browse runs the interactive browse screen for page until the user quits
// or ctx is canceled. Load failures are shown on screen, never returned.
func Browse[T model.Listing](ctx context.Context, page *browse.Page[T], opts ...Option) error {
	if page == nil {
		return fmt.Errorf("page is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	program := tea.NewProgram(
		newModel(ctx, page, cfg),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
