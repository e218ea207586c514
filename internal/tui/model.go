// Package tui implements the interactive browse screen.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/soko/internal/browse"
	"github.com/Veraticus/soko/internal/filter"
	"github.com/Veraticus/soko/internal/model"
	"github.com/Veraticus/soko/internal/tui/components"
	"github.com/Veraticus/soko/internal/tui/themes"
)

// Mode is what the keyboard currently drives.
type Mode int

// Modes.
const (
	ModeBrowse Mode = iota
	ModeSearch
	ModeDetail
)

// Model holds the browse screen state. The listings themselves live in the
// page; the model keeps a snapshot for rendering.
type Model[T model.Listing] struct {
	ctx        context.Context
	page       *browse.Page[T]
	theme      themes.Theme
	state      browse.State[T]
	notice     string
	prevSearch string
	config     Config
	keymap     KeyMap
	help       help.Model
	search     textinput.Model
	spinner    spinner.Model
	table      components.ListingTableModel[T]
	detail     components.ListingDetailModel
	mode       Mode
	width      int
	height     int
	showHelp   bool
	loaded     bool
	quitting   bool
}

// newModel creates a new model for page.
func newModel[T model.Listing](ctx context.Context, page *browse.Page[T], cfg Config) Model[T] {
	search := textinput.New()
	search.Placeholder = "Search by name or description..."
	search.CharLimit = 80
	search.Prompt = "/ "

	m := Model[T]{
		ctx:     ctx,
		page:    page,
		config:  cfg,
		theme:   cfg.Theme,
		keymap:  DefaultKeyMap(),
		help:    help.New(),
		search:  search,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		table:   components.NewListingTable[T](cfg.Theme),
		detail:  components.NewListingDetail(cfg.Theme),
		width:   cfg.Width,
		height:  cfg.Height,
	}
	m.refresh()
	m.handleResize()
	return m
}

// Init starts the page load.
func (m Model[T]) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadPage(m.ctx, m.page))
}

// Update handles messages and updates the model.
func (m Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case loadedMsg:
		m.loaded = true
		m.refresh()
		return m, nil

	case expandedMsg:
		m.refresh()
		return m, nil

	case suggestionsMsg:
		m.refresh()
		if len(msg.suggestions) == 0 {
			m.notice = "No suggestions available"
		}
		return m, nil

	case spinner.TickMsg:
		if m.loaded && !m.page.Snapshot().Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.mode {
		case ModeSearch:
			return m.handleSearchKeys(msg)
		case ModeDetail:
			return m.handleDetailKeys(msg)
		default:
			return m.handleBrowseKeys(msg)
		}
	}

	return m, nil
}

// handleBrowseKeys handles key presses over the listing table.
func (m Model[T]) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keymap.Search):
		m.mode = ModeSearch
		m.prevSearch = m.state.Criteria.SearchTerm
		m.search.SetValue(m.prevSearch)
		m.search.CursorEnd()
		return m, m.search.Focus()

	case key.Matches(msg, m.keymap.Category):
		m.page.SetCategory(nextOption(m.categoryOptions(), m.state.Criteria.CategoryName))
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.Price):
		m.page.SetPriceRange(nextOption(priceTokens(), m.state.Criteria.PriceToken))
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		m.page.ResetFilters()
		m.search.SetValue("")
		m.refresh()
		m.notice = "Filters cleared"
		return m, nil

	case key.Matches(msg, m.keymap.Expand):
		m.notice = "Expanding search area..."
		return m, tea.Batch(m.spinner.Tick, expandSearch(m.ctx, m.page))

	case key.Matches(msg, m.keymap.Suggest):
		if strings.TrimSpace(m.state.Criteria.SearchTerm) == "" {
			m.notice = "Search for something first, then ask for suggestions"
			return m, nil
		}
		m.notice = "Asking for suggestions..."
		return m, fetchSuggestions(m.ctx, m.page)

	case key.Matches(msg, m.keymap.Pick):
		i := int(msg.Runes[0] - '1')
		if i < len(m.state.Suggestions) {
			m.page.ApplySuggestion(m.state.Suggestions[i])
			m.search.SetValue(m.state.Suggestions[i])
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Select):
		if item, ok := m.table.Selected(); ok {
			m.detail.SetListing(item, m.center())
			m.mode = ModeDetail
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleSearchKeys filters as the user types. Enter keeps the term, Esc
// restores the previous one.
func (m Model[T]) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = ModeBrowse
		m.search.Blur()
		return m, nil

	case tea.KeyEsc:
		m.mode = ModeBrowse
		m.search.Blur()
		m.search.SetValue(m.prevSearch)
		m.page.SetSearchTerm(m.prevSearch)
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if term := m.search.Value(); term != m.state.Criteria.SearchTerm {
		m.page.SetSearchTerm(term)
		m.refresh()
	}
	return m, cmd
}

// handleDetailKeys handles key presses while the detail pane is open.
func (m Model[T]) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Back), key.Matches(msg, m.keymap.Select):
		m.mode = ModeBrowse
	}
	return m, nil
}

// refresh re-reads the page and rebuilds the table rows.
func (m *Model[T]) refresh() {
	m.state = m.page.Snapshot()
	m.table.SetItems(m.state.View, m.center())
}

func (m Model[T]) center() *model.Coordinate {
	if !m.state.Located {
		return nil
	}
	c := m.state.Criteria.Center
	return &c
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model[T]) handleResize() {
	m.help.Width = m.width
	m.search.Width = max(20, m.width-10)
	// Header, filter bar, banners and footer take about ten lines.
	m.table.Resize(m.width, max(5, m.height-10))
	m.detail.Resize(m.width, m.height-4)
}

// categoryOptions is "" (all categories) followed by every category name.
func (m Model[T]) categoryOptions() []string {
	opts := make([]string, 0, len(m.state.Categories)+1)
	opts = append(opts, "")
	for _, c := range m.state.Categories {
		opts = append(opts, c.Name)
	}
	return opts
}

func priceTokens() []string {
	tokens := make([]string, len(filter.PriceOptions))
	for i, opt := range filter.PriceOptions {
		tokens[i] = opt.Token
	}
	return tokens
}

// nextOption returns the option after current, wrapping around. An unknown
// current value restarts at the first option.
func nextOption(options []string, current string) string {
	if len(options) == 0 {
		return ""
	}
	for i, opt := range options {
		if opt == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

// Mode returns the current input mode.
func (m Model[T]) Mode() Mode {
	return m.mode
}
