package tui

// Fetch results. The page has already committed or dropped the response by
// the time these arrive; they only trigger a redraw.
type loadedMsg struct {
	err error
}

type expandedMsg struct {
	err error
}

type suggestionsMsg struct {
	suggestions []string
}
