// Package themes holds the color palettes of the browse screen.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Selected      lipgloss.Style
	RoundedBox    lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusPending lipgloss.Style
	Name          string
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
}

// palette is the handful of colors a theme is derived from.
type palette struct {
	primary, onPrimary lipgloss.Color
	text, subtle       lipgloss.Color
	border, muted      lipgloss.Color
	success, warning   lipgloss.Color
	danger, info       lipgloss.Color
}

func newTheme(name string, p palette) Theme {
	status := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}

	return Theme{
		Name:    name,
		Primary: p.primary,
		Muted:   p.muted,
		Border:  p.border,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.primary).MarginBottom(1),
		Subtitle: lipgloss.NewStyle().Foreground(p.subtle),
		Normal:   lipgloss.NewStyle().Foreground(p.text),
		Selected: lipgloss.NewStyle().Background(p.primary).Foreground(p.onPrimary).Bold(true),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(1, 2),

		StatusSuccess: status(p.success),
		StatusWarning: status(p.warning),
		StatusError:   status(p.danger),
		StatusInfo:    status(p.info),
		StatusPending: lipgloss.NewStyle().Foreground(p.muted).Italic(true),
	}
}

// Default is the market orange theme.
var Default = newTheme("market", palette{
	primary:   lipgloss.Color("#f28c28"),
	onPrimary: lipgloss.Color("#1a1a1a"),
	text:      lipgloss.Color("#fafafa"),
	subtle:    lipgloss.Color("#a3a3a3"),
	border:    lipgloss.Color("#404040"),
	muted:     lipgloss.Color("#737373"),
	success:   lipgloss.Color("#10b981"),
	warning:   lipgloss.Color("#f59e0b"),
	danger:    lipgloss.Color("#ef4444"),
	info:      lipgloss.Color("#3b82f6"),
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme("catppuccin-mocha", palette{
	primary:   lipgloss.Color("#cba6f7"),
	onPrimary: lipgloss.Color("#1e1e2e"),
	text:      lipgloss.Color("#cdd6f4"),
	subtle:    lipgloss.Color("#a6adc8"),
	border:    lipgloss.Color("#45475a"),
	muted:     lipgloss.Color("#6c7086"),
	success:   lipgloss.Color("#a6e3a1"),
	warning:   lipgloss.Color("#f9e2af"),
	danger:    lipgloss.Color("#f38ba8"),
	info:      lipgloss.Color("#89dceb"),
})

// Names lists the selectable themes.
var Names = []string{Default.Name, CatppuccinMocha.Name}

// GetTheme returns a theme by name, Default for unknown names.
func GetTheme(name string) Theme {
	switch name {
	case CatppuccinMocha.Name:
		return CatppuccinMocha
	default:
		return Default
	}
}

// CategoryIcons maps the marketplace's categories to emoji icons.
var CategoryIcons = map[string]string{
	"Repairs":          "🔧",
	"Installation":     "🪛",
	"Solar":            "☀️",
	"Phones":           "📱",
	"Computers":        "💻",
	"Components":       "🔌",
	"Microcontrollers": "🤖",
	"Networking":       "📡",
	"Audio":            "🔊",
	"Security":         "📹",
	"Power":            "🔋",
	"Training":         "📚",
}

// GetCategoryIcon returns an icon for a category.
func GetCategoryIcon(category string) string {
	if icon, ok := CategoryIcons[category]; ok {
		return icon
	}
	return "🏷️"
}
