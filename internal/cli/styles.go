// Package cli provides styled terminal output, prompts and tables for the
// one-shot soko commands.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/soko/internal/tui/themes"
)

// Message styles share the browse screen's default palette.
var (
	TitleStyle   = themes.Default.Title
	SuccessStyle = themes.Default.StatusSuccess
	WarningStyle = themes.Default.StatusWarning
	ErrorStyle   = themes.Default.StatusError
	InfoStyle    = lipgloss.NewStyle().Foreground(themes.Default.StatusInfo.GetForeground())
	SubtleStyle  = lipgloss.NewStyle().Foreground(themes.Default.Muted)
	BoxStyle     = themes.Default.RoundedBox
	PromptStyle  = lipgloss.NewStyle().Bold(true).Foreground(themes.Default.Primary)
)

// Icons.
const (
	SuccessIcon  = "✓"
	ErrorIcon    = "✗"
	WarningIcon  = "⚠️"
	InfoIcon     = "ℹ️"
	StoreIcon    = "🛒"
	PinIcon      = "📍"
	RobotIcon    = "🤖"
	ServiceIcon  = "🔧"
	BusinessIcon = "🏪"
	ProductIcon  = "📦"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the store icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(StoreIcon + " " + title)
}

// FormatPrompt formats a prompt label.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, boxTitle, content))
}
