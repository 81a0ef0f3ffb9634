// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette of the row browser.
type Theme struct {
	// Primary is the main accent colour, used for titles and the selection.
	Primary lipgloss.Color

	// Secondary marks column names.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for row numbers, hints and empty fields.
	Muted lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Bar is the status bar background.
	Bar lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#D97706"), // Amber
		Secondary:  lipgloss.Color("#0EA5E9"), // Sky
		Foreground: lipgloss.Color("#E7E5E4"), // Stone
		Muted:      lipgloss.Color("#78716C"),
		Success:    lipgloss.Color("#84CC16"),
		Warning:    lipgloss.Color("#FACC15"),
		Error:      lipgloss.Color("#EF4444"),
		Bar:        lipgloss.Color("#1C1917"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for the file header.
	Title lipgloss.Style

	// Subtitle style for section headers such as "Row 3 (id: 7)".
	Subtitle lipgloss.Style

	// FieldName style for column names.
	FieldName lipgloss.Style

	// Normal style for field values.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for the highlighted row.
	Selected lipgloss.Style

	// Truncated style for the marker after a cut value.
	Truncated lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground),

		FieldName: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Bar).
			Background(theme.Primary),

		Truncated: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
