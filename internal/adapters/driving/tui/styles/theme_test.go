package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme_AccentsAreDistinct(t *testing.T) {
	theme := DefaultTheme()
	require.NotNil(t, theme)

	seen := make(map[lipgloss.Color]bool)
	for _, c := range []lipgloss.Color{theme.Primary, theme.Secondary, theme.Success, theme.Warning, theme.Error} {
		assert.NotEmpty(t, string(c))
		assert.False(t, seen[c], "duplicate accent %s", c)
		seen[c] = true
	}
}

func TestNewStyles_NilTheme(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestNewStyles_UsesTheme(t *testing.T) {
	theme := DefaultTheme()
	theme.Primary = lipgloss.Color("#000001")
	s := NewStyles(theme)

	assert.Same(t, theme, s.Theme())
	assert.Equal(t, lipgloss.Color("#000001"), s.Title.GetForeground())
	assert.Equal(t, lipgloss.Color("#000001"), s.Selected.GetBackground())
}

func TestDefaultStyles_Initialised(t *testing.T) {
	s := DefaultStyles()

	for name, style := range map[string]lipgloss.Style{
		"title":      s.Title,
		"subtitle":   s.Subtitle,
		"field name": s.FieldName,
		"normal":     s.Normal,
		"muted":      s.Muted,
		"selected":   s.Selected,
		"truncated":  s.Truncated,
		"status bar": s.StatusBar,
		"help":       s.Help,
	} {
		assert.NotEqual(t, lipgloss.Style{}, style, name)
	}
}

func TestNewStyles_TruncatedUsesWarningColour(t *testing.T) {
	theme := DefaultTheme()
	theme.Warning = lipgloss.Color("#000002")

	assert.Equal(t, lipgloss.Color("#000002"), NewStyles(theme).Truncated.GetForeground())
}
