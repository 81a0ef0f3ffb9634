// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/storycsv/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/storycsv/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StateRecord   State = "record"
	StateExported State = "exported"
	StateError    State = "error"
)

// Bar displays the file name, row position and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	position int
	rowCount int
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateLoading,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - s.styles.StatusBar.GetHorizontalPadding() - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render("Loading...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render("Error: " + s.message)
		}
		return s.styles.Error.Render("Error")
	case StateExported:
		return s.styles.Success.Render("Exported to " + s.message)
	case StateReady, StateRecord:
		if s.rowCount == 0 {
			return s.styles.Muted.Render("No rows")
		}
		return s.styles.Normal.Render(fmt.Sprintf("row %d/%d", s.position, s.rowCount))
	}
	return ""
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state == StateRecord {
		bindings = s.keymap.RecordHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the error text or the export path.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetPosition sets the 1-based selected row and the row total.
func (s *Bar) SetPosition(position, rowCount int) {
	s.position = position
	s.rowCount = rowCount
}

// Position returns the selected row and the row total.
func (s *Bar) Position() (position, rowCount int) {
	return s.position, s.rowCount
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}
