// Package record provides the single-row view of the TUI.
package record

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/storycsv/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/storycsv/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/storycsv/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/storycsv/internal/core/ports/driving"
)

// View shows every field of one row at full length, wrapped to the
// terminal width.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	title        string
	names        []string
	values       []string
	lines        []string
	scrollOffset int
	width        int
	height       int
}

// NewView creates a new record view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{styles: s, keymap: km, width: 80, height: 24}
}

// SetRow shows the data row at index of report. Values come from the
// report table, so they are not cut.
func (v *View) SetRow(report *driving.InspectReport, index int) {
	v.scrollOffset = 0
	v.title, v.names, v.values = "", nil, nil
	if report != nil && index >= 0 && index < len(report.Rows) {
		row := report.Rows[index]
		v.title = fmt.Sprintf("Row %d (id: %s)", row.Index, row.ID)
		v.names = report.Headers

		if data := report.Table.Data(); index < len(data) {
			v.values = data[index]
		} else {
			v.values = make([]string, len(row.Fields))
			for i, f := range row.Fields {
				v.values[i] = f.Value
			}
		}
	}
	v.wrap()
}

// SetDimensions sets the area available to the view.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.wrap()
}

// Title returns the heading of the shown row.
func (v *View) Title() string {
	return v.title
}

// LineCount returns the number of rendered field lines.
func (v *View) LineCount() int {
	return len(v.lines)
}

// ScrollOffset returns the first visible line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}

// Update handles messages for the record view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	k := keyMsg.String()
	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewRows}
		}
	case keymap.Matches(k, v.keymap.Up):
		v.scrollOffset--
	case keymap.Matches(k, v.keymap.Down):
		v.scrollOffset++
	case keymap.Matches(k, v.keymap.PageUp):
		v.scrollOffset -= v.visibleLines()
	case keymap.Matches(k, v.keymap.PageDown):
		v.scrollOffset += v.visibleLines()
	case keymap.Matches(k, v.keymap.Top):
		v.scrollOffset = 0
	case keymap.Matches(k, v.keymap.Bottom):
		v.scrollOffset = v.maxScrollOffset()
	}
	v.scrollOffset = max(0, min(v.scrollOffset, v.maxScrollOffset()))
	return v, nil
}

// wrap lays the fields out as lines: the numbered column name, then the
// value wrapped and indented.
func (v *View) wrap() {
	contentWidth := max(20, v.width-4)
	v.lines = v.lines[:0]

	for i, name := range v.names {
		v.lines = append(v.lines, v.styles.FieldName.Render(fmt.Sprintf("%d. %s", i+1, name)))
		value := ""
		if i < len(v.values) {
			value = v.values[i]
		}
		if value == "" {
			v.lines = append(v.lines, "    "+v.styles.Muted.Render("(empty)"))
			continue
		}
		for _, line := range wrapRunes(value, contentWidth) {
			v.lines = append(v.lines, "    "+v.styles.Normal.Render(line))
		}
	}
}

// wrapRunes splits s on newlines and cuts each line every width characters.
func wrapRunes(s string, width int) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		r := []rune(line)
		for len(r) > width {
			out = append(out, string(r[:width]))
			r = r[width:]
		}
		out = append(out, string(r))
	}
	return out
}

func (v *View) visibleLines() int {
	// Title and spacing
	return max(1, v.height-2)
}

func (v *View) maxScrollOffset() int {
	return max(0, len(v.lines)-v.visibleLines())
}

// View renders the record view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.title))
	b.WriteString("\n\n")

	end := min(len(v.lines), v.scrollOffset+v.visibleLines())
	for i := v.scrollOffset; i < end; i++ {
		b.WriteString(v.lines[i])
		b.WriteString("\n")
	}
	return b.String()
}
