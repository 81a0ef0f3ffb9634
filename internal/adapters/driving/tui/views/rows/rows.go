// Package rows provides the row list view of the TUI.
package rows

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/storycsv/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/storycsv/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/storycsv/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/storycsv/internal/core/ports/driving"
)

// ellipsis marks a preview that does not show the whole value.
const ellipsis = "..."

// View lists the data rows of an inspected file, one line per row.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	report       *driving.InspectReport
	selected     int
	scrollOffset int
	width        int
	height       int
	err          error
}

// NewView creates a new rows view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{styles: s, keymap: km, width: 80, height: 24}
}

// SetReport replaces the listed file and resets the selection.
func (v *View) SetReport(report *driving.InspectReport) {
	v.report = report
	v.selected = 0
	v.scrollOffset = 0
	v.err = nil
}

// SetDimensions sets the area available to the view.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.adjustScroll()
}

// Selected returns the 0-based index of the selected row.
func (v *View) Selected() int {
	return v.selected
}

// RowCount returns the number of listed rows.
func (v *View) RowCount() int {
	if v.report == nil {
		return 0
	}
	return len(v.report.Rows)
}

// Update handles messages for the rows view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ReportLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.SetReport(msg.Report)

	case messages.ErrorOccurred:
		v.err = msg.Err
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	last := v.RowCount() - 1
	if last < 0 {
		return v, nil
	}

	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		v.selected--
	case keymap.Matches(k, v.keymap.Down):
		v.selected++
	case keymap.Matches(k, v.keymap.PageUp):
		v.selected -= v.visibleItemCount()
	case keymap.Matches(k, v.keymap.PageDown):
		v.selected += v.visibleItemCount()
	case keymap.Matches(k, v.keymap.Top):
		v.selected = 0
	case keymap.Matches(k, v.keymap.Bottom):
		v.selected = last
	case keymap.Matches(k, v.keymap.Select):
		index := v.selected
		return v, func() tea.Msg {
			return messages.RowSelected{Index: index}
		}
	}

	v.selected = max(0, min(v.selected, last))
	v.adjustScroll()
	return v, nil
}

// adjustScroll keeps the selected row visible.
func (v *View) adjustScroll() {
	visible := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

// visibleItemCount returns the number of rows that fit below the header.
func (v *View) visibleItemCount() int {
	// Title, column list and spacing
	return max(1, v.height-4)
}

// View renders the rows view.
func (v *View) View() string {
	var b strings.Builder

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		return b.String()
	}
	if v.report == nil {
		b.WriteString(v.styles.Muted.Render("Loading..."))
		return b.String()
	}

	title := fmt.Sprintf("%s  (%d rows, %d columns)", v.report.Path, v.report.RowCount, v.report.ColumnCount)
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(v.renderHeaders())
	b.WriteString("\n\n")

	if len(v.report.Rows) == 0 {
		b.WriteString(v.styles.Muted.Render("No data rows."))
		return b.String()
	}

	end := min(len(v.report.Rows), v.scrollOffset+v.visibleItemCount())
	for i := v.scrollOffset; i < end; i++ {
		b.WriteString(v.renderRow(i))
		b.WriteString("\n")
	}
	return b.String()
}

// renderHeaders lists the column names with 1-based indices.
func (v *View) renderHeaders() string {
	parts := make([]string, len(v.report.Headers))
	for i, h := range v.report.Headers {
		parts[i] = fmt.Sprintf("%d. %s", i+1, h)
	}
	return v.styles.Muted.Render(strings.Join(parts, "  "))
}

// renderRow renders "Row i (id: X)" followed by the first non-empty field
// after the id, cut to the remaining width.
func (v *View) renderRow(index int) string {
	row := v.report.Rows[index]
	label := fmt.Sprintf("Row %d (id: %s)", row.Index, row.ID)

	preview, cut := "", false
	for _, f := range row.Fields[min(1, len(row.Fields)):] {
		if f.Value != "" {
			preview, cut = f.Value, f.Truncated
			if cut {
				preview = strings.TrimSuffix(preview, ellipsis)
			}
			break
		}
	}
	room := v.width - len([]rune(label)) - 4
	if r := []rune(preview); len(r) > room {
		preview, cut = string(r[:max(0, room-len(ellipsis))]), true
	}

	if index == v.selected {
		if cut {
			preview += ellipsis
		}
		return v.styles.Selected.Render("> " + label + "  " + preview)
	}
	line := "  " + v.styles.Subtitle.Render(label) + "  " + v.styles.Normal.Render(preview)
	if cut {
		line += v.styles.Truncated.Render(ellipsis)
	}
	return line
}
