// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/storycsv/internal/core/ports/driving"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewRows lists the rows of the inspected file.
	ViewRows ViewType = iota
	// ViewRecord shows every field of one row.
	ViewRecord
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewRows:
		return "rows"
	case ViewRecord:
		return "record"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ReportLoaded carries the inspected file.
type ReportLoaded struct {
	Report *driving.InspectReport
	Err    error
}

// RowSelected is sent when a row is opened. Index is 0-based into the
// report rows.
type RowSelected struct {
	Index int
}

// ExportCompleted signals the comma-delimited export finished.
type ExportCompleted struct {
	Result *driving.ExportResult
	Err    error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
