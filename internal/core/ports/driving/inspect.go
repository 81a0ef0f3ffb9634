package driving

import (
	"context"

	"github.com/custodia-labs/storycsv/internal/core/domain"
)

// InspectService shows and re-exports tab-delimited files.
type InspectService interface {
	// Inspect builds a column-by-column report.
	// An empty file is reported as domain.ErrEmptyFile.
	Inspect(ctx context.Context, req InspectRequest) (*InspectReport, error)

	// Export writes the rows comma-delimited with a byte-order mark.
	Export(ctx context.Context, req ExportRequest) (*ExportResult, error)
}

// InspectRequest configures a report.
type InspectRequest struct {
	Path     string
	MaxRows  int
	MaxWidth int
}

// InspectReport is the displayable view of a file.
type InspectReport struct {
	Path        string
	RowCount    int
	ColumnCount int
	Headers     []string

	// Rows holds up to MaxRows data rows, truncated for display.
	Rows []InspectRow

	// Table is the whole file normalised to the header width.
	Table *domain.Table
}

// InspectRow is one displayed data row.
type InspectRow struct {
	// Index is the 1-based data row number.
	Index int

	// ID is the first field, or "N/A" for an empty row.
	ID string

	Fields []InspectField
}

// InspectField is one labelled value.
type InspectField struct {
	Name      string
	Value     string
	Truncated bool
}

// ExportRequest names the file to export. An empty OutputPath derives
// the name from Path.
type ExportRequest struct {
	Path       string
	OutputPath string
}

// ExportResult summarises an export.
type ExportResult struct {
	OutputPath string
	Rows       int
}
