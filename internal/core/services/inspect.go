package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/storycsv/internal/core/domain"
	"github.com/custodia-labs/storycsv/internal/core/ports/driven"
	"github.com/custodia-labs/storycsv/internal/core/ports/driving"
)

// Ellipsis marks a value cut for display.
const Ellipsis = "..."

// ExportSuffix replaces ".csv" in exported file names.
const ExportSuffix = "_excel.csv"

// Ensure InspectService implements the interface.
var _ driving.InspectService = (*InspectService)(nil)

// InspectService shows and re-exports tab-delimited files.
type InspectService struct {
	codec driven.TableCodec
}

// NewInspectService creates a new inspect service.
func NewInspectService(codec driven.TableCodec) *InspectService {
	return &InspectService{codec: codec}
}

// Inspect reads a tab-delimited file and builds a report of its first rows.
func (s *InspectService) Inspect(ctx context.Context, req driving.InspectRequest) (*driving.InspectReport, error) {
	if s.codec == nil {
		return nil, domain.ErrNotImplemented
	}
	if req.MaxRows < 0 || req.MaxWidth < 1 {
		return nil, fmt.Errorf("rows %d, width %d: %w", req.MaxRows, req.MaxWidth, domain.ErrInvalidInput)
	}

	table, err := s.codec.ReadFile(ctx, req.Path, domain.TabDialect)
	if err != nil {
		return nil, err
	}
	if table.Empty() {
		return nil, fmt.Errorf("%s: %w", req.Path, domain.ErrEmptyFile)
	}

	normalised := table.Normalised()
	headers := normalised.Header()
	report := &driving.InspectReport{
		Path:        req.Path,
		RowCount:    len(table.Rows),
		ColumnCount: table.Width(),
		Headers:     headers,
		Table:       normalised,
	}

	data := normalised.Data()
	n := min(req.MaxRows, len(data))
	report.Rows = make([]driving.InspectRow, 0, n)
	for i := 0; i < n; i++ {
		row := driving.InspectRow{
			Index:  i + 1,
			ID:     "N/A",
			Fields: make([]driving.InspectField, len(headers)),
		}
		if raw := table.Rows[i+1]; len(raw) > 0 {
			row.ID = raw[0]
		}
		for col, name := range headers {
			value, cut := Truncate(data[i][col], req.MaxWidth)
			row.Fields[col] = driving.InspectField{Name: name, Value: value, Truncated: cut}
		}
		report.Rows = append(report.Rows, row)
	}

	return report, nil
}

// Export writes the rows of a tab-delimited file comma-delimited with a
// byte-order mark. Rows are written as read, without width normalisation.
func (s *InspectService) Export(ctx context.Context, req driving.ExportRequest) (*driving.ExportResult, error) {
	if s.codec == nil {
		return nil, domain.ErrNotImplemented
	}

	output := req.OutputPath
	if output == "" {
		output = ExportName(req.Path)
	}
	if output == req.Path {
		return nil, fmt.Errorf("export would overwrite %s: %w", req.Path, domain.ErrInvalidInput)
	}

	table, err := s.codec.ReadFile(ctx, req.Path, domain.TabDialect)
	if err != nil {
		return nil, err
	}

	if err := s.codec.WriteFile(ctx, output, table, domain.SpreadsheetDialect); err != nil {
		return nil, err
	}
	return &driving.ExportResult{OutputPath: output, Rows: len(table.Rows)}, nil
}

// ExportName derives the export file name: every ".csv" becomes
// "_excel.csv". Names without ".csv" get the suffix appended.
func ExportName(path string) string {
	if !strings.Contains(path, ".csv") {
		return path + ExportSuffix
	}
	return strings.ReplaceAll(path, ".csv", ExportSuffix)
}

// Truncate cuts s to width characters and appends Ellipsis when it is
// longer. It reports whether s was cut.
func Truncate(s string, width int) (string, bool) {
	if utf8.RuneCountInString(s) <= width {
		return s, false
	}
	runes := []rune(s)
	return string(runes[:width]) + Ellipsis, true
}
