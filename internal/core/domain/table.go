package domain

// Table is a delimited file held in memory.
// The first row is treated as the header and defines the column count.
type Table struct {
	Rows [][]string
}

// Empty reports whether the table has no rows at all.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// Width returns the column count defined by the first row.
func (t *Table) Width() int {
	if t.Empty() {
		return 0
	}
	return len(t.Rows[0])
}

// Header returns the first row, or nil for an empty table.
func (t *Table) Header() []string {
	if t.Empty() {
		return nil
	}
	return t.Rows[0]
}

// Data returns every row after the header.
func (t *Table) Data() [][]string {
	if t.Empty() {
		return nil
	}
	return t.Rows[1:]
}

// Normalised returns a copy whose rows all have the header's width.
// Short rows are padded with empty strings and long rows are truncated.
func (t *Table) Normalised() *Table {
	if t.Empty() {
		return &Table{}
	}
	width := t.Width()
	out := &Table{Rows: make([][]string, len(t.Rows))}
	for i, row := range t.Rows {
		out.Rows[i] = FitRow(row, width)
	}
	return out
}

// FitRow pads or truncates row to exactly width fields.
func FitRow(row []string, width int) []string {
	fitted := make([]string, width)
	copy(fitted, row)
	return fitted
}

// Dialect describes how a delimited file is laid out on disk.
type Dialect struct {
	// Delimiter separates fields.
	Delimiter rune

	// BOM prefixes written files with a UTF-8 byte-order mark.
	BOM bool
}

// Dialects used by the tools.
var (
	// TabDialect reads the tab-delimited exports the repair and inspect tools consume.
	TabDialect = Dialect{Delimiter: '\t'}

	// SpreadsheetDialect writes comma-delimited, BOM-prefixed files that
	// Excel and Google Sheets open with the right encoding.
	SpreadsheetDialect = Dialect{Delimiter: ',', BOM: true}
)
