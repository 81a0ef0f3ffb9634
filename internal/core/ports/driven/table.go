package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/storycsv/internal/core/domain"
)

// TableCodec reads and writes delimited files.
// Fields are quoted with '"' only when they contain the delimiter, a quote
// or a line break.
type TableCodec interface {
	// Decode parses delimited records from r. A leading byte-order mark is ignored.
	Decode(r io.Reader, dialect domain.Dialect) (*domain.Table, error)

	// Encode writes the table to w.
	Encode(w io.Writer, table *domain.Table, dialect domain.Dialect) error

	// ReadFile reads and parses a delimited file.
	ReadFile(ctx context.Context, path string, dialect domain.Dialect) (*domain.Table, error)

	// WriteFile creates or truncates path and writes the table to it.
	WriteFile(ctx context.Context, path string, table *domain.Table, dialect domain.Dialect) error

	// ReadLines returns the physical lines of a text file with the BOM
	// removed and line endings normalised. A final newline does not add
	// an empty line.
	ReadLines(ctx context.Context, path string) ([]string, error)
}
