// Package csvfile reads and writes delimited files for the story tools.
//
// Files are UTF-8. Reading ignores a leading byte-order mark; writing adds
// one when the dialect asks for it, so spreadsheet applications pick the
// right encoding. Records end in CRLF, and fields are quoted only when they
// contain the delimiter, a quote or a line break.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/custodia-labs/storycsv/internal/core/domain"
	"github.com/custodia-labs/storycsv/internal/core/ports/driven"
	"github.com/custodia-labs/storycsv/internal/logger"
)

// Ensure Codec implements the interface.
var _ driven.TableCodec = (*Codec)(nil)

// Codec is an encoding/csv based TableCodec.
type Codec struct{}

// New creates a new codec.
func New() *Codec {
	return &Codec{}
}

// decodeText reads all of r as UTF-8 without a leading byte-order mark.
// Bytes that are not valid UTF-8 are an error, never replaced.
func decodeText(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("not valid UTF-8: %w", domain.ErrInvalidInput)
	}
	text, _, err := transform.String(unicode.BOMOverride(unicode.UTF8.NewDecoder()), string(raw))
	if err != nil {
		return "", err
	}
	return text, nil
}

// Decode parses delimited records from r.
// Rows may have any number of fields. A blank line is an empty record, so
// it survives as a row of empty fields once the table is normalised; input
// made of nothing but blank lines is an empty table. Quotes that do not
// close a quoted field are kept as text.
func (c *Codec) Decode(r io.Reader, dialect domain.Dialect) (*domain.Table, error) {
	text, err := decodeText(r)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = dialect.Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	fields := 0
	for {
		for n := blankLines(text[reader.InputOffset():]); n > 0; n-- {
			rows = append(rows, []string{})
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing records: %w", err)
		}
		fields += len(record)
		rows = append(rows, record)
	}

	if fields == 0 {
		return &domain.Table{}, nil
	}
	return &domain.Table{Rows: rows}, nil
}

// blankLines counts the empty lines at the start of s.
func blankLines(s string) int {
	n := 0
	for {
		switch {
		case strings.HasPrefix(s, "\r\n"):
			s = s[2:]
		case strings.HasPrefix(s, "\n"):
			s = s[1:]
		default:
			return n
		}
		n++
	}
}

// Encode writes the table to w.
func (c *Codec) Encode(w io.Writer, table *domain.Table, dialect domain.Dialect) error {
	var bw io.WriteCloser = nopCloser{w}
	if dialect.BOM {
		bw = transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	}

	writer := csv.NewWriter(bw)
	writer.Comma = dialect.Delimiter
	writer.UseCRLF = true

	if table != nil {
		if err := writer.WriteAll(table.Rows); err != nil {
			return fmt.Errorf("writing records: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("writing records: %w", err)
	}
	return bw.Close()
}

// ReadFile reads and parses a delimited file.
func (c *Codec) ReadFile(ctx context.Context, path string, dialect domain.Dialect) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	table, err := c.Decode(f, dialect)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("csvfile: read %d rows from %s", len(table.Rows), path)
	return table, nil
}

// WriteFile creates or truncates path and writes the table to it.
func (c *Codec) WriteFile(ctx context.Context, path string, table *domain.Table, dialect domain.Dialect) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := c.Encode(f, table, dialect); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	rows := 0
	if table != nil {
		rows = len(table.Rows)
	}
	logger.Debug("csvfile: wrote %d rows to %s", rows, path)
	return nil
}

// ReadLines returns the physical lines of a text file.
func (c *Codec) ReadLines(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	text, err := decodeText(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return SplitLines(text), nil
}

// SplitLines splits text into lines on LF, CRLF or CR.
// A final line terminator does not add an empty line.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
