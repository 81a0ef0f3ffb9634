// Package pdf extracts manuscript text from PDF files.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/storycsv/internal/core/domain"
	"github.com/custodia-labs/storycsv/internal/core/ports/driven"
	"github.com/custodia-labs/storycsv/internal/logger"
	"github.com/custodia-labs/storycsv/internal/normalisers/textutil"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles PDF documents.
type Normaliser struct{}

// New creates a new PDF normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise extracts the plain text of every page. Pages are separated by
// a blank line so a page break always ends a paragraph.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	reader, err := pdf.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", domain.ErrInvalidInput)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Warn("pdf: skipping page %d of %s: %v", i, raw.URI, err)
			continue
		}
		pages = append(pages, text)
	}

	return &driven.NormaliseResult{
		Document: textutil.NewDocument(raw, "", joinPages(pages), "pdf"),
	}, nil
}

// joinPages tidies each page and joins the non-empty ones with a blank line.
func joinPages(pages []string) string {
	kept := make([]string, 0, len(pages))
	for _, page := range pages {
		if page = textutil.TidyParagraphs(page); page != "" {
			kept = append(kept, page)
		}
	}
	return strings.Join(kept, domain.ParagraphSeparator)
}
