package driven

import (
	"context"

	"github.com/custodia-labs/storycsv/internal/core/domain"
)

// Normaliser turns a raw manuscript into plain text.
// Each normaliser handles specific MIME types (e.g., PDF, Markdown).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise transforms a raw document into a document whose paragraphs
	// are separated by blank lines.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Document is the normalised document with Content field populated.
	Document domain.Document
}
