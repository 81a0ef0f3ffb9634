package driven

import (
	"context"

	"github.com/custodia-labs/storycsv/internal/core/domain"
)

// Segmenter splits a normalised document into story segments.
type Segmenter interface {
	// Name returns the segmenter name for logging.
	Name() string

	// Process returns the document's segments in order.
	// Empty content yields no segments and no error.
	Process(ctx context.Context, doc *domain.Document) ([]domain.Segment, error)
}

// SegmenterFactory builds a segmenter for the given bounds.
type SegmenterFactory func(params domain.SegmentParams) Segmenter
