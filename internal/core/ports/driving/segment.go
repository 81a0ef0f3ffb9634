package driving

import (
	"context"

	"github.com/custodia-labs/storycsv/internal/core/domain"
)

// SegmentService converts book manuscripts into story CSV files.
type SegmentService interface {
	// Convert reads the manuscript, segments it and writes the story CSV.
	// Zero segments is reported as domain.ErrNoSegments and no file is written.
	Convert(ctx context.Context, req SegmentRequest) (*SegmentResult, error)

	// Watch converts once, then again every time the input file changes,
	// until ctx is cancelled. Each outcome is passed to report; conversion
	// errors do not stop watching.
	Watch(ctx context.Context, req SegmentRequest, report func(*SegmentResult, error)) error
}

// SegmentRequest describes one conversion.
type SegmentRequest struct {
	InputPath     string
	OutputPath    string
	ContinueLabel string
	Params        domain.SegmentParams

	// Metadata adds a leading story metadata row when set.
	Metadata domain.StoryMetadata
}

// SegmentResult summarises a finished conversion.
type SegmentResult struct {
	InputPath  string
	OutputPath string

	// Format is the manuscript format the normaliser reported.
	Format string

	Params        domain.SegmentParams
	ContinueLabel string
	Stats         domain.SegmentStats

	// TotalRows counts data rows written, including a metadata row.
	TotalRows int
}
