// Package segmenter turns manuscript text into length-bounded story segments.
//
// Segmentation runs in three steps: SplitParagraphs finds chapters and
// paragraphs, Pack greedily merges paragraphs into segments, and CleanText
// flattens each segment into a single CSV-safe line.
package segmenter

import (
	"context"

	"github.com/custodia-labs/storycsv/internal/core/domain"
	"github.com/custodia-labs/storycsv/internal/logger"
)

// Processor segments documents with fixed bounds.
type Processor struct {
	params domain.SegmentParams
}

// Option configures the processor.
type Option func(*Processor)

// WithMinChars sets the soft minimum segment length.
func WithMinChars(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.params.MinChars = n
		}
	}
}

// WithMaxChars sets the length segments should not grow past.
func WithMaxChars(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.params.MaxChars = n
		}
	}
}

// WithMinParagraphs sets how many paragraphs a segment needs before it may close.
func WithMinParagraphs(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.params.MinParagraphs = n
		}
	}
}

// WithParams replaces all bounds at once.
func WithParams(params domain.SegmentParams) Option {
	return func(p *Processor) {
		WithMinChars(params.MinChars)(p)
		WithMaxChars(params.MaxChars)(p)
		WithMinParagraphs(params.MinParagraphs)(p)
	}
}

// New creates a processor with the default bounds and the given options.
func New(opts ...Option) *Processor {
	p := &Processor{params: domain.DefaultSegmentParams()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "segmenter"
}

// Params returns the bounds in use.
func (p *Processor) Params() domain.SegmentParams {
	return p.params
}

// Process splits the document content into segments.
// Empty content produces no segments; callers decide whether that is an error.
func (p *Processor) Process(ctx context.Context, doc *domain.Document) ([]domain.Segment, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := p.params.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	paragraphs := SplitParagraphs(doc.Content)
	logger.Debug("segmenter: %d paragraphs in %s", len(paragraphs), doc.URI)

	segments := Pack(paragraphs, p.params)
	logger.Debug("segmenter: packed into %d segments (min=%d max=%d paragraphs>=%d)",
		len(segments), p.params.MinChars, p.params.MaxChars, p.params.MinParagraphs)
	return segments, nil
}

// Texts returns the cleaned single-line text of each segment.
func Texts(segments []domain.Segment) []string {
	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = CleanText(seg.Text())
	}
	return texts
}
