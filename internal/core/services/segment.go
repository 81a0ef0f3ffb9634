package services

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/storycsv/internal/core/domain"
	"github.com/custodia-labs/storycsv/internal/core/ports/driven"
	"github.com/custodia-labs/storycsv/internal/core/ports/driving"
	"github.com/custodia-labs/storycsv/internal/logger"
	"github.com/custodia-labs/storycsv/internal/segmenter"
)

// Ensure SegmentService implements the interface.
var _ driving.SegmentService = (*SegmentService)(nil)

// SegmentService converts manuscripts into story CSV files.
type SegmentService struct {
	normalisers  driven.NormaliserRegistry
	newSegmenter driven.SegmenterFactory
	codec        driven.TableCodec
	watcher      driven.FileWatcher
}

// SegmentOption configures a SegmentService.
type SegmentOption func(*SegmentService)

// WithWatcher enables Watch.
func WithWatcher(w driven.FileWatcher) SegmentOption {
	return func(s *SegmentService) {
		s.watcher = w
	}
}

// NewSegmentService creates a new segment service.
func NewSegmentService(
	normalisers driven.NormaliserRegistry,
	newSegmenter driven.SegmenterFactory,
	codec driven.TableCodec,
	opts ...SegmentOption,
) *SegmentService {
	s := &SegmentService{
		normalisers:  normalisers,
		newSegmenter: newSegmenter,
		codec:        codec,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Convert reads, normalises and segments the manuscript, then writes one
// story row per segment.
func (s *SegmentService) Convert(ctx context.Context, req driving.SegmentRequest) (*driving.SegmentResult, error) {
	if s.normalisers == nil || s.newSegmenter == nil || s.codec == nil {
		return nil, domain.ErrNotImplemented
	}
	if req.InputPath == "" || req.OutputPath == "" {
		return nil, fmt.Errorf("input and output paths are required: %w", domain.ErrInvalidInput)
	}
	if err := req.Params.Validate(); err != nil {
		return nil, fmt.Errorf("segment bounds %+v: %w", req.Params, err)
	}
	defer logger.Track("segment " + req.InputPath)()

	label := req.ContinueLabel
	if label == "" {
		label = domain.DefaultContinueLabel
	}

	content, err := os.ReadFile(req.InputPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", req.InputPath, err)
	}
	logger.Debug("segment: read %d bytes from %s", len(content), req.InputPath)

	normalised, err := s.normalisers.Normalise(ctx, &domain.RawDocument{
		URI:     req.InputPath,
		Content: content,
	})
	if err != nil {
		return nil, fmt.Errorf("normalising %s: %w", req.InputPath, err)
	}
	doc := normalised.Document

	segments, err := s.newSegmenter(req.Params).Process(ctx, &doc)
	if err != nil {
		return nil, fmt.Errorf("segmenting %s: %w", req.InputPath, err)
	}

	stats, err := domain.ComputeSegmentStats(segments, req.Params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.InputPath, err)
	}

	rows := domain.NewStoryRows(segmenter.Texts(segments), label, req.Metadata)
	table := &domain.Table{Rows: make([][]string, 0, len(rows)+1)}
	table.Rows = append(table.Rows, domain.StoryColumns())
	for _, row := range rows {
		table.Rows = append(table.Rows, row.Record())
	}

	if err := s.codec.WriteFile(ctx, req.OutputPath, table, domain.SpreadsheetDialect); err != nil {
		return nil, err
	}

	format, _ := doc.Metadata["format"].(string)
	return &driving.SegmentResult{
		InputPath:     req.InputPath,
		OutputPath:    req.OutputPath,
		Format:        format,
		Params:        req.Params,
		ContinueLabel: label,
		Stats:         stats,
		TotalRows:     len(rows),
	}, nil
}

// Watch converts the input now and after every change until ctx ends.
func (s *SegmentService) Watch(
	ctx context.Context,
	req driving.SegmentRequest,
	report func(*driving.SegmentResult, error),
) error {
	if s.watcher == nil {
		return domain.ErrNotImplemented
	}

	changes, err := s.watcher.Watch(ctx, req.InputPath)
	if err != nil {
		return fmt.Errorf("watching %s: %w", req.InputPath, err)
	}

	report(s.Convert(ctx, req))
	for range changes {
		logger.Debug("segment: %s changed", req.InputPath)
		report(s.Convert(ctx, req))
	}
	if ctx.Err() != nil {
		return nil
	}
	return fmt.Errorf("watching %s stopped unexpectedly", req.InputPath)
}

// NewSegmenter is the default driven.SegmenterFactory.
func NewSegmenter(params domain.SegmentParams) driven.Segmenter {
	return segmenter.New(segmenter.WithParams(params))
}
