package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ParagraphSeparator joins paragraphs merged into one segment.
const ParagraphSeparator = "\n\n"

// Paragraph is a trimmed block of source text bounded by blank lines.
type Paragraph struct {
	// Text is the paragraph content without surrounding whitespace.
	Text string

	// Chapter is the chapter heading the paragraph belongs to, if any.
	Chapter string
}

// Len returns the paragraph length in characters.
func (p Paragraph) Len() int {
	return utf8.RuneCountInString(p.Text)
}

// Segment is an ordered merge of one or more paragraphs that becomes the
// display text of a single story row.
type Segment struct {
	// Position is the 0-based ordinal of the segment in the document.
	Position int

	// Paragraphs are the source paragraphs in document order.
	Paragraphs []Paragraph
}

// Text returns the paragraphs joined by ParagraphSeparator.
func (s Segment) Text() string {
	parts := make([]string, len(s.Paragraphs))
	for i, p := range s.Paragraphs {
		parts[i] = p.Text
	}
	return strings.Join(parts, ParagraphSeparator)
}

// Len returns the length of Text in characters.
func (s Segment) Len() int {
	if len(s.Paragraphs) == 0 {
		return 0
	}
	n := (len(s.Paragraphs) - 1) * len(ParagraphSeparator)
	for _, p := range s.Paragraphs {
		n += p.Len()
	}
	return n
}

// SegmentParams bounds the greedy segment packing.
type SegmentParams struct {
	// MinChars is the soft minimum segment length.
	MinChars int

	// MaxChars is the length a segment should not grow past.
	MaxChars int

	// MinParagraphs is the minimum number of paragraphs merged before a segment may close.
	MinParagraphs int
}

// Default segmentation bounds.
const (
	DefaultMinChars      = 600
	DefaultMaxChars      = 1200
	DefaultMinParagraphs = 2
)

// DefaultSegmentParams returns the bounds used when none are configured.
func DefaultSegmentParams() SegmentParams {
	return SegmentParams{
		MinChars:      DefaultMinChars,
		MaxChars:      DefaultMaxChars,
		MinParagraphs: DefaultMinParagraphs,
	}
}

// Validate checks the bounds are usable.
func (p SegmentParams) Validate() error {
	if p.MinChars < 0 || p.MaxChars <= 0 || p.MinParagraphs < 1 {
		return ErrInvalidInput
	}
	// MinChars may equal MaxChars but never exceed it.
	if p.MinChars > p.MaxChars {
		return fmt.Errorf("min chars %d exceeds max chars %d: %w", p.MinChars, p.MaxChars, ErrInvalidInput)
	}
	return nil
}

// SegmentStats summarises segment lengths.
type SegmentStats struct {
	Count   int
	Min     int
	Max     int
	Average int

	// InRange counts segments with MinChars <= length <= MaxChars.
	InRange int
}

// ComputeSegmentStats returns length statistics for segments.
// It returns ErrNoSegments for an empty slice rather than dividing by zero.
func ComputeSegmentStats(segments []Segment, params SegmentParams) (SegmentStats, error) {
	if len(segments) == 0 {
		return SegmentStats{}, ErrNoSegments
	}

	stats := SegmentStats{Count: len(segments)}
	total := 0
	for i, seg := range segments {
		n := seg.Len()
		total += n
		if i == 0 || n < stats.Min {
			stats.Min = n
		}
		if n > stats.Max {
			stats.Max = n
		}
		if n >= params.MinChars && n <= params.MaxChars {
			stats.InRange++
		}
	}
	stats.Average = total / len(segments)
	return stats, nil
}
