package segmenter

import "github.com/custodia-labs/storycsv/internal/core/domain"

// separatorLen is the length of domain.ParagraphSeparator.
const separatorLen = len(domain.ParagraphSeparator)

// Pack greedily merges paragraphs into segments in a single pass.
//
// A paragraph that would push the open segment past MaxChars starts a new
// segment, but only once the open segment has MinChars and MinParagraphs.
// After each append the open segment closes early when the next paragraph
// would overflow it, or when it is the last one and long enough. Leftover
// paragraphs become a trailing, possibly short, segment. Paragraphs are never
// split, so a single oversized paragraph still forms or joins a segment.
func Pack(paragraphs []domain.Paragraph, params domain.SegmentParams) []domain.Segment {
	var (
		segments []domain.Segment
		current  []domain.Paragraph
		length   int
	)

	flush := func() {
		segments = append(segments, domain.Segment{
			Position:   len(segments),
			Paragraphs: current,
		})
		current = nil
		length = 0
	}

	ready := func() bool {
		return length >= params.MinChars && len(current) >= params.MinParagraphs
	}

	for i, para := range paragraphs {
		paraLen := para.Len()
		projected := length + paraLen
		if len(current) > 0 {
			projected += separatorLen
		}

		if projected > params.MaxChars && ready() {
			flush()
			current = []domain.Paragraph{para}
			length = paraLen
			continue
		}

		current = append(current, para)
		length = projected

		if !ready() {
			continue
		}
		if i+1 < len(paragraphs) {
			if length+paragraphs[i+1].Len()+separatorLen > params.MaxChars {
				flush()
			}
		} else {
			flush()
		}
	}

	if len(current) > 0 {
		flush()
	}
	return segments
}
