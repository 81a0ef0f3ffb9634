package segmenter

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/storycsv/internal/core/domain"
)

// Paragraphs shorter than or equal to these lengths are dropped.
// The chapter path and the fallback path have always used different limits.
const (
	chapterMinParagraph  = 10
	fallbackMinParagraph = 20
)

var (
	// chapterRe matches a chapter heading at the start of the text or after a blank line.
	chapterRe = regexp.MustCompile(`(?i)(?:^|\n\n)(Kapital\s+\d+|Kapitel\s+\d+|Chapter\s+\d+)`)

	// paragraphBreakRe matches one or more blank lines.
	paragraphBreakRe = regexp.MustCompile(`\n\n+`)
)

// SplitParagraphs splits text into paragraphs.
//
// When chapter headings are present, only the text after each heading is
// used, and paragraphs of 10 characters or fewer are dropped. Otherwise the
// whole text is split and paragraphs of 20 characters or fewer are dropped.
func SplitParagraphs(text string) []domain.Paragraph {
	text = NormalizeNewlines(text)

	matches := chapterRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return splitBody(text, "", fallbackMinParagraph)
	}

	var paragraphs []domain.Paragraph
	for i, m := range matches {
		title := strings.TrimSpace(text[m[2]:m[3]])
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := strings.TrimSpace(text[m[1]:end])
		paragraphs = append(paragraphs, splitBody(body, title, chapterMinParagraph)...)
	}
	return paragraphs
}

func splitBody(body, chapter string, minLen int) []domain.Paragraph {
	var paragraphs []domain.Paragraph
	for _, part := range paragraphBreakRe.Split(body, -1) {
		part = strings.TrimSpace(part)
		if utf8.RuneCountInString(part) > minLen {
			paragraphs = append(paragraphs, domain.Paragraph{Text: part, Chapter: chapter})
		}
	}
	return paragraphs
}
