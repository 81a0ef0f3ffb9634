package segmenter

import "strings"

// quoteStripper removes the quote characters the story CSV cannot carry.
var quoteStripper = strings.NewReplacer(`"`, "", "'", "")

// CleanText flattens text to a single line for a CSV cell.
// Line breaks become spaces, double and single quotes are deleted, runs of
// whitespace collapse to one space and the ends are trimmed. Quotes inside
// dialogue are lost, not escaped.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\r", " ")
	text = quoteStripper.Replace(text)
	return strings.Join(strings.Fields(text), " ")
}

// NormalizeNewlines converts CRLF and CR newlines to LF.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}
