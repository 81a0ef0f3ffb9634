package domain

import "time"

// Document is a manuscript normalised to plain text.
// Paragraphs in Content are separated by blank lines regardless of the
// original format, so segmentation treats every format the same way.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// URI is the original location.
	URI string

	// Title is the human-readable title.
	Title string

	// Content is the full text with LF line endings.
	Content string

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any

	// CreatedAt is when the document was normalised.
	CreatedAt time.Time
}
