// Package textutil holds helpers shared by the manuscript normalisers.
package textutil

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/storycsv/internal/core/domain"
)

var (
	multiNewlines = regexp.MustCompile(`\n{3,}`)
	blankLine     = regexp.MustCompile(`(?m)^[ \t]+$`)
)

// Text returns the content of raw as UTF-8 without a leading byte-order
// mark. Content that is not valid UTF-8 is rejected.
func Text(raw *domain.RawDocument) (string, error) {
	if !utf8.Valid(raw.Content) {
		return "", fmt.Errorf("%s: not valid UTF-8: %w", raw.URI, domain.ErrInvalidInput)
	}
	return strings.TrimPrefix(string(raw.Content), "\ufeff"), nil
}

// TitleFromURI derives a human-readable title from a file path.
func TitleFromURI(uri string) string {
	filename := filepath.Base(uri)
	if ext := filepath.Ext(filename); ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}

// TidyParagraphs normalises line endings, empties whitespace-only lines and
// collapses three or more newlines into one blank line, so paragraph
// boundaries come out as exactly "\n\n".
func TidyParagraphs(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = blankLine.ReplaceAllString(content, "")
	content = multiNewlines.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}

// NewDocument builds a normalised document for raw with the given content.
func NewDocument(raw *domain.RawDocument, title, content, format string) domain.Document {
	metadata := make(map[string]any, len(raw.Metadata)+2)
	for k, v := range raw.Metadata {
		metadata[k] = v
	}
	metadata["mime_type"] = raw.MIMEType
	metadata["format"] = format

	if title == "" {
		title = TitleFromURI(raw.URI)
	}

	return domain.Document{
		ID:        uuid.New().String(),
		URI:       raw.URI,
		Title:     title,
		Content:   content,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}
}
