// Package markdown normalises Markdown manuscripts to plain text.
package markdown

import (
	"context"
	"regexp"
	"strings"

	"github.com/custodia-labs/storycsv/internal/core/domain"
	"github.com/custodia-labs/storycsv/internal/core/ports/driven"
	"github.com/custodia-labs/storycsv/internal/normalisers/textutil"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown documents.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser, higher than plaintext
}

// Normalise converts a markdown manuscript to plain text.
// Headings stay on their own line so "# Chapter 1" still reads as a
// chapter heading once the marker is gone.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	source, err := textutil.Text(raw)
	if err != nil {
		return nil, err
	}
	title := firstHeading(source)
	content := textutil.TidyParagraphs(stripMarkdown(source))

	return &driven.NormaliseResult{
		Document: textutil.NewDocument(raw, title, content, "markdown"),
	}, nil
}

var (
	frontMatter  = regexp.MustCompile(`(?s)\A---\n.*?\n---\n`)
	codeBlock    = regexp.MustCompile("(?s)```.*?```")
	inlineCode   = regexp.MustCompile("`([^`]+)`")
	images       = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	links        = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headings     = regexp.MustCompile(`(?m)^#{1,6}[ \t]+`)
	strong       = regexp.MustCompile(`(\*\*|__)(\S(?:.*?\S)?)(\*\*|__)`)
	emphasis     = regexp.MustCompile(`(^|[^\w*])[*_](\S(?:[^*_]*?\S)?)[*_]`)
	blockquote   = regexp.MustCompile(`(?m)^>[ \t]?`)
	rule         = regexp.MustCompile(`(?m)^[ \t]*([-*_])([ \t]*([-*_])){2,}[ \t]*$`)
	listMarkers  = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	numberedList = regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]+`)
)

// firstHeading returns the text of the first H1 heading, or "".
func firstHeading(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}
	return ""
}

// stripMarkdown removes common markdown formatting but keeps prose and
// paragraph structure intact.
func stripMarkdown(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = frontMatter.ReplaceAllString(content, "")
	content = codeBlock.ReplaceAllString(content, "")
	content = inlineCode.ReplaceAllString(content, "$1")
	content = images.ReplaceAllString(content, "")
	content = links.ReplaceAllString(content, "$1")
	content = rule.ReplaceAllString(content, "")
	content = headings.ReplaceAllString(content, "")
	content = blockquote.ReplaceAllString(content, "")
	content = listMarkers.ReplaceAllString(content, "")
	content = numberedList.ReplaceAllString(content, "")
	content = strong.ReplaceAllString(content, "$2")
	content = emphasis.ReplaceAllString(content, "$1$2")
	return content
}
