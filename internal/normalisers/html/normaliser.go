package html

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/storycsv/internal/core/domain"
	"github.com/custodia-labs/storycsv/internal/core/ports/driven"
	"github.com/custodia-labs/storycsv/internal/normalisers/textutil"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser, higher than plaintext
}

// Normalise converts an HTML document to paragraph-separated text.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	root, err := html.Parse(bytes.NewReader(raw.Content))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", domain.ErrInvalidInput)
	}

	var e extractor
	e.walk(root)

	return &driven.NormaliseResult{
		Document: textutil.NewDocument(raw, strings.TrimSpace(e.title.String()), textutil.TidyParagraphs(trimLines(e.text.String())), "html"),
	}, nil
}

// skipped elements never contribute prose.
var skipped = map[atom.Atom]bool{
	atom.Head:     true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Svg:      true,
	atom.Template: true,
}

// blocks are separated from their neighbours by a blank line.
var blocks = map[atom.Atom]bool{
	atom.P:          true,
	atom.Div:        true,
	atom.Section:    true,
	atom.Article:    true,
	atom.Blockquote: true,
	atom.Pre:        true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Li:         true,
	atom.Tr:         true,
	atom.Table:      true,
	atom.Hr:         true,
}

type extractor struct {
	title strings.Builder
	text  strings.Builder
}

func (e *extractor) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		e.text.WriteString(collapseSpace(n.Data))
		return
	case html.ElementNode:
		if n.DataAtom == atom.Title {
			e.collectTitle(n)
			return
		}
		if n.DataAtom == atom.Head {
			e.findTitle(n)
			return
		}
		if skipped[n.DataAtom] {
			return
		}
		if n.DataAtom == atom.Br {
			e.text.WriteString("\n")
			return
		}
	}

	block := n.Type == html.ElementNode && blocks[n.DataAtom]
	if block {
		e.text.WriteString("\n\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		e.walk(c)
	}
	if block {
		e.text.WriteString("\n\n")
	}
}

func (e *extractor) findTitle(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == atom.Title {
			e.collectTitle(c)
			continue
		}
		e.findTitle(c)
	}
}

func (e *extractor) collectTitle(n *html.Node) {
	if e.title.Len() > 0 {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			e.title.WriteString(c.Data)
		}
	}
}

// collapseSpace folds runs of source whitespace (including newlines used
// for markup indentation) into single spaces.
func collapseSpace(s string) string {
	if strings.TrimSpace(s) == "" {
		if s == "" {
			return ""
		}
		return " "
	}
	lead := s[0] == ' ' || s[0] == '\n' || s[0] == '\t' || s[0] == '\r'
	last := s[len(s)-1]
	trail := last == ' ' || last == '\n' || last == '\t' || last == '\r'

	out := strings.Join(strings.Fields(s), " ")
	if lead {
		out = " " + out
	}
	if trail {
		out += " "
	}
	return out
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}
