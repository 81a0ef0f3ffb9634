// Package docx normalises Word manuscripts into paragraph-separated text.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/storycsv/internal/core/domain"
	"github.com/custodia-labs/storycsv/internal/core/ports/driven"
	"github.com/custodia-labs/storycsv/internal/normalisers/textutil"
)

// MIMEType is the Office Open XML word processing type.
const MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles DOCX documents.
type Normaliser struct{}

// New creates a new DOCX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{MIMEType}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser
}

// Normalise converts a DOCX document to text. Each non-empty Word
// paragraph becomes one manuscript paragraph.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, fmt.Errorf("open docx archive: %w", domain.ErrInvalidInput)
	}

	body, err := readEntry(reader, "word/document.xml")
	if err != nil {
		return nil, err
	}

	var title string
	if core, err := readEntry(reader, "docProps/core.xml"); err == nil && core != nil {
		var props coreXML
		if xml.Unmarshal(core, &props) == nil {
			title = strings.TrimSpace(props.Title)
		}
	}

	return &driven.NormaliseResult{
		Document: textutil.NewDocument(raw, title, parseDocumentXML(body), "docx"),
	}, nil
}

// readEntry returns the contents of the named archive entry, or nil when
// the archive has no such entry.
func readEntry(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, domain.ErrInvalidInput)
		}
		defer rc.Close()

		content, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, domain.ErrInvalidInput)
		}
		return content, nil
	}
	return nil, nil
}

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// coreXML represents the structure of docProps/core.xml.
type coreXML struct {
	Title string `xml:"title"`
}

func parseDocumentXML(content []byte) string {
	if len(content) == 0 {
		return ""
	}

	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return ""
	}

	paragraphs := make([]string, 0, len(doc.Body.Paragraphs))
	for _, para := range doc.Body.Paragraphs {
		var b strings.Builder
		for _, r := range para.Runs {
			for _, text := range r.Text {
				b.WriteString(text.Content)
			}
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	return strings.Join(paragraphs, domain.ParagraphSeparator)
}
