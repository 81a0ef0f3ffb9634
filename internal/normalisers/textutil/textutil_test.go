package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/storycsv/internal/core/domain"
)

func TestTitleFromURI(t *testing.T) {
	assert.Equal(t, "the voice within", TitleFromURI("/tmp/the-voice_within.txt"))
	assert.Equal(t, "README", TitleFromURI("README"))
}

func TestTidyParagraphs(t *testing.T) {
	in := "\r\nFirst line\r\nsame paragraph\r\n  \r\n\n\nSecond paragraph\n\t\nThird\n\n"
	assert.Equal(t, "First line\nsame paragraph\n\nSecond paragraph\n\nThird", TidyParagraphs(in))
}

func TestNewDocument(t *testing.T) {
	raw := &domain.RawDocument{
		URI:      "/books/jutenheim.txt",
		MIMEType: "text/plain",
		Metadata: map[string]any{"size": 10},
	}

	doc := NewDocument(raw, "", "content", "plaintext")

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "jutenheim", doc.Title)
	assert.Equal(t, "content", doc.Content)
	assert.Equal(t, "text/plain", doc.Metadata["mime_type"])
	assert.Equal(t, "plaintext", doc.Metadata["format"])
	assert.Equal(t, 10, doc.Metadata["size"])
	assert.NotContains(t, raw.Metadata, "format", "raw metadata is copied, not modified")
	assert.False(t, doc.CreatedAt.IsZero())
}

func TestText(t *testing.T) {
	text, err := Text(&domain.RawDocument{URI: "bog.txt", Content: []byte("\ufeffkæmpe")})
	assert.NoError(t, err)
	assert.Equal(t, "kæmpe", text)

	_, err = Text(&domain.RawDocument{URI: "bog.txt", Content: []byte("k\xe6mpe")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "bog.txt: not valid UTF-8")
}
