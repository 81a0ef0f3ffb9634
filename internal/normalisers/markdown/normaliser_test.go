package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/storycsv/internal/core/domain"
)

func TestSupportedMIMETypes(t *testing.T) {
	assert.Contains(t, New().SupportedMIMETypes(), "text/markdown")
	assert.Equal(t, 50, New().Priority())
}

func TestNormalise_KeepsParagraphsAndHeadings(t *testing.T) {
	raw := &domain.RawDocument{
		URI:      "/books/saga.md",
		MIMEType: "text/markdown",
		Content: []byte("# Jutenheim\n\n## Chapter 1\n\nSkrymir **woke** in the *cold* hall.\n" +
			"He saw [the gate](http://example.com).\n\n---\n\n> The giant spoke.\n\n- one item\n"),
	}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)

	doc := result.Document
	assert.Equal(t, "Jutenheim", doc.Title)
	assert.Equal(t, "Jutenheim\n\nChapter 1\n\nSkrymir woke in the cold hall.\nHe saw the gate.\n\nThe giant spoke.\n\none item", doc.Content)
	assert.Equal(t, "markdown", doc.Metadata["format"])
}

func TestNormalise_DropsCodeBlocksAndImages(t *testing.T) {
	raw := &domain.RawDocument{
		URI:     "notes.md",
		Content: []byte("Before.\n\n```\ncode here\n```\n\n![cover](cover.png)\n\nAfter `it` ends."),
	}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "Before.\n\nAfter it ends.", result.Document.Content)
	assert.Equal(t, "notes", result.Document.Title)
}

func TestNormalise_KeepsSnakeCaseWords(t *testing.T) {
	raw := &domain.RawDocument{URI: "a.md", Content: []byte("the file_name stays")}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "the file_name stays", result.Document.Content)
}

func TestNormalise_NilInput(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise_RejectsInvalidUTF8(t *testing.T) {
	raw := &domain.RawDocument{URI: "latin1.md", Content: []byte("# Sk\xf8ven\n\nTekst.")}
	result, err := New().Normalise(context.Background(), raw)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}
