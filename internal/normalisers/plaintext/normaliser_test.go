package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/storycsv/internal/core/domain"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestSupportedMIMETypes(t *testing.T) {
	assert.Equal(t, []string{"text/plain"}, New().SupportedMIMETypes())
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 5, New().Priority())
}

func TestNormalise_Success(t *testing.T) {
	raw := &domain.RawDocument{
		URI:      "/path/to/jutenheim-book.txt",
		MIMEType: "text/plain",
		Content:  []byte("\ufeffKapitel 1\r\n\r\nSkrymir vågnede.\r\n  \r\nNæste afsnit."),
	}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	require.NotNil(t, result)

	doc := result.Document
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, raw.URI, doc.URI)
	assert.Equal(t, "jutenheim book", doc.Title)
	assert.Equal(t, "Kapitel 1\n\nSkrymir vågnede.\n  \nNæste afsnit.", doc.Content)
	assert.Equal(t, "text/plain", doc.Metadata["mime_type"])
}

func TestNormalise_NilInput(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_EmptyContent(t *testing.T) {
	result, err := New().Normalise(context.Background(), &domain.RawDocument{URI: "empty.txt"})
	require.NoError(t, err)
	assert.Empty(t, result.Document.Content)
}

func TestNormalise_RejectsInvalidUTF8(t *testing.T) {
	raw := &domain.RawDocument{URI: "latin1.txt", Content: []byte("Der var engang en k\xe6mpe.")}
	result, err := New().Normalise(context.Background(), raw)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}
