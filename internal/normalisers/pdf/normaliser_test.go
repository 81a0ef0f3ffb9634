package pdf

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
	assert.Equal(t, []string{"application/pdf"}, normaliser.SupportedMIMETypes())
	assert.Equal(t, 50, normaliser.Priority())
}

func TestNormalise_NilDocument(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_NotAPDF(t *testing.T) {
	result, err := New().Normalise(context.Background(), &domain.RawDocument{
		URI:     "/books/broken.pdf",
		Content: []byte("definitely not a pdf"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestJoinPages(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  string
	}{
		{"no pages", nil, ""},
		{"single page", []string{"Chapter 1\r\n\r\nText"}, "Chapter 1\n\nText"},
		{"blank pages dropped", []string{"One", "  \n ", "Two"}, "One\n\nTwo"},
		{"page break ends paragraph", []string{"end of page\n", "\n\nnext page"}, "end of page\n\nnext page"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, joinPages(tt.pages))
		})
	}
}
