package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/storycsv/internal/core/domain"
)

// createTestDOCX creates a minimal valid DOCX file in memory.
func createTestDOCX(t *testing.T, documentXML, coreXML string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	contentTypes, err := w.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))
	require.NoError(t, err)

	if documentXML != "" {
		doc, err := w.Create("word/document.xml")
		require.NoError(t, err)
		_, err = doc.Write([]byte(documentXML))
		require.NoError(t, err)
	}

	if coreXML != "" {
		core, err := w.Create("docProps/core.xml")
		require.NoError(t, err)
		_, err = core.Write([]byte(coreXML))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return buf.Bytes()
}

func wordBody(paragraphs string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>` + paragraphs + `</w:body>
</w:document>`
}

func TestSupportedMIMETypes(t *testing.T) {
	n := New()
	assert.Equal(t, []string{MIMEType}, n.SupportedMIMETypes())
	assert.Equal(t, 50, n.Priority())
}

func TestNormalise_Success(t *testing.T) {
	coreXML := `<?xml version="1.0" encoding="UTF-8"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
xmlns:dc="http://purl.org/dc/elements/1.1/">
<dc:title>Jutenheim</dc:title>
</cp:coreProperties>`

	raw := &domain.RawDocument{
		URI:      "/books/jutenheim.docx",
		MIMEType: MIMEType,
		Content:  createTestDOCX(t, wordBody(`<w:p><w:r><w:t>Kapitel 1</w:t></w:r></w:p>`), coreXML),
		Metadata: map[string]any{"author": "skald"},
	}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)

	doc := result.Document
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "Jutenheim", doc.Title)
	assert.Equal(t, "Kapitel 1", doc.Content)
	assert.Equal(t, "skald", doc.Metadata["author"])
	assert.Equal(t, "docx", doc.Metadata["format"])
	assert.Equal(t, MIMEType, doc.Metadata["mime_type"])
}

func TestNormalise_ParagraphsSeparatedByBlankLine(t *testing.T) {
	body := wordBody(`
<w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>
<w:p></w:p>
<w:p><w:r><w:t xml:space="preserve">Second </w:t></w:r><w:r><w:t>paragraph</w:t></w:r></w:p>`)

	result, err := New().Normalise(context.Background(), &domain.RawDocument{
		URI:     "/path/to/my_story.docx",
		Content: createTestDOCX(t, body, ""),
	})
	require.NoError(t, err)

	assert.Equal(t, "First paragraph\n\nSecond paragraph", result.Document.Content)
	assert.Equal(t, "my story", result.Document.Title)
}

func TestNormalise_MissingBody(t *testing.T) {
	result, err := New().Normalise(context.Background(), &domain.RawDocument{
		URI:     "/path/to/empty.docx",
		Content: createTestDOCX(t, "", ""),
	})
	require.NoError(t, err)
	assert.Empty(t, result.Document.Content)
}

func TestNormalise_InvalidZip(t *testing.T) {
	result, err := New().Normalise(context.Background(), &domain.RawDocument{
		URI:     "/path/to/invalid.docx",
		Content: []byte("not a zip file"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_NilDocument(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}
