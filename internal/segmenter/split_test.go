package segmenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/storycsv/internal/core/domain"
)

func texts(paragraphs []domain.Paragraph) []string {
	out := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		out[i] = p.Text
	}
	return out
}

func TestSplitParagraphs_NoChapters(t *testing.T) {
	input := "short\n\nThis paragraph is definitely longer than twenty.\n\n\n\n  Another long enough paragraph here.  \n"

	got := SplitParagraphs(input)

	assert.Equal(t, []string{
		"This paragraph is definitely longer than twenty.",
		"Another long enough paragraph here.",
	}, texts(got))
	for _, p := range got {
		assert.Empty(t, p.Chapter)
	}
}

func TestSplitParagraphs_Chapters(t *testing.T) {
	input := "Preface text that will be dropped entirely.\n\n" +
		"Chapter 1\n\nFirst chapter paragraph.\n\nok\n\n" +
		"Kapitel 2\nSecond chapter body is here."

	got := SplitParagraphs(input)
	require.Len(t, got, 2)

	assert.Equal(t, "First chapter paragraph.", got[0].Text)
	assert.Equal(t, "Chapter 1", got[0].Chapter)
	assert.Equal(t, "Second chapter body is here.", got[1].Text)
	assert.Equal(t, "Kapitel 2", got[1].Chapter)
}

func TestSplitParagraphs_ChapterMarkerCaseInsensitive(t *testing.T) {
	got := SplitParagraphs("CHAPTER 3\n\nThe body of the third chapter.")
	require.Len(t, got, 1)
	assert.Equal(t, "CHAPTER 3", got[0].Chapter)
}

func TestSplitParagraphs_MarkerMustStartParagraph(t *testing.T) {
	// "chapter 4" mid-sentence is not a heading.
	got := SplitParagraphs("As we saw in chapter 4 of the saga, the giant slept.")
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Chapter)
}

func TestSplitParagraphs_ThresholdsDifferPerPath(t *testing.T) {
	eleven := "eleven char"
	require.Len(t, []rune(eleven), 11)

	withChapter := SplitParagraphs("Kapital 1\n\n" + eleven)
	assert.Equal(t, []string{eleven}, texts(withChapter))

	withoutChapter := SplitParagraphs(eleven + "\n\nThis one is long enough to be kept.")
	assert.Equal(t, []string{"This one is long enough to be kept."}, texts(withoutChapter))
}

func TestSplitParagraphs_CRLF(t *testing.T) {
	got := SplitParagraphs("The first paragraph of a Windows file.\r\n\r\nThe second paragraph of the file.")
	assert.Len(t, got, 2)
}

func TestSplitParagraphs_Empty(t *testing.T) {
	assert.Empty(t, SplitParagraphs(""))
	assert.Empty(t, SplitParagraphs("\n\n\n"))
}
