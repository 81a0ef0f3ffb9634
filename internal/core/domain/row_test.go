package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoryColumns(t *testing.T) {
	cols := StoryColumns()
	require.Len(t, cols, 18)
	assert.Equal(t, "id", cols[0])
	assert.Equal(t, "text", cols[1])
	assert.Equal(t, "front_screen_image", cols[13])
	assert.Equal(t, "age", cols[17])
}

func TestNewStoryRows_LinksEachRowToNext(t *testing.T) {
	rows := NewStoryRows([]string{"one", "two", "three"}, "Continue", StoryMetadata{})
	require.Len(t, rows, 3)

	for i, row := range rows {
		assert.Equal(t, i+1, row.ID)
	}
	assert.Equal(t, Choice{Label: "Continue", Goto: "2"}, rows[0].Choices[0])
	assert.Equal(t, Choice{Label: "Continue", Goto: "3"}, rows[1].Choices[0])
	assert.Equal(t, Choice{}, rows[2].Choices[0])
}

func TestNewStoryRows_SingleRowIsTerminal(t *testing.T) {
	rows := NewStoryRows([]string{"only"}, "Fortsæt", StoryMetadata{})
	require.Len(t, rows, 1)

	rec := rows[0].Record()
	assert.Equal(t, "1", rec[0])
	assert.Equal(t, "only", rec[1])
	assert.Empty(t, rec[2])
	assert.Empty(t, rec[3])
}

func TestNewStoryRows_MetadataRowTakesFirstID(t *testing.T) {
	meta := StoryMetadata{Title: "Jutenheim", Description: "En historie"}
	rows := NewStoryRows([]string{"a", "b"}, "Fortsæt", meta)
	require.Len(t, rows, 3)

	first := rows[0].Record()
	assert.Equal(t, []string{"1", "", "", "", "", "", "", "", "", "", "", "", "", "", "Jutenheim", "En historie", "", ""}, first)

	assert.Equal(t, 2, rows[1].ID)
	assert.Equal(t, "3", rows[1].Choices[0].Goto)
	assert.Equal(t, 3, rows[2].ID)
	assert.Empty(t, rows[2].Choices[0].Goto)
	assert.Empty(t, rows[1].StoryTitle)
}

func TestStoryRow_RecordAlwaysFullWidth(t *testing.T) {
	rec := StoryRow{ID: 4, Text: "x"}.Record()
	assert.Len(t, rec, len(StoryColumns()))
	for _, f := range rec[2:] {
		assert.Empty(t, f)
	}
}
