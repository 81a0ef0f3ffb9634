package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/storycsv/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	return store
}

func testStory(slug string) domain.Story {
	return domain.Story{
		Slug:          slug,
		Title:         "Jutenheim",
		Description:   "A saga in the mountains",
		CoverImageURL: "cover.png",
		EstimatedTime: "20 min",
		Age:           "10+",
		Nodes: []domain.StoryNode{
			{Key: "1", Text: "Skrymir wakes.", SortIndex: 0, Choices: []domain.StoryChoice{
				{Label: "Fortsæt", Goto: "2"},
				{Label: "Sleep", Goto: "3"},
			}},
			{Key: "2", Text: "He climbs.", Image: "climb.png", SortIndex: 1,
				Check: &domain.StoryCheck{Stat: "strength", DC: 12, Success: "3", Fail: "1"}},
			{Key: "3", Text: "The end.", SortIndex: 2},
		},
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, DatabaseFile), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	_, err = first.StoryStore().Upsert(context.Background(), testStory("saga"))
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var applied int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 1, applied)

	got, err := second.StoryStore().Get(context.Background(), "saga")
	require.NoError(t, err)
	assert.Equal(t, "Jutenheim", got.Title)
}

func TestStoryStore_UpsertAndGet(t *testing.T) {
	store := setupTestStore(t).StoryStore()
	ctx := context.Background()

	saved, err := store.Upsert(ctx, testStory("jutenheim"))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, 1, saved.Version)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := store.Get(ctx, "jutenheim")
	require.NoError(t, err)

	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "Jutenheim", got.Title)
	assert.Equal(t, "A saga in the mountains", got.Description)
	assert.Equal(t, "cover.png", got.CoverImageURL)
	assert.Equal(t, "20 min", got.EstimatedTime)
	assert.Equal(t, "10+", got.Age)
	assert.False(t, got.Published)
	require.Len(t, got.Nodes, 3)

	assert.Equal(t, "1", got.Nodes[0].Key)
	assert.Equal(t, []domain.StoryChoice{{Label: "Fortsæt", Goto: "2"}, {Label: "Sleep", Goto: "3"}}, got.Nodes[0].Choices)
	assert.Nil(t, got.Nodes[0].Check)

	assert.Equal(t, "climb.png", got.Nodes[1].Image)
	require.NotNil(t, got.Nodes[1].Check)
	assert.Equal(t, domain.StoryCheck{Stat: "strength", DC: 12, Success: "3", Fail: "1"}, *got.Nodes[1].Check)
	assert.Empty(t, got.Nodes[1].Choices)

	assert.Equal(t, 2, got.Nodes[2].SortIndex)
}

func TestStoryStore_UpsertBumpsVersionAndReplacesNodes(t *testing.T) {
	store := setupTestStore(t).StoryStore()
	ctx := context.Background()

	first, err := store.Upsert(ctx, testStory("saga"))
	require.NoError(t, err)

	updated := testStory("saga")
	updated.Title = "Jutenheim II"
	updated.Published = true
	updated.Nodes = updated.Nodes[:1]

	second, err := store.Upsert(ctx, updated)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Version)
	assert.Equal(t, first.CreatedAt.Unix(), second.CreatedAt.Unix())

	got, err := store.Get(ctx, "saga")
	require.NoError(t, err)
	assert.Equal(t, "Jutenheim II", got.Title)
	assert.True(t, got.Published)
	assert.Equal(t, 2, got.Version)
	assert.Len(t, got.Nodes, 1)

	var choices int
	require.NoError(t, store.(*storyStore).store.db.QueryRow("SELECT COUNT(*) FROM story_choices").Scan(&choices))
	assert.Equal(t, 2, choices)
}

func TestStoryStore_UpsertRequiresSlug(t *testing.T) {
	store := setupTestStore(t).StoryStore()

	_, err := store.Upsert(context.Background(), domain.Story{Title: "No slug"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStoryStore_Get_NotFound(t *testing.T) {
	store := setupTestStore(t).StoryStore()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoryStore_List(t *testing.T) {
	store := setupTestStore(t).StoryStore()
	ctx := context.Background()

	empty, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = store.Upsert(ctx, testStory("voice-within"))
	require.NoError(t, err)
	_, err = store.Upsert(ctx, testStory("jutenheim"))
	require.NoError(t, err)

	summaries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "jutenheim", summaries[0].Slug)
	assert.Equal(t, "voice-within", summaries[1].Slug)
	assert.Equal(t, 3, summaries[0].NodeCount)
	assert.Equal(t, 2, summaries[0].ChoiceCount)
	assert.Equal(t, 1, summaries[0].Version)
}

func TestStoryStore_Delete(t *testing.T) {
	store := setupTestStore(t).StoryStore()
	ctx := context.Background()

	_, err := store.Upsert(ctx, testStory("saga"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "saga"))

	_, err = store.Get(ctx, "saga")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var nodes int
	require.NoError(t, store.(*storyStore).store.db.QueryRow("SELECT COUNT(*) FROM story_nodes").Scan(&nodes))
	assert.Zero(t, nodes)

	assert.ErrorIs(t, store.Delete(ctx, "saga"), domain.ErrNotFound)
}
