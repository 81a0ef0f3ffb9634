package driven

import (
	"context"

	"github.com/custodia-labs/storycsv/internal/core/domain"
)

// StoryStore persists imported stories.
type StoryStore interface {
	// Upsert stores the story under its slug. An existing story keeps its ID,
	// gets its version bumped, and has its nodes replaced.
	// The stored story is returned with ID, Version and timestamps set.
	Upsert(ctx context.Context, story domain.Story) (*domain.Story, error)

	// Get retrieves a story and its nodes by slug.
	// Returns domain.ErrNotFound if the story does not exist.
	Get(ctx context.Context, slug string) (*domain.Story, error)

	// List returns summaries of all stored stories ordered by slug.
	List(ctx context.Context) ([]domain.StorySummary, error)

	// Delete removes a story and its nodes.
	// Returns domain.ErrNotFound if the story does not exist.
	Delete(ctx context.Context, slug string) error
}
