package driving

import (
	"context"

	"github.com/custodia-labs/storycsv/internal/core/domain"
)

// StoryService parses, validates and stores story CSV files.
type StoryService interface {
	// Parse reads a comma-delimited story CSV into a story graph.
	Parse(ctx context.Context, path string) (*domain.Story, error)

	// Validate reports structural problems of a parsed story.
	Validate(story *domain.Story) []domain.StoryIssue

	// Import parses, validates and stores a story CSV.
	Import(ctx context.Context, req ImportRequest) (*ImportResult, error)

	// List returns every stored story.
	List(ctx context.Context) ([]domain.StorySummary, error)

	// Show returns a stored story with its nodes.
	Show(ctx context.Context, slug string) (*domain.Story, error)

	// Delete removes a stored story.
	Delete(ctx context.Context, slug string) error
}

// ImportRequest describes one import.
type ImportRequest struct {
	Path string

	// Slug identifies the story; empty derives it from the file name.
	Slug string

	Publish bool

	// Force imports even when validation finds errors.
	Force bool
}

// ImportResult summarises an import.
type ImportResult struct {
	Story  *domain.Story
	Issues []domain.StoryIssue

	// Skipped counts rows left out because they had no text.
	Skipped int
}
