package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/storycsv/internal/core/domain"
	"github.com/custodia-labs/storycsv/internal/core/ports/driven"
)

// Ensure StoryStore implements the interface.
var _ driven.StoryStore = (*StoryStore)(nil)

// StoryStore is an in-memory implementation of driven.StoryStore.
type StoryStore struct {
	mu      sync.RWMutex
	stories map[string]domain.Story
}

// NewStoryStore creates a new in-memory story store.
func NewStoryStore() *StoryStore {
	return &StoryStore{
		stories: make(map[string]domain.Story),
	}
}

// Upsert stores the story under its slug.
func (s *StoryStore) Upsert(_ context.Context, story domain.Story) (*domain.Story, error) {
	if story.Slug == "" {
		return nil, fmt.Errorf("story slug is required: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := s.stories[story.Slug]; ok {
		story.ID = existing.ID
		story.Version = existing.Version + 1
		story.CreatedAt = existing.CreatedAt
	} else {
		story.ID = uuid.New().String()
		story.Version = 1
		story.CreatedAt = now
	}
	story.UpdatedAt = now
	story.Nodes = cloneNodes(story.Nodes)

	s.stories[story.Slug] = story
	out := story
	out.Nodes = cloneNodes(story.Nodes)
	return &out, nil
}

// Get retrieves a story by slug.
func (s *StoryStore) Get(_ context.Context, slug string) (*domain.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	story, ok := s.stories[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	story.Nodes = cloneNodes(story.Nodes)
	return &story, nil
}

// List returns summaries of all stories ordered by slug.
func (s *StoryStore) List(_ context.Context) ([]domain.StorySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.StorySummary, 0, len(s.stories))
	for _, story := range s.stories {
		summary := domain.StorySummary{
			ID:        story.ID,
			Slug:      story.Slug,
			Title:     story.Title,
			Version:   story.Version,
			Published: story.Published,
			NodeCount: len(story.Nodes),
			UpdatedAt: story.UpdatedAt,
		}
		for _, node := range story.Nodes {
			summary.ChoiceCount += len(node.Choices)
		}
		result = append(result, summary)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Slug < result[j].Slug })
	return result, nil
}

// Delete removes a story by slug.
func (s *StoryStore) Delete(_ context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stories[slug]; !ok {
		return domain.ErrNotFound
	}
	delete(s.stories, slug)
	return nil
}

func cloneNodes(nodes []domain.StoryNode) []domain.StoryNode {
	if nodes == nil {
		return nil
	}
	out := make([]domain.StoryNode, len(nodes))
	for i, node := range nodes {
		out[i] = node
		out[i].Choices = append([]domain.StoryChoice(nil), node.Choices...)
		if node.Check != nil {
			check := *node.Check
			out[i].Check = &check
		}
	}
	return out
}
