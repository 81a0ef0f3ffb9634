package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/storycsv/internal/core/domain"
	"github.com/custodia-labs/storycsv/internal/core/ports/driven"
)

// storyStore implements driven.StoryStore.
type storyStore struct {
	store *Store
}

var _ driven.StoryStore = (*storyStore)(nil)

// Upsert stores the story under its slug, replacing the nodes of any
// previous import in one transaction.
func (s *storyStore) Upsert(ctx context.Context, story domain.Story) (*domain.Story, error) {
	if story.Slug == "" {
		return nil, fmt.Errorf("story slug is required: %w", domain.ErrInvalidInput)
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC().Truncate(time.Second)

	var existingID string
	var existingVersion int
	var createdAt sql.NullTime
	err = tx.QueryRowContext(ctx,
		"SELECT id, version, created_at FROM stories WHERE slug = ?", story.Slug,
	).Scan(&existingID, &existingVersion, &createdAt)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		story.ID = uuid.New().String()
		story.Version = 1
		story.CreatedAt = now
		story.UpdatedAt = now

		_, err = tx.ExecContext(ctx, `
			INSERT INTO stories (id, slug, title, description, cover_image_url, estimated_time, age,
				published, version, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, story.ID, story.Slug, story.Title, story.Description, story.CoverImageURL,
			story.EstimatedTime, story.Age, boolToInt(story.Published), story.Version,
			story.CreatedAt, story.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("inserting story: %w", err)
		}

	case err != nil:
		return nil, fmt.Errorf("looking up story: %w", err)

	default:
		story.ID = existingID
		story.Version = existingVersion + 1
		if createdAt.Valid {
			story.CreatedAt = createdAt.Time
		}
		story.UpdatedAt = now

		_, err = tx.ExecContext(ctx, `
			UPDATE stories SET title = ?, description = ?, cover_image_url = ?, estimated_time = ?,
				age = ?, published = ?, version = ?, updated_at = ?
			WHERE id = ?
		`, story.Title, story.Description, story.CoverImageURL, story.EstimatedTime,
			story.Age, boolToInt(story.Published), story.Version, story.UpdatedAt, story.ID)
		if err != nil {
			return nil, fmt.Errorf("updating story: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM story_nodes WHERE story_id = ?", story.ID); err != nil {
			return nil, fmt.Errorf("clearing story nodes: %w", err)
		}
	}

	if err := insertNodes(ctx, tx, story.ID, story.Nodes); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing story: %w", err)
	}
	return &story, nil
}

func insertNodes(ctx context.Context, tx *sql.Tx, storyID string, nodes []domain.StoryNode) error {
	nodeStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO story_nodes (id, story_id, node_key, text, image, has_check,
			check_stat, check_dc, check_success, check_fail, sort_index)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing node insert: %w", err)
	}
	defer nodeStmt.Close()

	choiceStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO story_choices (node_id, label, goto_key, sort_index) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing choice insert: %w", err)
	}
	defer choiceStmt.Close()

	for _, node := range nodes {
		nodeID := uuid.New().String()
		check := node.Check
		if check == nil {
			check = &domain.StoryCheck{}
		}

		if _, err := nodeStmt.ExecContext(ctx, nodeID, storyID, node.Key, node.Text, node.Image,
			boolToInt(node.Check != nil), check.Stat, check.DC, check.Success, check.Fail,
			node.SortIndex); err != nil {
			return fmt.Errorf("inserting node %s: %w", node.Key, err)
		}

		for i, choice := range node.Choices {
			if _, err := choiceStmt.ExecContext(ctx, nodeID, choice.Label, choice.Goto, i); err != nil {
				return fmt.Errorf("inserting choice for node %s: %w", node.Key, err)
			}
		}
	}
	return nil
}

// Get retrieves a story and its nodes by slug.
func (s *storyStore) Get(ctx context.Context, slug string) (*domain.Story, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, slug, title, description, cover_image_url, estimated_time, age,
			published, version, created_at, updated_at
		FROM stories WHERE slug = ?
	`, slug)

	var story domain.Story
	var published int
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&story.ID, &story.Slug, &story.Title, &story.Description,
		&story.CoverImageURL, &story.EstimatedTime, &story.Age, &published,
		&story.Version, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning story: %w", err)
	}
	story.Published = published != 0
	if createdAt.Valid {
		story.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		story.UpdatedAt = updatedAt.Time
	}

	nodes, err := s.nodes(ctx, story.ID)
	if err != nil {
		return nil, err
	}
	story.Nodes = nodes

	return &story, nil
}

func (s *storyStore) nodes(ctx context.Context, storyID string) ([]domain.StoryNode, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, node_key, text, image, has_check, check_stat, check_dc, check_success,
			check_fail, sort_index
		FROM story_nodes WHERE story_id = ?
		ORDER BY sort_index
	`, storyID)
	if err != nil {
		return nil, fmt.Errorf("querying nodes: %w", err)
	}
	defer rows.Close()

	var nodes []domain.StoryNode //nolint:prealloc // size unknown from query
	index := make(map[string]int)
	for rows.Next() {
		var node domain.StoryNode
		var nodeID string
		var hasCheck int
		var check domain.StoryCheck
		if err := rows.Scan(&nodeID, &node.Key, &node.Text, &node.Image, &hasCheck,
			&check.Stat, &check.DC, &check.Success, &check.Fail, &node.SortIndex); err != nil {
			return nil, fmt.Errorf("scanning node: %w", err)
		}
		if hasCheck != 0 {
			node.Check = &check
		}
		index[nodeID] = len(nodes)
		nodes = append(nodes, node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating nodes: %w", err)
	}

	choices, err := s.store.db.QueryContext(ctx, `
		SELECT c.node_id, c.label, c.goto_key
		FROM story_choices c JOIN story_nodes n ON n.id = c.node_id
		WHERE n.story_id = ?
		ORDER BY n.sort_index, c.sort_index
	`, storyID)
	if err != nil {
		return nil, fmt.Errorf("querying choices: %w", err)
	}
	defer choices.Close()

	for choices.Next() {
		var nodeID string
		var choice domain.StoryChoice
		if err := choices.Scan(&nodeID, &choice.Label, &choice.Goto); err != nil {
			return nil, fmt.Errorf("scanning choice: %w", err)
		}
		if i, ok := index[nodeID]; ok {
			nodes[i].Choices = append(nodes[i].Choices, choice)
		}
	}
	if err := choices.Err(); err != nil {
		return nil, fmt.Errorf("iterating choices: %w", err)
	}

	return nodes, nil
}

// List returns summaries of all stored stories ordered by slug.
func (s *storyStore) List(ctx context.Context) ([]domain.StorySummary, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT s.id, s.slug, s.title, s.version, s.published, s.updated_at,
			(SELECT COUNT(*) FROM story_nodes n WHERE n.story_id = s.id),
			(SELECT COUNT(*) FROM story_choices c JOIN story_nodes n ON n.id = c.node_id
				WHERE n.story_id = s.id)
		FROM stories s
		ORDER BY s.slug
	`)
	if err != nil {
		return nil, fmt.Errorf("querying stories: %w", err)
	}
	defer rows.Close()

	var summaries []domain.StorySummary //nolint:prealloc // size unknown from query
	for rows.Next() {
		var summary domain.StorySummary
		var published int
		var updatedAt sql.NullTime
		if err := rows.Scan(&summary.ID, &summary.Slug, &summary.Title, &summary.Version,
			&published, &updatedAt, &summary.NodeCount, &summary.ChoiceCount); err != nil {
			return nil, fmt.Errorf("scanning story: %w", err)
		}
		summary.Published = published != 0
		if updatedAt.Valid {
			summary.UpdatedAt = updatedAt.Time
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stories: %w", err)
	}

	return summaries, nil
}

// Delete removes a story; nodes and choices cascade.
func (s *storyStore) Delete(ctx context.Context, slug string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM stories WHERE slug = ?", slug)
	if err != nil {
		return fmt.Errorf("deleting story: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting story: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
