package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/custodia-labs/storycsv/internal/core/domain"
	"github.com/custodia-labs/storycsv/internal/core/ports/driven"
	"github.com/custodia-labs/storycsv/internal/core/ports/driving"
	"github.com/custodia-labs/storycsv/internal/logger"
)

// legacyTextColumn is the text column name of early story sheets.
const legacyTextColumn = "tekst"

// StoryDialect reads story CSV files as written by the segmenter.
var StoryDialect = domain.Dialect{Delimiter: ','}

// Ensure StoryService implements the interface.
var _ driving.StoryService = (*StoryService)(nil)

// StoryService parses, validates and stores story CSV files.
type StoryService struct {
	codec driven.TableCodec
	store driven.StoryStore
}

// NewStoryService creates a new story service. store may be nil when only
// parsing and validation are needed.
func NewStoryService(codec driven.TableCodec, store driven.StoryStore) *StoryService {
	return &StoryService{codec: codec, store: store}
}

// Parse reads a story CSV. Rows without an id are skipped. A first row
// carrying story_title or story_description sets the story metadata and
// is only kept as a node when it also has text.
func (s *StoryService) Parse(ctx context.Context, path string) (*domain.Story, error) {
	if s.codec == nil {
		return nil, domain.ErrNotImplemented
	}

	table, err := s.codec.ReadFile(ctx, path, StoryDialect)
	if err != nil {
		return nil, err
	}
	if table.Empty() {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrEmptyFile)
	}

	cols := make(map[string]int, table.Width())
	for i, name := range table.Header() {
		name = strings.TrimSpace(name)
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	if _, ok := cols[domain.ColID]; !ok {
		return nil, fmt.Errorf("%s: missing %q column: %w", path, domain.ColID, domain.ErrInvalidInput)
	}

	story := &domain.Story{}
	for i, row := range table.Data() {
		field := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		text := field(domain.ColText)
		if text == "" {
			text = field(legacyTextColumn)
		}

		if i == 0 && (field(domain.ColStoryTitle) != "" || field(domain.ColStoryDescription) != "") {
			story.Title = field(domain.ColStoryTitle)
			story.Description = field(domain.ColStoryDescription)
			story.CoverImageURL = field(domain.ColFrontScreenImage)
			story.EstimatedTime = field(domain.ColLength)
			story.Age = field(domain.ColAge)
			if text == "" {
				continue
			}
		}

		key := field(domain.ColID)
		if key == "" {
			continue
		}

		node := domain.StoryNode{
			Key:       key,
			Text:      text,
			Image:     field(domain.ColImage),
			SortIndex: i,
		}
		for n := 1; n <= 3; n++ {
			label := field(fmt.Sprintf("valg%d_label", n))
			target := field(fmt.Sprintf("valg%d_goto", n))
			if label != "" && target != "" {
				node.Choices = append(node.Choices, domain.StoryChoice{Label: label, Goto: target})
			}
		}

		stat, dc := field(domain.ColCheckStat), field(domain.ColCheckDC)
		success, fail := field(domain.ColCheckSuccess), field(domain.ColCheckFail)
		if stat != "" || dc != "" || success != "" || fail != "" {
			node.Check = &domain.StoryCheck{
				Stat:    stat,
				DC:      parseDC(dc),
				Success: success,
				Fail:    fail,
			}
		}

		story.Nodes = append(story.Nodes, node)
	}

	logger.Debug("story: parsed %d nodes from %s", len(story.Nodes), path)
	return story, nil
}

// parseDC converts a difficulty class; anything non-numeric is 0.
func parseDC(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// Validate reports duplicate keys, links to missing nodes, nodes without
// text and nodes that cannot be reached from the first node with text.
func (s *StoryService) Validate(story *domain.Story) []domain.StoryIssue {
	if story == nil || len(story.Nodes) == 0 {
		return []domain.StoryIssue{{Level: domain.IssueError, Message: "story has no nodes"}}
	}

	var issues []domain.StoryIssue
	keys := make(map[string]bool, len(story.Nodes))
	for _, node := range story.Nodes {
		if keys[node.Key] {
			issues = append(issues, domain.StoryIssue{
				Level: domain.IssueError, NodeKey: node.Key, Message: "duplicate node id",
			})
		}
		keys[node.Key] = true
	}

	start := ""
	for _, node := range story.Nodes {
		if node.Text == "" {
			issues = append(issues, domain.StoryIssue{
				Level: domain.IssueWarning, NodeKey: node.Key, Message: "node has no text",
			})
		} else if start == "" {
			start = node.Key
		}
		for _, target := range node.Targets() {
			if !keys[target] {
				issues = append(issues, domain.StoryIssue{
					Level:   domain.IssueError,
					NodeKey: node.Key,
					Message: fmt.Sprintf("links to missing node %q", target),
				})
			}
		}
	}

	if start == "" {
		return issues
	}

	reached := reachable(story, start)
	for _, node := range story.Nodes {
		if !reached[node.Key] && node.Text != "" {
			issues = append(issues, domain.StoryIssue{
				Level: domain.IssueWarning, NodeKey: node.Key, Message: "node is unreachable",
			})
		}
	}
	return issues
}

// reachable walks links breadth-first from start.
func reachable(story *domain.Story, start string) map[string]bool {
	edges := make(map[string][]string, len(story.Nodes))
	for _, node := range story.Nodes {
		edges[node.Key] = append(edges[node.Key], node.Targets()...)
	}

	seen := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		for _, next := range edges[key] {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}

// HasErrors reports whether any issue is error-level.
func HasErrors(issues []domain.StoryIssue) bool {
	for _, issue := range issues {
		if issue.Level == domain.IssueError {
			return true
		}
	}
	return false
}

// Import parses and validates a story CSV and stores it under its slug.
// Nodes without text are not stored. Validation errors abort the import
// unless Force is set.
func (s *StoryService) Import(ctx context.Context, req driving.ImportRequest) (*driving.ImportResult, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	story, err := s.Parse(ctx, req.Path)
	if err != nil {
		return nil, err
	}

	result := &driving.ImportResult{Issues: s.Validate(story)}
	if HasErrors(result.Issues) && !req.Force {
		return result, fmt.Errorf("%s has validation errors: %w", req.Path, domain.ErrInvalidInput)
	}

	story.Slug = req.Slug
	if story.Slug == "" {
		story.Slug = Slugify(strings.TrimSuffix(filepath.Base(req.Path), filepath.Ext(req.Path)))
	}
	if story.Slug == "" {
		return result, fmt.Errorf("cannot derive a slug from %s: %w", req.Path, domain.ErrInvalidInput)
	}
	if story.Title == "" {
		story.Title = story.Slug
	}
	story.Published = req.Publish

	kept := story.Nodes[:0]
	for _, node := range story.Nodes {
		if node.Text == "" {
			result.Skipped++
			continue
		}
		kept = append(kept, node)
	}
	story.Nodes = kept

	saved, err := s.store.Upsert(ctx, *story)
	if err != nil {
		return result, fmt.Errorf("storing %s: %w", story.Slug, err)
	}
	logger.Info("story: imported %s version %d (%d nodes)", saved.Slug, saved.Version, len(saved.Nodes))

	result.Story = saved
	return result, nil
}

// List returns every stored story.
func (s *StoryService) List(ctx context.Context) ([]domain.StorySummary, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.List(ctx)
}

// Show returns a stored story.
func (s *StoryService) Show(ctx context.Context, slug string) (*domain.Story, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.Get(ctx, slug)
}

// Delete removes a stored story.
func (s *StoryService) Delete(ctx context.Context, slug string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	return s.store.Delete(ctx, slug)
}

// Slugify lowercases s and replaces every run of characters that are not
// letters or digits with a single hyphen.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	return b.String()
}
