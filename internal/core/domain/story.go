package domain

import "time"

// Story is an interactive story parsed from a story CSV.
type Story struct {
	// ID is the unique identifier assigned when the story is stored.
	ID string

	// Slug is the stable, user-chosen key of the story.
	Slug string

	Title         string
	Description   string
	CoverImageURL string

	// EstimatedTime and Age come from the length and age columns.
	EstimatedTime string
	Age           string

	// Published marks the story as visible to readers.
	Published bool

	// Version increases every time the story is re-imported.
	Version int

	// Nodes are the story rows in file order.
	Nodes []StoryNode

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StoryNode is one scene of a story.
type StoryNode struct {
	// Key is the row id.
	Key string

	Text  string
	Image string

	// Choices are the non-empty label/goto pairs in column order.
	Choices []StoryChoice

	// Check is set when the row carries any check column.
	Check *StoryCheck

	// SortIndex is the row position in the source file.
	SortIndex int
}

// StoryChoice is a labelled link to another node.
type StoryChoice struct {
	Label string
	Goto  string
}

// StoryCheck is a stat check with success and failure targets.
type StoryCheck struct {
	Stat    string
	DC      int
	Success string
	Fail    string
}

// Targets returns every node key this node links to.
func (n StoryNode) Targets() []string {
	targets := make([]string, 0, len(n.Choices)+2)
	for _, c := range n.Choices {
		targets = append(targets, c.Goto)
	}
	if n.Check != nil {
		if n.Check.Success != "" {
			targets = append(targets, n.Check.Success)
		}
		if n.Check.Fail != "" {
			targets = append(targets, n.Check.Fail)
		}
	}
	return targets
}

// NodeByKey returns the first node with the given key.
func (s *Story) NodeByKey(key string) (*StoryNode, bool) {
	for i := range s.Nodes {
		if s.Nodes[i].Key == key {
			return &s.Nodes[i], true
		}
	}
	return nil, false
}

// IssueLevel grades a validation finding.
type IssueLevel string

// Validation levels.
const (
	IssueError   IssueLevel = "error"
	IssueWarning IssueLevel = "warning"
)

// StoryIssue is one validation finding.
type StoryIssue struct {
	Level   IssueLevel
	NodeKey string
	Message string
}

// StorySummary is a stored story without its nodes.
type StorySummary struct {
	ID          string
	Slug        string
	Title       string
	Version     int
	Published   bool
	NodeCount   int
	ChoiceCount int
	UpdatedAt   time.Time
}
