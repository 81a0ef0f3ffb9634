package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/storycsv/internal/core/domain"
	"github.com/custodia-labs/storycsv/internal/core/ports/driving"
)

var (
	importSlug    string
	importPublish bool
	importForce   bool
)

var storyCmd = &cobra.Command{
	Use:   "story",
	Short: "Validate and manage story CSV files",
	Long: `Checks story CSV files for broken links and keeps imported stories in a
local library (~/.storycsv/data/stories.db by default).`,
}

var storyValidateCmd = &cobra.Command{
	Use:   "validate <csv>",
	Short: "Check a story CSV for structural problems",
	Long: `Reports duplicate ids, choices pointing to missing rows, rows without
text and rows no path leads to. Exits non-zero when errors are found.`,
	Args: cobra.ExactArgs(1),
	RunE: runStoryValidate,
}

var storyImportCmd = &cobra.Command{
	Use:   "import <csv>",
	Short: "Import a story CSV into the library",
	Long: `Parses and validates a story CSV and stores it under its slug. Importing
the same slug again replaces its nodes and bumps its version.`,
	Args: cobra.ExactArgs(1),
	RunE: runStoryImport,
}

var storyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported stories",
	Args:  cobra.NoArgs,
	RunE:  runStoryList,
}

var storyShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show an imported story",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoryShow,
}

var storyDeleteCmd = &cobra.Command{
	Use:   "delete <slug>",
	Short: "Remove an imported story",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoryDelete,
}

func init() {
	storyImportCmd.Flags().StringVar(&importSlug, "slug", "", "library key (default derived from the file name)")
	storyImportCmd.Flags().BoolVar(&importPublish, "publish", false, "mark the story as published")
	storyImportCmd.Flags().BoolVar(&importForce, "force", false, "import even when validation finds errors")

	storyCmd.AddCommand(storyValidateCmd)
	storyCmd.AddCommand(storyImportCmd)
	storyCmd.AddCommand(storyListCmd)
	storyCmd.AddCommand(storyShowCmd)
	storyCmd.AddCommand(storyDeleteCmd)
	rootCmd.AddCommand(storyCmd)
}

func runStoryValidate(cmd *cobra.Command, args []string) error {
	if storyService == nil {
		return errors.New("story service not configured")
	}

	story, err := storyService.Parse(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to parse story: %w", err)
	}

	issues := storyService.Validate(story)
	cmd.Printf("%s: %d nodes\n", args[0], len(story.Nodes))
	if len(issues) == 0 {
		cmd.Println("No problems found")
		return nil
	}

	printIssues(cmd, issues)
	if n := countErrors(issues); n > 0 {
		return fmt.Errorf("%d validation errors", n)
	}
	return nil
}

func runStoryImport(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := library()
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := svc.Import(cmd.Context(), driving.ImportRequest{
		Path:    args[0],
		Slug:    importSlug,
		Publish: importPublish,
		Force:   importForce,
	})
	if result != nil && len(result.Issues) > 0 {
		printIssues(cmd, result.Issues)
	}
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	s := result.Story
	cmd.Printf("Imported %s (version %d)\n", s.Slug, s.Version)
	cmd.Printf("  Title: %s\n", s.Title)
	cmd.Printf("  Nodes: %d\n", len(s.Nodes))
	if result.Skipped > 0 {
		cmd.Printf("  Skipped rows without text: %d\n", result.Skipped)
	}
	if s.Published {
		cmd.Println("  Published: yes")
	}
	return nil
}

func runStoryList(cmd *cobra.Command, _ []string) error {
	svc, closeFn, err := library()
	if err != nil {
		return err
	}
	defer closeFn()

	stories, err := svc.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list stories: %w", err)
	}

	if len(stories) == 0 {
		cmd.Println("No stories imported.")
		cmd.Println("Use 'storycsv story import <csv>' to add one.")
		return nil
	}

	cmd.Println("Stories:")
	for _, s := range stories {
		published := ""
		if s.Published {
			published = " [published]"
		}
		cmd.Printf("  %s%s\n", s.Slug, published)
		cmd.Printf("    Title: %s\n", s.Title)
		cmd.Printf("    Version: %d, nodes: %d, choices: %d\n", s.Version, s.NodeCount, s.ChoiceCount)
		if !s.UpdatedAt.IsZero() {
			cmd.Printf("    Updated: %s\n", s.UpdatedAt.Format("2006-01-02 15:04"))
		}
	}
	return nil
}

func runStoryShow(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := library()
	if err != nil {
		return err
	}
	defer closeFn()

	story, err := svc.Show(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("story %q not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to get story: %w", err)
	}

	cmd.Printf("Story: %s\n", story.Title)
	cmd.Printf("  Slug: %s\n", story.Slug)
	cmd.Printf("  Version: %d\n", story.Version)
	if story.Description != "" {
		cmd.Printf("  Description: %s\n", story.Description)
	}
	if story.EstimatedTime != "" {
		cmd.Printf("  Length: %s\n", story.EstimatedTime)
	}
	if story.Age != "" {
		cmd.Printf("  Age: %s\n", story.Age)
	}

	for _, node := range story.Nodes {
		cmd.Println()
		cmd.Printf("[%s] %s\n", node.Key, preview(node.Text, 70))
		for _, c := range node.Choices {
			cmd.Printf("  -> %s: %s\n", c.Goto, c.Label)
		}
		if c := node.Check; c != nil {
			cmd.Printf("  check %s DC %d: success %s, fail %s\n", c.Stat, c.DC, c.Success, c.Fail)
		}
	}
	return nil
}

func runStoryDelete(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := library()
	if err != nil {
		return err
	}
	defer closeFn()

	if err := svc.Delete(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("story %q not found", args[0])
		}
		return fmt.Errorf("failed to delete story: %w", err)
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}

func printIssues(cmd *cobra.Command, issues []domain.StoryIssue) {
	for _, issue := range issues {
		node := ""
		if issue.NodeKey != "" {
			node = fmt.Sprintf(" [%s]", issue.NodeKey)
		}
		cmd.Printf("  %s%s: %s\n", issue.Level, node, issue.Message)
	}
}

func countErrors(issues []domain.StoryIssue) int {
	n := 0
	for _, issue := range issues {
		if issue.Level == domain.IssueError {
			n++
		}
	}
	return n
}

// preview cuts text to width characters on one line.
func preview(text string, width int) string {
	runes := []rune(text)
	for i, r := range runes {
		if r == '\n' || r == '\r' {
			runes[i] = ' '
		}
	}
	if len(runes) > width {
		return string(runes[:width]) + "..."
	}
	return string(runes)
}
