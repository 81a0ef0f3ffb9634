package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/storycsv/internal/core/ports/driving"
	"github.com/custodia-labs/storycsv/internal/logger"
)

var (
	segmentMinChars      int
	segmentMaxChars      int
	segmentMinParagraphs int
	segmentTitle         string
	segmentDescription   string
	segmentWatch         bool
)

var segmentCmd = &cobra.Command{
	Use:   "segment <input> [output] [continue_label]",
	Short: "Convert a book into a story CSV",
	Long: `Splits a manuscript into paragraphs, packs them greedily into segments
and writes one story row per segment. Every row links to the next through a
continue choice.

Plain text, Markdown, HTML, DOCX and PDF manuscripts are supported.
Chapters marked "Chapter N", "Kapitel N" or "Kapital N" are detected.`,
	Args: cobra.RangeArgs(1, 3),
	RunE: runSegment,
}

func init() {
	segmentCmd.Flags().IntVar(&segmentMinChars, "min-chars", 0, "soft minimum segment length")
	segmentCmd.Flags().IntVar(&segmentMaxChars, "max-chars", 0, "length a segment should not grow past")
	segmentCmd.Flags().IntVar(&segmentMinParagraphs, "min-paragraphs", 0, "paragraphs merged before a segment may close")
	segmentCmd.Flags().StringVar(&segmentTitle, "title", "", "story title for the metadata row")
	segmentCmd.Flags().StringVar(&segmentDescription, "description", "", "story description for the metadata row")
	segmentCmd.Flags().BoolVarP(&segmentWatch, "watch", "w", false, "convert again whenever the input changes")
	rootCmd.AddCommand(segmentCmd)
}

func runSegment(cmd *cobra.Command, args []string) error {
	if segmentService == nil {
		return errors.New("segment service not configured")
	}

	req, err := segmentRequest(cmd, args)
	if err != nil {
		return err
	}

	if segmentWatch {
		return watchSegment(cmd, req)
	}

	result, err := segmentService.Convert(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("segment failed: %w", err)
	}
	printSegmentResult(cmd, result)
	return nil
}

// segmentRequest layers arguments and flags over the configured settings.
func segmentRequest(cmd *cobra.Command, args []string) (driving.SegmentRequest, error) {
	settings, err := currentSettings()
	if err != nil {
		return driving.SegmentRequest{}, err
	}

	req := driving.SegmentRequest{
		InputPath:     args[0],
		OutputPath:    settings.Segment.Output,
		ContinueLabel: settings.Segment.ContinueLabel,
		Params:        settings.Segment.Params,
		Metadata:      settings.Segment.Metadata,
	}
	if len(args) > 1 {
		req.OutputPath = args[1]
	}
	if len(args) > 2 {
		req.ContinueLabel = args[2]
	}

	flags := cmd.Flags()
	if flags.Changed("min-chars") {
		req.Params.MinChars = segmentMinChars
	}
	if flags.Changed("max-chars") {
		req.Params.MaxChars = segmentMaxChars
	}
	if flags.Changed("min-paragraphs") {
		req.Params.MinParagraphs = segmentMinParagraphs
	}
	if flags.Changed("title") {
		req.Metadata.Title = segmentTitle
	}
	if flags.Changed("description") {
		req.Metadata.Description = segmentDescription
	}
	return req, nil
}

func watchSegment(cmd *cobra.Command, req driving.SegmentRequest) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", req.InputPath)
	err := segmentService.Watch(ctx, req, func(result *driving.SegmentResult, err error) {
		if err != nil {
			cmd.PrintErrf("segment failed: %v\n", err)
			return
		}
		printSegmentResult(cmd, result)
		cmd.Println()
	})
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}

func printSegmentResult(cmd *cobra.Command, r *driving.SegmentResult) {
	logger.Debug("segment: %s read as %s", r.InputPath, r.Format)

	cmd.Printf("Found %d segments\n", r.Stats.Count)
	cmd.Printf("  Average length: %d characters\n", r.Stats.Average)
	cmd.Printf("  Min length: %d characters\n", r.Stats.Min)
	cmd.Printf("  Max length: %d characters\n", r.Stats.Max)
	cmd.Printf("  Segments %d-%d chars: %d\n", r.Params.MinChars, r.Params.MaxChars, r.Stats.InRange)
	cmd.Println()
	cmd.Printf("Created CSV file: %s\n", r.OutputPath)
	cmd.Printf("  Total rows: %d\n", r.TotalRows)
	cmd.Printf("  Each segment has a '%s' button linking to the next segment\n", r.ContinueLabel)
}
