package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/storycsv/internal/core/domain"
	"github.com/custodia-labs/storycsv/internal/core/ports/driving"
)

// exportArg switches inspect into export mode.
const exportArg = "export"

const ruleWidth = 80

var (
	inspectRows        int
	inspectWidth       int
	inspectInteractive bool
	inspectOutput      string
)

// isTerminal reports whether stdout is a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [filename|export] [filename]",
	Short: "Show the columns of a tab-delimited file",
	Long: `Prints the headers of a tab-delimited file with their positions, followed
by the first rows with every value labelled by its column.

Use "inspect export [filename]" to write a comma-delimited copy with a
byte-order mark that Excel and Google Sheets open directly.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().IntVarP(&inspectRows, "rows", "n", 0, "data rows to show")
	inspectCmd.Flags().IntVar(&inspectWidth, "width", 0, "characters shown per value")
	inspectCmd.Flags().BoolVarP(&inspectInteractive, "interactive", "i", false, "browse every row in a terminal UI")
	inspectCmd.Flags().StringVarP(&inspectOutput, "output", "o", "", "export file name")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if inspectService == nil {
		return errors.New("inspect service not configured")
	}

	settings, err := currentSettings()
	if err != nil {
		return err
	}

	path := settings.Inspect.File
	if len(args) > 0 && args[0] == exportArg {
		if len(args) > 1 {
			path = args[1]
		}
		return runExport(cmd, path)
	}
	if len(args) > 1 {
		return fmt.Errorf("unexpected argument %q", args[1])
	}
	if len(args) == 1 {
		path = args[0]
	}

	rows := settings.Inspect.MaxRows
	if cmd.Flags().Changed("rows") {
		rows = inspectRows
	}
	width := settings.Inspect.MaxWidth
	if cmd.Flags().Changed("width") {
		width = inspectWidth
	}

	if inspectInteractive {
		if !isTerminal() {
			return errors.New("interactive mode needs a terminal")
		}
		return runBrowser(cmd, path, width)
	}

	report, err := inspectService.Inspect(cmd.Context(), driving.InspectRequest{
		Path:     path,
		MaxRows:  rows,
		MaxWidth: width,
	})
	if errors.Is(err, domain.ErrEmptyFile) {
		cmd.Println("File is empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("inspect failed: %w", err)
	}

	printReport(cmd, report)

	if len(args) == 0 {
		cmd.Println()
		cmd.Println(strings.Repeat("=", ruleWidth))
		cmd.Println("TIP: run 'storycsv inspect export' to export to Excel format")
		cmd.Println(strings.Repeat("=", ruleWidth))
	}
	return nil
}

func runExport(cmd *cobra.Command, path string) error {
	result, err := inspectService.Export(cmd.Context(), driving.ExportRequest{
		Path:       path,
		OutputPath: inspectOutput,
	})
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	cmd.Printf("Exported to Excel format: %s\n", result.OutputPath)
	cmd.Println("This file opens directly in Excel or Google Sheets")
	return nil
}

func printReport(cmd *cobra.Command, r *driving.InspectReport) {
	cmd.Println(strings.Repeat("=", ruleWidth))
	cmd.Printf("CSV file: %s\n", r.Path)
	cmd.Printf("Rows: %d\n", r.RowCount)
	cmd.Printf("Columns: %d\n", r.ColumnCount)
	cmd.Println(strings.Repeat("=", ruleWidth))
	cmd.Println()

	cmd.Println("COLUMNS:")
	for i, name := range r.Headers {
		cmd.Printf("  %2d. %s\n", i+1, name)
	}
	cmd.Println()

	cmd.Printf("SAMPLE DATA (first %d rows):\n", len(r.Rows))
	cmd.Println(strings.Repeat("-", ruleWidth))
	for _, row := range r.Rows {
		cmd.Println()
		cmd.Printf("Row %d (id: %s):\n", row.Index, row.ID)
		for _, f := range row.Fields {
			cmd.Printf("  %s: %s\n", f.Name, f.Value)
		}
		cmd.Println(strings.Repeat("-", ruleWidth))
	}
}
