package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/merge"
	"github.com/a11yscan/a11yscan/internal/report"
)

// NewMergeCmd creates the merge command.
func NewMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Consolidate per-page result files into master and work lists",
		Long: `Merge reads every result file in the output directory, concatenates
their records into master-list.xlsx, then collapses duplicate violations
(same target and failure summary) and writes the reduced sequence as
work-list.xlsx. Both files are written on every run.

Run merge after collection completes. Running it concurrently with a
scan against the same directory is unsupported.

Examples:
  # Merge the default output directory
  a11yscan merge

  # Merge a specific directory and emit a Markdown digest
  a11yscan merge --dir ./a11y-results --summary`,
		Args: cobra.NoArgs,
		RunE: runMergeCmd,
	}

	cmd.Flags().StringP("dir", "d", config.DefaultOutputDir,
		"Directory containing the per-page result files")
	cmd.Flags().BoolP("summary", "s", false,
		"Also write summary.md, a Markdown digest of the work list")

	return cmd
}

// runMergeCmd executes the merge command.
func runMergeCmd(cmd *cobra.Command, _ []string) error {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}
	summary, err := cmd.Flags().GetBool("summary")
	if err != nil {
		return err
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	runner := merge.NewRunner(dir, merge.WithLogger(logger))
	res, err := runner.Run()
	if err != nil {
		return err
	}

	fmt.Printf("Merged %d of %d result files\n", res.FilesLoaded, res.FilesDiscovered)
	fmt.Printf("  master list: %d records -> %s\n", res.MasterRecords, res.MasterPath)
	fmt.Printf("  work list:   %d records -> %s (%d duplicates removed)\n",
		res.WorkRecords, res.WorkPath, res.DuplicatesRemoved)

	if summary {
		if err := writeSummary(dir, runner); err != nil {
			return err
		}
	}

	return nil
}

// writeSummary renders the Markdown digest next to the merged lists.
func writeSummary(dir string, runner *merge.Runner) error {
	records, err := runner.Records()
	if err != nil {
		return fmt.Errorf("failed to reload work list: %w", err)
	}

	path := filepath.Join(dir, "summary.md")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Flushed by SummaryWriter.Write

	if err := report.NewSummaryWriter(f).Write(records); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	fmt.Printf("  summary:     %s\n", path)
	return nil
}
