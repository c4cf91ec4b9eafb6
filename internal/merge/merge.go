package merge

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/a11yscan/a11yscan/internal/model"
	"github.com/a11yscan/a11yscan/internal/report"
)

// ErrNoReadableFiles is returned when files were discovered but none of
// them could be loaded. A merge with zero inputs has nothing to write.
var ErrNoReadableFiles = errors.New("no result files could be read")

// Result summarizes one consolidation run.
type Result struct {
	// FilesDiscovered is the number of result files found in the directory.
	FilesDiscovered int

	// FilesLoaded is the number of files successfully read. Files that
	// fail to load are skipped and logged, not fatal.
	FilesLoaded int

	// MasterRecords is the record count of the full concatenation.
	MasterRecords int

	// WorkRecords is the record count after duplicate collapse.
	WorkRecords int

	// DuplicatesRemoved is MasterRecords - WorkRecords.
	DuplicatesRemoved int

	// MasterPath and WorkPath are the written output file paths.
	MasterPath string
	WorkPath   string
}

// Runner executes the consolidation pipeline over one result directory.
// It is single-threaded by design: it runs after collection completes
// and operates on static files. Running it concurrently with a
// collection run against the same directory is unsupported.
type Runner struct {
	dir    string
	logger *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets a custom logger for the merge run.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a Runner over the given result directory.
func NewRunner(dir string, opts ...RunnerOption) *Runner {
	r := &Runner{dir: dir}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Run discovers all result files, concatenates their records, writes the
// master list, collapses duplicates, and writes the work list. Both
// output files are written on every run, even when no duplicates were
// found and the two are identical in content.
func (r *Runner) Run() (*Result, error) {
	paths, err := Discover(r.dir)
	if err != nil {
		return nil, err
	}

	res := &Result{FilesDiscovered: len(paths)}

	// Concatenate in discovery order. A file that fails to read is
	// skipped; one corrupt or locked file must not block the merge.
	var records []model.ViolationRecord
	for _, path := range paths {
		recs, err := report.ReadRecords(path)
		if err != nil {
			r.logger.Warn("skipping unreadable result file",
				"path", path,
				"error", err,
			)
			continue
		}
		res.FilesLoaded++
		records = append(records, recs...)
		r.logger.Debug("loaded result file",
			"path", path,
			"records", len(recs),
		)
	}

	if res.FilesLoaded == 0 {
		return nil, fmt.Errorf("%s: %w", r.dir, ErrNoReadableFiles)
	}

	writer := report.NewWriter(r.dir, report.WithSheetName("master"))
	res.MasterPath, err = writer.WriteFile(MasterListFile, records)
	if err != nil {
		return nil, err
	}
	res.MasterRecords = len(records)

	reduced, removed := Dedupe(records)

	writer = report.NewWriter(r.dir, report.WithSheetName("worklist"))
	res.WorkPath, err = writer.WriteFile(WorkListFile, reduced)
	if err != nil {
		return nil, err
	}
	res.WorkRecords = len(reduced)
	res.DuplicatesRemoved = removed

	r.logger.Info("merge complete",
		"files", res.FilesLoaded,
		"master", res.MasterRecords,
		"worklist", res.WorkRecords,
		"duplicates", res.DuplicatesRemoved,
	)

	return res, nil
}

// Records reloads the merged work list from disk. Used by callers that
// want to post-process the reduced sequence, such as the summary writer.
func (r *Runner) Records() ([]model.ViolationRecord, error) {
	return report.ReadRecords(r.workPath())
}

func (r *Runner) workPath() string {
	return filepath.Join(r.dir, WorkListFile)
}
