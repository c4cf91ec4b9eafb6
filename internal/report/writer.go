package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/a11yscan/a11yscan/internal/model"
)

// FileExtension marks result files on disk. The merge pipeline uses it
// to filter directory entries during discovery.
const FileExtension = ".xlsx"

// DefaultSheetName is the sheet name used for per-page result files.
const DefaultSheetName = "violations"

// ErrNoRecords is returned when WriteRecords is called with an empty
// record sequence. Pages with zero violations must not produce a result
// file, so the output directory stays a signal of "only pages with
// problems"; the caller is expected to skip the write instead of
// relying on this error.
var ErrNoRecords = errors.New("no records to write")

// Writer persists violation records as xlsx result files in a single
// output directory.
//
// Design decision: The writer owns directory creation and name
// sanitization rather than leaving them to callers, because every write
// path (per-page results, master list, work list) needs the same
// guarantees and a stray unsanitized slug must never become a path.
type Writer struct {
	// dir is the output directory. Created on first write if absent.
	dir string

	// sheet is the sheet name given to the single sheet of each file.
	sheet string
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithSheetName overrides the sheet name used for written files.
func WithSheetName(name string) WriterOption {
	return func(w *Writer) {
		if name != "" {
			w.sheet = name
		}
	}
}

// NewWriter creates a Writer that stores result files under dir.
func NewWriter(dir string, opts ...WriterOption) *Writer {
	w := &Writer{
		dir:   dir,
		sheet: DefaultSheetName,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the writer's output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// WriteRecords serializes records to "<sanitized-name>.xlsx" inside the
// output directory, creating the directory if needed. An existing file
// at the resolved path is replaced, never appended to. Returns the path
// of the written file.
func (w *Writer) WriteRecords(name string, records []model.ViolationRecord) (string, error) {
	if len(records) == 0 {
		return "", ErrNoRecords
	}

	if err := os.MkdirAll(w.dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", w.dir, err)
	}

	path := filepath.Join(w.dir, SanitizeName(name)+FileExtension)
	if err := w.writeFile(path, records); err != nil {
		return "", fmt.Errorf("failed to write result file %s: %w", path, err)
	}
	return path, nil
}

// WriteFile serializes records to an exact file name (extension
// included) inside the output directory. Used by the merge pipeline for
// its fixed master-list and work-list outputs, whose names are part of
// the tool's contract and must not be sanitized.
func (w *Writer) WriteFile(filename string, records []model.ViolationRecord) (string, error) {
	if err := os.MkdirAll(w.dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", w.dir, err)
	}

	path := filepath.Join(w.dir, filename)
	if err := w.writeFile(path, records); err != nil {
		return "", fmt.Errorf("failed to write result file %s: %w", path, err)
	}
	return path, nil
}

// writeFile builds the workbook and saves it, overwriting any existing
// file at path.
func (w *Writer) writeFile(path string, records []model.ViolationRecord) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // In-memory workbook, nothing to flush

	// The default workbook comes with "Sheet1"; rename it so the single
	// sheet is named for its content.
	if err := f.SetSheetName("Sheet1", w.sheet); err != nil {
		return err
	}

	header := model.RecordColumns
	if err := f.SetSheetRow(w.sheet, "A1", &header); err != nil {
		return err
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := rec.Row()
		if err := f.SetSheetRow(w.sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
