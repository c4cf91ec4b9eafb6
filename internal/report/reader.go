package report

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/a11yscan/a11yscan/internal/model"
)

// ErrNoSheet is returned when a result file contains no sheets at all.
var ErrNoSheet = errors.New("result file has no sheets")

// ReadRecords loads a result file back into violation records,
// field-for-field with no transformation. The first sheet is read
// regardless of its name so that files produced by older versions or
// edited by hand still load. The header row is skipped.
func ReadRecords(path string) ([]model.ViolationRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open result file %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // Read-only access

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoSheet)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from %s: %w", path, err)
	}

	// First row is the header. A file with only a header (or nothing)
	// yields an empty record set, not an error.
	if len(rows) <= 1 {
		return nil, nil
	}

	records := make([]model.ViolationRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, model.RecordFromRow(row))
	}
	return records, nil
}
