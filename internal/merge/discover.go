package merge

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/a11yscan/a11yscan/internal/report"
)

// Fixed output names of the consolidation pipeline. Discovery excludes
// both so re-running merge over the same directory consumes only the
// per-page result files, never its own previous output.
const (
	MasterListFile = "master-list" + report.FileExtension
	WorkListFile   = "work-list" + report.FileExtension
)

// ErrNoResultFiles is returned when the result directory holds no files
// with the result extension.
var ErrNoResultFiles = errors.New("no result files found")

// Discover enumerates result files in dir and returns their paths sorted
// by filename. Entries without the result extension, subdirectories, and
// the merge pipeline's own output files are ignored.
//
// Design decision: Directory enumeration order is platform-dependent,
// and the duplicate collapse keeps the first occurrence of each key, so
// an unsorted listing would make "which page's row survives" vary across
// platforms. Sorting by filename makes the merge deterministic.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list result directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), report.FileExtension) {
			continue
		}
		if name == MasterListFile || name == WorkListFile {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoResultFiles)
	}

	sort.Strings(paths)
	return paths, nil
}
