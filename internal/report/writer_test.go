package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/a11yscan/a11yscan/internal/model"
)

// sampleRecords returns a small, distinct record set for write tests.
func sampleRecords() []model.ViolationRecord {
	return []model.ViolationRecord{
		{
			Page:           "about/",
			Device:         "chromium",
			ID:             "color-contrast",
			Impact:         "serious",
			Tags:           "wcag2aa,wcag143",
			Description:    "Ensures the contrast between foreground and background",
			Help:           "Elements must meet minimum color contrast",
			HelpURL:        "https://dequeuniversity.com/rules/axe/4.10/color-contrast",
			HTML:           `<p class="muted">fine print</p>`,
			Target:         "main > p.muted",
			FailureSummary: "Fix any of the following: contrast is 2.5:1",
		},
		{
			Page:   "about/",
			Device: "chromium",
			ID:     "image-alt",
			Impact: "critical",
			HTML:   `<img src="team.png">`,
			Target: "main > img",
			// Absent failure summary must survive the round trip.
			FailureSummary: "",
		},
	}
}

// TestWriterRoundTrip verifies written records load back field-for-field.
func TestWriterRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := NewWriter(dir)

	path, err := w.WriteRecords("about/", sampleRecords())
	if err != nil {
		t.Fatalf("WriteRecords failed: %v", err)
	}
	if filepath.Base(path) != "about_"+FileExtension {
		t.Errorf("unexpected file name %q", filepath.Base(path))
	}

	got, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords failed: %v", err)
	}
	want := sampleRecords()
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d mismatch:\n got %+v\nwant %+v", i, got[i], want[i])
		}
	}
}

// TestWriterCreatesOutputDirectory verifies missing directories are created.
func TestWriterCreatesOutputDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "results")
	w := NewWriter(dir)

	if _, err := w.WriteRecords("home", sampleRecords()); err != nil {
		t.Fatalf("WriteRecords failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("output directory was not created: %v", err)
	}
}

// TestWriterOverwrites verifies an existing file is replaced, not appended.
func TestWriterOverwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := NewWriter(dir)

	if _, err := w.WriteRecords("home", sampleRecords()); err != nil {
		t.Fatalf("first write failed: %v", err)
	}

	single := sampleRecords()[:1]
	path, err := w.WriteRecords("home", single)
	if err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	got, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected overwrite to leave 1 record, got %d", len(got))
	}
}

// TestWriterRejectsEmptySequence verifies the zero-violation skip policy
// is enforced at the writer boundary too.
func TestWriterRejectsEmptySequence(t *testing.T) {
	t.Parallel()

	w := NewWriter(t.TempDir())
	_, err := w.WriteRecords("clean-page", nil)
	if !errors.Is(err, ErrNoRecords) {
		t.Errorf("expected ErrNoRecords, got %v", err)
	}
}

// TestWriteFileKeepsExactName verifies fixed output names bypass
// sanitization (the merge outputs contain a hyphen and extension).
func TestWriteFileKeepsExactName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := NewWriter(dir, WithSheetName("master"))

	path, err := w.WriteFile("master-list.xlsx", sampleRecords())
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if filepath.Base(path) != "master-list.xlsx" {
		t.Errorf("unexpected file name %q", filepath.Base(path))
	}
}

// TestWriteFileEmptySequence verifies the merge outputs can legitimately
// be header-only when every input was empty.
func TestWriteFileEmptySequence(t *testing.T) {
	t.Parallel()

	w := NewWriter(t.TempDir())
	path, err := w.WriteFile("work-list.xlsx", nil)
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no records, got %d", len(got))
	}
}

// TestReadRecordsMissingFile verifies a clear error for absent files.
func TestReadRecordsMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := ReadRecords(filepath.Join(t.TempDir(), "nope.xlsx")); err == nil {
		t.Error("expected error reading missing file")
	}
}

// TestReadRecordsCorruptFile verifies garbage on disk surfaces as an
// error rather than junk records.
func TestReadRecordsCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "corrupt.xlsx")
	if err := os.WriteFile(path, []byte("not a spreadsheet"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadRecords(path); err == nil {
		t.Error("expected error reading corrupt file")
	}
}
