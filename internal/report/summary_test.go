package report

import (
	"strings"
	"testing"

	"github.com/a11yscan/a11yscan/internal/model"
)

// TestSummaryWriter verifies the digest mentions counts, impact levels
// and rule ids from the work list.
func TestSummaryWriter(t *testing.T) {
	t.Parallel()

	records := []model.ViolationRecord{
		{ID: "color-contrast", Impact: "serious", Help: "Elements must meet minimum color contrast"},
		{ID: "color-contrast", Impact: "serious", Help: "Elements must meet minimum color contrast"},
		{ID: "image-alt", Impact: "critical", Help: "Images must have alternate text"},
	}

	var b strings.Builder
	if err := NewSummaryWriter(&b).Write(records); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := b.String()

	for _, want := range []string{
		"3 unique violations",
		"color-contrast",
		"image-alt",
		"serious",
		"critical",
		"By Impact",
		"By Rule",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

// TestSummaryWriterEmptyWorkList verifies the digest renders for a
// clean merge without panicking on empty groupings.
func TestSummaryWriterEmptyWorkList(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	if err := NewSummaryWriter(&b).Write(nil); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.Contains(b.String(), "0 unique violations") {
		t.Errorf("expected zero-count headline, got:\n%s", b.String())
	}
}
