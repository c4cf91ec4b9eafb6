package flatten

import (
	"errors"
	"testing"

	"github.com/a11yscan/a11yscan/internal/model"
)

// TestRecordsCardinality verifies the one-to-many expansion: a result
// with m violations where violation i has n_i nodes must produce exactly
// the sum of all n_i records.
func TestRecordsCardinality(t *testing.T) {
	t.Parallel()

	result := &model.ScanResult{
		Violations: []model.Violation{
			{
				ID: "color-contrast",
				Nodes: []model.Node{
					{HTML: "<p>a</p>", Target: []string{"p:nth-child(1)"}},
					{HTML: "<p>b</p>", Target: []string{"p:nth-child(2)"}},
					{HTML: "<p>c</p>", Target: []string{"p:nth-child(3)"}},
				},
			},
			{
				ID: "image-alt",
				Nodes: []model.Node{
					{HTML: "<img>", Target: []string{"img"}},
				},
			},
			{
				// A violation with zero nodes contributes nothing.
				ID: "region",
			},
		},
	}

	records, err := Records("about/", "chromium", result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
}

// TestRecordsFieldCombination verifies each record combines the
// violation's shared fields with its node's own fields.
func TestRecordsFieldCombination(t *testing.T) {
	t.Parallel()

	result := &model.ScanResult{
		Violations: []model.Violation{
			{
				ID:          "link-name",
				Impact:      "serious",
				Tags:        []string{"wcag2a", "wcag244"},
				Description: "Ensures links have discernible text",
				Help:        "Links must have discernible text",
				HelpURL:     "https://dequeuniversity.com/rules/axe/4.10/link-name",
				Nodes: []model.Node{
					{
						HTML:           `<a href="/x"></a>`,
						Target:         []string{"nav", "a:nth-child(2)"},
						FailureSummary: "Fix all of the following: Element is in tab order",
					},
				},
			},
		},
	}

	records, err := Records("pricing/", "mobile", result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	got := records[0]
	want := model.ViolationRecord{
		Page:           "pricing/",
		Device:         "mobile",
		ID:             "link-name",
		Impact:         "serious",
		Tags:           "wcag2a,wcag244",
		Description:    "Ensures links have discernible text",
		Help:           "Links must have discernible text",
		HelpURL:        "https://dequeuniversity.com/rules/axe/4.10/link-name",
		HTML:           `<a href="/x"></a>`,
		Target:         "nav,a:nth-child(2)",
		FailureSummary: "Fix all of the following: Element is in tab order",
	}
	if got != want {
		t.Errorf("record mismatch:\n got %+v\nwant %+v", got, want)
	}
}

// TestRecordsDataShapeErrors verifies the flattener fails loudly on
// malformed results instead of emitting partial rows.
func TestRecordsDataShapeErrors(t *testing.T) {
	t.Parallel()

	t.Run("nil result returns ErrNilResult", func(t *testing.T) {
		t.Parallel()
		_, err := Records("about/", "chromium", nil)
		if !errors.Is(err, ErrNilResult) {
			t.Errorf("expected ErrNilResult, got %v", err)
		}
	})

	t.Run("missing rule id returns ErrMissingRuleID", func(t *testing.T) {
		t.Parallel()
		result := &model.ScanResult{
			Violations: []model.Violation{
				{ID: "  ", Nodes: []model.Node{{Target: []string{"p"}}}},
			},
		}
		_, err := Records("about/", "chromium", result)
		if !errors.Is(err, ErrMissingRuleID) {
			t.Errorf("expected ErrMissingRuleID, got %v", err)
		}
	})

	t.Run("missing node target returns ErrMissingTarget", func(t *testing.T) {
		t.Parallel()
		result := &model.ScanResult{
			Violations: []model.Violation{
				{ID: "label", Nodes: []model.Node{{HTML: "<input>"}}},
			},
		}
		_, err := Records("about/", "chromium", result)
		if !errors.Is(err, ErrMissingTarget) {
			t.Errorf("expected ErrMissingTarget, got %v", err)
		}
	})

	t.Run("missing failure summary is not an error", func(t *testing.T) {
		t.Parallel()
		result := &model.ScanResult{
			Violations: []model.Violation{
				{ID: "label", Nodes: []model.Node{{Target: []string{"input"}}}},
			},
		}
		records, err := Records("about/", "chromium", result)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if records[0].FailureSummary != "" {
			t.Errorf("expected absent sentinel, got %q", records[0].FailureSummary)
		}
	})
}

// TestRecordsEmptyResult verifies a clean page yields an empty sequence.
func TestRecordsEmptyResult(t *testing.T) {
	t.Parallel()

	records, err := Records("about/", "chromium", &model.ScanResult{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}
