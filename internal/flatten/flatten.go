// Package flatten expands an axe-core scan result into flat violation
// records, one per (violation, node) pair. The transform is pure: it has
// no side effects and either produces a complete record set or fails.
package flatten

import (
	"errors"
	"fmt"
	"strings"

	"github.com/a11yscan/a11yscan/internal/model"
)

// Data-shape errors returned when a scan result is missing fields the
// flattened records depend on. Emitting partial rows silently would
// corrupt the downstream de-duplication key, so the flattener fails
// loudly instead and lets the caller decide whether to abort the run or
// skip the page.
var (
	// ErrNilResult is returned when the scan result itself is nil.
	ErrNilResult = errors.New("scan result is nil")

	// ErrMissingRuleID is returned when a violation carries no rule id.
	ErrMissingRuleID = errors.New("violation is missing rule id")

	// ErrMissingTarget is returned when a node carries no target locator.
	ErrMissingTarget = errors.New("violation node is missing target locator")
)

// listSeparator joins multi-valued engine fields (tags, target paths)
// into the single string cell the spreadsheet format uses. Matches the
// default Array.prototype.join separator axe reporters use.
const listSeparator = ","

// Records expands a scan result into one ViolationRecord per
// (violation, node) pair. Each record combines the violation's shared
// fields with the node's own fields, stamped with the page slug and
// device profile of the visit that produced it.
//
// A violation with no nodes contributes nothing; that is how axe reports
// rules that matched but found no offending elements after filtering.
func Records(page, device string, result *model.ScanResult) ([]model.ViolationRecord, error) {
	if result == nil {
		return nil, ErrNilResult
	}

	records := make([]model.ViolationRecord, 0, result.NodeCount())
	for i, v := range result.Violations {
		if strings.TrimSpace(v.ID) == "" {
			return nil, fmt.Errorf("violation %d on page %q: %w", i, page, ErrMissingRuleID)
		}

		tags := strings.Join(v.Tags, listSeparator)
		for j, n := range v.Nodes {
			if len(n.Target) == 0 {
				return nil, fmt.Errorf("violation %q node %d on page %q: %w", v.ID, j, page, ErrMissingTarget)
			}

			records = append(records, model.ViolationRecord{
				Page:           page,
				Device:         device,
				ID:             v.ID,
				Impact:         v.Impact,
				Tags:           tags,
				Description:    v.Description,
				Help:           v.Help,
				HelpURL:        v.HelpURL,
				HTML:           n.HTML,
				Target:         strings.Join(n.Target, listSeparator),
				FailureSummary: n.FailureSummary,
			})
		}
	}

	return records, nil
}
