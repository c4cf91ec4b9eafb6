package model

// ViolationRecord is one flattened accessibility violation: a single
// (rule, DOM node) pair produced by expanding an axe-core result.
// It is the unit of data moving through both pipelines and maps 1:1 to a
// spreadsheet row.
//
// Design decision: We keep every field a plain string (Impact and
// FailureSummary use "" as the absent sentinel) because the record's
// lifecycle is dominated by spreadsheet serialization. Typed fields would
// buy nothing and complicate the round trip.
type ViolationRecord struct {
	// Page is the site-relative path (slug) that was scanned.
	Page string

	// Device identifies the browser profile used for the visit.
	Device string

	// ID is the identifier of the violated rule (e.g. "color-contrast").
	ID string

	// Impact is the severity classification reported by the engine.
	// Empty when the engine did not classify the violation.
	Impact string

	// Tags is the comma-joined set of WCAG classification tags.
	Tags string

	// Description is the human-readable explanation of the rule.
	Description string

	// Help is the short remediation hint.
	Help string

	// HelpURL links to extended rule documentation.
	HelpURL string

	// HTML is the serialized markup of the offending node.
	HTML string

	// Target is the comma-joined CSS selector path locating the node.
	Target string

	// FailureSummary is the engine-produced explanation of why this
	// node failed. Empty when the engine provided none.
	FailureSummary string
}

// RecordColumns lists the spreadsheet column names in the order rows are
// written and read. The order is part of the on-disk file format.
var RecordColumns = []string{
	"page",
	"device",
	"id",
	"impact",
	"tags",
	"description",
	"help",
	"helpUrl",
	"html",
	"target",
	"failureSummary",
}

// keySeparator joins Target and FailureSummary into a single map key.
// Unit separator cannot appear in either field, so distinct pairs can
// never collide.
const keySeparator = "\x1f"

// Key returns the de-duplication key for the record. Two records with
// equal Target and equal FailureSummary describe the same underlying
// violation regardless of every other field, including the page that
// reported it. Absent FailureSummary values compare equal to each other.
func (r ViolationRecord) Key() string {
	return r.Target + keySeparator + r.FailureSummary
}

// Row returns the record's fields in spreadsheet column order.
func (r ViolationRecord) Row() []string {
	return []string{
		r.Page,
		r.Device,
		r.ID,
		r.Impact,
		r.Tags,
		r.Description,
		r.Help,
		r.HelpURL,
		r.HTML,
		r.Target,
		r.FailureSummary,
	}
}

// RecordFromRow builds a record from a spreadsheet row in column order.
// Short rows are padded with empty fields so that files written by older
// tools (or trimmed by spreadsheet editors that drop trailing empty
// cells) still load; missing target or failureSummary cells become the
// absent sentinel rather than an error.
func RecordFromRow(row []string) ViolationRecord {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return ViolationRecord{
		Page:           cell(0),
		Device:         cell(1),
		ID:             cell(2),
		Impact:         cell(3),
		Tags:           cell(4),
		Description:    cell(5),
		Help:           cell(6),
		HelpURL:        cell(7),
		HTML:           cell(8),
		Target:         cell(9),
		FailureSummary: cell(10),
	}
}
