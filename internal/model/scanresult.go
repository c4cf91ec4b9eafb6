package model

// ScanResult mirrors the result object returned by axe.run() in the page
// context. Only the violations portion is decoded; passes, incomplete and
// inapplicable results are not part of this tool's output.
type ScanResult struct {
	// URL is the page URL the engine reported scanning.
	URL string `json:"url"`

	// Violations contains one entry per violated rule.
	Violations []Violation `json:"violations"`
}

// Violation is one accessibility rule failure covering one or more DOM
// nodes. The shared fields (ID, Impact, Tags, ...) apply to every node.
type Violation struct {
	// ID is the rule identifier.
	ID string `json:"id"`

	// Impact is the engine's severity classification. May be empty.
	Impact string `json:"impact"`

	// Tags classifies the rule (WCAG level, best-practice, ...).
	Tags []string `json:"tags"`

	// Description explains the rule in human-readable terms.
	Description string `json:"description"`

	// Help is the short remediation hint shown next to the violation.
	Help string `json:"help"`

	// HelpURL links to the extended rule documentation.
	HelpURL string `json:"helpUrl"`

	// Nodes lists the offending element instances.
	Nodes []Node `json:"nodes"`
}

// Node is one specific offending element instance within a violation.
type Node struct {
	// HTML is the serialized markup of the element.
	HTML string `json:"html"`

	// Target is the CSS selector path locating the element.
	Target []string `json:"target"`

	// FailureSummary explains why this node failed the rule. May be empty.
	FailureSummary string `json:"failureSummary"`
}

// NodeCount returns the total number of (violation, node) pairs in the
// result, which equals the number of records flattening will produce.
func (s *ScanResult) NodeCount() int {
	var n int
	for _, v := range s.Violations {
		n += len(v.Nodes)
	}
	return n
}
