package model

import "time"

// PageResult accumulates the outcome of one page visit: the raw scan
// result, the flattened records, and the path of the written result
// file. Each visit owns its PageResult exclusively; concurrent visits
// never share an accumulator.
type PageResult struct {
	// Site is the configured site name the page belongs to.
	Site string

	// Page is the site-relative slug that was visited.
	Page string

	// URL is the fully resolved address that was navigated to.
	URL string

	// Device is the browser profile name used for the visit.
	Device string

	// Scan is the raw engine result. Nil until the scan step ran.
	Scan *ScanResult

	// Records is the flattened record sequence for this page.
	Records []ViolationRecord

	// OutputPath is the written result file, or empty when the page had
	// zero violations (no file is written) or the write failed.
	OutputPath string

	// WriteError records a result-file write failure. A page whose file
	// could not be written still counts as scanned; the violation gate
	// is independent of file-write success.
	WriteError string

	// StartedAt and Elapsed time the visit.
	StartedAt time.Time
	Elapsed   time.Duration

	// Err is the first fatal error of the visit (navigation, engine, or
	// flatten failure). A page with Err set produced no records.
	Err error

	// ErrorMessage is Err's string form for serialization.
	ErrorMessage string
}

// NewPageResult creates a PageResult for one (page, device) visit.
func NewPageResult(site, page, url, device string) *PageResult {
	return &PageResult{
		Site:      site,
		Page:      page,
		URL:       url,
		Device:    device,
		StartedAt: time.Now(),
	}
}

// Failed reports whether the visit itself failed (as opposed to the page
// merely having violations).
func (p *PageResult) Failed() bool {
	return p.Err != nil
}

// WorstImpact returns the highest impact among the page's records.
// ImpactUnknown when there are no records.
func (p *PageResult) WorstImpact() Impact {
	worst := ImpactUnknown
	for _, r := range p.Records {
		if impact := ParseImpact(r.Impact); impact > worst {
			worst = impact
		}
	}
	return worst
}

// SetError records a fatal visit error.
func (p *PageResult) SetError(err error) {
	p.Err = err
	if err != nil {
		p.ErrorMessage = err.Error()
	}
}
