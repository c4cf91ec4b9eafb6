package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/a11yscan/a11yscan/internal/browser"
	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/flatten"
	"github.com/a11yscan/a11yscan/internal/model"
	"github.com/a11yscan/a11yscan/internal/report"
)

// VisitStep navigates to the page and runs the accessibility engine,
// storing the raw scan result on the PageResult. A navigation or engine
// failure is fatal to this page only; sibling visits are unaffected.
type VisitStep struct {
	driver  *browser.Driver
	site    config.SiteConfig
	timeout time.Duration
}

// NewVisitStep creates the navigate-and-scan step.
func NewVisitStep(driver *browser.Driver, site config.SiteConfig, timeout time.Duration) *VisitStep {
	return &VisitStep{
		driver:  driver,
		site:    site,
		timeout: timeout,
	}
}

// Name returns the step name.
func (s *VisitStep) Name() string {
	return "visit"
}

// Do executes the navigation and scan.
func (s *VisitStep) Do(ctx context.Context, result *model.PageResult) error {
	scan, err := s.driver.Visit(ctx, result.URL, s.site, s.timeout)
	if err != nil {
		return err
	}
	result.Scan = scan
	return nil
}

// FlattenStep expands the raw scan result into flat violation records.
// A malformed scan result fails the page loudly; silent partial rows
// would corrupt the de-duplication key downstream.
type FlattenStep struct{}

// NewFlattenStep creates the flatten step.
func NewFlattenStep() *FlattenStep {
	return &FlattenStep{}
}

// Name returns the step name.
func (s *FlattenStep) Name() string {
	return "flatten"
}

// Do executes the flatten transform.
func (s *FlattenStep) Do(_ context.Context, result *model.PageResult) error {
	records, err := flatten.Records(result.Page, result.Device, result.Scan)
	if err != nil {
		return err
	}
	result.Records = records
	return nil
}

// WriteStep persists the page's records as a result file. Pages with
// zero violations write nothing, keeping the output directory a signal
// of "only pages with problems". A write failure is logged with the
// destination name and recorded on the result, but does not fail the
// visit: the violation gate must not depend on file I/O.
type WriteStep struct {
	writer *report.Writer
	logger *slog.Logger
}

// NewWriteStep creates the result-file writing step.
func NewWriteStep(writer *report.Writer, logger *slog.Logger) *WriteStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &WriteStep{
		writer: writer,
		logger: logger,
	}
}

// Name returns the step name.
func (s *WriteStep) Name() string {
	return "write"
}

// Do writes the result file for pages that have records.
func (s *WriteStep) Do(_ context.Context, result *model.PageResult) error {
	result.Elapsed = time.Since(result.StartedAt)

	if len(result.Records) == 0 {
		s.logger.Debug("no violations, skipping result file",
			"page", result.Page,
			"device", result.Device,
		)
		return nil
	}

	name := result.Page
	if result.Device != "" && result.Device != config.DefaultDevice {
		name += "_" + result.Device
	}

	path, err := s.writer.WriteRecords(name, result.Records)
	if err != nil {
		s.logger.Error("failed to write result file",
			"page", result.Page,
			"device", result.Device,
			"destination", name,
			"error", err,
		)
		result.WriteError = err.Error()
		return nil
	}

	result.OutputPath = path
	return nil
}
