package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/a11yscan/a11yscan/internal/model"
)

// Visit identifies one (site, page, device) combination to scan.
type Visit struct {
	Site   string
	Page   string
	URL    string
	Device string
}

// BatchProcessor runs page visits concurrently under a bounded limit.
//
// Design decision: Each visit gets a fresh pipeline from the factory and
// accumulates into its own PageResult. Sharing one record accumulator
// across concurrent visits is a correctness hazard, so nothing mutable
// crosses visit boundaries; the only shared slice is the results array,
// written at disjoint indices under a mutex.
type BatchProcessor struct {
	// pipelineFactory creates a fresh pipeline per visit so pipeline
	// state never leaks between pages.
	pipelineFactory func(v Visit) *Pipeline

	// concurrency is the maximum number of simultaneous visits.
	concurrency int

	logger *slog.Logger

	results []*model.PageResult
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent visits.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor. The factory is called once
// per visit with the visit being processed.
func NewBatchProcessor(pipelineFactory func(v Visit) *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     4,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// ProcessBatch runs all visits and returns their results in input order.
// Visit failures are recorded on the individual results rather than
// aborting the batch; the error return only reports cancellation.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, visits []Visit) ([]*model.PageResult, error) {
	bp.logger.Info("starting batch",
		"visits", len(visits),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()
	bp.results = make([]*model.PageResult, len(visits))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, visit := range visits {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			result := model.NewPageResult(visit.Site, visit.Page, visit.URL, visit.Device)
			p := bp.pipelineFactory(visit)

			if err := p.Execute(ctx, result); err != nil {
				// The error is recorded on the result; one failed page
				// must not abort sibling visits.
				bp.logger.Warn("visit failed",
					"page", visit.Page,
					"device", visit.Device,
					"error", err,
				)
			}

			bp.mu.Lock()
			bp.results[i] = result
			bp.mu.Unlock()
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch complete",
		"visits", len(visits),
		"elapsed", time.Since(startTime).Round(time.Millisecond),
	)

	return bp.results, err
}

// ProcessBatchWithCallback runs all visits, invoking callback as each
// completes. The callback runs on the goroutine that finished the visit
// and must be thread-safe if it touches shared state.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	visits []Visit,
	callback func(result *model.PageResult, index int),
) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, visit := range visits {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			result := model.NewPageResult(visit.Site, visit.Page, visit.URL, visit.Device)
			p := bp.pipelineFactory(visit)
			_ = p.Execute(ctx, result) //nolint:errcheck // Error is stored on the result

			callback(result, i)
			return nil
		})
	}

	return g.Wait()
}
