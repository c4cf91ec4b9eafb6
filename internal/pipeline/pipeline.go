package pipeline

import (
	"context"
	"log/slog"

	"github.com/a11yscan/a11yscan/internal/model"
)

// Step defines one stage of a page visit. Steps execute in sequence,
// each receiving the visit's accumulated PageResult.
//
// Design decision: An interface rather than function types because steps
// carry configuration state (drivers, writers) and a Name() for logging.
type Step interface {
	// Do executes the step. A returned error is fatal to this page's
	// visit; non-fatal conditions should be recorded on the result and
	// return nil.
	Do(ctx context.Context, result *model.PageResult) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline executes the steps of a single page visit in order.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger

	// continueOnError keeps later steps running after a failure. The
	// default is to stop, because a failed navigation leaves nothing
	// for the flatten and write steps to work on.
	continueOnError bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError keeps executing steps after one fails. Failed
// steps are logged and recorded on the result.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a Pipeline with the given options. Steps are added with
// AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step; steps execute in the order added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence for one page visit. Cancellation is
// checked between steps; steps handle their own timeouts.
func (p *Pipeline) Execute(ctx context.Context, result *model.PageResult) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("visit cancelled",
				"step", step.Name(),
				"page", result.Page,
				"reason", ctx.Err(),
			)
			result.SetError(ctx.Err())
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"page", result.Page,
			"device", result.Device,
		)

		if err := step.Do(ctx, result); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"page", result.Page,
				"device", result.Device,
				"error", err,
			)
			result.SetError(err)
			if !p.continueOnError {
				return err
			}
		}
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
