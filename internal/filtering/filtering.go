// Package filtering narrows the scanned resume files down to the ones worth
// parsing.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/skill-matrix/internal/resume"
)

// Filter is a single step of the chain.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, docs *resume.Documents) (*resume.Documents, Step, error)
}

type Deps struct {
	Logger *zap.Logger
}

// Step counts documents before and after a filter.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

type Config struct {
	// Extensions overrides the accepted file extensions. Empty means PDF only.
	Extensions  []string
	ExcludeFile string
}

type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

type statusProvider interface {
	Status() Status
}

// Chain applies filters in order.
type Chain struct {
	cfg   *Config
	deps  Deps
	steps []Filter
	done  map[string]Step
}

// New builds a chain. Without explicit steps the default chain is used:
// pdf_only, safe_path and exclude_file.
func New(cfg *Config, logger *zap.Logger, steps ...Filter) *Chain {
	if cfg == nil {
		cfg = &Config{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(steps) == 0 {
		steps = []Filter{NewPDFOnly(), NewSafePath(), NewExcludeFile()}
	}

	return &Chain{
		cfg:   cfg,
		deps:  Deps{Logger: logger},
		steps: steps,
		done:  make(map[string]Step),
	}
}

// Disable turns off the named filter and keeps it listed in Describe.
func (c *Chain) Disable(name, reason string) {
	for _, step := range c.steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates the enabled filters first, so a bad setting fails before any
// document is dropped, then applies them.
func (c *Chain) Run(ctx context.Context, docs *resume.Documents) (*resume.Documents, error) {
	for _, step := range c.steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(c.cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range c.steps {
		if !step.IsEnabled() {
			c.deps.Logger.Info("filter disabled", zap.String("name", step.Name()))
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, info, err := step.Apply(ctx, c.deps, docs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
		c.done[step.Name()] = info

		c.deps.Logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		docs = next
	}

	return docs, nil
}

// Steps returns the counts of every filter applied by the last Run.
func (c *Chain) Steps() map[string]Step {
	out := make(map[string]Step, len(c.done))
	for name, step := range c.done {
		out[name] = step
	}
	return out
}

// Describe reports the status of each filter in chain order.
func (c *Chain) Describe() []Status {
	statuses := make([]Status, 0, len(c.steps))
	for _, step := range c.steps {
		status := Status{Name: step.Name(), Enabled: step.IsEnabled()}
		if reporter, ok := step.(statusProvider); ok {
			status = reporter.Status()
		}
		statuses = append(statuses, status)
	}
	return statuses
}
