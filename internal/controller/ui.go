// Package controller provides output adapters for displaying scenario
// generation results.
package controller

import (
	"context"

	m "github.com/pyscaff/pyscaff/internal/model"
)

// FileEstimation holds per file scenario counts for the list command.
type FileEstimation struct {
	Path         m.Path
	HasTest      bool
	Declarations int
	Counts       map[m.ScenarioKind]int
}

// Total returns the scenario count across all kinds.
func (e FileEstimation) Total() int {
	total := 0
	for _, n := range e.Counts {
		total += n
	}

	return total
}

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeEstimate StartMode = iota
	ModeGenerate
	ModeView
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// Mode returns the start mode selected by the applied options.
func (c *StartConfig) Mode() StartMode {
	return c.mode
}

// WithEstimateMode sets the UI to estimation mode.
func WithEstimateMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeEstimate
	}
}

// WithGenerateMode sets the UI to generation mode.
func WithGenerateMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeGenerate
	}
}

// WithViewMode sets the UI to summary view mode.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

// UI defines the interface for displaying generation progress and results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayEstimation(ctx context.Context, estimations []FileEstimation, err error) error
	DisplayDiscoveryInfo(ctx context.Context, root m.Path, files int)
	DisplayFileWarning(ctx context.Context, path m.Path, err error)
	DisplayScenarioWarning(ctx context.Context, path m.Path, skipped int)
	DisplaySetupWarning(ctx context.Context, class string, path m.Path)
	DisplayRunSummary(ctx context.Context, summary m.RunSummary) error
}
