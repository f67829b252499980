// Package analysis orchestrates percolation sweeps: it generates synthetic
// porous volumes over a grid of (system size, control parameter, replicate)
// conditions, runs the connectivity, transport, topology, and fractal
// estimators on each, and aggregates the outcomes into sample records for
// the scaling/fit engine.
//
// Conditions are embarrassingly parallel (no two tasks share mutable state),
// so the sweep is distributed over a bounded worker pool. Every task owns a
// random source derived deterministically from the base seed and its task
// index, which keeps batches reproducible regardless of goroutine
// scheduling.
package analysis

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/connectivity"
)

// ErrInvalidConfig is returned when sweep parameters are malformed. Bad
// parameters abort the batch immediately and are never silently clamped.
var ErrInvalidConfig = errors.New("analysis: invalid configuration")

// GeneratorKind selects the volume generation model for a sweep.
type GeneratorKind string

const (
	// Site fills each cell independently with probability p.
	Site GeneratorKind = "site"
	// Bond grows the pore phase from the start face with per-bond
	// probability p.
	Bond GeneratorKind = "bond"
	// Correlated thresholds a box-filtered Gaussian field at the p-th
	// quantile.
	Correlated GeneratorKind = "correlated"
)

// ParseGeneratorKind converts a configuration string into a GeneratorKind.
func ParseGeneratorKind(s string) (GeneratorKind, error) {
	switch GeneratorKind(s) {
	case Site, Bond, Correlated:
		return GeneratorKind(s), nil
	default:
		return "", fmt.Errorf("%w: unknown generator kind %q", ErrInvalidConfig, s)
	}
}

// Params holds the sweep configuration. All fields are plain typed values;
// there is no dynamic option table.
type Params struct {
	// Sizes lists the cubic system sizes L to sweep.
	Sizes []int

	// Kind selects the percolation model.
	Kind GeneratorKind

	// PValues lists the control-parameter values to sweep, in ascending
	// order for downstream critical-point estimation.
	PValues []float64

	// Replicates is the number of independent volumes per (L, p) condition.
	Replicates int

	// Connectivity is the pore neighborhood used for component labeling.
	Connectivity connectivity.Connectivity

	// Axis is the transport/percolation direction.
	Axis connectivity.Axis

	// Seed is the base random seed; per-task sources are derived from it.
	Seed uint64

	// NumCores bounds the worker pool (defaults to runtime.NumCPU()).
	NumCores int

	// CorrelationLength is the box-filter half-width for the correlated
	// generator (ignored by the others).
	CorrelationLength int

	// Walkers is the random-walker count for diffusive tortuosity
	// (0 disables the estimator).
	Walkers int

	// ComputeTopology and ComputeFractal enable the per-volume Betti/Euler
	// and box-counting estimates, which dominate runtime on large volumes.
	ComputeTopology bool
	ComputeFractal  bool
}

// Validate checks the sweep parameters, failing fast on the first problem.
func (p *Params) Validate() error {
	if len(p.Sizes) == 0 {
		return fmt.Errorf("%w: no system sizes", ErrInvalidConfig)
	}
	for _, l := range p.Sizes {
		if l <= 0 {
			return fmt.Errorf("%w: size %d must be positive", ErrInvalidConfig, l)
		}
	}
	if len(p.PValues) == 0 {
		return fmt.Errorf("%w: no control-parameter values", ErrInvalidConfig)
	}
	for _, pv := range p.PValues {
		if pv < 0 || pv > 1 {
			return fmt.Errorf("%w: probability %g outside [0,1]", ErrInvalidConfig, pv)
		}
	}
	if p.Replicates <= 0 {
		return fmt.Errorf("%w: replicates %d must be positive", ErrInvalidConfig, p.Replicates)
	}
	if _, err := ParseGeneratorKind(string(p.Kind)); err != nil {
		return err
	}
	if p.Connectivity != connectivity.Face6 && p.Connectivity != connectivity.Full26 {
		return fmt.Errorf("%w: connectivity must be 6 or 26", ErrInvalidConfig)
	}
	if p.Kind == Correlated && p.CorrelationLength < 1 {
		return fmt.Errorf("%w: correlation length %d must be >= 1", ErrInvalidConfig, p.CorrelationLength)
	}
	if p.Walkers < 0 {
		return fmt.Errorf("%w: walker count %d must be non-negative", ErrInvalidConfig, p.Walkers)
	}
	return nil
}

// workers returns the effective worker pool size.
func (p *Params) workers() int {
	if p.NumCores > 0 {
		return p.NumCores
	}
	return runtime.NumCPU()
}

// Analyzer runs percolation sweeps described by Params.
type Analyzer struct {
	params *Params
	log    logrus.FieldLogger
}

// NewAnalyzer creates an analyzer for the given sweep parameters. Logging
// defaults to the standard logrus logger; use SetLogger to redirect it.
func NewAnalyzer(params *Params) *Analyzer {
	return &Analyzer{
		params: params,
		log:    logrus.StandardLogger(),
	}
}

// SetLogger redirects the analyzer's progress logging.
func (a *Analyzer) SetLogger(log logrus.FieldLogger) {
	if log != nil {
		a.log = log
	}
}
