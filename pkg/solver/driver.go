package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrNoSolution is returned by Result.Value when the solver's status does
// not guarantee an extractable variable value (spec.md §4.3).
var ErrNoSolution = errors.New("solver: no solution to extract")

// Result is what Driver.Solve returns: a Status, the wall-clock time spent,
// and (when Status.HasSolution()) the variable values needed to build a
// value extractor.
type Result struct {
	Status    Status
	Elapsed   time.Duration
	Objective float64

	values []float64 // indexed by Model variable index; nil unless HasSolution()
}

// Value extracts the integer value the solver assigned to the variable at
// idx. It fails with ErrNoSolution whenever Status is not OPTIMAL or
// FEASIBLE, regardless of whether values happens to be populated.
func (r Result) Value(idx int) (int64, error) {
	if !r.Status.HasSolution() {
		return 0, ErrNoSolution
	}
	if idx < 0 || idx >= len(r.values) {
		return 0, fmt.Errorf("solver: variable index %d out of range", idx)
	}
	return int64(math.Round(r.values[idx])), nil
}

// Driver is the Solver Driver collaborator: it accepts a Model and a
// deadline and returns a Result, the concrete stand-in for spec.md's
// external CP-solver call. Workers configures the branch-and-bound
// engine's internal sibling-node parallelism; it is the only place in this
// program parallelism is permitted to affect a solve's outcome surface
// (the outcome itself stays deterministic — see branchbound.go).
type Driver struct {
	Workers int
}

// NewDriver returns a Driver with sequential (Workers=1) branch-and-bound.
func NewDriver() *Driver {
	return &Driver{Workers: 1}
}

// Solve runs branch-and-bound over model, stopping no later than deadline
// after the call (or sooner, if ctx is canceled first).
func (d *Driver) Solve(ctx context.Context, model *Model, deadline time.Duration) Result {
	abs := time.Now().Add(deadline)
	return branchAndBound(ctx, model, abs, bbConfig{Workers: d.Workers})
}
