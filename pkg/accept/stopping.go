package accept

import "time"

// StoppingCriterion is SC (spec.md §4.8): it tracks the iteration count
// and the count since the last best-score improvement, and stops the
// ALNS loop when any of three configured limits is hit. The orchestrator
// queries it exactly once per iteration, after AC has run.
type StoppingCriterion struct {
	MaxIterations     int
	MaxNoImprove      int
	WallClockDeadline time.Time

	iteration int
	noImprove int
}

// NewStoppingCriterion builds a StoppingCriterion whose wall-clock
// deadline is now+deadline. A zero maxIterations or maxNoImprove disables
// that limit; a zero deadline disables the wall-clock limit.
func NewStoppingCriterion(maxIterations, maxNoImprove int, deadline time.Duration) *StoppingCriterion {
	sc := &StoppingCriterion{MaxIterations: maxIterations, MaxNoImprove: maxNoImprove}
	if deadline > 0 {
		sc.WallClockDeadline = time.Now().Add(deadline)
	}
	return sc
}

// Advance records one completed iteration's outcome; improved reports
// whether that iteration produced a new best score.
func (sc *StoppingCriterion) Advance(improved bool) {
	sc.iteration++
	if improved {
		sc.noImprove = 0
	} else {
		sc.noImprove++
	}
}

// Done reports whether any configured limit has been reached.
func (sc *StoppingCriterion) Done() bool {
	if sc.MaxIterations > 0 && sc.iteration >= sc.MaxIterations {
		return true
	}
	if sc.MaxNoImprove > 0 && sc.noImprove >= sc.MaxNoImprove {
		return true
	}
	if !sc.WallClockDeadline.IsZero() && !time.Now().Before(sc.WallClockDeadline) {
		return true
	}
	return false
}

// Iteration returns the number of completed iterations.
func (sc *StoppingCriterion) Iteration() int { return sc.iteration }
