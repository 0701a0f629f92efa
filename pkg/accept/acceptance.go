// Package accept implements the Acceptance Criterion (AC, spec.md §4.7)
// and Stopping Criterion (SC, spec.md §4.8) collaborators the ALNS loop
// consults once per iteration.
package accept

import (
	"golang.org/x/exp/rand"

	"github.com/cargostow/loadplan/pkg/domain"
)

// uphillProbability is the fixed 5% chance spec.md §4.7 grants an
// otherwise-rejected candidate.
const uphillProbability = 0.05

// Decision is AC's verdict plus which states should become the new
// "current" and "best" — the orchestrator applies exactly what Decision
// says, never re-deriving the comparison itself.
type Decision struct {
	Accepted  bool
	NewBest   bool
	Candidate *domain.State
}

// Decide implements spec.md §4.7's acceptance ladder, in order:
//  1. infeasible candidate -> reject
//  2. candidate strictly better than best -> accept as current and best
//  3. candidate strictly better than current -> accept as current
//  4. otherwise, accept as current with probability 5% (uphill move)
//  5. otherwise reject
func Decide(best, current, candidate *domain.State, rng *rand.Rand) Decision {
	if !candidate.Feasible() {
		return Decision{Accepted: false}
	}
	if candidate.Score < best.Score {
		return Decision{Accepted: true, NewBest: true, Candidate: candidate}
	}
	if candidate.Score < current.Score {
		return Decision{Accepted: true, Candidate: candidate}
	}
	if rng.Float64() < uphillProbability {
		return Decision{Accepted: true, Candidate: candidate}
	}
	return Decision{Accepted: false}
}
