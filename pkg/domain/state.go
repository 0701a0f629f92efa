package domain

// State is the unit the ALNS loop manipulates (spec.md §3): the current
// assignment, the cached per-container placement from the last PE run,
// and a scalar score with a dirty flag so PE's cache is never read stale.
//
// State ownership is single-writer: the orchestrator holds exactly one
// "current" and one "best" State at a time; DO and RO each consume one
// State and return a fresh one, never mutating their input in place (see
// spec.md §5's resource-sharing note).
type State struct {
	Assignment Assignment
	// Containers holds one ContainerPlacement per instance index in
	// Assignment.Instances, populated by the Placement Evaluator. The
	// Placements map at index j is nil when Phase 2 has not yet run for
	// that instance since its contents last changed, when the instance is
	// empty, or when its solve produced no solution.
	Containers []ContainerPlacement
	// Removed records the box indices DO most recently unassigned, so RO
	// knows which boxes need a fresh container assignment.
	Removed []int

	Score      float64
	ScoreDirty bool
}

// NewState builds a State from a freshly produced Assignment with an
// empty, dirty score and no cached placements.
func NewState(a Assignment) *State {
	return &State{
		Assignment: a,
		Containers: make([]ContainerPlacement, len(a.Instances)),
		ScoreDirty: true,
	}
}

// Clone deep-copies the State. Every ALNS operator and every acceptance
// promotion to "best" goes through Clone so ownership transfer is always
// of a value no other actor can still mutate.
func (s *State) Clone() *State {
	out := &State{
		Assignment: s.Assignment.Clone(),
		Containers: make([]ContainerPlacement, len(s.Containers)),
		Score:      s.Score,
		ScoreDirty: s.ScoreDirty,
	}
	for i, c := range s.Containers {
		out.Containers[i] = c.Clone()
	}
	if s.Removed != nil {
		out.Removed = append([]int(nil), s.Removed...)
	}
	return out
}

// MarkDirty invalidates the cached score; any mutation to Assignment or
// Containers must be followed by MarkDirty per spec.md §4.4.
func (s *State) MarkDirty() { s.ScoreDirty = true }

// Feasible reports whether no container carries StatusInfeasible,
// matching the feasibility definition in spec.md §4.4.
func (s *State) Feasible() bool {
	for _, c := range s.Containers {
		if c.Status == StatusInfeasible {
			return false
		}
	}
	return true
}
