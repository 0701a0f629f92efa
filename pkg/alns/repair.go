package alns

import (
	"context"
	"time"

	"github.com/cargostow/loadplan/pkg/assignment"
	"github.com/cargostow/loadplan/pkg/domain"
	"github.com/cargostow/loadplan/pkg/solver"
)

// RepairConfig carries everything RO needs to re-run AMB over the boxes a
// prior Destroy call unassigned.
type RepairConfig struct {
	Boxes     []domain.Box
	Container domain.ContainerSpec
	Weights   assignment.Weights
	Driver    *solver.Driver
	Deadline  time.Duration
}

// Repair implements spec.md §4.6: build fixed_assignments for every box
// still present, set J = current_used_count + |removed|, call AMB+SD, and
// rebuild the assignment from the solution by enumerating used instances
// in ascending index order. If the solver returns INFEASIBLE, or UNKNOWN
// with no incumbent, Repair returns state unchanged (still carrying
// state.Removed from the preceding Destroy call, since no repair
// happened).
func Repair(ctx context.Context, state *domain.State, cfg RepairConfig) *domain.State {
	fixed := make(map[int]int)
	for j, inst := range state.Assignment.Instances {
		for _, boxIdx := range inst.Boxes {
			fixed[boxIdx] = j
		}
	}

	maxInstances := state.Assignment.UsedCount() + len(state.Removed)
	if maxInstances <= 0 {
		maxInstances = 1
	}

	built, err := assignment.Build(assignment.Input{
		Boxes:        cfg.Boxes,
		Container:    cfg.Container,
		MaxInstances: maxInstances,
		Fixed:        fixed,
		Weights:      cfg.Weights,
	})
	if err != nil {
		return state
	}

	res := cfg.Driver.Solve(ctx, built.Model, cfg.Deadline)
	if !res.Status.HasSolution() {
		return state
	}

	out := state.Clone()
	out.Assignment = assignment.RebuildAssignment(res, built, maxInstances)
	out.Containers = make([]domain.ContainerPlacement, len(out.Assignment.Instances))
	out.Removed = nil
	out.MarkDirty()
	return out
}
