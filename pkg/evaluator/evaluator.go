// Package evaluator is the Placement Evaluator (PE) collaborator of
// spec.md §4.4: given a candidate assignment, it runs the Placement Model
// Builder and Solver Driver on every used container and aggregates a
// scalar quality score from the per-container statuses.
package evaluator

import (
	"context"
	"time"

	"k8s.io/klog/v2"

	"github.com/cargostow/loadplan/pkg/domain"
	"github.com/cargostow/loadplan/pkg/placement"
	"github.com/cargostow/loadplan/pkg/solver"
)

// Weights are the per-status score contributions of spec.md §4.4:
// score = Infeasible*|INFEASIBLE| + Timeout*|UNKNOWN| - Optimal*|OPTIMAL| - Feasible*|FEASIBLE|.
type Weights struct {
	Infeasible float64
	Timeout    float64
	Optimal    float64
	Feasible   float64
}

// DefaultWeights reproduces spec.md §4.4's literal coefficients.
func DefaultWeights() Weights {
	return Weights{Infeasible: 1000, Timeout: 500, Optimal: 2, Feasible: 1}
}

// Evaluator runs PMB+SD per container instance and scores the result.
type Evaluator struct {
	Boxes     []domain.Box
	Container domain.ContainerSpec
	Driver    *solver.Driver
	Deadline  time.Duration

	Symmetry placement.SymmetryMode
	Anchor   placement.AnchorMode
	Weights  placement.Weights

	ScoreWeights Weights
}

// New builds an Evaluator with the spec's default score weights and a
// sequential solver driver; callers override fields as needed before
// calling Evaluate.
func New(boxes []domain.Box, container domain.ContainerSpec) *Evaluator {
	return &Evaluator{
		Boxes:        boxes,
		Container:    container,
		Driver:       solver.NewDriver(),
		Deadline:     5 * time.Second,
		ScoreWeights: DefaultWeights(),
	}
}

// Evaluate runs Phase 2 for every used instance in state.Assignment and
// updates state.Containers and state.Score/ScoreDirty in place per
// spec.md §4.4's caching contract. Empty instances are recorded as
// OPTIMAL but do not enter the score. It returns the (now clean) state
// for convenience; the mutation is the real effect.
func (e *Evaluator) Evaluate(ctx context.Context, state *domain.State) *domain.State {
	logger := klog.FromContext(ctx).WithValues("instance_count", len(state.Assignment.Instances))

	if len(state.Containers) != len(state.Assignment.Instances) {
		state.Containers = make([]domain.ContainerPlacement, len(state.Assignment.Instances))
	}

	for j, inst := range state.Assignment.Instances {
		if len(inst.Boxes) == 0 {
			state.Containers[j] = domain.ContainerPlacement{Status: domain.StatusOptimal}
			continue
		}
		state.Containers[j] = e.evaluateInstance(ctx, logger, j, inst)
	}

	used := make([]domain.ContainerPlacement, 0, len(state.Containers))
	for j, inst := range state.Assignment.Instances {
		if len(inst.Boxes) > 0 {
			used = append(used, state.Containers[j])
		}
	}
	state.Score = Score(used, e.ScoreWeights)
	state.ScoreDirty = false
	return state
}

// evaluateInstance compiles and solves the PMB model for one container
// instance, translating the solver's Result into a domain.ContainerPlacement.
func (e *Evaluator) evaluateInstance(ctx context.Context, logger klog.Logger, j int, inst domain.Instance) domain.ContainerPlacement {
	localBoxes := make([]domain.Box, len(inst.Boxes))
	for i, boxIdx := range inst.Boxes {
		localBoxes[i] = e.Boxes[boxIdx]
	}

	built, err := placement.Build(placement.Input{
		Boxes:      localBoxes,
		BoxIndices: inst.Boxes,
		Container:  e.Container,
		Symmetry:   e.Symmetry,
		Anchor:     e.Anchor,
		Weights:    e.Weights,
	})
	if err != nil {
		logger.Error(err, "failed to build placement model", "instance", j)
		return domain.ContainerPlacement{Status: domain.StatusModelInvalid}
	}

	res := e.Driver.Solve(ctx, built.Model, e.Deadline)
	logger.V(3).Info("placement solve finished", "instance", j, "status", res.Status.String(), "elapsed", res.Elapsed)

	status := translateStatus(res.Status)
	if !res.Status.HasSolution() {
		return domain.ContainerPlacement{Status: status}
	}

	placements := make(map[int]domain.Placement, len(inst.Boxes))
	for i, boxIdx := range inst.Boxes {
		placements[boxIdx] = extractPlacement(res, built, i)
	}
	return domain.ContainerPlacement{Status: status, Placements: placements}
}

// extractPlacement reads back box i's chosen orientation and corner from a
// solved Result. The orientation is the allowed orientation whose orient
// variable reads 1, falling back to the first allowed orientation if none
// does.
func extractPlacement(res solver.Result, built placement.Built, i int) domain.Placement {
	x, _ := res.Value(built.PosX[i])
	y, _ := res.Value(built.PosY[i])
	z, _ := res.Value(built.PosZ[i])

	orientK := built.AllowedOrientations[i][0]
	for slot, k := range built.AllowedOrientations[i] {
		v, _ := res.Value(built.Orient[i][slot])
		if v == 1 {
			orientK = k
			break
		}
	}

	l, _ := res.Value(built.LEff[i])
	w, _ := res.Value(built.WEff[i])
	h, _ := res.Value(built.HEff[i])

	return domain.Placement{
		Orientation:   orientK,
		Position:      domain.Position{X: x, Y: y, Z: z},
		EffectiveDims: domain.Dims{L: l, W: w, H: h},
	}
}

// translateStatus maps a solver.Status onto the domain.ContainerStatus
// tagged sum PE, AC, and scoring all pattern-match on, per spec.md §9's
// design note (never inspect a solver-internal numeric code downstream).
func translateStatus(s solver.Status) domain.ContainerStatus {
	switch s {
	case solver.StatusOptimal:
		return domain.StatusOptimal
	case solver.StatusFeasible:
		return domain.StatusFeasible
	case solver.StatusInfeasible:
		return domain.StatusInfeasible
	case solver.StatusUnknown:
		return domain.StatusTimedOut
	default:
		return domain.StatusModelInvalid
	}
}

// Score aggregates per-container statuses into the scalar spec.md §4.4
// defines, minimized by the outer ALNS loop (lower is better).
func Score(containers []domain.ContainerPlacement, w Weights) float64 {
	var score float64
	for _, c := range containers {
		switch c.Status {
		case domain.StatusInfeasible:
			score += w.Infeasible
		case domain.StatusTimedOut:
			score += w.Timeout
		case domain.StatusOptimal:
			score -= w.Optimal
		case domain.StatusFeasible:
			score -= w.Feasible
		}
	}
	return score
}
