// Package assignment is the Assignment Model Builder (AMB) collaborator
// of spec.md §4.1: it compiles a box list and container spec into a
// solver.Model whose solution maps each box to a container instance.
package assignment

import (
	"fmt"
	"sort"

	"github.com/cargostow/loadplan/pkg/domain"
	"github.com/cargostow/loadplan/pkg/modelutil"
	"github.com/cargostow/loadplan/pkg/solver"
)

// Weights are the externally configurable soft-objective multipliers from
// spec.md §4.1; both default to 1.
type Weights struct {
	Group   float64
	Balance float64
}

// DefaultWeights returns λ_group = λ_balance = 1.
func DefaultWeights() Weights { return Weights{Group: 1, Balance: 1} }

// Input is everything AMB needs to build a model for one Phase 1 (or
// repair) invocation.
type Input struct {
	Boxes     []domain.Box
	Container domain.ContainerSpec
	// MaxInstances is the upper bound J on container instances (§4.1).
	MaxInstances int
	// Fixed maps a box index to a forced container instance index, used
	// by the Repair Operator to pin boxes DO did not remove.
	Fixed   map[int]int
	Weights Weights
}

// Built is the compiled model plus the variable indices AMB's caller
// (Solver Driver, then the assignment-rebuild step) needs to read back a
// solution.
type Built struct {
	Model *solver.Model

	// X[i][j] is the index of x[i,j].
	X [][]int
	// Y[j] is the index of y[j].
	Y []int
}

// Build compiles in into a Model per spec.md §4.1. Groups are derived
// from each box's GroupID; boxes are processed in index order throughout
// so the resulting model is built deterministically (spec.md §8).
func Build(in Input) (Built, error) {
	if in.MaxInstances <= 0 {
		return Built{}, fmt.Errorf("assignment: MaxInstances must be positive, got %d", in.MaxInstances)
	}
	n := len(in.Boxes)
	j := in.MaxInstances
	m := solver.NewModel("assignment")

	x := make([][]int, n)
	for i := 0; i < n; i++ {
		x[i] = make([]int, j)
		for inst := 0; inst < j; inst++ {
			x[i][inst] = m.NewBoolVar(fmt.Sprintf("x_%d_%d", i, inst))
		}
	}
	y := make([]int, j)
	for inst := 0; inst < j; inst++ {
		y[inst] = m.NewBoolVar(fmt.Sprintf("y_%d", inst))
	}
	volUsed := make([]int, j)
	capVol := in.Container.Volume()
	for inst := 0; inst < j; inst++ {
		volUsed[inst] = m.NewIntVar(fmt.Sprintf("vol_used_%d", inst), 0, capVol)
	}

	groups := groupIndex(in.Boxes)
	groupIDs := sortedKeys(groups)
	gIn := make(map[int][]int, len(groups)) // groupID -> g_in[j] var per instance
	gSpan := make(map[int]int, len(groups))  // groupID -> g_span var
	for _, gid := range groupIDs {
		row := make([]int, j)
		for inst := 0; inst < j; inst++ {
			row[inst] = m.NewBoolVar(fmt.Sprintf("g_in_%d_%d", gid, inst))
		}
		gIn[gid] = row
		gSpan[gid] = m.NewIntVar(fmt.Sprintf("g_span_%d", gid), 1, j)
	}

	// Σ_j x[i,j] = 1, plus fixed_assignments.
	for i := 0; i < n; i++ {
		expr := solver.Expr{}
		for inst := 0; inst < j; inst++ {
			expr = expr.Add(x[i][inst], 1)
		}
		m.AddConstraint(fmt.Sprintf("assign_one_%d", i), expr, solver.EQ, 1)
	}
	for _, boxIdx := range sortedKeys(in.Fixed) {
		forcedInst := in.Fixed[boxIdx]
		m.AddConstraint(fmt.Sprintf("fixed_%d", boxIdx),
			solver.Expr{}.Add(x[boxIdx][forcedInst], 1), solver.EQ, 1)
	}

	// Capacity constraints.
	for inst := 0; inst < j; inst++ {
		weightExpr := solver.Expr{}
		volExpr := solver.Expr{}
		for i := 0; i < n; i++ {
			weightExpr = weightExpr.Add(x[i][inst], float64(in.Boxes[i].Weight))
			volExpr = volExpr.Add(x[i][inst], float64(in.Boxes[i].Nominal.Volume()))
		}
		weightExpr = weightExpr.Add(y[inst], -float64(in.Container.WeightMax))
		m.AddConstraint(fmt.Sprintf("weight_cap_%d", inst), weightExpr, solver.LE, 0)

		volExpr = volExpr.Add(y[inst], -float64(capVol))
		m.AddConstraint(fmt.Sprintf("vol_cap_%d", inst), volExpr, solver.LE, 0)

		// vol_used[j] = Σ_i vol_i·x[i,j].
		bookkeeping := solver.Expr{}.Add(volUsed[inst], 1)
		for i := 0; i < n; i++ {
			bookkeeping = bookkeeping.Add(x[i][inst], -float64(in.Boxes[i].Nominal.Volume()))
		}
		m.AddConstraint(fmt.Sprintf("vol_used_def_%d", inst), bookkeeping, solver.EQ, 0)
	}

	// Usage coupling: x[i,j] <= y[j].
	for i := 0; i < n; i++ {
		for inst := 0; inst < j; inst++ {
			m.AddConstraint(fmt.Sprintf("usage_%d_%d", i, inst),
				solver.Expr{}.Add(x[i][inst], 1).Add(y[inst], -1), solver.LE, 0)
		}
	}

	// Group touch + span.
	for _, gid := range groupIDs {
		members := groups[gid]
		row := gIn[gid]
		for inst := 0; inst < j; inst++ {
			for _, i := range members {
				m.AddConstraint(fmt.Sprintf("group_touch_%d_%d_%d", gid, i, inst),
					solver.Expr{}.Add(x[i][inst], 1).Add(row[inst], -1), solver.LE, 0)
			}
		}
		spanExpr := solver.Expr{}.Add(gSpan[gid], 1)
		for inst := 0; inst < j; inst++ {
			spanExpr = spanExpr.Add(row[inst], -1)
		}
		m.AddConstraint(fmt.Sprintf("group_span_def_%d", gid), spanExpr, solver.EQ, 0)
	}

	// Symmetry breaking: interchangeable instances, y[j] >= y[j+1].
	modelutil.SimpleAxisOrder(m, "instance_use", reverse(y))

	buildObjective(m, in, y, volUsed, gSpan, groupIDs)

	return Built{Model: m, X: x, Y: y}, nil
}

// sortedKeys returns m's integer keys in ascending order, so every loop
// that ranges over a map in this package iterates in a fixed order
// instead of Go's randomized one — required for the deterministic model
// construction spec.md §8 calls for.
func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// groupIndex returns, for every distinct GroupID present, the list of box
// indices that carry it, iterated and keyed in a way stable across calls
// for the same input (group IDs are already stable integers from
// ingestion; members are appended in ascending box-index order).
func groupIndex(boxes []domain.Box) map[int][]int {
	groups := make(map[int][]int)
	for i, b := range boxes {
		if b.HasGroup() {
			groups[*b.GroupID] = append(groups[*b.GroupID], i)
		}
	}
	return groups
}

// reverse returns a new slice with elements in reverse order, used so
// SimpleAxisOrder's "axisVar[k] <= axisVar[k+1]" shape realizes
// y[j] >= y[j+1] without modelutil needing a second, mirrored helper.
func reverse(vars []int) []int {
	out := make([]int, len(vars))
	for i, v := range vars {
		out[len(vars)-1-i] = v
	}
	return out
}

func buildObjective(m *solver.Model, in Input, y, volUsed []int, gSpan map[int]int, groupIDs []int) {
	obj := solver.Expr{}
	for _, v := range y {
		obj = obj.Add(v, 1)
	}
	for _, gid := range groupIDs {
		// (g_span[g] - 1) weighted; the constant -1 per group is a fixed
		// offset (every model built for this box list has the same
		// number of groups) and does not affect the argmin.
		obj = obj.Add(gSpan[gid], in.Weights.Group)
	}

	// IMB(vol_used): sum of pairwise absolute differences over pairs of
	// used instances. Each |vol_used[j]-vol_used[k]| is linearized with the
	// standard diff >= a-b / diff >= b-a pair, enforced only when both
	// instances are used (both_used >= y[a]+y[b]-1); a pair involving an
	// unused instance contributes nothing.
	capVol := in.Container.Volume()
	for a := 0; a < len(volUsed); a++ {
		for b := a + 1; b < len(volUsed); b++ {
			diff := m.NewIntVar(fmt.Sprintf("vol_imbalance_%d_%d", a, b), 0, capVol)
			bothUsed := m.NewBoolVar(fmt.Sprintf("both_used_%d_%d", a, b))
			m.AddConstraint(fmt.Sprintf("both_used_def_%d_%d", a, b),
				solver.Expr{}.Add(bothUsed, 1).Add(y[a], -1).Add(y[b], -1), solver.GE, -1)
			modelutil.ImpliesGE(m, fmt.Sprintf("imb_ge1_%d_%d", a, b),
				solver.Expr{}.Add(diff, 1).Add(volUsed[a], -1).Add(volUsed[b], 1), 0, float64(capVol), bothUsed)
			modelutil.ImpliesGE(m, fmt.Sprintf("imb_ge2_%d_%d", a, b),
				solver.Expr{}.Add(diff, 1).Add(volUsed[b], -1).Add(volUsed[a], 1), 0, float64(capVol), bothUsed)
			obj = obj.Add(diff, in.Weights.Balance)
		}
	}

	m.AddToObjective(obj)
}
