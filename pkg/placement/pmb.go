// Package placement is the Placement Model Builder (PMB) collaborator of
// spec.md §4.2: given the boxes assigned to one container instance, it
// compiles a solver.Model whose solution gives every box a rotation and
// an integer 3-D corner.
package placement

import (
	"fmt"

	"github.com/cargostow/loadplan/pkg/domain"
	"github.com/cargostow/loadplan/pkg/modelutil"
	"github.com/cargostow/loadplan/pkg/solver"
)

// SymmetryMode selects how PMB breaks symmetry within a group of
// interchangeable boxes (spec.md §4.2).
type SymmetryMode int

const (
	SymmetryNone SymmetryMode = iota
	SymmetrySimple
	SymmetryFull
)

// AnchorMode selects whether and how PMB pins one box at the container
// origin (spec.md §4.2).
type AnchorMode int

const (
	AnchorNone AnchorMode = iota
	AnchorLargestVolume
	AnchorHeaviestWithinMostRecurring
)

// Weights are the non-negative per-term multipliers of the §4.2 soft
// objective; zero disables a term.
type Weights struct {
	FloorArea               float64
	LargeBaseLowerLinear    float64
	LargeBaseLowerQuadratic float64
	VolumeLower             float64
	SurfaceContact          float64
	BiggestFaceDown         float64
}

// Input is everything PMB needs to build a model for one container
// instance.
type Input struct {
	// Boxes are the boxes assigned to this container, and BoxIndices the
	// corresponding original (global) box indices — the caller (PE) uses
	// BoxIndices to key the returned placement map, since PMB itself
	// addresses everything by local position 0..len(Boxes)-1.
	Boxes      []domain.Box
	BoxIndices []int
	Container  domain.ContainerSpec

	Symmetry SymmetryMode
	Anchor   AnchorMode
	Weights  Weights
}

// Built is the compiled model plus the variable indices needed to read
// back a placement per box.
type Built struct {
	Model *solver.Model

	PosX, PosY, PosZ    []int
	LEff, WEff, HEff    []int
	Orient              [][]int // Orient[i][slot] indexed by slot into AllowedOrientations(Boxes[i])
	AllowedOrientations [][]int
}

// Build compiles in into a Model per spec.md §4.2. Boxes are processed in
// local-index order throughout (never via map iteration) to keep model
// construction deterministic (spec.md §8).
func Build(in Input) (Built, error) {
	n := len(in.Boxes)
	m := solver.NewModel("placement")
	cd := in.Container.Dims

	posX := make([]int, n)
	posY := make([]int, n)
	posZ := make([]int, n)
	lEff := make([]int, n)
	wEff := make([]int, n)
	hEff := make([]int, n)
	orient := make([][]int, n)
	allowed := make([][]int, n)

	for i, b := range in.Boxes {
		posX[i] = m.NewIntVar(fmt.Sprintf("pos_x_%d", i), 0, cd.L)
		posY[i] = m.NewIntVar(fmt.Sprintf("pos_y_%d", i), 0, cd.W)
		posZ[i] = m.NewIntVar(fmt.Sprintf("pos_z_%d", i), 0, cd.H)
		lEff[i] = m.NewIntVar(fmt.Sprintf("l_eff_%d", i), 1, cd.L)
		wEff[i] = m.NewIntVar(fmt.Sprintf("w_eff_%d", i), 1, cd.W)
		hEff[i] = m.NewIntVar(fmt.Sprintf("h_eff_%d", i), 1, cd.H)

		allowed[i] = b.AllowedOrientations()
		row := make([]int, len(allowed[i]))
		sumOrient := solver.Expr{}
		for slot, k := range allowed[i] {
			row[slot] = m.NewBoolVar(fmt.Sprintf("orient_%d_%d", i, k))
			sumOrient = sumOrient.Add(row[slot], 1)

			eff := b.EffectiveDims(k)
			modelutil.EqualsConstantWhen(m, fmt.Sprintf("orient_l_%d_%d", i, k), lEff[i], float64(eff.L), bigMForConstant(1, float64(cd.L), float64(eff.L)), row[slot])
			modelutil.EqualsConstantWhen(m, fmt.Sprintf("orient_w_%d_%d", i, k), wEff[i], float64(eff.W), bigMForConstant(1, float64(cd.W), float64(eff.W)), row[slot])
			modelutil.EqualsConstantWhen(m, fmt.Sprintf("orient_h_%d_%d", i, k), hEff[i], float64(eff.H), bigMForConstant(1, float64(cd.H), float64(eff.H)), row[slot])
		}
		orient[i] = row
		m.AddConstraint(fmt.Sprintf("orient_onehot_%d", i), sumOrient, solver.EQ, 1)

		// In-bounds.
		m.AddConstraint(fmt.Sprintf("bounds_x_%d", i), solver.Expr{}.Add(posX[i], 1).Add(lEff[i], 1), solver.LE, float64(cd.L))
		m.AddConstraint(fmt.Sprintf("bounds_y_%d", i), solver.Expr{}.Add(posY[i], 1).Add(wEff[i], 1), solver.LE, float64(cd.W))
		m.AddConstraint(fmt.Sprintf("bounds_z_%d", i), solver.Expr{}.Add(posZ[i], 1).Add(hEff[i], 1), solver.LE, float64(cd.H))
	}

	b := builder{
		m: m, in: in, n: n,
		posX: posX, posY: posY, posZ: posZ,
		lEff: lEff, wEff: wEff, hEff: hEff,
		orient: orient, allowed: allowed,
	}

	onFloor, supports := b.nonOverlapAndSupport()
	b.applyAnchor()
	b.applySymmetry()
	b.buildObjective(onFloor, supports)

	return Built{
		Model: m,
		PosX:  posX, PosY: posY, PosZ: posZ,
		LEff: lEff, WEff: wEff, HEff: hEff,
		Orient: orient, AllowedOrientations: allowed,
	}, nil
}

// builder threads the shared variable indices through the constraint and
// objective stages without a large parameter list on every call.
type builder struct {
	m                *solver.Model
	in               Input
	n                int
	posX, posY, posZ []int
	lEff, wEff, hEff []int
	orient           [][]int
	allowed          [][]int
}

// defVar introduces a new integer variable constrained equal to
// sum(expr) + constant, bounded [lo,hi]. It is how this package
// materializes an intermediate linear quantity (an edge position, a
// height-above-floor factor, an axis overlap) so it can be fed into
// modelutil.Product/MaxOf, which operate on variable indices rather than
// raw expressions.
func (b *builder) defVar(name string, expr solver.Expr, constant, lo, hi float64) int {
	v := b.m.NewIntVar(name, int64(lo), int64(hi))
	terms := append(solver.Expr{}, expr...)
	terms = terms.Add(v, -1)
	b.m.AddConstraint(name+"_def", terms, solver.EQ, -constant)
	return v
}

// bigMForConstant returns a safe big-M for a half-reified "var = constant"
// equality: large enough that the relaxation (ImpliesEQ's two inequality
// halves) is slack over var's whole declared range when the indicator is
// 0, even if constant itself falls outside [varLo,varHi] — which happens
// whenever a box's nominal dimensions don't fit the container on every
// axis for every orientation (that orientation is then infeasible
// whenever forced, as it should be).
func bigMForConstant(varLo, varHi, constant float64) float64 {
	m := varHi - constant
	if m < 0 {
		m = -m
	}
	m2 := constant - varLo
	if m2 < 0 {
		m2 = -m2
	}
	if m2 > m {
		return m2
	}
	return m
}
