package placement

import (
	"fmt"

	"github.com/cargostow/loadplan/pkg/modelutil"
	"github.com/cargostow/loadplan/pkg/solver"
)

// buildObjective assembles the §4.2 soft-objective table. The model
// always minimizes, so every reward term is added with a negated
// coefficient.
func (b *builder) buildObjective(onFloor []int, supports map[[2]int]int) {
	cd := b.in.Container.Dims
	w := b.in.Weights
	obj := solver.Expr{}

	baseArea := make([]int, b.n)
	hMinusZ := make([]int, b.n)
	for i := 0; i < b.n; i++ {
		baseArea[i] = modelutil.Product(b.m, fmt.Sprintf("base_area_%d", i), b.lEff[i], 1, float64(cd.L), b.wEff[i], 1, float64(cd.W))
		hMinusZ[i] = b.defVar(fmt.Sprintf("h_minus_z_%d", i), solver.Expr{}.Add(b.posZ[i], -1), float64(cd.H), 0, float64(cd.H))
	}

	if w.FloorArea != 0 {
		for i := 0; i < b.n; i++ {
			term := modelutil.BoolTimesInt(b.m, fmt.Sprintf("floor_area_term_%d", i), onFloor[i], baseArea[i], 0, float64(cd.L*cd.W))
			obj = obj.Add(term, -w.FloorArea)
		}
	}

	if w.LargeBaseLowerLinear != 0 {
		for i := 0; i < b.n; i++ {
			term := modelutil.Product(b.m, fmt.Sprintf("large_base_linear_%d", i), hMinusZ[i], 0, float64(cd.H), baseArea[i], 0, float64(cd.L*cd.W))
			obj = obj.Add(term, -w.LargeBaseLowerLinear)
		}
	}

	if w.LargeBaseLowerQuadratic != 0 {
		for i := 0; i < b.n; i++ {
			sq := modelutil.Product(b.m, fmt.Sprintf("h_minus_z_sq_%d", i), hMinusZ[i], 0, float64(cd.H), hMinusZ[i], 0, float64(cd.H))
			term := modelutil.Product(b.m, fmt.Sprintf("large_base_quad_%d", i), sq, 0, float64(cd.H*cd.H), baseArea[i], 0, float64(cd.L*cd.W))
			obj = obj.Add(term, -w.LargeBaseLowerQuadratic)
		}
	}

	if w.VolumeLower != 0 {
		// vol_i is a constant, so (H-pos_z[i])*vol_i is already linear —
		// no auxiliary product variable needed (same reasoning spec.md
		// §4.1 applies to weight_i·x[i,j]).
		for i := 0; i < b.n; i++ {
			vol := float64(b.in.Boxes[i].Nominal.Volume())
			obj = obj.Add(hMinusZ[i], -w.VolumeLower*vol)
		}
	}

	if w.SurfaceContact != 0 {
		for i := 0; i < b.n; i++ {
			for s := 0; s < b.n; s++ {
				if s == i {
					continue
				}
				sup, ok := supports[[2]int{i, s}]
				if !ok {
					continue
				}
				overlapX := b.axisOverlap(i, s, b.posX, b.lEff, cd.L, fmt.Sprintf("contact_x_%d_%d", i, s))
				overlapY := b.axisOverlap(i, s, b.posY, b.wEff, cd.W, fmt.Sprintf("contact_y_%d_%d", i, s))
				// axisOverlap already clips to [0,axisLen], satisfying
				// Product's non-negative-operand precondition.
				area := modelutil.Product(b.m, fmt.Sprintf("contact_area_%d_%d", i, s), overlapX, 0, float64(cd.L), overlapY, 0, float64(cd.W))
				// Gated by supports[i,s].
				gated := modelutil.BoolTimesInt(b.m, fmt.Sprintf("contact_term_%d_%d", i, s), sup, area, 0, float64(cd.L*cd.W))
				obj = obj.Add(gated, -w.SurfaceContact)
			}
		}
	}

	if w.BiggestFaceDown != 0 {
		b.addBiggestFaceDown(&obj)
	}

	b.m.AddToObjective(obj)
}

// axisOverlap materializes the signed overlap between box i's and box
// s's projected interval on one axis: min(rightEdge_i, rightEdge_s) -
// max(pos_i, pos_s). It is only meaningful when the two boxes truly
// overlap on this axis (callers gate its use by supports[i,s]).
func (b *builder) axisOverlap(i, s int, pos, eff []int, axisLen int64, name string) int {
	rightI := b.defVar(name+"_right_i", solver.Expr{}.Add(pos[i], 1).Add(eff[i], 1), 0, 0, float64(axisLen))
	rightS := b.defVar(name+"_right_s", solver.Expr{}.Add(pos[s], 1).Add(eff[s], 1), 0, 0, float64(axisLen))

	leftMax := modelutil.MaxOf(b.m, name+"_leftmax", []modelutil.Candidate{
		{Expr: solver.Expr{}.Add(pos[i], 1), Lo: 0, Hi: float64(axisLen)},
		{Expr: solver.Expr{}.Add(pos[s], 1), Lo: 0, Hi: float64(axisLen)},
	})
	negRightMin := modelutil.MaxOf(b.m, name+"_negrightmin", []modelutil.Candidate{
		{Expr: solver.Expr{}.Add(rightI, -1), Lo: -float64(axisLen), Hi: 0},
		{Expr: solver.Expr{}.Add(rightS, -1), Lo: -float64(axisLen), Hi: 0},
	})
	// overlap = -negRightMin - leftMax; can be negative when the boxes do
	// not actually overlap on this axis (meaningless in that case, but
	// callers only ever use it gated by supports[i,s]). Clip at zero so
	// it satisfies modelutil.Product's non-negative-operand precondition
	// unconditionally, via the same max-of-K pattern used throughout PMB.
	overlap := b.defVar(name+"_overlap", solver.Expr{}.Add(negRightMin, -1).Add(leftMax, -1), 0, -float64(axisLen), float64(axisLen))
	return modelutil.MaxOf(b.m, name+"_clipped", []modelutil.Candidate{
		{Expr: solver.Expr{}, Lo: 0, Hi: 0},
		{Expr: solver.Expr{}.Add(overlap, 1), Lo: -float64(axisLen), Hi: float64(axisLen)},
	})
}

// addBiggestFaceDown rewards, for each FREE-rotation box, the orientation
// choices whose bottom-face area equals the maximum achievable bottom
// face area for that box. Unlike the other soft terms, no solver-level
// Product/MaxOf is needed: a box's orientation face areas are fully
// determined by its (fixed, already-known) nominal dimensions, so the
// maximum is computed once in Go at build time and the reward becomes a
// plain linear term over the orient[i,k] booleans.
func (b *builder) addBiggestFaceDown(obj *solver.Expr) {
	for i := range b.in.Boxes {
		*obj = append(*obj, b.biggestFaceDownTerms(i)...)
	}
}

// biggestFaceDownTerms returns the reward terms for box i: one per
// allowed orientation slot whose bottom-face area matches the maximum
// achievable for this box. Only FREE-rotation boxes (six allowed
// orientations) carry this term, per spec.md §4.2.
func (b *builder) biggestFaceDownTerms(i int) solver.Expr {
	allowed := b.allowed[i]
	if len(allowed) < 6 {
		return nil
	}
	box := b.in.Boxes[i]
	faceArea := make([]int64, len(allowed))
	var maxArea int64
	for slot, k := range allowed {
		eff := box.EffectiveDims(k)
		faceArea[slot] = eff.L * eff.W
		if faceArea[slot] > maxArea {
			maxArea = faceArea[slot]
		}
	}
	var terms solver.Expr
	for slot := range allowed {
		if faceArea[slot] != maxArea {
			continue
		}
		terms = terms.Add(b.orient[i][slot], -b.in.Weights.BiggestFaceDown*float64(maxArea))
	}
	return terms
}
