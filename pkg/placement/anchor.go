package placement

import (
	"fmt"

	"github.com/cargostow/loadplan/pkg/solver"
)

// applyAnchor pins the chosen anchor box (if any) at the container
// origin, per spec.md §4.2's two anchor policies.
func (b *builder) applyAnchor() {
	idx, ok := b.anchorIndex()
	if !ok {
		return
	}
	b.m.AddConstraint(fmt.Sprintf("anchor_x_%d", idx), solver.Expr{}.Add(b.posX[idx], 1), solver.EQ, 0)
	b.m.AddConstraint(fmt.Sprintf("anchor_y_%d", idx), solver.Expr{}.Add(b.posY[idx], 1), solver.EQ, 0)
	b.m.AddConstraint(fmt.Sprintf("anchor_z_%d", idx), solver.Expr{}.Add(b.posZ[idx], 1), solver.EQ, 0)
}

// anchorIndex resolves the local box index to pin, ties always broken by
// ascending input (local) order — this runs at build time over fixed
// input data, not a solver decision, so it is plain Go control flow.
func (b *builder) anchorIndex() (int, bool) {
	switch b.in.Anchor {
	case AnchorLargestVolume:
		best, bestVol := -1, int64(-1)
		for i, box := range b.in.Boxes {
			if v := box.Nominal.Volume(); v > bestVol {
				best, bestVol = i, v
			}
		}
		return best, best >= 0
	case AnchorHeaviestWithinMostRecurring:
		classes := make(map[[3]int64][]int)
		var order [][3]int64
		for i, box := range b.in.Boxes {
			key := [3]int64{box.Nominal.L, box.Nominal.W, box.Nominal.H}
			if _, seen := classes[key]; !seen {
				order = append(order, key)
			}
			classes[key] = append(classes[key], i)
		}
		bestKey := [3]int64{}
		bestCount := -1
		for _, key := range order {
			if n := len(classes[key]); n > bestCount {
				bestCount, bestKey = n, key
			}
		}
		if bestCount <= 0 {
			return -1, false
		}
		members := classes[bestKey]
		best, bestWeight := members[0], b.in.Boxes[members[0]].Weight
		for _, i := range members[1:] {
			if w := b.in.Boxes[i].Weight; w > bestWeight {
				best, bestWeight = i, w
			}
		}
		return best, true
	default:
		return -1, false
	}
}
