package placement

import (
	"fmt"

	"github.com/cargostow/loadplan/pkg/domain"
	"github.com/cargostow/loadplan/pkg/modelutil"
)

// applySymmetry breaks symmetry within each maximal group of boxes
// sharing identical nominal dimensions and rotation policy, per the
// §4.2 symmetry-breaking note. Group membership is computed here at
// build time (it depends only on immutable box data), with members kept
// in ascending local-index order so the constraint shape is stable run
// to run.
func (b *builder) applySymmetry() {
	if b.in.Symmetry == SymmetryNone {
		return
	}

	type key struct {
		dims   domain.Dims
		policy domain.RotationPolicy
	}
	groups := make(map[key][]int)
	var order []key
	for i, box := range b.in.Boxes {
		k := key{dims: box.Nominal, policy: box.Rotation}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], i)
	}

	cd := b.in.Container.Dims
	longestAxisPos := b.posX
	bigM := float64(cd.L)
	switch {
	case cd.W >= cd.L && cd.W >= cd.H:
		longestAxisPos = b.posY
		bigM = float64(cd.W)
	case cd.H >= cd.L && cd.H >= cd.W:
		longestAxisPos = b.posZ
		bigM = float64(cd.H)
	}

	for gi, k := range order {
		members := groups[k]
		if len(members) < 2 {
			continue
		}
		name := fmt.Sprintf("symmetry_%d", gi)
		switch b.in.Symmetry {
		case SymmetrySimple:
			axisVars := make([]int, len(members))
			for idx, boxIdx := range members {
				axisVars[idx] = longestAxisPos[boxIdx]
			}
			modelutil.SimpleAxisOrder(b.m, name, axisVars)
		case SymmetryFull:
			coords := make([]modelutil.Coord3, len(members))
			for idx, boxIdx := range members {
				coords[idx] = modelutil.Coord3{X: b.posX[boxIdx], Y: b.posY[boxIdx], Z: b.posZ[boxIdx]}
			}
			modelutil.LexicographicOrder(b.m, name, coords, bigM)
		}
	}
}
