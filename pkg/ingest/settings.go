package ingest

import (
	v1alpha1 "github.com/cargostow/loadplan/pkg/api/v1alpha1"
	"github.com/cargostow/loadplan/pkg/placement"
)

// ToPlacementOpts converts a decoded Settings document into the
// Symmetry/Anchor/Weights fields of a placement.Input, leaving
// Boxes/BoxIndices/Container for the caller (the Placement Evaluator) to
// fill in per container instance.
func ToPlacementOpts(s *v1alpha1.Settings) placement.Input {
	return placement.Input{
		Symmetry: toSymmetryMode(s.SymmetryMode),
		Anchor:   toAnchorMode(s.AnchorMode),
		Weights: placement.Weights{
			FloorArea:               float64(s.PreferFloorAreaWeight),
			LargeBaseLowerLinear:    float64(s.PreferLargeBaseLowerLinearWeight),
			LargeBaseLowerQuadratic: float64(s.PreferLargeBaseLowerQuadraticWeight),
			VolumeLower:             float64(s.PreferVolumeLowerWeight),
			SurfaceContact:          float64(s.PreferSurfaceContactWeight),
			BiggestFaceDown:         float64(s.PreferBiggestFaceDownWeight),
		},
	}
}

func toSymmetryMode(m v1alpha1.SymmetryMode) placement.SymmetryMode {
	switch m {
	case v1alpha1.SymmetryModeFull:
		return placement.SymmetryFull
	case v1alpha1.SymmetryModeNone:
		return placement.SymmetryNone
	default:
		return placement.SymmetrySimple
	}
}

func toAnchorMode(m *v1alpha1.AnchorMode) placement.AnchorMode {
	if m == nil {
		return placement.AnchorNone
	}
	switch *m {
	case v1alpha1.AnchorModeLarger:
		return placement.AnchorLargestVolume
	case v1alpha1.AnchorModeHeavierWithin:
		return placement.AnchorHeaviestWithinMostRecurring
	default:
		return placement.AnchorNone
	}
}
