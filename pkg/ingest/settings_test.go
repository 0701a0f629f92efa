package ingest

import (
	"testing"

	v1alpha1 "github.com/cargostow/loadplan/pkg/api/v1alpha1"
	"github.com/cargostow/loadplan/pkg/placement"
)

func TestToPlacementOptsConvertsSymmetryAnchorAndWeights(t *testing.T) {
	anchor := v1alpha1.AnchorModeLarger
	s := &v1alpha1.Settings{
		SymmetryMode:                v1alpha1.SymmetryModeFull,
		AnchorMode:                  &anchor,
		PreferFloorAreaWeight:       2,
		PreferVolumeLowerWeight:     3,
		PreferBiggestFaceDownWeight: 1,
	}

	opts := ToPlacementOpts(s)
	if opts.Symmetry != placement.SymmetryFull {
		t.Fatalf("Symmetry = %v, want SymmetryFull", opts.Symmetry)
	}
	if opts.Anchor != placement.AnchorLargestVolume {
		t.Fatalf("Anchor = %v, want AnchorLargestVolume", opts.Anchor)
	}
	if opts.Weights.FloorArea != 2 || opts.Weights.VolumeLower != 3 || opts.Weights.BiggestFaceDown != 1 {
		t.Fatalf("unexpected weights: %+v", opts.Weights)
	}
}

func TestToPlacementOptsDefaultsNilAnchorToNone(t *testing.T) {
	s := &v1alpha1.Settings{SymmetryMode: v1alpha1.SymmetryModeNone}
	opts := ToPlacementOpts(s)
	if opts.Anchor != placement.AnchorNone {
		t.Fatalf("Anchor = %v, want AnchorNone for a nil anchor_mode", opts.Anchor)
	}
}
