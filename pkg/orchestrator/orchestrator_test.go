package orchestrator

import (
	"context"
	"testing"
	"time"

	v1alpha1 "github.com/cargostow/loadplan/pkg/api/v1alpha1"
	"github.com/cargostow/loadplan/pkg/domain"
	"github.com/cargostow/loadplan/pkg/placement"
)

func box(id int, l, w, h, weight int64) domain.Box {
	return domain.Box{ID: id, Nominal: domain.Dims{L: l, W: w, H: h}, Weight: weight, Rotation: domain.RotationFree}
}

func smallOptions(boxes []domain.Box, skipALNS bool) Options {
	return Options{
		Boxes:         boxes,
		Container:     domain.ContainerSpec{Dims: domain.Dims{L: 10, W: 10, H: 10}, WeightMax: 1000},
		Phase1MaxTime: 2 * time.Second,
		Phase2MaxTime: 2 * time.Second,
		ALNS: v1alpha1.ALNSParams{
			NumIterations:           3,
			NumCanBeMovedPercentage: 50,
			TimeLimitSeconds:        5,
			MaxNoImprove:            10,
		},
		SkipALNS: skipALNS,
		PlacementOpts: placement.Input{
			Symmetry: placement.SymmetryFull,
			Anchor:   placement.AnchorLargestVolume,
		},
	}
}

func TestRunProducesFeasiblePlacementWithoutALNS(t *testing.T) {
	boxes := []domain.Box{
		box(1, 5, 5, 5, 10),
		box(2, 5, 5, 5, 10),
	}
	result, err := Run(context.Background(), smallOptions(boxes, true))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.RunID == "" {
		t.Fatal("RunID must not be empty")
	}
	if !result.State.Feasible() {
		t.Fatalf("expected feasible result, got score %v containers %+v", result.State.Score, result.State.Containers)
	}
	if result.State.Assignment.UsedCount() == 0 {
		t.Fatal("expected at least one used container instance")
	}
}

func TestRunWithALNSNeverProducesWorseScoreThanInitial(t *testing.T) {
	boxes := []domain.Box{
		box(1, 5, 5, 5, 10),
		box(2, 5, 5, 5, 10),
		box(3, 4, 4, 4, 10),
	}
	withoutALNS, err := Run(context.Background(), smallOptions(boxes, true))
	if err != nil {
		t.Fatalf("Run (no ALNS) returned error: %v", err)
	}

	withALNS, err := Run(context.Background(), smallOptions(boxes, false))
	if err != nil {
		t.Fatalf("Run (with ALNS) returned error: %v", err)
	}

	if withALNS.State.Score > withoutALNS.State.Score {
		t.Fatalf("ALNS loop regressed score: initial-equivalent=%v final=%v", withoutALNS.State.Score, withALNS.State.Score)
	}
}

func TestRunRejectsInfeasiblePhase1(t *testing.T) {
	boxes := []domain.Box{
		box(1, 50, 50, 50, 10),
	}
	opts := smallOptions(boxes, true)
	opts.Container = domain.ContainerSpec{Dims: domain.Dims{L: 5, W: 5, H: 5}, WeightMax: 1000}

	_, err := Run(context.Background(), opts)
	if err == nil {
		t.Fatal("expected an error for a box that cannot fit in any container")
	}
}
