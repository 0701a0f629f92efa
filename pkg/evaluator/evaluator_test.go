package evaluator

import (
	"context"
	"testing"

	"github.com/cargostow/loadplan/pkg/domain"
)

func TestScoreAggregatesPerContainerStatus(t *testing.T) {
	w := DefaultWeights()
	containers := []domain.ContainerPlacement{
		{Status: domain.StatusOptimal},
		{Status: domain.StatusFeasible},
		{Status: domain.StatusTimedOut},
		{Status: domain.StatusInfeasible},
	}
	got := Score(containers, w)
	want := -2 - 1 + 500 + 1000
	if got != float64(want) {
		t.Fatalf("Score = %v, want %v", got, want)
	}
}

func TestScoreAllOptimalIsNegative(t *testing.T) {
	w := DefaultWeights()
	containers := []domain.ContainerPlacement{
		{Status: domain.StatusOptimal},
		{Status: domain.StatusOptimal},
	}
	if got := Score(containers, w); got != -4 {
		t.Fatalf("Score = %v, want -4", got)
	}
}

func TestEvaluateSingleBoxFits(t *testing.T) {
	boxes := []domain.Box{
		{ID: 1, Nominal: domain.Dims{L: 2, W: 2, H: 2}, Weight: 1, Rotation: domain.RotationNone},
	}
	container := domain.ContainerSpec{Dims: domain.Dims{L: 5, W: 5, H: 5}, WeightMax: 100}

	e := New(boxes, container)
	state := domain.NewState(domain.Assignment{Instances: []domain.Instance{{Boxes: []int{0}}}})

	e.Evaluate(context.Background(), state)

	if state.ScoreDirty {
		t.Fatal("ScoreDirty should be cleared after Evaluate")
	}
	if len(state.Containers) != 1 {
		t.Fatalf("len(Containers) = %d, want 1", len(state.Containers))
	}
	if !state.Feasible() {
		t.Fatalf("state should be feasible, got status %v", state.Containers[0].Status)
	}
	if _, ok := state.Containers[0].Placements[0]; !ok {
		t.Fatal("expected a placement for box 0")
	}
}

func TestEvaluateEmptyInstanceIsOptimal(t *testing.T) {
	container := domain.ContainerSpec{Dims: domain.Dims{L: 5, W: 5, H: 5}, WeightMax: 100}
	e := New(nil, container)
	state := domain.NewState(domain.Assignment{Instances: []domain.Instance{{}}})

	e.Evaluate(context.Background(), state)

	if state.Containers[0].Status != domain.StatusOptimal {
		t.Fatalf("empty instance status = %v, want OPTIMAL", state.Containers[0].Status)
	}
}
