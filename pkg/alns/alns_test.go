package alns

import (
	"context"
	"testing"
	"time"

	"golang.org/x/exp/rand"

	"github.com/cargostow/loadplan/pkg/assignment"
	"github.com/cargostow/loadplan/pkg/domain"
	"github.com/cargostow/loadplan/pkg/solver"
)

func stateWithThreeBoxes() *domain.State {
	a := domain.Assignment{Instances: []domain.Instance{
		{Boxes: []int{0, 1}},
		{Boxes: []int{2}},
	}}
	return domain.NewState(a)
}

func TestDestroyRemovesExactCount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	state := stateWithThreeBoxes()

	out := Destroy(state, DestroyConfig{NumRemove: 2}, rng)

	if len(out.Removed) != 2 {
		t.Fatalf("len(Removed) = %d, want 2", len(out.Removed))
	}
	remaining := 0
	for _, inst := range out.Assignment.Instances {
		remaining += len(inst.Boxes)
	}
	if remaining != 1 {
		t.Fatalf("remaining boxes = %d, want 1", remaining)
	}
	if !out.ScoreDirty {
		t.Fatal("ScoreDirty should be set after Destroy")
	}
}

func TestDestroyDoesNotMutateInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	state := stateWithThreeBoxes()
	before := state.Assignment.Clone()

	Destroy(state, DestroyConfig{NumRemove: 2}, rng)

	if len(state.Assignment.Instances[0].Boxes) != len(before.Instances[0].Boxes) {
		t.Fatal("Destroy mutated its input state's assignment")
	}
}

func TestDestroyPercentRemoveRoundsAndFloorsAtOne(t *testing.T) {
	if got := resolveCount(DestroyConfig{PercentRemove: 0.1}, 3); got != 1 {
		t.Fatalf("resolveCount(0.1, 3) = %d, want 1", got)
	}
	if got := resolveCount(DestroyConfig{PercentRemove: 0.5}, 3); got != 2 {
		t.Fatalf("resolveCount(0.5, 3) = %d, want 2", got)
	}
	if got := resolveCount(DestroyConfig{NumRemove: 100}, 3); got != 3 {
		t.Fatalf("resolveCount clamps to total, got %d want 3", got)
	}
}

func TestRepairRebuildsFullAssignment(t *testing.T) {
	boxes := []domain.Box{
		{ID: 1, Nominal: domain.Dims{L: 1, W: 1, H: 1}, Weight: 1, Rotation: domain.RotationNone},
		{ID: 2, Nominal: domain.Dims{L: 1, W: 1, H: 1}, Weight: 1, Rotation: domain.RotationNone},
		{ID: 3, Nominal: domain.Dims{L: 1, W: 1, H: 1}, Weight: 1, Rotation: domain.RotationNone},
	}
	container := domain.ContainerSpec{Dims: domain.Dims{L: 10, W: 10, H: 10}, WeightMax: 100}

	rng := rand.New(rand.NewSource(42))
	state := stateWithThreeBoxes()
	destroyed := Destroy(state, DestroyConfig{NumRemove: 1}, rng)

	repaired := Repair(context.Background(), destroyed, RepairConfig{
		Boxes:     boxes,
		Container: container,
		Weights:   assignment.DefaultWeights(),
		Driver:    solver.NewDriver(),
		Deadline:  5 * time.Second,
	})

	owner := repaired.Assignment.BoxInstance(len(boxes))
	for i := range boxes {
		if owner[i] < 0 {
			t.Fatalf("box %d has no instance after repair", i)
		}
	}
	if len(repaired.Removed) != 0 {
		t.Fatalf("Removed should be cleared after a successful repair, got %v", repaired.Removed)
	}
}
