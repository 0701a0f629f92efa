package placement

import (
	"context"
	"testing"
	"time"

	"github.com/cargostow/loadplan/pkg/domain"
	"github.com/cargostow/loadplan/pkg/solver"
)

func TestBuildSingleBoxFitsOnFloor(t *testing.T) {
	boxes := []domain.Box{
		{ID: 1, Nominal: domain.Dims{L: 4, W: 3, H: 2}, Weight: 5, Rotation: domain.RotationNone},
	}
	container := domain.ContainerSpec{Dims: domain.Dims{L: 10, W: 10, H: 10}, WeightMax: 100}

	built, err := Build(Input{
		Boxes:      boxes,
		BoxIndices: []int{0},
		Container:  container,
		Symmetry:   SymmetryNone,
		Anchor:     AnchorNone,
		Weights:    Weights{FloorArea: 1, VolumeLower: 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	d := solver.NewDriver()
	res := d.Solve(context.Background(), built.Model, 5*time.Second)
	if !res.Status.HasSolution() {
		t.Fatalf("status = %v, want a solution", res.Status)
	}

	z, err := res.Value(built.PosZ[0])
	if err != nil {
		t.Fatal(err)
	}
	if z != 0 {
		t.Fatalf("posZ = %d, want 0 (single box must rest on the floor)", z)
	}

	l, err := res.Value(built.LEff[0])
	if err != nil {
		t.Fatal(err)
	}
	w, err := res.Value(built.WEff[0])
	if err != nil {
		t.Fatal(err)
	}
	if l != 4 || w != 3 {
		t.Fatalf("l_eff=%d w_eff=%d, want 4,3 (RotationNone allows only the nominal orientation)", l, w)
	}
}

func TestBuildTwoBoxesNonOverlapping(t *testing.T) {
	boxes := []domain.Box{
		{ID: 1, Nominal: domain.Dims{L: 6, W: 6, H: 6}, Weight: 1, Rotation: domain.RotationNone},
		{ID: 2, Nominal: domain.Dims{L: 6, W: 6, H: 6}, Weight: 1, Rotation: domain.RotationNone},
	}
	container := domain.ContainerSpec{Dims: domain.Dims{L: 12, W: 6, H: 6}, WeightMax: 100}

	built, err := Build(Input{
		Boxes:      boxes,
		BoxIndices: []int{0, 1},
		Container:  container,
		Symmetry:   SymmetrySimple,
		Anchor:     AnchorLargestVolume,
	})
	if err != nil {
		t.Fatal(err)
	}

	d := solver.NewDriver()
	res := d.Solve(context.Background(), built.Model, 5*time.Second)
	if !res.Status.HasSolution() {
		t.Fatalf("status = %v, want a solution", res.Status)
	}

	x0, _ := res.Value(built.PosX[0])
	x1, _ := res.Value(built.PosX[1])
	if x0 != 0 {
		t.Fatalf("anchor box posX = %d, want 0", x0)
	}
	if x0 == x1 {
		t.Fatalf("both boxes placed at the same X corner: %d", x0)
	}
}
