package assignment

import (
	"context"
	"testing"
	"time"

	"github.com/cargostow/loadplan/pkg/domain"
	"github.com/cargostow/loadplan/pkg/solver"
)

func box(id int, l, w, h, weight int64) domain.Box {
	return domain.Box{ID: id, Nominal: domain.Dims{L: l, W: w, H: h}, Weight: weight, Rotation: domain.RotationFree}
}

func TestBuildPacksIntoFewestInstances(t *testing.T) {
	boxes := []domain.Box{
		box(1, 5, 5, 5, 10),
		box(2, 5, 5, 5, 10),
		box(3, 5, 5, 5, 10),
	}
	container := domain.ContainerSpec{Dims: domain.Dims{L: 10, W: 10, H: 10}, WeightMax: 100}

	built, err := Build(Input{
		Boxes:        boxes,
		Container:    container,
		MaxInstances: 3,
		Weights:      DefaultWeights(),
	})
	if err != nil {
		t.Fatal(err)
	}

	d := solver.NewDriver()
	res := d.Solve(context.Background(), built.Model, 5*time.Second)
	if !res.Status.HasSolution() {
		t.Fatalf("status = %v, want a solution", res.Status)
	}

	used := 0
	for _, yv := range built.Y {
		v, err := res.Value(yv)
		if err != nil {
			t.Fatal(err)
		}
		if v == 1 {
			used++
		}
	}
	if used != 1 {
		t.Fatalf("used instances = %d, want 1 (three 125-volume boxes fit one 1000-volume container)", used)
	}

	assigned := make(map[int]bool)
	for i := range boxes {
		found := false
		for inst := 0; inst < 3; inst++ {
			v, err := res.Value(built.X[i][inst])
			if err != nil {
				t.Fatal(err)
			}
			if v == 1 {
				if found {
					t.Fatalf("box %d assigned to more than one instance", i)
				}
				found = true
				assigned[i] = true
			}
		}
		if !found {
			t.Fatalf("box %d not assigned to any instance", i)
		}
	}
	if len(assigned) != len(boxes) {
		t.Fatalf("assigned %d boxes, want %d", len(assigned), len(boxes))
	}
}

func TestBuildRespectsFixedAssignments(t *testing.T) {
	boxes := []domain.Box{box(1, 2, 2, 2, 1), box(2, 2, 2, 2, 1)}
	container := domain.ContainerSpec{Dims: domain.Dims{L: 4, W: 4, H: 4}, WeightMax: 10}

	built, err := Build(Input{
		Boxes:        boxes,
		Container:    container,
		MaxInstances: 2,
		Fixed:        map[int]int{0: 1},
		Weights:      DefaultWeights(),
	})
	if err != nil {
		t.Fatal(err)
	}

	d := solver.NewDriver()
	res := d.Solve(context.Background(), built.Model, 5*time.Second)
	if !res.Status.HasSolution() {
		t.Fatalf("status = %v, want a solution", res.Status)
	}
	v, err := res.Value(built.X[0][1])
	if err != nil {
		t.Fatal(err)
	}
	if v != 1 {
		t.Fatalf("fixed box was not pinned to instance 1")
	}
}

func TestBuildRejectsNonPositiveMaxInstances(t *testing.T) {
	if _, err := Build(Input{MaxInstances: 0}); err == nil {
		t.Fatal("expected an error for MaxInstances=0")
	}
}
