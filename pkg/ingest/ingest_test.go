package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cargostow/loadplan/pkg/api/v1alpha1"
	"github.com/cargostow/loadplan/pkg/domain"
)

func TestReadInputAcceptsYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.yaml")
	doc := `
container:
  size: [4, 4, 2]
  weight: 1000
items:
  - id: 1
    size: [1, 1, 4]
    weight: 10
    rotation: free
solver_phase1_max_time_in_seconds: 30
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	in, err := ReadInput(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(in.Items) != 1 || in.Items[0].ID != 1 {
		t.Fatalf("unexpected items: %+v", in.Items)
	}
	if in.ALNSParams.NumIterations != v1alpha1.DefaultALNSNumIterations {
		t.Fatalf("defaults were not applied: %+v", in.ALNSParams)
	}
}

func TestReadInputRejectsMalformedDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.json")
	if err := os.WriteFile(path, []byte(`{"container":{"size":[0,4,2],"weight":1000},"solver_phase1_max_time_in_seconds":30}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadInput(path); err == nil {
		t.Fatal("expected an error for a zero container dimension")
	}
}

func TestReadSettingsDefaultsWhenPathEmpty(t *testing.T) {
	s, err := ReadSettings("")
	if err != nil {
		t.Fatal(err)
	}
	if s.SymmetryMode != v1alpha1.SymmetryModeSimple {
		t.Fatalf("SymmetryMode = %q, want default", s.SymmetryMode)
	}
}

func TestToDomainConvertsItemsAndContainer(t *testing.T) {
	in := &v1alpha1.Input{
		Container: v1alpha1.Container{Size: [3]int64{4, 4, 2}, Weight: 1000},
		Items: []v1alpha1.Item{
			{ID: 7, Size: [3]int64{1, 2, 3}, Weight: 5, Rotation: v1alpha1.RotationModeZ},
		},
	}
	boxes, container := ToDomain(in)
	if len(boxes) != 1 || boxes[0].ID != 7 || boxes[0].Rotation != domain.RotationZAxis {
		t.Fatalf("unexpected boxes: %+v", boxes)
	}
	if container.Dims != (domain.Dims{L: 4, W: 4, H: 2}) || container.WeightMax != 1000 {
		t.Fatalf("unexpected container: %+v", container)
	}
}

func TestFromDomainSkipsEmptyInstances(t *testing.T) {
	boxes := []domain.Box{{ID: 1, Nominal: domain.Dims{L: 1, W: 1, H: 1}}}
	state := domain.NewState(domain.Assignment{Instances: []domain.Instance{
		{},
		{Boxes: []int{0}},
	}})
	state.Containers = []domain.ContainerPlacement{
		{Status: domain.StatusOptimal},
		{Status: domain.StatusOptimal, Placements: map[int]domain.Placement{
			0: {Orientation: 0, Position: domain.Position{X: 0, Y: 0, Z: 0}, EffectiveDims: domain.Dims{L: 1, W: 1, H: 1}},
		}},
	}

	container := domain.ContainerSpec{Dims: domain.Dims{L: 2, W: 2, H: 2}, WeightMax: 100}
	out := FromDomain(boxes, container, state)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1 (empty instance skipped)", len(out))
	}
	if out[0].ID != 1 {
		t.Fatalf("ID = %d, want 1 (1-based sequential, skipping the empty instance)", out[0].ID)
	}
	if out[0].Size != [3]int64{2, 2, 2} {
		t.Fatalf("Size = %v, want container dims", out[0].Size)
	}
}
