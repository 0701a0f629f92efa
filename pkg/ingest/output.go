package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/cargostow/loadplan/pkg/api/v1alpha1"
	"github.com/cargostow/loadplan/pkg/domain"
)

// FromDomain converts the orchestrator's final state into the spec.md §6
// output document: one entry per used container instance, 1-based
// sequential IDs, each box's placement expressed in wire format. Every
// entry carries the same container size, since spec.md §1 treats
// container geometry as shared, not per-instance.
func FromDomain(boxes []domain.Box, container domain.ContainerSpec, state *domain.State) v1alpha1.Output {
	out := make(v1alpha1.Output, 0, len(state.Assignment.Instances))
	nextID := 1
	containerSize := [3]int64{container.Dims.L, container.Dims.W, container.Dims.H}
	for j, inst := range state.Assignment.Instances {
		if len(inst.Boxes) == 0 {
			continue
		}
		cp := state.Containers[j]
		result := v1alpha1.ContainerResult{
			ID:         nextID,
			Size:       containerSize,
			Status:     cp.Status.String(),
			Placements: make([]v1alpha1.Placement, 0, len(inst.Boxes)),
		}
		nextID++

		for _, boxIdx := range inst.Boxes {
			box := boxes[boxIdx]
			p, ok := cp.Placements[boxIdx]
			if !ok {
				continue
			}
			result.Placements = append(result.Placements, v1alpha1.Placement{
				ID:           box.ID,
				Position:     [3]int64{p.Position.X, p.Position.Y, p.Position.Z},
				Orientation:  p.Orientation,
				Size:         [3]int64{p.EffectiveDims.L, p.EffectiveDims.W, p.EffectiveDims.H},
				RotationType: fromRotationPolicy(box.Rotation),
			})
		}
		out = append(out, result)
	}
	return out
}

func fromRotationPolicy(p domain.RotationPolicy) v1alpha1.RotationMode {
	switch p {
	case domain.RotationZAxis:
		return v1alpha1.RotationModeZ
	case domain.RotationFree:
		return v1alpha1.RotationModeFree
	default:
		return v1alpha1.RotationModeNone
	}
}

// WriteOutput encodes out as YAML when path's extension is .yaml/.yml,
// JSON otherwise, and writes it to path.
func WriteOutput(path string, out v1alpha1.Output) error {
	var data []byte
	var err error
	if isYAMLExt(path) {
		data, err = yaml.Marshal(out)
	} else {
		data, err = json.MarshalIndent(out, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("ingest: encoding output: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("ingest: writing %s: %w", path, err)
	}
	return nil
}
