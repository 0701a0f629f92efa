package assignment

import (
	"github.com/cargostow/loadplan/pkg/domain"
	"github.com/cargostow/loadplan/pkg/solver"
)

// UpperBoundInstances computes the J upper bound spec.md §9 sanctions
// tightening from the naive numBoxes: the sum of the weight- and
// volume-driven lower bounds on the number of containers needed, each
// rounded up, floored at 1 whenever there is at least one box. This
// shrinks the branch-and-bound search space materially for anything but
// pathological inputs (every box needing its own container).
func UpperBoundInstances(boxes []domain.Box, container domain.ContainerSpec) int {
	if len(boxes) == 0 {
		return 0
	}
	var totalWeight, totalVolume int64
	for _, b := range boxes {
		totalWeight += b.Weight
		totalVolume += b.Nominal.Volume()
	}
	byWeight := ceilDiv(totalWeight, container.WeightMax)
	byVolume := ceilDiv(totalVolume, container.Volume())
	bound := byWeight + byVolume
	if bound < 1 {
		bound = 1
	}
	if bound > len(boxes) {
		bound = len(boxes)
	}
	return bound
}

func ceilDiv(a, b int64) int {
	if b <= 0 || a <= 0 {
		return 0
	}
	return int((a + b - 1) / b)
}

// RebuildAssignment reads x[i,j] back from a solved Result, enumerating
// instances in ascending j per spec.md §4.6's reconstruction rule — both
// the initial Phase 1 solve and every ALNS repair share this decoding
// logic.
func RebuildAssignment(res solver.Result, built Built, maxInstances int) domain.Assignment {
	instances := make([]domain.Instance, maxInstances)
	for i := range built.X {
		for j := 0; j < maxInstances; j++ {
			v, err := res.Value(built.X[i][j])
			if err == nil && v == 1 {
				instances[j].Boxes = append(instances[j].Boxes, i)
				break
			}
		}
	}
	return domain.Assignment{Instances: instances}
}
