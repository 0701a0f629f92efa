package v1alpha1

import "fmt"

// ValidateInput validates obj per spec.md §6's field constraints,
// following the teacher's ValidateX(obj) error convention.
func ValidateInput(obj *Input) error {
	for _, axis := range obj.Container.Size {
		if axis <= 0 {
			return fmt.Errorf("container.size must be all-positive, got %v", obj.Container.Size)
		}
	}
	if obj.Container.Weight <= 0 {
		return fmt.Errorf("container.weight must be positive, got %d", obj.Container.Weight)
	}
	if obj.SolverPhase1MaxTimeInSeconds <= 0 {
		return fmt.Errorf("solver_phase1_max_time_in_seconds must be positive, got %v", obj.SolverPhase1MaxTimeInSeconds)
	}
	for i, it := range obj.Items {
		for _, axis := range it.Size {
			if axis <= 0 {
				return fmt.Errorf("items[%d].size must be all-positive, got %v", i, it.Size)
			}
		}
		if it.Weight < 0 {
			return fmt.Errorf("items[%d].weight must be non-negative, got %d", i, it.Weight)
		}
		switch it.Rotation {
		case RotationModeNone, RotationModeZ, RotationModeFree:
		default:
			return fmt.Errorf("items[%d].rotation must be one of none|z|free, got %q", i, it.Rotation)
		}
	}
	if p := obj.ALNSParams.NumCanBeMovedPercentage; p < 0 || p > 100 {
		return fmt.Errorf("alns_params.num_can_be_moved_percentage must be in [0,100], got %d", p)
	}
	return nil
}

// ValidateSettings validates obj per spec.md §6's Phase-2 settings
// constraints.
func ValidateSettings(obj *Settings) error {
	switch obj.SymmetryMode {
	case SymmetryModeFull, SymmetryModeSimple, SymmetryModeNone:
	default:
		return fmt.Errorf("symmetry_mode must be one of full|simple|none, got %q", obj.SymmetryMode)
	}
	if obj.SolverPhase2MaxTimeInSeconds <= 0 {
		return fmt.Errorf("solver_phase2_max_time_in_seconds must be positive, got %v", obj.SolverPhase2MaxTimeInSeconds)
	}
	if obj.AnchorMode != nil {
		switch *obj.AnchorMode {
		case AnchorModeNone, AnchorModeLarger, AnchorModeHeavierWithin:
		default:
			return fmt.Errorf("anchor_mode must be one of larger|heavierWithinMostRecurringSimilar|null, got %q", *obj.AnchorMode)
		}
	}
	weights := []struct {
		name string
		v    int
	}{
		{"prefer_floor_area_weight", obj.PreferFloorAreaWeight},
		{"prefer_large_base_lower_linear_weight", obj.PreferLargeBaseLowerLinearWeight},
		{"prefer_large_base_lower_quadratic_weight", obj.PreferLargeBaseLowerQuadraticWeight},
		{"prefer_volume_lower_weight", obj.PreferVolumeLowerWeight},
		{"prefer_surface_contact_weight", obj.PreferSurfaceContactWeight},
		{"prefer_biggest_face_down_weight", obj.PreferBiggestFaceDownWeight},
	}
	for _, w := range weights {
		if w.v < 0 {
			return fmt.Errorf("%s must be non-negative, got %d", w.name, w.v)
		}
	}
	return nil
}
