// Package v1alpha1 holds the wire-format documents of spec.md §6: the
// input document, the Phase-2 settings document it references, and the
// output placement array. Every type round-trips through both JSON and
// YAML via the same `json:"..."` tags (sigs.k8s.io/yaml.Unmarshal decodes
// YAML by first converting it to JSON).
package v1alpha1

// Container is the single container geometry and weight capacity shared
// by every instance, per spec.md §6.
type Container struct {
	Size   [3]int64 `json:"size"`
	Weight int64    `json:"weight"`
}

// RotationMode is the wire-format spelling of a box's rotation policy.
type RotationMode string

const (
	RotationModeNone RotationMode = "none"
	RotationModeZ    RotationMode = "z"
	RotationModeFree RotationMode = "free"
)

// Item is one input box.
type Item struct {
	ID       int          `json:"id"`
	Size     [3]int64     `json:"size"`
	Weight   int64        `json:"weight"`
	Rotation RotationMode `json:"rotation"`
	GroupID  *int         `json:"group_id,omitempty"`
}

// ALNSParams configures the outer ALNS loop, spec.md §6.
type ALNSParams struct {
	NumIterations            int     `json:"num_iterations"`
	NumCanBeMovedPercentage  int     `json:"num_can_be_moved_percentage"`
	TimeLimitSeconds         float64 `json:"time_limit"`
	MaxNoImprove             int     `json:"max_no_improve"`
}

// Input is the top-level input document, spec.md §6.
type Input struct {
	Container                     Container  `json:"container"`
	Items                         []Item     `json:"items"`
	SolverPhase1MaxTimeInSeconds  float64    `json:"solver_phase1_max_time_in_seconds"`
	Step2SettingsFile             string     `json:"step2_settings_file"`
	ALNSParams                    ALNSParams `json:"alns_params"`
}

// AnchorMode is the wire-format spelling of a Phase-2 anchor policy.
type AnchorMode string

const (
	AnchorModeNone          AnchorMode = ""
	AnchorModeLarger        AnchorMode = "larger"
	AnchorModeHeavierWithin AnchorMode = "heavierWithinMostRecurringSimilar"
)

// SymmetryMode is the wire-format spelling of a Phase-2 symmetry policy.
type SymmetryMode string

const (
	SymmetryModeFull   SymmetryMode = "full"
	SymmetryModeSimple SymmetryMode = "simple"
	SymmetryModeNone   SymmetryMode = "none"
)

// Settings is the Phase-2 settings document spec.md §6 references via
// Input.Step2SettingsFile.
type Settings struct {
	SymmetryMode                  SymmetryMode `json:"symmetry_mode"`
	SolverPhase2MaxTimeInSeconds  float64      `json:"solver_phase2_max_time_in_seconds"`
	AnchorMode                    *AnchorMode  `json:"anchor_mode"`

	PreferFloorAreaWeight               int `json:"prefer_floor_area_weight"`
	PreferLargeBaseLowerLinearWeight    int `json:"prefer_large_base_lower_linear_weight"`
	PreferLargeBaseLowerQuadraticWeight int `json:"prefer_large_base_lower_quadratic_weight"`
	PreferVolumeLowerWeight             int `json:"prefer_volume_lower_weight"`
	PreferSurfaceContactWeight          int `json:"prefer_surface_contact_weight"`
	PreferBiggestFaceDownWeight         int `json:"prefer_biggest_face_down_weight"`
}

// Placement is one placed box within the output document.
type Placement struct {
	ID           int          `json:"id"`
	Position     [3]int64     `json:"position"`
	Orientation  int          `json:"orientation"`
	Size         [3]int64     `json:"size"`
	RotationType RotationMode `json:"rotation_type"`
}

// ContainerResult is one used container instance in the output array,
// spec.md §6. ID is 1-based and sequential, not the instance's internal
// slice index.
type ContainerResult struct {
	ID         int         `json:"id"`
	Size       [3]int64    `json:"size"`
	Status     string      `json:"status"`
	Placements []Placement `json:"placements"`
}

// Output is the full output document: an array of used container
// instances.
type Output []ContainerResult
