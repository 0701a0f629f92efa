package v1alpha1

// Defaults for fields spec.md §6 leaves optional.
const (
	DefaultSolverPhase1MaxTimeInSeconds = 30.0
	DefaultSolverPhase2MaxTimeInSeconds = 10.0
	DefaultALNSNumIterations            = 200
	DefaultALNSNumCanBeMovedPercentage  = 20
	DefaultALNSTimeLimitSeconds         = 60.0
	DefaultALNSMaxNoImprove             = 50

	DefaultPreferFloorAreaWeight               = 1
	DefaultPreferLargeBaseLowerLinearWeight    = 1
	DefaultPreferLargeBaseLowerQuadraticWeight = 0
	DefaultPreferVolumeLowerWeight             = 1
	DefaultPreferSurfaceContactWeight          = 1
	DefaultPreferBiggestFaceDownWeight         = 1
)

// SetDefaults_Input fills in zero-valued optional fields of obj per the
// constants above, following the teacher's SetDefaults_X(obj) convention.
func SetDefaults_Input(obj *Input) {
	if obj.SolverPhase1MaxTimeInSeconds == 0 {
		obj.SolverPhase1MaxTimeInSeconds = DefaultSolverPhase1MaxTimeInSeconds
	}
	if obj.ALNSParams.NumIterations == 0 {
		obj.ALNSParams.NumIterations = DefaultALNSNumIterations
	}
	if obj.ALNSParams.NumCanBeMovedPercentage == 0 {
		obj.ALNSParams.NumCanBeMovedPercentage = DefaultALNSNumCanBeMovedPercentage
	}
	if obj.ALNSParams.TimeLimitSeconds == 0 {
		obj.ALNSParams.TimeLimitSeconds = DefaultALNSTimeLimitSeconds
	}
	if obj.ALNSParams.MaxNoImprove == 0 {
		obj.ALNSParams.MaxNoImprove = DefaultALNSMaxNoImprove
	}
	for i := range obj.Items {
		if obj.Items[i].Rotation == "" {
			obj.Items[i].Rotation = RotationModeNone
		}
	}
}

// SetDefaults_Settings fills in zero-valued optional fields of obj. The
// soft-term weights are defaulted as a group, only when all six are zero,
// so a document that sets some weights can disable a term with 0. When
// no settings document is referenced, ingest.ReadSettings passes a fresh
// zero value here, so every field below is reachable.
func SetDefaults_Settings(obj *Settings) {
	if obj.SymmetryMode == "" {
		obj.SymmetryMode = SymmetryModeSimple
	}
	if obj.SolverPhase2MaxTimeInSeconds == 0 {
		obj.SolverPhase2MaxTimeInSeconds = DefaultSolverPhase2MaxTimeInSeconds
	}
	if obj.PreferFloorAreaWeight == 0 && obj.PreferLargeBaseLowerLinearWeight == 0 &&
		obj.PreferLargeBaseLowerQuadraticWeight == 0 && obj.PreferVolumeLowerWeight == 0 &&
		obj.PreferSurfaceContactWeight == 0 && obj.PreferBiggestFaceDownWeight == 0 {
		obj.PreferFloorAreaWeight = DefaultPreferFloorAreaWeight
		obj.PreferLargeBaseLowerLinearWeight = DefaultPreferLargeBaseLowerLinearWeight
		obj.PreferLargeBaseLowerQuadraticWeight = DefaultPreferLargeBaseLowerQuadraticWeight
		obj.PreferVolumeLowerWeight = DefaultPreferVolumeLowerWeight
		obj.PreferSurfaceContactWeight = DefaultPreferSurfaceContactWeight
		obj.PreferBiggestFaceDownWeight = DefaultPreferBiggestFaceDownWeight
	}
}
