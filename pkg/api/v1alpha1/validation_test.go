package v1alpha1

import "testing"

func validInput() *Input {
	return &Input{
		Container:                    Container{Size: [3]int64{4, 4, 2}, Weight: 1000},
		Items:                        []Item{{ID: 1, Size: [3]int64{1, 1, 4}, Weight: 10, Rotation: RotationModeFree}},
		SolverPhase1MaxTimeInSeconds: 30,
	}
}

func TestValidateInputAcceptsValidDocument(t *testing.T) {
	if err := ValidateInput(validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateInputRejectsNonPositiveContainerSize(t *testing.T) {
	in := validInput()
	in.Container.Size[1] = 0
	if err := ValidateInput(in); err == nil {
		t.Fatal("expected an error for zero container dimension")
	}
}

func TestValidateInputRejectsBadRotation(t *testing.T) {
	in := validInput()
	in.Items[0].Rotation = "sideways"
	if err := ValidateInput(in); err == nil {
		t.Fatal("expected an error for an unknown rotation mode")
	}
}

func TestValidateInputRejectsOutOfRangePercentage(t *testing.T) {
	in := validInput()
	in.ALNSParams.NumCanBeMovedPercentage = 101
	if err := ValidateInput(in); err == nil {
		t.Fatal("expected an error for a percentage above 100")
	}
}

func TestSetDefaultsInputFillsZeroValues(t *testing.T) {
	in := validInput()
	in.ALNSParams = ALNSParams{}
	SetDefaults_Input(in)
	if in.ALNSParams.NumIterations != DefaultALNSNumIterations {
		t.Fatalf("NumIterations = %d, want default %d", in.ALNSParams.NumIterations, DefaultALNSNumIterations)
	}
}

func TestValidateSettingsRejectsBadSymmetryMode(t *testing.T) {
	s := &Settings{SymmetryMode: "diagonal", SolverPhase2MaxTimeInSeconds: 10}
	if err := ValidateSettings(s); err == nil {
		t.Fatal("expected an error for an unknown symmetry mode")
	}
}

func TestSetDefaultsSettingsFillsZeroValues(t *testing.T) {
	s := &Settings{}
	SetDefaults_Settings(s)
	if s.SymmetryMode != SymmetryModeSimple {
		t.Fatalf("SymmetryMode = %q, want %q", s.SymmetryMode, SymmetryModeSimple)
	}
	if s.SolverPhase2MaxTimeInSeconds != DefaultSolverPhase2MaxTimeInSeconds {
		t.Fatalf("SolverPhase2MaxTimeInSeconds = %v, want default", s.SolverPhase2MaxTimeInSeconds)
	}
}
