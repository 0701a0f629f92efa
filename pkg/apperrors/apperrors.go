// Package apperrors defines the error taxonomy shared by every stage of the
// loading pipeline, from input ingestion through the ALNS loop. Each error
// carries a Kind so callers — chiefly cmd/loadplan — can map it to an exit
// code without inspecting message text.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind tags the source and severity of an error per the error handling
// table in spec.md §7. It is a closed set; downstream logic pattern
// matches on Kind rather than inspecting error strings.
type Kind int

const (
	// KindUnknown is the zero value and never produced deliberately.
	KindUnknown Kind = iota
	// KindInputMalformed marks failures while parsing or validating the
	// input or Phase-2 settings document. Fatal, exit code 1.
	KindInputMalformed
	// KindAssignmentInfeasible marks a Phase 1 INFEASIBLE result. Fatal,
	// exit code 2.
	KindAssignmentInfeasible
	// KindPlacementUnfeasible marks a Phase 2 INFEASIBLE result for one
	// container. Non-fatal: recorded on the container's status, and
	// during ALNS it drives AC to reject the candidate.
	KindPlacementUnfeasible
	// KindSolverTimeout marks a solver UNKNOWN status (deadline reached
	// without a proof of optimality). Non-fatal: treated as feasible with
	// a scoring penalty in PE.
	KindSolverTimeout
	// KindSolverInternal marks MODEL_INVALID or any unexpected solver
	// failure. Fatal, exit code 3.
	KindSolverInternal
)

// String renders the Kind for logging.
func (k Kind) String() string {
	switch k {
	case KindInputMalformed:
		return "InputMalformed"
	case KindAssignmentInfeasible:
		return "AssignmentInfeasible"
	case KindPlacementUnfeasible:
		return "PlacementUnfeasible"
	case KindSolverTimeout:
		return "SolverTimeout"
	case KindSolverInternal:
		return "SolverInternal"
	default:
		return "Unknown"
	}
}

// ExitCode maps a Kind to the process exit code in spec.md §6. Non-fatal
// kinds return 0 since they never reach the point of terminating the
// process on their own.
func (k Kind) ExitCode() int {
	switch k {
	case KindInputMalformed:
		return 1
	case KindAssignmentInfeasible:
		return 2
	case KindSolverInternal:
		return 3
	default:
		return 0
	}
}

// Error is a Kind-tagged error wrapping an underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an Error with no wrapped cause.
func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error wrapping cause. If cause is nil, Wrap returns nil so
// callers can write `return apperrors.Wrap(KindX, "...", err)` unconditionally.
func Wrap(kind Kind, message string, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the Kind from err, returning KindUnknown if err is nil or
// not one produced by this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
