package install

import "fmt"

// RunState tracks a bootstrap run through its lifecycle.
type RunState int

const (
	// StateRunning is the initial state while changes are being applied.
	StateRunning RunState = iota
	// StateFailed marks a run that hit a fatal error before completing.
	StateFailed
	// StateRolledBack marks a failed run whose changes were removed again.
	StateRolledBack
	// StateSucceeded marks a verified, completed installation.
	StateSucceeded
)

// String returns a human-readable state name.
func (s RunState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateFailed:
		return "failed"
	case StateRolledBack:
		return "rolled back"
	case StateSucceeded:
		return "succeeded"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// CanTransition reports whether moving to next is a legal lifecycle step.
// A run only ever moves Running to Failed, Failed to RolledBack,
// or Running to Succeeded.
func (s RunState) CanTransition(next RunState) bool {
	switch s {
	case StateRunning:
		return next == StateFailed || next == StateSucceeded
	case StateFailed:
		return next == StateRolledBack
	default:
		return false
	}
}

// Transition returns next if the move is legal and an error otherwise.
func (s RunState) Transition(next RunState) (RunState, error) {
	if !s.CanTransition(next) {
		return s, fmt.Errorf("illegal run state transition from %q to %q", s, next)
	}

	return next, nil
}
