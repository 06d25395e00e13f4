package screening

import "fmt"

// State is a step of a screening run.
type State int

const (
	StateIdle State = iota
	StateExtracted
	StateScored
	StateDecided
	StateMCQGenerated
	StateImprovementsAssigned
	StateResultReady
)

var stateNames = map[State]string{
	StateIdle:                 "idle",
	StateExtracted:            "extracted",
	StateScored:               "scored",
	StateDecided:              "decided",
	StateMCQGenerated:         "mcq_generated",
	StateImprovementsAssigned: "improvements_assigned",
	StateResultReady:          "result_ready",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// StageError reports the state a run was in when it aborted.
type StageError struct {
	State State
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("screening aborted after %s: %v", e.State, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
