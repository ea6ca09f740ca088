package vector3d

import "errors"

// State is the run state of a Viewer.
type State int

const (
	StateRunning State = iota
	StatePaused
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateTerminated:
		return "terminated"
	}
	return "unknown"
}

// Action is a user request delivered by the host between frames.
type Action int

const (
	ActionNone Action = iota
	ActionTerminate
	ActionTogglePause
)

var ErrTerminated = errors.New("viewer terminated")

func (v *Viewer) State() State { return v.state }

// HandleAction applies an action to the state machine. Terminated is final:
// any action after it returns ErrTerminated.
func (v *Viewer) HandleAction(a Action) error {
	if v.state == StateTerminated {
		return ErrTerminated
	}
	switch a {
	case ActionTerminate:
		v.state = StateTerminated
	case ActionTogglePause:
		if v.state == StatePaused {
			v.state = StateRunning
		} else {
			v.state = StatePaused
		}
	}
	return nil
}
