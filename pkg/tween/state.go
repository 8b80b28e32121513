package tween

import "fmt"

// State is the driver's animation state.
type State int

const (
	// Idle means no transition is active and no clock is running.
	Idle State = iota
	// Transitioning means a clock is running and ticks blend positions.
	Transitioning
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Transitioning:
		return "transitioning"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Event drives a state change.
type Event int

const (
	evBegin Event = iota
	evTick
	evComplete
	evStop
	evFail
)

func (e Event) String() string {
	switch e {
	case evBegin:
		return "begin"
	case evTick:
		return "tick"
	case evComplete:
		return "complete"
	case evStop:
		return "stop"
	case evFail:
		return "fail"
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// transitions is the complete state table. A (state, event) pair missing
// from the table is rejected.
var transitions = map[State]map[Event]State{
	Idle: {
		evBegin: Transitioning,
		evStop:  Idle,
	},
	Transitioning: {
		evTick:     Transitioning,
		evComplete: Idle,
		evStop:     Idle,
		evFail:     Idle,
	},
}

// next looks up the state reached from s on e.
func next(s State, e Event) (State, bool) {
	to, ok := transitions[s][e]
	return to, ok
}
