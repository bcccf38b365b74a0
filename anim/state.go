package anim

import "fmt"

// State identifies a named animation clip. The set is closed and ordered by
// resolution priority: a higher value wins when several clips are candidates
// at once.
type State int

const (
	Idle State = iota
	Walk
	Work
)

var stateNames = [...]string{
	Idle: "idle",
	Walk: "walk",
	Work: "work",
}

// States returns the closed set of clip states in ascending priority order.
func States() []State {
	return []State{Idle, Walk, Work}
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// ParseState maps a clip name to its State. Unknown names are a configuration
// error.
func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if n == name {
			return State(i), nil
		}
	}
	return Idle, fmt.Errorf("unknown animation state %q", name)
}
