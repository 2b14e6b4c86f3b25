package controller

import "fmt"

//State is the running state of the controller
type State int

const (
	Idle           State = iota //nothing scheduled
	Running                     //stepping generations periodically
	Transitioning               //a wipe is in flight
	PendingRestart              //waiting out the game delay before the next wipe or the next game
)

var stateNames = map[State]string{
	Idle:           "idle",
	Running:        "running",
	Transitioning:  "transitioning",
	PendingRestart: "pending restart",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("State(%d)", int(s))
}

//transitions lists the states reachable from each state, staying in a state is always allowed
var transitions = map[State][]State{
	Idle:           {Running, Transitioning, PendingRestart},
	Running:        {Idle, Transitioning, PendingRestart},
	Transitioning:  {Idle, PendingRestart},
	PendingRestart: {Idle, Transitioning, Running},
}

//CanEnter reports whether the controller may move from s to next
func (s State) CanEnter(next State) bool {
	if s == next {
		return true
	}
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}
