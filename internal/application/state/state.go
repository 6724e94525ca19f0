package state

// SessionState represents the current state of a sandbox session
type SessionState int

const (
	StateRunning SessionState = iota
	StatePaused
	StateReplaying
	StateReplayFinished
)

// String returns the string representation of the session state
func (s SessionState) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateReplaying:
		return "Replaying"
	case StateReplayFinished:
		return "ReplayFinished"
	default:
		return "Unknown"
	}
}

// Simulating reports whether the world advances in this state
func (s SessionState) Simulating() bool {
	return s == StateRunning || s == StateReplaying
}

// LiveInput reports whether the keyboard drives the character
func (s SessionState) LiveInput() bool {
	return s == StateRunning
}
