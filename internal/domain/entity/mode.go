package entity

// ParkourMode is the discrete locomotion behavior layered on top of walking
type ParkourMode int

const (
	ModeNone ParkourMode = iota
	ModeSprint
	ModeCrouch
	ModeSlide
)

// String returns the string representation of the parkour mode
func (m ParkourMode) String() string {
	switch m {
	case ModeNone:
		return "None"
	case ModeSprint:
		return "Sprint"
	case ModeCrouch:
		return "Crouch"
	case ModeSlide:
		return "Slide"
	default:
		return "Unknown"
	}
}

// Crouched reports whether the mode uses the crouched capsule profile
func (m ParkourMode) Crouched() bool {
	return m == ModeCrouch || m == ModeSlide
}

// MovementMode is the locomotion rule set the movement simulation is running
type MovementMode int

const (
	MovementNone MovementMode = iota
	MovementWalking
	MovementFalling
)

// String returns the string representation of the movement mode
func (m MovementMode) String() string {
	switch m {
	case MovementNone:
		return "None"
	case MovementWalking:
		return "Walking"
	case MovementFalling:
		return "Falling"
	default:
		return "Unknown"
	}
}
