package parkour

import (
	"math"

	"github.com/younwookim/parkour/internal/domain/entity"
)

// snapDistance is how close a value must be to its target to snap onto it
const snapDistance = 1e-3

// CapsuleInterpolator eases the capsule half height and camera offset
// towards the standing or crouched profile with exponential decay over
// elapsed time, so the result does not depend on the frame rate
type CapsuleInterpolator struct {
	standing entity.CapsuleProfile
	crouched entity.CapsuleProfile
	current  entity.CapsuleProfile
	tau      float64
}

// NewCapsuleInterpolator starts at the standing profile. The crouched
// half height is clamped so it never exceeds the standing one.
func NewCapsuleInterpolator(standing, crouched entity.CapsuleProfile, timeConstant float64) *CapsuleInterpolator {
	ci := &CapsuleInterpolator{
		standing: standing,
		current:  standing,
		tau:      timeConstant,
	}
	ci.SetCrouched(crouched)
	return ci
}

// SetCrouched replaces the crouched target profile
func (ci *CapsuleInterpolator) SetCrouched(p entity.CapsuleProfile) {
	p.HalfHeight = math.Min(p.HalfHeight, ci.standing.HalfHeight)
	ci.crouched = p
}

// SetTimeConstant replaces the smoothing time constant
func (ci *CapsuleInterpolator) SetTimeConstant(tau float64) {
	ci.tau = tau
}

// Standing returns the standing profile
func (ci *CapsuleInterpolator) Standing() entity.CapsuleProfile {
	return ci.standing
}

// Crouched returns the crouched profile
func (ci *CapsuleInterpolator) Crouched() entity.CapsuleProfile {
	return ci.crouched
}

// Current returns the interpolated profile
func (ci *CapsuleInterpolator) Current() entity.CapsuleProfile {
	return ci.current
}

// Update advances the profile by dt seconds towards the crouched or
// standing target and returns the new value
func (ci *CapsuleInterpolator) Update(dt float64, crouched bool) entity.CapsuleProfile {
	target := ci.standing
	if crouched {
		target = ci.crouched
	}

	alpha := 1.0
	if ci.tau > 0 {
		alpha = 1 - math.Exp(-math.Max(dt, 0)/ci.tau)
	}

	ci.current.HalfHeight = approach(ci.current.HalfHeight, target.HalfHeight, alpha)
	ci.current.CameraZOffset = approach(ci.current.CameraZOffset, target.CameraZOffset, alpha)
	return ci.current
}

func approach(from, to, alpha float64) float64 {
	v := from + (to-from)*alpha
	if math.Abs(to-v) < snapDistance {
		return to
	}
	return v
}
