package entity

import "github.com/go-gl/mathgl/mgl64"

// Up is the world up axis. The world is Z-up with X forward at zero yaw.
var Up = mgl64.Vec3{0, 0, 1}

// LocomotionParams are the mutable walking parameters owned by the movement
// simulation. Only the parkour controller and its behaviors write them.
type LocomotionParams struct {
	MaxWalkSpeed           float64
	GroundFriction         float64
	BrakingDeceleration    float64
	PlaneConstraintEnabled bool
}

// CapsuleProfile is a capsule half-height paired with the camera's vertical
// offset relative to the capsule center
type CapsuleProfile struct {
	HalfHeight    float64
	CameraZOffset float64
}

// FloorSample is the floor normal read from the ground sensor.
// Valid is false when there is no floor contact (e.g. airborne).
type FloorSample struct {
	Normal mgl64.Vec3
	Valid  bool
}

// ProbeVolume is a vertical capsule-shaped probe used for standing clearance
type ProbeVolume struct {
	Bottom mgl64.Vec3
	Top    mgl64.Vec3
	Radius float64
}

// Height returns the vertical extent of the probe
func (p ProbeVolume) Height() float64 {
	return p.Top.Z() - p.Bottom.Z()
}
