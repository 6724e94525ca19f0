// Package parkour implements the parkour movement state machine: the
// authoritative locomotion mode (none, sprint, crouch, slide), the behaviors
// that enter and leave each mode, jumping, and the reaction to grounded and
// airborne transitions reported by the movement simulation.
//
// Everything runs on the caller's frame. Input handlers, Tick and the
// movement mode notification must all be invoked from the same goroutine.
package parkour

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/parkour/internal/application/schedule"
	"github.com/younwookim/parkour/internal/domain/entity"
)

// MovementSimulation is the external character mover. It owns velocity,
// the walking/falling state and the mutable locomotion parameters.
type MovementSimulation interface {
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)

	MovementMode() entity.MovementMode
	SetMovementMode(m entity.MovementMode)

	// LastInputVector is the movement input consumed by the latest step
	LastInputVector() mgl64.Vec3
	AddInputVector(v mgl64.Vec3)

	// Params returns the live parameters; writes take effect on the next step
	Params() *entity.LocomotionParams

	ApplyImpulse(impulse mgl64.Vec3, ignoreMass bool)
	ApplyForce(force mgl64.Vec3)
	// Launch adds velocity, or replaces the horizontal and/or vertical
	// components when the override flags are set, and leaves the ground
	Launch(velocity mgl64.Vec3, overrideXY, overrideZ bool)
	// Jump performs the simulation's own grounded jump; it is a no-op in the air
	Jump()
}

// GroundSensor answers collision queries around the character
type GroundSensor interface {
	CanStand(probe entity.ProbeVolume) bool
	// CurrentFloorNormal returns the zero vector when there is no floor
	CurrentFloorNormal() mgl64.Vec3
}

// Actor is the character body in the world
type Actor interface {
	Location() mgl64.Vec3
	Forward() mgl64.Vec3
	Right() mgl64.Vec3
	AddLookInput(yaw, pitch float64)

	Capsule() entity.CapsuleProfile
	SetCapsule(p entity.CapsuleProfile)
}

// Scheduler runs deferred callbacks on the same goroutine as Tick
type Scheduler interface {
	ScheduleOnce(delaySeconds float64, callback func()) schedule.Handle
	CancelIfPending(h schedule.Handle) bool
}

// MovementModeListener receives grounded/airborne transitions
type MovementModeListener interface {
	OnMovementModeChanged(prev, cur entity.MovementMode)
}

// Deps bundles the collaborators a character is wired to.
// Any of them may be nil; the affected actions then become unavailable.
type Deps struct {
	Simulation MovementSimulation
	Sensor     GroundSensor
	Actor      Actor
	Scheduler  Scheduler
}
