package parkour

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/parkour/internal/domain/entity"
)

// CrouchBehavior enters and leaves ModeCrouch and drives the capsule
type CrouchBehavior struct {
	c       *ModeController
	capsule *CapsuleInterpolator
}

// Start crouches from ModeNone
func (cr *CrouchBehavior) Start() {
	if cr.c.Mode() != entity.ModeNone {
		return
	}
	// Without a simulation nothing could ever stand the character back up
	p := cr.c.Params()
	if p == nil {
		return
	}

	cr.c.SetMode(entity.ModeCrouch)
	p.MaxWalkSpeed = cr.c.cfg.Crouch.WalkSpeed
	cr.c.ClearQueues()
}

// End stands up from ModeCrouch when there is room overhead
func (cr *CrouchBehavior) End() {
	if cr.c.Mode() != entity.ModeCrouch || !cr.CanStand() {
		return
	}

	cr.c.SetMode(entity.ModeNone)
	if p := cr.c.Params(); p != nil {
		p.MaxWalkSpeed = cr.c.defaults.MaxWalkSpeed
	}
	cr.c.ClearQueues()
}

// CanStand probes from the bottom of the current capsule up to a full
// standing height. Without a sensor or actor standing is unavailable.
func (cr *CrouchBehavior) CanStand() bool {
	sensor, actor := cr.c.deps.Sensor, cr.c.deps.Actor
	if sensor == nil || actor == nil {
		return false
	}
	return sensor.CanStand(cr.Probe())
}

// Probe returns the standing clearance volume for the current capsule
func (cr *CrouchBehavior) Probe() entity.ProbeVolume {
	loc := cr.c.deps.Actor.Location()
	bottom := loc.Sub(mgl64.Vec3{0, 0, cr.capsule.Current().HalfHeight})
	top := bottom.Add(mgl64.Vec3{0, 0, 2 * cr.capsule.Standing().HalfHeight})
	return entity.ProbeVolume{
		Bottom: bottom,
		Top:    top,
		Radius: cr.c.cfg.Crouch.ProbeRadius,
	}
}

// Toggle handles a crouch request that is not a slide
func (cr *CrouchBehavior) Toggle() {
	switch cr.c.Mode() {
	case entity.ModeNone:
		cr.Start()
	case entity.ModeCrouch:
		cr.End()
	}
}

// Update runs every tick regardless of transitions and eases the capsule
// towards the profile of the current mode
func (cr *CrouchBehavior) Update(dt float64) {
	p := cr.capsule.Update(dt, cr.c.Mode().Crouched())
	if cr.c.deps.Actor != nil {
		cr.c.deps.Actor.SetCapsule(p)
	}
}

// JumpInteraction stands up before a jump
func (cr *CrouchBehavior) JumpInteraction() {
	if cr.c.Mode() == entity.ModeCrouch {
		cr.End()
	}
}
