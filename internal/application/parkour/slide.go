package parkour

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/parkour/internal/domain/entity"
)

// SlideBehavior enters and leaves ModeSlide and applies slide physics
type SlideBehavior struct {
	c      *ModeController
	sprint *SprintBehavior
	crouch *CrouchBehavior

	enabled bool // gates Update while a slide is running
}

// Enabled reports whether slide updates are currently polled
func (sl *SlideBehavior) Enabled() bool {
	return sl.enabled
}

// CanSlide requires forward intent and a running or queued sprint
func (sl *SlideBehavior) CanSlide() bool {
	sprinting := sl.c.Mode() == entity.ModeSprint || sl.c.SprintQueued()
	return sl.c.ForwardInput() && sprinting
}

// Start ends the sprint, enters slide and kicks the character along the floor
func (sl *SlideBehavior) Start() {
	if !sl.CanSlide() || !sl.c.IsWalking() {
		return
	}

	sl.sprint.End()
	if !sl.c.SetMode(entity.ModeSlide) {
		return
	}

	p := sl.c.Params()
	p.GroundFriction = 0
	p.MaxWalkSpeed = 0
	p.BrakingDeceleration = sl.c.cfg.Slide.BrakingDeceleration

	floor := sl.c.FloorNormal()
	if dir, ok := SlideDirection(sl.c.deps.Actor, floor); ok {
		sl.c.deps.Simulation.ApplyImpulse(dir.Mul(sl.c.cfg.Slide.Speed), true)
	}

	sl.enabled = true
	sl.c.ClearQueues()
}

// End always exits into crouch
func (sl *SlideBehavior) End() {
	if sl.c.Mode() != entity.ModeSlide {
		return
	}
	if sl.c.SetMode(entity.ModeCrouch) {
		sl.enabled = false
	}
}

// Update ends a slide that has run out of speed, otherwise pushes the
// character down the slope and caps its speed
func (sl *SlideBehavior) Update() {
	if sl.c.Mode() != entity.ModeSlide {
		return
	}

	cfg := sl.c.cfg.Slide
	if sl.c.Speed() < cfg.ExitSpeed {
		sl.End()
		return
	}

	sim := sl.c.deps.Simulation
	floor := sl.c.FloorNormal()
	if dir, ok := SlopeDirection(floor); ok {
		magnitude := cfg.Speed * cfg.ForceMultiplier
		if cfg.ScaleForceBySlope {
			magnitude *= FloorInfluence(floor)
		}
		sim.ApplyForce(dir.Mul(magnitude))
	}

	if v := sim.Velocity(); v.Len() > cfg.Speed {
		sim.SetVelocity(v.Normalize().Mul(cfg.Speed))
	}
}

// JumpInteraction ends a running slide
func (sl *SlideBehavior) JumpInteraction() {
	if sl.c.Mode() == entity.ModeSlide {
		sl.End()
	}
}

// CrouchOrSlideKeyPressed slides (now, or on landing) when a slide is
// possible and toggles crouch otherwise
func (sl *SlideBehavior) CrouchOrSlideKeyPressed() {
	if !sl.CanSlide() {
		sl.crouch.Toggle()
		return
	}

	if sl.c.IsWalking() {
		sl.Start()
	} else {
		sl.c.slideQueued = true
	}
}

// SlideDirection is the floor-tangent direction ahead of the actor:
// normalize(right x floorNormal)
func SlideDirection(actor Actor, floor entity.FloorSample) (mgl64.Vec3, bool) {
	if actor == nil || !floor.Valid {
		return mgl64.Vec3{}, false
	}
	return safeNormal(actor.Right().Cross(floor.Normal))
}

// SlopeDirection is the downhill direction along the floor:
// normalize(n x (n x up)). Flat floors and missing floors have none.
func SlopeDirection(floor entity.FloorSample) (mgl64.Vec3, bool) {
	if !floor.Valid {
		return mgl64.Vec3{}, false
	}
	n := floor.Normal
	return safeNormal(n.Cross(n.Cross(entity.Up)))
}

// FloorInfluence is the scalar slope strength, growing from 0 on flat ground
// to 1 on a vertical wall. Its direction is SlopeDirection.
func FloorInfluence(floor entity.FloorSample) float64 {
	if !floor.Valid {
		return 0
	}
	n, ok := safeNormal(floor.Normal)
	if !ok || n.ApproxEqual(entity.Up) {
		return 0
	}
	return mgl64.Clamp(1-n.Dot(entity.Up), 0, 1)
}
