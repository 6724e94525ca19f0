package parkour

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
	"github.com/younwookim/parkour/internal/domain/entity"
	"github.com/younwookim/parkour/internal/infrastructure/config"
)

// ModeController owns the authoritative parkour mode and the state shared by
// every behavior of one character. The mode changes only through SetMode.
type ModeController struct {
	cfg  *config.TuningConfig
	deps Deps
	log  logrus.FieldLogger

	current  entity.ParkourMode
	previous entity.ParkourMode

	sprintQueued bool
	slideQueued  bool

	// Locomotion parameters as found at construction
	defaults entity.LocomotionParams

	warnedMissing bool
}

// NewModeController creates a controller in ModeNone and captures the
// simulation's current locomotion parameters as the defaults to restore
func NewModeController(cfg *config.TuningConfig, deps Deps, log logrus.FieldLogger) *ModeController {
	c := &ModeController{
		cfg:  cfg,
		deps: deps,
		log:  log,
	}
	if p := c.Params(); p != nil {
		c.defaults = *p
	}
	return c
}

// Mode returns the current parkour mode
func (c *ModeController) Mode() entity.ParkourMode {
	return c.current
}

// PreviousMode returns the mode before the last successful transition
func (c *ModeController) PreviousMode() entity.ParkourMode {
	return c.previous
}

// Defaults returns the locomotion parameters restored in ModeNone
func (c *ModeController) Defaults() entity.LocomotionParams {
	return c.defaults
}

// SetMode commits a transition and resets shared movement parameters.
// Returns false, changing nothing, when mode is already current.
func (c *ModeController) SetMode(mode entity.ParkourMode) bool {
	if mode == c.current {
		c.log.WithField("mode", mode).Trace("parkour transition ignored")
		return false
	}

	c.previous = c.current
	c.current = mode
	c.log.WithFields(logrus.Fields{
		"from": c.previous,
		"to":   c.current,
	}).Debug("parkour transition")

	c.ResetMovement()
	return true
}

// ResetMovement reverts parameter overrides when the mode is None or Crouch.
// The simulation is put back into walking unless it is airborne: forcing
// walking mid-air would report a landing that never happened.
func (c *ModeController) ResetMovement() {
	if c.current != entity.ModeNone && c.current != entity.ModeCrouch {
		return
	}

	p := c.Params()
	if p == nil {
		return
	}

	if c.current == entity.ModeCrouch {
		p.MaxWalkSpeed = c.cfg.Crouch.WalkSpeed
	} else {
		p.MaxWalkSpeed = c.defaults.MaxWalkSpeed
	}
	p.GroundFriction = c.defaults.GroundFriction
	p.BrakingDeceleration = c.defaults.BrakingDeceleration
	p.PlaneConstraintEnabled = false

	// Walking is forced after every mode, except mid-air where the
	// simulation would report it as a landing
	sim := c.deps.Simulation
	switch c.previous {
	case entity.ModeNone, entity.ModeSprint, entity.ModeCrouch, entity.ModeSlide:
		if sim.MovementMode() != entity.MovementFalling {
			sim.SetMovementMode(entity.MovementWalking)
		}
	}
}

// SprintQueued reports whether a sprint is waiting for the next landing
func (c *ModeController) SprintQueued() bool {
	return c.sprintQueued
}

// SlideQueued reports whether a slide is waiting for the next landing
func (c *ModeController) SlideQueued() bool {
	return c.slideQueued
}

// ClearQueues drops both deferred actions
func (c *ModeController) ClearQueues() {
	c.sprintQueued = false
	c.slideQueued = false
}

// Params returns the simulation's live locomotion parameters, or nil
// when no simulation is wired
func (c *ModeController) Params() *entity.LocomotionParams {
	if c.deps.Simulation == nil {
		c.warnMissing("simulation")
		return nil
	}
	return c.deps.Simulation.Params()
}

// IsWalking reports whether the simulation is in grounded walking
func (c *ModeController) IsWalking() bool {
	return c.deps.Simulation != nil && c.deps.Simulation.MovementMode() == entity.MovementWalking
}

// IsFalling reports whether the simulation is airborne
func (c *ModeController) IsFalling() bool {
	return c.deps.Simulation != nil && c.deps.Simulation.MovementMode() == entity.MovementFalling
}

// ForwardInput reports whether the player is pushing towards the actor's facing
func (c *ModeController) ForwardInput() bool {
	if c.deps.Simulation == nil || c.deps.Actor == nil {
		return false
	}
	return c.deps.Actor.Forward().Dot(c.deps.Simulation.LastInputVector()) > 0
}

// Speed returns the magnitude of the simulation velocity
func (c *ModeController) Speed() float64 {
	if c.deps.Simulation == nil {
		return 0
	}
	return c.deps.Simulation.Velocity().Len()
}

// FloorNormal samples the ground sensor
func (c *ModeController) FloorNormal() entity.FloorSample {
	if c.deps.Sensor == nil {
		c.warnMissing("ground sensor")
		return entity.FloorSample{}
	}
	n := c.deps.Sensor.CurrentFloorNormal()
	return entity.FloorSample{Normal: n, Valid: n.LenSqr() > 0}
}

func (c *ModeController) warnMissing(what string) {
	if c.warnedMissing {
		return
	}
	c.warnedMissing = true
	c.log.WithField("collaborator", what).Warn("parkour collaborator missing, actions unavailable")
}

// safeNormal normalizes v, returning false for (near) zero vectors
func safeNormal(v mgl64.Vec3) (mgl64.Vec3, bool) {
	const epsilon = 1e-8
	if v.LenSqr() < epsilon {
		return mgl64.Vec3{}, false
	}
	return v.Normalize(), true
}
