package parkour

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
	"github.com/younwookim/parkour/internal/domain/entity"
	"github.com/younwookim/parkour/internal/infrastructure/config"
)

// Action is a discrete input press
type Action int

const (
	ActionJump Action = iota
	ActionSprint
	ActionCrouchOrSlide
)

// String returns the string representation of the action
func (a Action) String() string {
	switch a {
	case ActionJump:
		return "Jump"
	case ActionSprint:
		return "Sprint"
	case ActionCrouchOrSlide:
		return "CrouchOrSlide"
	default:
		return "Unknown"
	}
}

// Snapshot is a read-only view of the state machine for HUDs and tests
type Snapshot struct {
	Mode          entity.ParkourMode
	PreviousMode  entity.ParkourMode
	SprintQueued  bool
	SlideQueued   bool
	CanDoubleJump bool
	SprintEnabled bool
	SlideEnabled  bool
	Capsule       entity.CapsuleProfile
	Speed         float64
	Floor         entity.FloorSample
}

// Option configures a Character
type Option func(*Character)

// WithLogger sets the logger used for transition tracing
func WithLogger(log logrus.FieldLogger) Option {
	return func(ch *Character) {
		ch.log = log
	}
}

// Character wires the controller and behaviors of one parkour character.
// It implements MovementModeListener.
type Character struct {
	ctl    *ModeController
	sprint *SprintBehavior
	crouch *CrouchBehavior
	slide  *SlideBehavior
	jump   *JumpController
	log    logrus.FieldLogger
}

// NewCharacter creates a character in ModeNone. The actor's capsule at this
// point is taken as the standing profile.
func NewCharacter(cfg *config.TuningConfig, deps Deps, opts ...Option) *Character {
	ch := &Character{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(ch)
	}

	standing := entity.CapsuleProfile{}
	if deps.Actor != nil {
		standing = deps.Actor.Capsule()
	}

	ch.ctl = NewModeController(cfg, deps, ch.log)
	ch.crouch = &CrouchBehavior{
		c:       ch.ctl,
		capsule: NewCapsuleInterpolator(standing, crouchedProfile(cfg), cfg.Crouch.InterpTime),
	}
	ch.sprint = &SprintBehavior{c: ch.ctl, crouch: ch.crouch}
	ch.slide = &SlideBehavior{c: ch.ctl, sprint: ch.sprint, crouch: ch.crouch}
	ch.sprint.slide = ch.slide
	ch.jump = &JumpController{c: ch.ctl, sprint: ch.sprint, crouch: ch.crouch, canDoubleJump: true}

	return ch
}

func crouchedProfile(cfg *config.TuningConfig) entity.CapsuleProfile {
	return entity.CapsuleProfile{
		HalfHeight:    cfg.Crouch.CapsuleHalfHeight,
		CameraZOffset: cfg.Crouch.CameraZOffset,
	}
}

// Controller returns the mode controller
func (ch *Character) Controller() *ModeController { return ch.ctl }

// Sprint returns the sprint behavior
func (ch *Character) Sprint() *SprintBehavior { return ch.sprint }

// Crouch returns the crouch behavior
func (ch *Character) Crouch() *CrouchBehavior { return ch.crouch }

// Slide returns the slide behavior
func (ch *Character) Slide() *SlideBehavior { return ch.slide }

// Jump returns the jump controller
func (ch *Character) Jump() *JumpController { return ch.jump }

// Mode returns the current parkour mode
func (ch *Character) Mode() entity.ParkourMode {
	return ch.ctl.Mode()
}

// HandleAction dispatches a discrete input press
func (ch *Character) HandleAction(a Action) {
	switch a {
	case ActionJump:
		ch.jump.OnJumpPressed()
	case ActionSprint:
		ch.sprint.Toggle()
	case ActionCrouchOrSlide:
		ch.slide.CrouchOrSlideKeyPressed()
	default:
		ch.log.WithField("action", a).Warn("unknown parkour action")
	}
}

// Move feeds movement input relative to the actor's facing.
// axis.X is strafe (right positive), axis.Y is forward.
// Input is ignored while sliding.
func (ch *Character) Move(axis mgl64.Vec2) {
	sim, actor := ch.ctl.deps.Simulation, ch.ctl.deps.Actor
	if sim == nil || actor == nil || ch.ctl.Mode() == entity.ModeSlide {
		return
	}
	if axis.LenSqr() == 0 {
		return
	}
	input := actor.Forward().Mul(axis.Y()).Add(actor.Right().Mul(axis.X()))
	sim.AddInputVector(input)
}

// Look forwards yaw/pitch input to the actor
func (ch *Character) Look(axis mgl64.Vec2) {
	if ch.ctl.deps.Actor == nil {
		return
	}
	ch.ctl.deps.Actor.AddLookInput(axis.X(), axis.Y())
}

// Tick runs the per-frame updates. Sprint and slide are polled only
// while their capability flag is set; the capsule eases every tick.
func (ch *Character) Tick(dt float64) {
	if ch.sprint.Enabled() {
		ch.sprint.Update()
	}
	if ch.slide.Enabled() {
		ch.slide.Update()
	}
	ch.crouch.Update(dt)
}

// OnMovementModeChanged reacts to leaving and touching the ground
func (ch *Character) OnMovementModeChanged(prev, cur entity.MovementMode) {
	ch.log.WithFields(logrus.Fields{
		"from": prev,
		"to":   cur,
	}).Trace("movement mode changed")

	switch {
	case prev == entity.MovementWalking && cur == entity.MovementFalling:
		// Falling counts as a jump: a running sprint is queued for landing
		ch.sprint.JumpInteraction()
		ch.sprint.End()
		ch.slide.JumpInteraction()
	case prev == entity.MovementFalling && cur == entity.MovementWalking:
		ch.jump.Restore()
		ch.flushQueues()
	}
}

// flushQueues starts at most one deferred action; slide wins
func (ch *Character) flushQueues() {
	if ch.ctl.SlideQueued() {
		ch.slide.Start()
	} else if ch.ctl.SprintQueued() {
		ch.sprint.Start()
	}
}

// ApplyTuning swaps in new tuning values. They take effect at the next
// write of each parameter; the current mode is left untouched.
func (ch *Character) ApplyTuning(cfg *config.TuningConfig) {
	ch.ctl.cfg = cfg
	ch.crouch.capsule.SetCrouched(crouchedProfile(cfg))
	ch.crouch.capsule.SetTimeConstant(cfg.Crouch.InterpTime)
	ch.log.Info("parkour tuning applied")
}

// Snapshot returns the current state
func (ch *Character) Snapshot() Snapshot {
	return Snapshot{
		Mode:          ch.ctl.Mode(),
		PreviousMode:  ch.ctl.PreviousMode(),
		SprintQueued:  ch.ctl.SprintQueued(),
		SlideQueued:   ch.ctl.SlideQueued(),
		CanDoubleJump: ch.jump.CanDoubleJump(),
		SprintEnabled: ch.sprint.Enabled(),
		SlideEnabled:  ch.slide.Enabled(),
		Capsule:       ch.crouch.capsule.Current(),
		Speed:         ch.ctl.Speed(),
		Floor:         ch.ctl.FloorNormal(),
	}
}
