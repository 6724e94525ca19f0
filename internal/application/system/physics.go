package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/younwookim/parkour/internal/application/parkour"
	"github.com/younwookim/parkour/internal/domain/entity"
	"github.com/younwookim/parkour/internal/infrastructure/config"
)

// PhysicsSystem is a kinematic character mover over the sandbox terrain.
// It implements the parkour MovementSimulation, GroundSensor and Actor ports
// for a single body.
type PhysicsSystem struct {
	config   *config.SimulationConfig
	terrain  *entity.Terrain
	body     *entity.Body
	params   entity.LocomotionParams
	listener parkour.MovementModeListener
	log      logrus.FieldLogger

	pendingForce  mgl64.Vec3
	jumpRequested bool
}

// NewPhysicsSystem creates a physics system with the body standing at spawn
func NewPhysicsSystem(cfg *config.SimulationConfig, terrain *entity.Terrain, ch config.CharacterConfig, log logrus.FieldLogger) *PhysicsSystem {
	s := &PhysicsSystem{
		config:  cfg,
		terrain: terrain,
		body:    entity.NewBody(terrain.Spawn, ch.HalfHeight, ch.Radius, ch.CameraZOffset),
		params: entity.LocomotionParams{
			MaxWalkSpeed:        cfg.MaxWalkSpeed,
			GroundFriction:      cfg.GroundFriction,
			BrakingDeceleration: cfg.BrakingDeceleration,
		},
		log: log,
	}
	s.snapToGround()
	return s
}

// SetListener registers the receiver of movement mode changes
func (s *PhysicsSystem) SetListener(l parkour.MovementModeListener) {
	s.listener = l
}

// Body returns the simulated body
func (s *PhysicsSystem) Body() *entity.Body {
	return s.body
}

// Terrain returns the level geometry
func (s *PhysicsSystem) Terrain() *entity.Terrain {
	return s.terrain
}

// Step advances the simulation by dt seconds
func (s *PhysicsSystem) Step(dt float64) {
	if dt <= 0 {
		return
	}
	b := s.body

	// Consume accumulated movement input
	input := mgl64.Vec3{b.PendingInput.X(), b.PendingInput.Y(), 0}
	if input.Len() > 1 {
		input = input.Normalize()
	}
	b.LastInput = input
	b.PendingInput = mgl64.Vec3{}

	if s.jumpRequested && b.Mode == entity.MovementWalking {
		b.Velocity[2] = s.config.JumpZVelocity
		s.setMode(entity.MovementFalling)
	}
	s.jumpRequested = false

	// Forces become acceleration for this step only
	if s.config.Mass > 0 {
		b.Velocity = b.Velocity.Add(s.pendingForce.Mul(dt / s.config.Mass))
	}
	s.pendingForce = mgl64.Vec3{}

	switch b.Mode {
	case entity.MovementWalking:
		s.stepWalking(input, dt)
	case entity.MovementFalling:
		s.stepFalling(input, dt)
	}

	if b.Feet().Z() < s.terrain.KillZ {
		s.Respawn()
	}
}

// stepWalking moves along the ground with acceleration, friction and braking
func (s *PhysicsSystem) stepWalking(input mgl64.Vec3, dt float64) {
	b := s.body
	vel := mgl64.Vec3{b.Velocity.X(), b.Velocity.Y(), 0}
	vel = s.calcGroundVelocity(vel, input, dt)
	b.Velocity = vel

	feet := b.Feet()
	next := feet.Add(vel.Mul(dt))
	if s.wallAt(next.X(), feet.Z()) || s.capsuleBlocked(next) {
		b.Velocity = mgl64.Vec3{}
		next = feet
	}

	height, normal, ok := s.terrain.GroundAt(next.X(), feet.Z()+s.config.StepHeight)
	if !ok || height < feet.Z()-s.config.StepHeight {
		// Walked off a ledge
		b.Position = mgl64.Vec3{next.X(), next.Y(), feet.Z() + b.HalfHeight}
		b.OnFloor = false
		b.FloorNormal = mgl64.Vec3{}
		s.setMode(entity.MovementFalling)
		return
	}

	b.Position = mgl64.Vec3{next.X(), next.Y(), height + b.HalfHeight}
	b.FloorNormal = normal
	b.OnFloor = true
}

// calcGroundVelocity accelerates towards the input direction up to
// MaxWalkSpeed, and brakes when there is no input or the speed is over
// the limit
func (s *PhysicsSystem) calcGroundVelocity(vel, input mgl64.Vec3, dt float64) mgl64.Vec3 {
	const overSpeedTolerance = 1.01
	p := s.params
	speed := vel.Len()
	hasInput := input.LenSqr() > 0
	overMax := speed > p.MaxWalkSpeed*overSpeedTolerance

	if !hasInput || overMax {
		braked := brake(vel, p.GroundFriction, p.BrakingDeceleration, dt)
		// Braking from above the limit stops at the limit while input continues
		if overMax && hasInput && braked.Len() < p.MaxWalkSpeed && input.Dot(vel) > 0 {
			return vel.Normalize().Mul(p.MaxWalkSpeed)
		}
		return braked
	}

	// Friction turns the velocity towards the input direction
	dir := input.Normalize()
	turn := math.Min(dt*p.GroundFriction, 1)
	vel = vel.Sub(vel.Sub(dir.Mul(speed)).Mul(turn))

	vel = vel.Add(input.Mul(s.config.Acceleration * dt))
	if vel.Len() > p.MaxWalkSpeed {
		vel = vel.Normalize().Mul(p.MaxWalkSpeed)
	}
	return vel
}

// brake slows vel by friction and a constant deceleration, stopping at zero
// rather than reversing
func brake(vel mgl64.Vec3, friction, deceleration, dt float64) mgl64.Vec3 {
	const stopSpeed = 1.0
	speed := vel.Len()
	if speed < stopSpeed {
		return mgl64.Vec3{}
	}

	dir := vel.Mul(1 / speed)
	next := vel.Sub(vel.Mul(friction * dt)).Sub(dir.Mul(deceleration * dt))
	if next.Dot(vel) <= 0 || next.Len() < stopSpeed {
		return mgl64.Vec3{}
	}
	return next
}

// stepFalling integrates gravity, limited air control and landing
func (s *PhysicsSystem) stepFalling(input mgl64.Vec3, dt float64) {
	b := s.body
	vel := b.Velocity

	if input.LenSqr() > 0 {
		horizontal := mgl64.Vec3{vel.X(), vel.Y(), 0}
		limit := math.Max(horizontal.Len(), s.params.MaxWalkSpeed)
		horizontal = horizontal.Add(input.Mul(s.config.Acceleration * s.config.AirControl * dt))
		if horizontal.Len() > limit {
			horizontal = horizontal.Normalize().Mul(limit)
		}
		vel = mgl64.Vec3{horizontal.X(), horizontal.Y(), vel.Z()}
	}

	vel[2] = math.Max(vel.Z()-s.config.Gravity*dt, -s.config.MaxFallSpeed)
	if s.params.PlaneConstraintEnabled {
		vel[2] = 0
	}

	feet := b.Feet()
	next := feet.Add(vel.Mul(dt))

	if s.wallAt(next.X(), feet.Z()) {
		next[0], next[1] = feet.X(), feet.Y()
		vel[0], vel[1] = 0, 0
	}
	if s.capsuleBlocked(next) {
		if s.capsuleBlocked(mgl64.Vec3{next.X(), next.Y(), feet.Z()}) {
			next[0], next[1] = feet.X(), feet.Y()
			vel[0], vel[1] = 0, 0
		}
		if s.capsuleBlocked(next) {
			next[2] = feet.Z()
			vel[2] = math.Min(vel.Z(), 0)
		}
	}
	b.Velocity = vel

	if vel.Z() <= 0 {
		height, normal, ok := s.terrain.GroundAt(next.X(), feet.Z()+s.config.StepHeight)
		if ok && next.Z() <= height {
			b.Position = mgl64.Vec3{next.X(), next.Y(), height + b.HalfHeight}
			b.Velocity[2] = 0
			b.FloorNormal = normal
			b.OnFloor = true
			s.setMode(entity.MovementWalking)
			return
		}
	}

	b.Position = next.Add(mgl64.Vec3{0, 0, b.HalfHeight})
}

// wallAt reports whether the terrain at x rises more than a step above feetZ
func (s *PhysicsSystem) wallAt(x, feetZ float64) bool {
	height, _, ok := s.terrain.GroundAt(x, math.Inf(1))
	return ok && height > feetZ+s.config.StepHeight
}

// capsuleBlocked reports whether the body with its feet at feet overlaps a block
func (s *PhysicsSystem) capsuleBlocked(feet mgl64.Vec3) bool {
	return s.terrain.IsBlocked(entity.ProbeVolume{
		Bottom: feet,
		Top:    feet.Add(mgl64.Vec3{0, 0, 2 * s.body.HalfHeight}),
		Radius: s.body.Radius,
	})
}

// snapToGround places the body on the ground below it, if any
func (s *PhysicsSystem) snapToGround() {
	b := s.body
	feet := b.Feet()
	height, normal, ok := s.terrain.GroundAt(feet.X(), feet.Z()+s.config.StepHeight)
	if !ok {
		b.OnFloor = false
		b.FloorNormal = mgl64.Vec3{}
		b.Mode = entity.MovementFalling
		return
	}
	b.SetFeet(height)
	b.FloorNormal = normal
	b.OnFloor = true
	b.Mode = entity.MovementWalking
}

// Respawn puts the body back at the spawn point, at rest
func (s *PhysicsSystem) Respawn() {
	b := s.body
	if s.log != nil {
		s.log.WithFields(logrus.Fields{
			"x": b.Position.X(),
			"z": b.Feet().Z(),
		}).Info("fell out of the world, respawning")
	}

	b.Position = s.terrain.Spawn.Add(mgl64.Vec3{0, 0, b.HalfHeight})
	b.Velocity = mgl64.Vec3{}
	s.pendingForce = mgl64.Vec3{}

	prev := b.Mode
	s.snapToGround()
	s.notify(prev, b.Mode)
}

func (s *PhysicsSystem) setMode(m entity.MovementMode) {
	prev := s.body.Mode
	if prev == m {
		return
	}
	s.body.Mode = m
	if m != entity.MovementWalking {
		s.body.OnFloor = false
	}
	s.notify(prev, m)
}

func (s *PhysicsSystem) notify(prev, cur entity.MovementMode) {
	if prev != cur && s.listener != nil {
		s.listener.OnMovementModeChanged(prev, cur)
	}
}

// MovementSimulation

// Velocity returns the body velocity
func (s *PhysicsSystem) Velocity() mgl64.Vec3 { return s.body.Velocity }

// SetVelocity replaces the body velocity
func (s *PhysicsSystem) SetVelocity(v mgl64.Vec3) { s.body.Velocity = v }

// MovementMode returns the current movement mode
func (s *PhysicsSystem) MovementMode() entity.MovementMode { return s.body.Mode }

// SetMovementMode switches the movement mode and notifies the listener
func (s *PhysicsSystem) SetMovementMode(m entity.MovementMode) { s.setMode(m) }

// LastInputVector returns the input consumed by the last step
func (s *PhysicsSystem) LastInputVector() mgl64.Vec3 { return s.body.LastInput }

// AddInputVector accumulates movement input for the next step
func (s *PhysicsSystem) AddInputVector(v mgl64.Vec3) {
	s.body.PendingInput = s.body.PendingInput.Add(v)
}

// Params returns the live locomotion parameters
func (s *PhysicsSystem) Params() *entity.LocomotionParams { return &s.params }

// ApplyImpulse changes the velocity at once. Unless ignoreMass is set the
// impulse is divided by the body mass.
func (s *PhysicsSystem) ApplyImpulse(impulse mgl64.Vec3, ignoreMass bool) {
	if !ignoreMass && s.config.Mass > 0 {
		impulse = impulse.Mul(1 / s.config.Mass)
	}
	s.body.Velocity = s.body.Velocity.Add(impulse)
}

// ApplyForce adds a force for the next step
func (s *PhysicsSystem) ApplyForce(force mgl64.Vec3) {
	s.pendingForce = s.pendingForce.Add(force)
}

// Launch sets the velocity, replacing the horizontal and vertical parts
// only where requested, and puts the body in the air
func (s *PhysicsSystem) Launch(v mgl64.Vec3, overrideXY, overrideZ bool) {
	cur := s.body.Velocity
	if !overrideXY {
		v[0] += cur.X()
		v[1] += cur.Y()
	}
	if !overrideZ {
		v[2] += cur.Z()
	}
	s.body.Velocity = v
	s.setMode(entity.MovementFalling)
}

// Jump requests a ground jump on the next step
func (s *PhysicsSystem) Jump() {
	s.jumpRequested = true
}

// GroundSensor

// CanStand reports whether the probe volume is free of blocks
func (s *PhysicsSystem) CanStand(p entity.ProbeVolume) bool {
	return !s.terrain.IsBlocked(p)
}

// CurrentFloorNormal returns the floor normal, or zero when airborne
func (s *PhysicsSystem) CurrentFloorNormal() mgl64.Vec3 {
	if s.body.Mode != entity.MovementWalking || !s.body.OnFloor {
		return mgl64.Vec3{}
	}
	return s.body.FloorNormal
}

// Actor

// Location returns the capsule center
func (s *PhysicsSystem) Location() mgl64.Vec3 { return s.body.Position }

// Forward returns the horizontal facing direction
func (s *PhysicsSystem) Forward() mgl64.Vec3 { return s.body.Forward() }

// Right returns the horizontal right-hand direction
func (s *PhysicsSystem) Right() mgl64.Vec3 { return s.body.Right() }

// AddLookInput rotates the body view
func (s *PhysicsSystem) AddLookInput(yaw, pitch float64) { s.body.Rotate(yaw, pitch) }

// Capsule returns the current capsule profile
func (s *PhysicsSystem) Capsule() entity.CapsuleProfile {
	return entity.CapsuleProfile{HalfHeight: s.body.HalfHeight, CameraZOffset: s.body.CameraZ}
}

// SetCapsule resizes the capsule keeping the feet in place
func (s *PhysicsSystem) SetCapsule(p entity.CapsuleProfile) {
	s.body.SetHalfHeight(p.HalfHeight)
	s.body.CameraZ = p.CameraZOffset
}

var (
	_ parkour.MovementSimulation = (*PhysicsSystem)(nil)
	_ parkour.GroundSensor       = (*PhysicsSystem)(nil)
	_ parkour.Actor              = (*PhysicsSystem)(nil)
)
