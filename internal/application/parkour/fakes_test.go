package parkour

import (
	"io"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
	"github.com/younwookim/parkour/internal/application/schedule"
	"github.com/younwookim/parkour/internal/domain/entity"
	"github.com/younwookim/parkour/internal/infrastructure/config"
)

// fakeSim is a test double for MovementSimulation
type fakeSim struct {
	velocity  mgl64.Vec3
	mode      entity.MovementMode
	lastInput mgl64.Vec3
	added     []mgl64.Vec3
	params    entity.LocomotionParams

	impulses     []mgl64.Vec3
	forces       []mgl64.Vec3
	launches     []mgl64.Vec3
	jumps        int
	setModeCalls []entity.MovementMode
	listener     MovementModeListener
}

func newFakeSim() *fakeSim {
	return &fakeSim{
		mode: entity.MovementWalking,
		params: entity.LocomotionParams{
			MaxWalkSpeed:        600,
			GroundFriction:      8,
			BrakingDeceleration: 2048,
		},
	}
}

func (s *fakeSim) Velocity() mgl64.Vec3 { return s.velocity }
func (s *fakeSim) SetVelocity(v mgl64.Vec3) { s.velocity = v }
func (s *fakeSim) MovementMode() entity.MovementMode { return s.mode }
func (s *fakeSim) LastInputVector() mgl64.Vec3 { return s.lastInput }
func (s *fakeSim) AddInputVector(v mgl64.Vec3) { s.added = append(s.added, v) }
func (s *fakeSim) Params() *entity.LocomotionParams { return &s.params }
func (s *fakeSim) ApplyForce(force mgl64.Vec3) { s.forces = append(s.forces, force) }
func (s *fakeSim) ApplyImpulse(imp mgl64.Vec3, _ bool) { s.impulses = append(s.impulses, imp) }

func (s *fakeSim) SetMovementMode(m entity.MovementMode) {
	s.setModeCalls = append(s.setModeCalls, m)
	s.transition(m)
}

func (s *fakeSim) Launch(v mgl64.Vec3, overrideXY, overrideZ bool) {
	s.launches = append(s.launches, v)
	s.transition(entity.MovementFalling)
}

func (s *fakeSim) Jump() {
	s.jumps++
	if s.mode == entity.MovementWalking {
		s.transition(entity.MovementFalling)
	}
}

// transition changes mode and notifies like a real simulation would
func (s *fakeSim) transition(m entity.MovementMode) {
	prev := s.mode
	if prev == m {
		return
	}
	s.mode = m
	if s.listener != nil {
		s.listener.OnMovementModeChanged(prev, m)
	}
}

// fakeSensor is a test double for GroundSensor
type fakeSensor struct {
	blocked bool
	normal  mgl64.Vec3
	probes  []entity.ProbeVolume
}

func (s *fakeSensor) CanStand(p entity.ProbeVolume) bool {
	s.probes = append(s.probes, p)
	return !s.blocked
}

func (s *fakeSensor) CurrentFloorNormal() mgl64.Vec3 { return s.normal }

// fakeActor is a test double for Actor
type fakeActor struct {
	location mgl64.Vec3
	yaw      float64
	pitch    float64
	capsule  entity.CapsuleProfile
}

func (a *fakeActor) Location() mgl64.Vec3 { return a.location }
func (a *fakeActor) Forward() mgl64.Vec3 { return mgl64.Vec3{1, 0, 0} }
func (a *fakeActor) Right() mgl64.Vec3 { return mgl64.Vec3{0, 1, 0} }
func (a *fakeActor) AddLookInput(yaw, pitch float64) {
	a.yaw += yaw
	a.pitch += pitch
}
func (a *fakeActor) Capsule() entity.CapsuleProfile { return a.capsule }
func (a *fakeActor) SetCapsule(p entity.CapsuleProfile) { a.capsule = p }

type testRig struct {
	sim    *fakeSim
	sensor *fakeSensor
	actor  *fakeActor
	sched  *schedule.Queue
	cfg    *config.TuningConfig
	ch     *Character
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}

func newTestRig() *testRig {
	r := &testRig{
		sim:    newFakeSim(),
		sensor: &fakeSensor{normal: entity.Up},
		actor: &fakeActor{
			location: mgl64.Vec3{0, 0, 96},
			capsule:  entity.CapsuleProfile{HalfHeight: 96, CameraZOffset: 80},
		},
		sched: schedule.NewQueue(),
		cfg:   config.DefaultTuning(),
	}
	r.ch = NewCharacter(r.cfg, Deps{
		Simulation: r.sim,
		Sensor:     r.sensor,
		Actor:      r.actor,
		Scheduler:  r.sched,
	}, WithLogger(quietLogger()))
	r.sim.listener = r.ch
	return r
}

// pushForward makes the last consumed input point along the actor's facing
func (r *testRig) pushForward() {
	r.sim.lastInput = mgl64.Vec3{1, 0, 0}
}

func (r *testRig) releaseInput() {
	r.sim.lastInput = mgl64.Vec3{}
}

// sprinting puts the rig into a running sprint
func (r *testRig) sprinting() {
	r.pushForward()
	r.ch.Sprint().Start()
}

func (r *testRig) land() {
	r.sim.transition(entity.MovementWalking)
}

func (r *testRig) leaveGround() {
	r.sim.transition(entity.MovementFalling)
}
