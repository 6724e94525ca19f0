package parkour

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/parkour/internal/domain/entity"
)

// downhill is a floor normal tilted so the slope descends towards +X
var downhill = mgl64.Vec3{0.5, 0, 1}.Normalize()

func assertVecInDelta(t *testing.T, want, got mgl64.Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v", i, got)
	}
}

func TestSlide_StartFromSprint(t *testing.T) {
	r := newTestRig()
	r.sprinting()

	r.ch.Slide().CrouchOrSlideKeyPressed()

	assert.Equal(t, entity.ModeSlide, r.ch.Mode())
	assert.Equal(t, 0.0, r.sim.params.GroundFriction)
	assert.Equal(t, 0.0, r.sim.params.MaxWalkSpeed)
	assert.Equal(t, 1000.0, r.sim.params.BrakingDeceleration)
	assert.True(t, r.ch.Slide().Enabled())
	assert.False(t, r.ch.Sprint().Enabled())

	require.Len(t, r.sim.impulses, 1)
	assertVecInDelta(t, mgl64.Vec3{1000, 0, 0}, r.sim.impulses[0], 1e-9)
}

func TestSlide_ImpulseFollowsFloor(t *testing.T) {
	r := newTestRig()
	r.sensor.normal = downhill
	r.sprinting()

	r.ch.Slide().Start()

	require.Len(t, r.sim.impulses, 1)
	want := mgl64.Vec3{0, 1, 0}.Cross(downhill).Normalize().Mul(1000)
	assertVecInDelta(t, want, r.sim.impulses[0], 1e-9)
	assert.Less(t, r.sim.impulses[0].Z(), 0.0, "kick follows the floor downhill")
}

func TestSlide_StartWithoutFloorSkipsImpulse(t *testing.T) {
	r := newTestRig()
	r.sensor.normal = mgl64.Vec3{}
	r.sprinting()

	r.ch.Slide().Start()

	assert.Equal(t, entity.ModeSlide, r.ch.Mode())
	assert.Empty(t, r.sim.impulses)
}

func TestSlide_CrouchKeyWithoutSprintCrouches(t *testing.T) {
	r := newTestRig()
	r.pushForward()

	r.ch.Slide().CrouchOrSlideKeyPressed()

	assert.Equal(t, entity.ModeCrouch, r.ch.Mode())
	assert.Empty(t, r.sim.impulses)
}

func TestSlide_CrouchKeyWhileSprintingWithoutForward(t *testing.T) {
	r := newTestRig()
	r.sprinting()
	r.releaseInput()

	r.ch.Slide().CrouchOrSlideKeyPressed()

	// Crouch toggle only acts from None or Crouch
	assert.Equal(t, entity.ModeSprint, r.ch.Mode())
}

func TestSlide_StartRequiresGround(t *testing.T) {
	r := newTestRig()
	r.sprinting()
	r.sim.mode = entity.MovementFalling

	r.ch.Slide().Start()

	assert.Equal(t, entity.ModeSprint, r.ch.Mode())
	assert.Empty(t, r.sim.impulses)
}

func TestSlide_QueuedInAir(t *testing.T) {
	r := newTestRig()
	r.sprinting()
	r.leaveGround()
	require.True(t, r.ch.Controller().SprintQueued())

	r.ch.Slide().CrouchOrSlideKeyPressed()

	assert.True(t, r.ch.Controller().SlideQueued())
	assert.Equal(t, entity.ModeNone, r.ch.Mode())
}

func TestSlide_EndsInCrouch(t *testing.T) {
	r := newTestRig()
	r.sprinting()
	r.ch.Slide().Start()

	r.ch.Slide().End()

	assert.Equal(t, entity.ModeCrouch, r.ch.Mode())
	assert.Equal(t, entity.ModeSlide, r.ch.Controller().PreviousMode())
	assert.False(t, r.ch.Slide().Enabled())
	assert.Equal(t, 300.0, r.sim.params.MaxWalkSpeed)
	assert.Equal(t, 8.0, r.sim.params.GroundFriction)
}

func TestSlide_EndOutsideSlideIsNoop(t *testing.T) {
	r := newTestRig()
	r.sprinting()

	r.ch.Slide().End()

	assert.Equal(t, entity.ModeSprint, r.ch.Mode())
}

func TestSlide_UpdateExitsBelowSpeed(t *testing.T) {
	r := newTestRig()
	r.sprinting()
	r.ch.Slide().Start()
	r.sim.velocity = mgl64.Vec3{20, 0, 0}

	r.ch.Slide().Update()

	assert.Equal(t, entity.ModeCrouch, r.ch.Mode())
	assert.False(t, r.ch.Slide().Enabled())
	assert.Empty(t, r.sim.forces, "no force on the exit tick")
}

func TestSlide_UpdateForces(t *testing.T) {
	slope := mgl64.Vec3{downhill.Z(), 0, -downhill.X()}

	tests := []struct {
		name      string
		normal    mgl64.Vec3
		scale     bool
		wantForce *mgl64.Vec3
	}{
		{
			name:   "flat floor applies nothing",
			normal: entity.Up,
		},
		{
			name:   "airborne applies nothing",
			normal: mgl64.Vec3{},
		},
		{
			name:      "slope pushes downhill",
			normal:    downhill,
			wantForce: ptrVec(slope.Mul(1000 * 100)),
		},
		{
			name:      "slope scaled by floor influence",
			normal:    downhill,
			scale:     true,
			wantForce: ptrVec(slope.Mul(1000 * 100 * (1 - downhill.Z()))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRig()
			r.cfg.Slide.ScaleForceBySlope = tt.scale
			r.sprinting()
			r.ch.Slide().Start()
			r.sensor.normal = tt.normal
			r.sim.velocity = mgl64.Vec3{500, 0, 0}

			r.ch.Slide().Update()

			assert.Equal(t, entity.ModeSlide, r.ch.Mode())
			if tt.wantForce == nil {
				assert.Empty(t, r.sim.forces)
				return
			}
			require.Len(t, r.sim.forces, 1)
			assertVecInDelta(t, *tt.wantForce, r.sim.forces[0], 1e-6)
		})
	}
}

func ptrVec(v mgl64.Vec3) *mgl64.Vec3 { return &v }

func TestSlide_UpdateClampsSpeed(t *testing.T) {
	r := newTestRig()
	r.sprinting()
	r.ch.Slide().Start()
	r.sim.velocity = mgl64.Vec3{3000, 4000, 0}

	r.ch.Slide().Update()

	assert.InDelta(t, 1000.0, r.sim.velocity.Len(), 1e-9)
	assertVecInDelta(t, mgl64.Vec3{600, 800, 0}, r.sim.velocity, 1e-9)
}

func TestSlide_JumpInteraction(t *testing.T) {
	r := newTestRig()
	r.sprinting()
	r.ch.Slide().Start()

	r.ch.Slide().JumpInteraction()

	assert.Equal(t, entity.ModeCrouch, r.ch.Mode())
}

func TestSlopeDirection(t *testing.T) {
	_, ok := SlopeDirection(entity.FloorSample{Normal: entity.Up, Valid: true})
	assert.False(t, ok, "flat floor")

	_, ok = SlopeDirection(entity.FloorSample{})
	assert.False(t, ok, "no floor")

	dir, ok := SlopeDirection(entity.FloorSample{Normal: downhill, Valid: true})
	require.True(t, ok)
	assert.InDelta(t, 1.0, dir.Len(), 1e-9)
	assert.InDelta(t, 0.0, dir.Dot(downhill), 1e-9, "tangent to the floor")
	assert.Less(t, dir.Z(), 0.0, "points downhill")
}

func TestSlideDirection(t *testing.T) {
	actor := &fakeActor{}

	dir, ok := SlideDirection(actor, entity.FloorSample{Normal: entity.Up, Valid: true})
	require.True(t, ok)
	assertVecInDelta(t, actor.Forward(), dir, 1e-9)

	_, ok = SlideDirection(nil, entity.FloorSample{Normal: entity.Up, Valid: true})
	assert.False(t, ok)

	_, ok = SlideDirection(actor, entity.FloorSample{})
	assert.False(t, ok)
}

func TestFloorInfluence(t *testing.T) {
	tests := []struct {
		name  string
		floor entity.FloorSample
		want  float64
	}{
		{"no floor", entity.FloorSample{}, 0},
		{"flat", entity.FloorSample{Normal: entity.Up, Valid: true}, 0},
		{"45 degrees", entity.FloorSample{Normal: mgl64.Vec3{1, 0, 1}.Normalize(), Valid: true}, 1 - math.Sqrt2/2},
		{"wall", entity.FloorSample{Normal: mgl64.Vec3{1, 0, 0}, Valid: true}, 1},
		{"unnormalized", entity.FloorSample{Normal: mgl64.Vec3{0, 0, 5}, Valid: true}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FloorInfluence(tt.floor), 1e-9)
		})
	}
}
