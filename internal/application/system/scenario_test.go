package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/parkour/internal/application/parkour"
	"github.com/younwookim/parkour/internal/application/schedule"
	"github.com/younwookim/parkour/internal/domain/entity"
	"github.com/younwookim/parkour/internal/infrastructure/config"
)

// testSandbox runs a character on the real physics the way the sandbox
// scene does
type testSandbox struct {
	sim   *PhysicsSystem
	ch    *parkour.Character
	sched *schedule.Queue
	input *InputSystem
}

func createTestSandbox(t *testing.T) *testSandbox {
	return createTestSandboxOn(t, createFlatTerrain())
}

func createTestSandboxOn(t *testing.T, terrain *entity.Terrain) *testSandbox {
	t.Helper()
	log := quietLogger()

	sim := NewPhysicsSystem(createTestSimConfig(), terrain, createTestCharacterConfig(), log)
	sched := schedule.NewQueue()
	ch := parkour.NewCharacter(config.DefaultTuning(), parkour.Deps{
		Simulation: sim,
		Sensor:     sim,
		Actor:      sim,
		Scheduler:  sched,
	}, parkour.WithLogger(log))
	sim.SetListener(ch)

	return &testSandbox{
		sim:   sim,
		ch:    ch,
		sched: sched,
		input: NewInputSystem(DefaultLookRate),
	}
}

func (sb *testSandbox) frame(in InputState) {
	sb.input.Apply(sb.ch, in, testDt)
	sb.sim.Step(testDt)
	sb.ch.Tick(testDt)
	sb.sched.Advance(testDt)
}

func (sb *testSandbox) run(frames int, in InputState) {
	for i := 0; i < frames; i++ {
		sb.frame(in)
	}
}

var (
	holdForward = InputState{Forward: true}
	idle        = InputState{}
)

func TestScenario_SprintReachesSprintSpeed(t *testing.T) {
	sb := createTestSandbox(t)

	sb.frame(InputState{Forward: true, SprintPressed: true})
	sb.run(60, holdForward)

	assert.Equal(t, entity.ModeSprint, sb.ch.Mode())
	assert.InDelta(t, 1000.0, sb.sim.Velocity().Len(), 1e-6)
}

func TestScenario_SprintEndsWhenForwardReleased(t *testing.T) {
	sb := createTestSandbox(t)
	sb.frame(InputState{Forward: true, SprintPressed: true})
	sb.run(10, holdForward)

	sb.frame(idle)

	assert.Equal(t, entity.ModeNone, sb.ch.Mode())
	assert.Equal(t, 600.0, sb.sim.Params().MaxWalkSpeed)
}

func TestScenario_SprintJumpResumesOnLanding(t *testing.T) {
	sb := createTestSandbox(t)
	sb.frame(InputState{Forward: true, SprintPressed: true})
	sb.run(30, holdForward)

	sb.frame(InputState{Forward: true, JumpPressed: true})
	require.Equal(t, entity.MovementFalling, sb.sim.MovementMode())
	assert.Equal(t, entity.ModeNone, sb.ch.Mode())
	assert.True(t, sb.ch.Controller().SprintQueued())

	for i := 0; i < 120 && sb.sim.MovementMode() == entity.MovementFalling; i++ {
		sb.frame(holdForward)
	}

	require.Equal(t, entity.MovementWalking, sb.sim.MovementMode())
	assert.Equal(t, entity.ModeSprint, sb.ch.Mode())
	assert.Equal(t, 1000.0, sb.sim.Params().MaxWalkSpeed)
}

func TestScenario_SlideDecaysIntoCrouch(t *testing.T) {
	sb := createTestSandbox(t)
	sb.frame(InputState{Forward: true, SprintPressed: true})
	sb.run(30, holdForward)

	sb.frame(InputState{Forward: true, CrouchPressed: true})
	require.Equal(t, entity.ModeSlide, sb.ch.Mode())
	assert.Equal(t, 0.0, sb.sim.Params().GroundFriction)
	assert.LessOrEqual(t, sb.sim.Velocity().Len(), 1000.0+1e-6)

	ended := false
	for i := 0; i < 180; i++ {
		sb.frame(holdForward)
		if sb.ch.Mode() != entity.ModeSlide {
			ended = true
			break
		}
		assert.Equal(t, mgl64.Vec3{}, sb.sim.LastInputVector(), "input ignored while sliding")
	}

	require.True(t, ended)
	assert.Equal(t, entity.ModeCrouch, sb.ch.Mode())
	assert.Less(t, sb.sim.Velocity().Len(), 35.0)
	assert.Equal(t, 300.0, sb.sim.Params().MaxWalkSpeed)
}

func TestScenario_SlideDownhillKeepsSpeed(t *testing.T) {
	terrain := &entity.Terrain{
		Ramps: []entity.Ramp{
			{X0: -1000, X1: 200, Z0: 0, Z1: 0},
			{X0: 200, X1: 8000, Z0: 0, Z1: -2400},
		},
		KillZ: -5000,
	}
	flat := createTestSandbox(t)
	slope := createTestSandboxOn(t, terrain)

	for _, sb := range []*testSandbox{flat, slope} {
		sb.frame(InputState{Forward: true, SprintPressed: true})
		sb.run(30, holdForward)
		sb.frame(InputState{Forward: true, CrouchPressed: true})
		require.Equal(t, entity.ModeSlide, sb.ch.Mode())
		sb.run(40, holdForward)
	}

	assert.Greater(t, slope.sim.Velocity().Len(), flat.sim.Velocity().Len())
}

func TestScenario_StuckCrouchedUnderCeiling(t *testing.T) {
	terrain := createTunnelTerrain()
	terrain.Spawn = mgl64.Vec3{900, 0, 0}
	sb := createTestSandboxOn(t, terrain)

	sb.frame(InputState{CrouchPressed: true})
	require.Equal(t, entity.ModeCrouch, sb.ch.Mode())
	sb.run(60, idle)
	require.InDelta(t, 35.0, sb.sim.Capsule().HalfHeight, 0.01)

	sb.run(150, holdForward)
	require.Greater(t, sb.sim.Location().X(), 1300.0)
	require.Less(t, sb.sim.Location().X(), 1700.0)

	sb.frame(InputState{CrouchPressed: true})
	assert.Equal(t, entity.ModeCrouch, sb.ch.Mode(), "no room to stand")

	sb.frame(InputState{JumpPressed: true})
	assert.Equal(t, entity.MovementWalking, sb.sim.MovementMode(), "no room to jump")

	sb.run(180, holdForward)
	require.Greater(t, sb.sim.Location().X(), 1900.0)

	sb.frame(InputState{CrouchPressed: true})
	assert.Equal(t, entity.ModeNone, sb.ch.Mode())

	sb.run(120, idle)
	assert.Equal(t, 96.0, sb.sim.Capsule().HalfHeight)
	assert.Equal(t, 0.0, sb.sim.Body().Feet().Z())
}

func TestScenario_RunningOffLedgeResumesSprint(t *testing.T) {
	terrain := &entity.Terrain{
		Ramps: []entity.Ramp{
			{X0: -1000, X1: 500, Z0: 0, Z1: 0},
			{X0: 500, X1: 5000, Z0: -200, Z1: -200},
		},
		KillZ: -3000,
	}
	sb := createTestSandboxOn(t, terrain)
	sb.frame(InputState{Forward: true, SprintPressed: true})

	fell := false
	for i := 0; i < 120; i++ {
		sb.frame(holdForward)
		if sb.sim.MovementMode() == entity.MovementFalling {
			fell = true
			break
		}
	}
	require.True(t, fell)
	assert.Equal(t, entity.ModeNone, sb.ch.Mode())
	assert.True(t, sb.ch.Controller().SprintQueued())

	for i := 0; i < 120 && sb.sim.MovementMode() == entity.MovementFalling; i++ {
		sb.frame(holdForward)
	}

	assert.Equal(t, -200.0, sb.sim.Body().Feet().Z())
	assert.Equal(t, entity.ModeSprint, sb.ch.Mode())
}

func TestScenario_DoubleJump(t *testing.T) {
	sb := createTestSandbox(t)

	sb.frame(InputState{JumpPressed: true})
	sb.run(10, idle)
	require.Equal(t, entity.MovementFalling, sb.sim.MovementMode())

	sb.frame(InputState{JumpPressed: true})
	assert.False(t, sb.ch.Jump().CanDoubleJump())
	assert.InDelta(t, 450-980*testDt, sb.sim.Velocity().Z(), 1e-9)
	assert.InDelta(t, 100.0, sb.sim.Velocity().X(), 1e-9)

	vz := sb.sim.Velocity().Z()
	sb.frame(InputState{JumpPressed: true})
	assert.InDelta(t, vz-980*testDt, sb.sim.Velocity().Z(), 1e-9, "only one air jump")

	for i := 0; i < 180 && sb.sim.MovementMode() == entity.MovementFalling; i++ {
		sb.frame(idle)
	}
	assert.Equal(t, entity.MovementWalking, sb.sim.MovementMode())
	assert.True(t, sb.ch.Jump().CanDoubleJump())
}

func TestScenario_LandingPrefersQueuedSlide(t *testing.T) {
	sb := createTestSandbox(t)
	sb.frame(InputState{Forward: true, SprintPressed: true})
	sb.run(30, holdForward)

	sb.frame(InputState{Forward: true, JumpPressed: true})
	sb.run(5, holdForward)
	sb.frame(InputState{Forward: true, CrouchPressed: true})
	require.True(t, sb.ch.Controller().SlideQueued())

	for i := 0; i < 120 && sb.sim.MovementMode() == entity.MovementFalling; i++ {
		sb.frame(holdForward)
	}

	assert.Equal(t, entity.ModeSlide, sb.ch.Mode())
}
