package parkour

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/parkour/internal/domain/entity"
)

// JumpController performs the base jump and the single air jump
type JumpController struct {
	c      *ModeController
	sprint *SprintBehavior
	crouch *CrouchBehavior

	canDoubleJump bool
}

// CanDoubleJump reports whether the air jump is still available
func (j *JumpController) CanDoubleJump() bool {
	return j.canDoubleJump
}

// OnJumpPressed handles the jump key
func (j *JumpController) OnJumpPressed() {
	if !j.crouch.CanStand() {
		return
	}
	sim := j.c.deps.Simulation
	if sim == nil {
		return
	}

	// Sampled before the base jump so a grounded press is never an air jump
	airborne := j.c.IsFalling()
	fromSprint := j.c.Mode() == entity.ModeSprint || j.c.SprintQueued()

	j.crouch.JumpInteraction()
	j.sprint.JumpInteraction()

	sim.Jump()

	if !airborne {
		if fromSprint && j.c.cfg.Sprint.JumpBoost {
			j.applySprintBoost(sim)
		}
		return
	}

	if j.canDoubleJump && j.c.cfg.Jump.DoubleJump && j.c.deps.Actor != nil {
		fwd := j.c.deps.Actor.Forward()
		h := j.c.cfg.Jump.HorizontalForce
		sim.Launch(mgl64.Vec3{fwd.X() * h, fwd.Y() * h, j.c.cfg.Jump.VerticalForce}, false, true)
		j.canDoubleJump = false
	}
}

// Restore makes the air jump available again after landing
func (j *JumpController) Restore() {
	j.canDoubleJump = true
}

func (j *JumpController) applySprintBoost(sim MovementSimulation) {
	v := sim.Velocity()
	if dir, ok := safeNormal(mgl64.Vec3{v.X(), v.Y(), 0}); ok {
		sim.ApplyImpulse(dir.Mul(j.c.cfg.Sprint.JumpForce), true)
	}
}
