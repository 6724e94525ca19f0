package config

import "fmt"

// Validate checks the tuning values for consistency
func (c *TuningConfig) Validate() error {
	switch {
	case c.Sprint.Speed <= 0:
		return fmt.Errorf("%w: sprint.speed must be positive", ErrInvalidConfig)
	case c.Sprint.ReenableDelay < 0:
		return fmt.Errorf("%w: sprint.reenableDelay must not be negative", ErrInvalidConfig)
	case c.Crouch.CapsuleHalfHeight <= 0:
		return fmt.Errorf("%w: crouch.capsuleHalfHeight must be positive", ErrInvalidConfig)
	case c.Crouch.WalkSpeed < 0:
		return fmt.Errorf("%w: crouch.walkSpeed must not be negative", ErrInvalidConfig)
	case c.Crouch.InterpTime < 0:
		return fmt.Errorf("%w: crouch.interpTime must not be negative", ErrInvalidConfig)
	case c.Slide.Speed <= 0:
		return fmt.Errorf("%w: slide.speed must be positive", ErrInvalidConfig)
	case c.Slide.ExitSpeed < 0 || c.Slide.ExitSpeed >= c.Slide.Speed:
		return fmt.Errorf("%w: slide.exitSpeed must be in [0, slide.speed)", ErrInvalidConfig)
	case c.Slide.BrakingDeceleration < 0:
		return fmt.Errorf("%w: slide.brakingDeceleration must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Validate checks the sandbox values for consistency
func (c *SandboxConfig) Validate() error {
	switch {
	case c.Display.Framerate <= 0:
		return fmt.Errorf("%w: display.framerate must be positive", ErrInvalidConfig)
	case c.Simulation.Mass <= 0:
		return fmt.Errorf("%w: simulation.mass must be positive", ErrInvalidConfig)
	case c.Character.HalfHeight <= 0 || c.Character.Radius <= 0:
		return fmt.Errorf("%w: character capsule must have positive size", ErrInvalidConfig)
	case len(c.Terrain.Ramps) == 0:
		return fmt.Errorf("%w: terrain needs at least one ramp", ErrInvalidConfig)
	}
	for i, r := range c.Terrain.Ramps {
		if r.X1 < r.X0 {
			return fmt.Errorf("%w: terrain.ramps[%d] has x1 < x0", ErrInvalidConfig, i)
		}
	}
	return nil
}

// CheckCrouchFits verifies the crouched capsule is not taller than the
// standing capsule it shrinks from
func CheckCrouchFits(t *TuningConfig, c CharacterConfig) error {
	if t.Crouch.CapsuleHalfHeight > c.HalfHeight {
		return fmt.Errorf("%w: crouch.capsuleHalfHeight %.1f exceeds standing half height %.1f",
			ErrInvalidConfig, t.Crouch.CapsuleHalfHeight, c.HalfHeight)
	}
	return nil
}
