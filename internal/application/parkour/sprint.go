package parkour

import (
	"github.com/younwookim/parkour/internal/application/schedule"
	"github.com/younwookim/parkour/internal/domain/entity"
)

// SprintBehavior enters and leaves ModeSprint
type SprintBehavior struct {
	c      *ModeController
	crouch *CrouchBehavior
	slide  *SlideBehavior

	// enabled gates Update; it is cleared on End and restored by a
	// short scheduled callback so a released sprint cannot chatter
	enabled  bool
	reenable schedule.Handle
}

// Enabled reports whether sprint updates are currently polled
func (s *SprintBehavior) Enabled() bool {
	return s.enabled
}

// CanSprint reports whether a sprint may start right now
func (s *SprintBehavior) CanSprint() bool {
	return s.c.Mode() == entity.ModeNone && s.c.IsWalking()
}

// Start cancels crouch or slide, then enters sprint if possible
func (s *SprintBehavior) Start() {
	s.crouch.End()
	s.slide.End()

	if !s.CanSprint() || !s.c.SetMode(entity.ModeSprint) {
		return
	}

	if p := s.c.Params(); p != nil {
		p.MaxWalkSpeed = s.c.cfg.Sprint.Speed
	}
	s.cancelReenable()
	s.enabled = true
	s.c.ClearQueues()
}

// End leaves sprint and debounces the next update poll
func (s *SprintBehavior) End() {
	if s.c.Mode() != entity.ModeSprint || !s.c.SetMode(entity.ModeNone) {
		return
	}

	s.enabled = false

	sched := s.c.deps.Scheduler
	if sched == nil {
		s.enabled = true
		return
	}
	// A stale re-enable must not fire after this newer disable
	s.cancelReenable()
	s.reenable = sched.ScheduleOnce(s.c.cfg.Sprint.ReenableDelay, s.onReenable)
}

// Update ends the sprint once forward intent is gone
func (s *SprintBehavior) Update() {
	if s.c.Mode() == entity.ModeSprint && !s.c.ForwardInput() {
		s.End()
	}
}

// Toggle handles the sprint key
func (s *SprintBehavior) Toggle() {
	switch s.c.Mode() {
	case entity.ModeSprint:
		s.End()
	case entity.ModeNone, entity.ModeCrouch:
		s.Start()
	}
}

// JumpInteraction ends a running sprint and queues it for the landing
func (s *SprintBehavior) JumpInteraction() {
	if s.c.Mode() == entity.ModeSprint {
		s.End()
		s.c.sprintQueued = true
	}
}

func (s *SprintBehavior) onReenable() {
	s.enabled = true
	s.reenable = 0
}

func (s *SprintBehavior) cancelReenable() {
	if sched := s.c.deps.Scheduler; sched != nil {
		sched.CancelIfPending(s.reenable)
	}
	s.reenable = 0
}
