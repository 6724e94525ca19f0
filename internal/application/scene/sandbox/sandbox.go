// Package sandbox provides the parkour sandbox scene.
package sandbox

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/younwookim/parkour/internal/application/parkour"
	"github.com/younwookim/parkour/internal/application/replay"
	"github.com/younwookim/parkour/internal/application/scene"
	"github.com/younwookim/parkour/internal/application/schedule"
	"github.com/younwookim/parkour/internal/application/state"
	"github.com/younwookim/parkour/internal/application/system"
	"github.com/younwookim/parkour/internal/domain/entity"
	"github.com/younwookim/parkour/internal/infrastructure/config"
)

// Options configures optional sandbox features
type Options struct {
	// StageName is stored in recordings
	StageName string
	// RecordPath enables input recording; the file is written on F5 and on exit
	RecordPath string
	// Replay plays back recorded input instead of reading the keyboard
	Replay *replay.ReplayData
	// TuningUpdates delivers hot-reloaded tuning, applied between ticks
	TuningUpdates <-chan *config.TuningConfig
	Logger        logrus.FieldLogger
}

var _ scene.Scene = (*Sandbox)(nil)

// Sandbox is the scene that runs one parkour character on a terrain
type Sandbox struct {
	cfg     *config.Config
	terrain *entity.Terrain
	log     logrus.FieldLogger

	sim   *system.PhysicsSystem
	ch    *parkour.Character
	sched *schedule.Queue
	input *system.InputSystem

	state  state.SessionState
	paused state.SessionState // state to resume from pause
	frame  int

	recorder   *replay.Recorder
	recordPath string
	replayer   *replay.Replayer
	updates    <-chan *config.TuningConfig

	screenW   int
	screenH   int
	pxPerCm   float64
	showDebug bool
}

// New creates a new Sandbox scene
func New(cfg *config.Config, terrain *entity.Terrain, opts Options) *Sandbox {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	display := cfg.Sandbox.Display
	s := &Sandbox{
		cfg:        cfg,
		terrain:    terrain,
		log:        log.WithField("scene", "sandbox"),
		input:      system.NewInputSystem(system.DefaultLookRate),
		state:      state.StateRunning,
		recordPath: opts.RecordPath,
		updates:    opts.TuningUpdates,
		screenW:    display.ScreenWidth,
		screenH:    display.ScreenHeight,
		pxPerCm:    display.PixelsPerCm,
		showDebug:  true,
	}
	if s.pxPerCm <= 0 {
		s.pxPerCm = 0.1
	}

	if opts.Replay != nil {
		s.replayer = replay.NewReplayer(*opts.Replay)
		s.state = state.StateReplaying
		s.log.WithFields(logrus.Fields{
			"stage":  s.replayer.Stage(),
			"frames": s.replayer.TotalFrames(),
		}).Info("replay loaded")
	} else if opts.RecordPath != "" {
		s.recorder = replay.NewRecorder(opts.StageName, display.Framerate)
		s.log.WithField("file", opts.RecordPath).Info("recording enabled")
	}

	s.resetWorld()
	return s
}

// resetWorld builds a fresh simulation, scheduler and character at spawn
func (s *Sandbox) resetWorld() {
	s.sim = system.NewPhysicsSystem(&s.cfg.Sandbox.Simulation, s.terrain, s.cfg.Sandbox.Character, s.log)
	s.sched = schedule.NewQueue()
	s.ch = parkour.NewCharacter(s.cfg.Tuning, parkour.Deps{
		Simulation: s.sim,
		Sensor:     s.sim,
		Actor:      s.sim,
		Scheduler:  s.sched,
	}, parkour.WithLogger(s.log))
	s.sim.SetListener(s.ch)
	s.frame = 0
}

// Character returns the driven character
func (s *Sandbox) Character() *parkour.Character { return s.ch }

// Simulation returns the physics system under the character
func (s *Sandbox) Simulation() *system.PhysicsSystem { return s.sim }

// State returns the session state
func (s *Sandbox) State() state.SessionState { return s.state }

// Frame returns the number of simulated ticks since the last reset
func (s *Sandbox) Frame() int { return s.frame }

// Update reads the keyboard and advances one tick (implements scene.Scene)
func (s *Sandbox) Update(dt float64) (scene.Scene, error) {
	s.Advance(s.input.GetInput(), dt)
	return nil, nil
}

// Advance runs one frame with the given input. While replaying, only the
// session keys (pause, restart) are taken from in.
func (s *Sandbox) Advance(in system.InputState, dt float64) {
	s.pollTuning()

	if in.DebugPressed {
		s.showDebug = !s.showDebug
	}

	switch s.state {
	case state.StateRunning:
		if in.PausePressed {
			s.pause()
			return
		}
		if in.SavePressed {
			s.saveRecording()
		}
		if s.recorder != nil {
			s.recorder.RecordFrame(toFrame(in))
		}
		s.tick(in, dt)

	case state.StateReplaying:
		if in.PausePressed {
			s.pause()
			return
		}
		fi, ok := s.replayer.Next()
		if !ok {
			s.state = state.StateReplayFinished
			s.log.WithField("frames", s.frame).Info("replay finished")
			return
		}
		s.tick(fromFrame(fi), dt)

	case state.StatePaused:
		if in.PausePressed {
			s.state = s.paused
		}

	case state.StateReplayFinished:
		if in.JumpPressed {
			s.restartReplay()
		}
	}
}

// tick runs the per-frame order: input, simulation, character, scheduler
func (s *Sandbox) tick(in system.InputState, dt float64) {
	s.input.Apply(s.ch, in, dt)
	s.sim.Step(dt)
	s.ch.Tick(dt)
	s.sched.Advance(dt)
	s.frame++
}

func (s *Sandbox) pause() {
	s.paused = s.state
	s.state = state.StatePaused
}

func (s *Sandbox) restartReplay() {
	s.replayer.Reset()
	s.resetWorld()
	s.state = state.StateReplaying
	s.log.Info("replay restarted")
}

// pollTuning applies the newest hot-reloaded tuning without blocking
func (s *Sandbox) pollTuning() {
	if s.updates == nil {
		return
	}
	select {
	case cfg, ok := <-s.updates:
		if !ok {
			s.updates = nil
			return
		}
		if err := config.CheckCrouchFits(cfg, s.cfg.Sandbox.Character); err != nil {
			s.log.WithError(err).Error("reloaded tuning rejected")
			return
		}
		s.cfg.Tuning = cfg
		s.ch.ApplyTuning(cfg)
	default:
	}
}

// saveRecording saves the current recording to file
func (s *Sandbox) saveRecording() {
	if s.recorder == nil {
		return
	}

	filename := s.recordPath
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := s.recorder.Save(filename); err != nil {
		s.log.WithError(err).Error("failed to save recording")
		return
	}
	s.log.WithFields(logrus.Fields{
		"file":   filename,
		"frames": s.recorder.FrameCount(),
	}).Info("recording saved")
}

// OnEnter is called when entering this scene
func (s *Sandbox) OnEnter() {
	s.log.WithField("state", s.state).Debug("sandbox entered")
}

// OnExit saves any pending recording
func (s *Sandbox) OnExit() {
	if s.recorder != nil && s.recorder.FrameCount() > 0 {
		s.saveRecording()
		s.recorder.Stop()
	}
}

// Draw renders the side view and the HUD
func (s *Sandbox) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	cam := s.sim.Location()
	s.drawTerrain(screen, cam)
	s.drawCharacter(screen, cam)
	if s.showDebug {
		s.drawHUD(screen)
	}

	switch s.state {
	case state.StatePaused:
		s.drawPauseOverlay(screen)
	case state.StateReplayFinished:
		s.drawReplayFinishedOverlay(screen)
	}
}
