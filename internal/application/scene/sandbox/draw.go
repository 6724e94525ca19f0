package sandbox

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/parkour/internal/domain/entity"
)

// Colors for rendering
var (
	colorBG      = color.RGBA{26, 26, 46, 255}
	colorGround  = color.RGBA{120, 160, 120, 255}
	colorBlock   = color.RGBA{80, 80, 100, 255}
	colorKillZ   = color.RGBA{200, 50, 50, 255}
	colorCamera  = color.RGBA{255, 215, 0, 255}
	colorVel     = color.RGBA{100, 200, 255, 255}
	colorOverlay = color.RGBA{0, 0, 0, 128}
)

// modeColors tints the capsule by parkour mode
var modeColors = map[entity.ParkourMode]color.RGBA{
	entity.ModeNone:   {100, 200, 100, 255},
	entity.ModeSprint: {230, 160, 60, 255},
	entity.ModeCrouch: {100, 100, 200, 255},
	entity.ModeSlide:  {200, 80, 200, 255},
}

// toScreen projects a world point onto the side view (X right, Z up)
// centered on cam
func (s *Sandbox) toScreen(p, cam mgl64.Vec3) (float64, float64) {
	x := (p.X()-cam.X())*s.pxPerCm + float64(s.screenW)/2
	y := float64(s.screenH)/2 - (p.Z()-cam.Z())*s.pxPerCm
	return x, y
}

func (s *Sandbox) drawTerrain(screen *ebiten.Image, cam mgl64.Vec3) {
	for _, r := range s.terrain.Ramps {
		x0, y0 := s.toScreen(mgl64.Vec3{r.X0, 0, r.Z0}, cam)
		x1, y1 := s.toScreen(mgl64.Vec3{r.X1, 0, r.Z1}, cam)
		ebitenutil.DrawLine(screen, x0, y0, x1, y1, colorGround)
	}

	for _, b := range s.terrain.Blocks {
		x0, y0 := s.toScreen(mgl64.Vec3{b.Min.X(), 0, b.Max.Z()}, cam)
		x1, y1 := s.toScreen(mgl64.Vec3{b.Max.X(), 0, b.Min.Z()}, cam)
		ebitenutil.DrawRect(screen, x0, y0, x1-x0, y1-y0, colorBlock)
	}

	_, ky := s.toScreen(mgl64.Vec3{0, 0, s.terrain.KillZ}, cam)
	ebitenutil.DrawLine(screen, 0, ky, float64(s.screenW), ky, colorKillZ)
}

func (s *Sandbox) drawCharacter(screen *ebiten.Image, cam mgl64.Vec3) {
	body := s.sim.Body()
	c, ok := modeColors[s.ch.Mode()]
	if !ok {
		c = modeColors[entity.ModeNone]
	}

	top := body.Position.Add(mgl64.Vec3{-body.Radius, 0, body.HalfHeight})
	x, y := s.toScreen(top, cam)
	w := 2 * body.Radius * s.pxPerCm
	h := 2 * body.HalfHeight * s.pxPerCm
	ebitenutil.DrawRect(screen, x, y, w, h, c)

	// Camera height marker
	capsule := s.sim.Capsule()
	eye := body.Position.Add(mgl64.Vec3{0, 0, capsule.CameraZOffset})
	ex, ey := s.toScreen(eye, cam)
	ebitenutil.DrawRect(screen, ex-1, ey-1, 3, 3, colorCamera)

	// Velocity, 0.1 s ahead
	if s.state.Simulating() {
		cx, cy := s.toScreen(body.Position, cam)
		vx, vy := s.toScreen(body.Position.Add(body.Velocity.Mul(0.1)), cam)
		ebitenutil.DrawLine(screen, cx, cy, vx, vy, colorVel)
	}
}

func (s *Sandbox) drawHUD(screen *ebiten.Image) {
	snap := s.ch.Snapshot()
	pos := s.sim.Location()

	text := fmt.Sprintf(
		"mode: %s (prev %s)  move: %s\n"+
			"speed: %.0f  max: %.0f\n"+
			"queued sprint: %t  slide: %t\n"+
			"sprint enabled: %t  slide enabled: %t\n"+
			"double jump: %t\n"+
			"capsule: %.1f  camera: %.1f\n"+
			"pos: %.0f, %.0f, %.0f  yaw: %.0f\n"+
			"frame: %d  %s",
		snap.Mode, snap.PreviousMode, s.sim.MovementMode(),
		snap.Speed, s.sim.Params().MaxWalkSpeed,
		snap.SprintQueued, snap.SlideQueued,
		snap.SprintEnabled, snap.SlideEnabled,
		snap.CanDoubleJump,
		snap.Capsule.HalfHeight, snap.Capsule.CameraZOffset,
		pos.X(), pos.Y(), pos.Z(), s.sim.Body().Yaw,
		s.frame, s.state,
	)
	ebitenutil.DebugPrint(screen, text)

	controls := "REPLAY | ESC: Pause | F3: HUD"
	if s.state.LiveInput() {
		controls = "WASD: Move | Arrows: Look | Space: Jump | Shift: Sprint | C: Crouch/Slide | ESC: Pause | F3: HUD"
		if s.recorder != nil {
			controls += " | F5: Save"
		}
	}
	ebitenutil.DebugPrintAt(screen, controls, 4, s.screenH-16)
}

func (s *Sandbox) drawPauseOverlay(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, 0, float64(s.screenW), float64(s.screenH), colorOverlay)

	text := "PAUSED\n\nPress ESC to resume"
	ebitenutil.DebugPrintAt(screen, text, s.screenW/2-50, s.screenH/2-20)
}

func (s *Sandbox) drawReplayFinishedOverlay(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, 0, float64(s.screenW), float64(s.screenH), colorOverlay)

	text := fmt.Sprintf("REPLAY FINISHED\n\n%d frames\n\nPress SPACE to replay", s.replayer.TotalFrames())
	ebitenutil.DebugPrintAt(screen, text, s.screenW/2-60, s.screenH/2-30)
}
