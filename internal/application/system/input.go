package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/parkour/internal/application/parkour"
)

// DefaultLookRate is the arrow key turn rate in degrees per second
const DefaultLookRate = 120.0

// InputSystem reads the keyboard and feeds a parkour character
type InputSystem struct {
	lookRate float64
}

// NewInputSystem creates a new input system
func NewInputSystem(lookRate float64) *InputSystem {
	if lookRate <= 0 {
		lookRate = DefaultLookRate
	}
	return &InputSystem{lookRate: lookRate}
}

// InputState holds the current input state
type InputState struct {
	Forward  bool
	Back     bool
	Left     bool
	Right    bool
	TurnL    bool
	TurnR    bool
	LookUp   bool
	LookDown bool

	JumpPressed   bool
	SprintPressed bool
	CrouchPressed bool

	PausePressed bool
	SavePressed  bool
	DebugPressed bool
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Forward:  ebiten.IsKeyPressed(ebiten.KeyW),
		Back:     ebiten.IsKeyPressed(ebiten.KeyS),
		Left:     ebiten.IsKeyPressed(ebiten.KeyA),
		Right:    ebiten.IsKeyPressed(ebiten.KeyD),
		TurnL:    ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		TurnR:    ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		LookUp:   ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		LookDown: ebiten.IsKeyPressed(ebiten.KeyArrowDown),

		JumpPressed:   inpututil.IsKeyJustPressed(ebiten.KeySpace),
		SprintPressed: inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) || inpututil.IsKeyJustPressed(ebiten.KeyShiftRight),
		CrouchPressed: inpututil.IsKeyJustPressed(ebiten.KeyC) || inpututil.IsKeyJustPressed(ebiten.KeyControlLeft),

		PausePressed: inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		SavePressed:  inpututil.IsKeyJustPressed(ebiten.KeyF5),
		DebugPressed: inpututil.IsKeyJustPressed(ebiten.KeyF3),
	}
}

// MoveAxis returns the movement axis: X strafes right, Y moves forward
func (in InputState) MoveAxis() mgl64.Vec2 {
	return mgl64.Vec2{axis(in.Left, in.Right), axis(in.Back, in.Forward)}
}

// LookAxis returns the unscaled yaw and pitch direction
func (in InputState) LookAxis() mgl64.Vec2 {
	return mgl64.Vec2{axis(in.TurnL, in.TurnR), axis(in.LookDown, in.LookUp)}
}

// Actions returns the discrete presses in dispatch order
func (in InputState) Actions() []parkour.Action {
	var actions []parkour.Action
	if in.SprintPressed {
		actions = append(actions, parkour.ActionSprint)
	}
	if in.CrouchPressed {
		actions = append(actions, parkour.ActionCrouchOrSlide)
	}
	if in.JumpPressed {
		actions = append(actions, parkour.ActionJump)
	}
	return actions
}

// Apply feeds one frame of input to the character
func (s *InputSystem) Apply(ch *parkour.Character, in InputState, dt float64) {
	if look := in.LookAxis(); look.LenSqr() > 0 {
		ch.Look(look.Mul(s.lookRate * dt))
	}
	ch.Move(in.MoveAxis())
	for _, a := range in.Actions() {
		ch.HandleAction(a)
	}
}

func axis(neg, pos bool) float64 {
	v := 0.0
	if neg {
		v--
	}
	if pos {
		v++
	}
	return v
}
