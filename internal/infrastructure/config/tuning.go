package config

// TuningConfig is the root config for tuning.yaml (or tuning.json).
// It holds the parkour tunables; everything else the controller needs is
// captured from the movement simulation at startup.
type TuningConfig struct {
	Jump   JumpTuning   `json:"jump" yaml:"jump"`
	Sprint SprintTuning `json:"sprint" yaml:"sprint"`
	Crouch CrouchTuning `json:"crouch" yaml:"crouch"`
	Slide  SlideTuning  `json:"slide" yaml:"slide"`
}

type JumpTuning struct {
	VerticalForce   float64 `json:"verticalForce" yaml:"verticalForce"`
	HorizontalForce float64 `json:"horizontalForce" yaml:"horizontalForce"`
	DoubleJump      bool    `json:"doubleJump" yaml:"doubleJump"`
}

type SprintTuning struct {
	Speed         float64 `json:"speed" yaml:"speed"`
	JumpForce     float64 `json:"jumpForce" yaml:"jumpForce"`
	JumpBoost     bool    `json:"jumpBoost" yaml:"jumpBoost"` // Apply JumpForce when jumping out of a sprint
	ReenableDelay float64 `json:"reenableDelay" yaml:"reenableDelay"`
}

type CrouchTuning struct {
	CapsuleHalfHeight float64 `json:"capsuleHalfHeight" yaml:"capsuleHalfHeight"`
	CameraZOffset     float64 `json:"cameraZOffset" yaml:"cameraZOffset"`
	WalkSpeed         float64 `json:"walkSpeed" yaml:"walkSpeed"`
	ProbeRadius       float64 `json:"probeRadius" yaml:"probeRadius"`
	InterpTime        float64 `json:"interpTime" yaml:"interpTime"` // Exponential smoothing time constant (seconds)
}

type SlideTuning struct {
	Speed               float64 `json:"speed" yaml:"speed"`
	ForceMultiplier     float64 `json:"forceMultiplier" yaml:"forceMultiplier"`
	ExitSpeed           float64 `json:"exitSpeed" yaml:"exitSpeed"`
	BrakingDeceleration float64 `json:"brakingDeceleration" yaml:"brakingDeceleration"`
	ScaleForceBySlope   bool    `json:"scaleForceBySlope" yaml:"scaleForceBySlope"`
}

// DefaultTuning returns the stock tuning values
func DefaultTuning() *TuningConfig {
	return &TuningConfig{
		Jump: JumpTuning{
			VerticalForce:   450,
			HorizontalForce: 100,
			DoubleJump:      true,
		},
		Sprint: SprintTuning{
			Speed:         1000,
			JumpForce:     200,
			ReenableDelay: 0.1,
		},
		Crouch: CrouchTuning{
			CapsuleHalfHeight: 35,
			CameraZOffset:     60,
			WalkSpeed:         300,
			ProbeRadius:       20,
			InterpTime:        0.1,
		},
		Slide: SlideTuning{
			Speed:               1000,
			ForceMultiplier:     100,
			ExitSpeed:           35,
			BrakingDeceleration: 1000,
		},
	}
}
