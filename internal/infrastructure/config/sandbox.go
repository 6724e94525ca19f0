package config

// SandboxConfig is the root config for sandbox.yaml
type SandboxConfig struct {
	Display    DisplayConfig    `json:"display" yaml:"display"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Character  CharacterConfig  `json:"character" yaml:"character"`
	Terrain    TerrainConfig    `json:"terrain" yaml:"terrain"`
}

type DisplayConfig struct {
	ScreenWidth  int     `json:"screenWidth" yaml:"screenWidth"`
	ScreenHeight int     `json:"screenHeight" yaml:"screenHeight"`
	Scale        int     `json:"scale" yaml:"scale"`
	Framerate    int     `json:"framerate" yaml:"framerate"`
	PixelsPerCm  float64 `json:"pixelsPerCm" yaml:"pixelsPerCm"`
}

// SimulationConfig holds the kinematic movement simulation constants.
// Units are centimeters and seconds.
type SimulationConfig struct {
	Gravity             float64 `json:"gravity" yaml:"gravity"`
	Mass                float64 `json:"mass" yaml:"mass"`
	Acceleration        float64 `json:"acceleration" yaml:"acceleration"`
	JumpZVelocity       float64 `json:"jumpZVelocity" yaml:"jumpZVelocity"`
	MaxWalkSpeed        float64 `json:"maxWalkSpeed" yaml:"maxWalkSpeed"`
	GroundFriction      float64 `json:"groundFriction" yaml:"groundFriction"`
	BrakingDeceleration float64 `json:"brakingDeceleration" yaml:"brakingDeceleration"`
	AirControl          float64 `json:"airControl" yaml:"airControl"`
	StepHeight          float64 `json:"stepHeight" yaml:"stepHeight"`
	MaxFallSpeed        float64 `json:"maxFallSpeed" yaml:"maxFallSpeed"`
}

type CharacterConfig struct {
	HalfHeight    float64 `json:"halfHeight" yaml:"halfHeight"`
	Radius        float64 `json:"radius" yaml:"radius"`
	CameraZOffset float64 `json:"cameraZOffset" yaml:"cameraZOffset"`
}

type TerrainConfig struct {
	Spawn  PointConfig   `json:"spawn" yaml:"spawn"`
	KillZ  float64       `json:"killZ" yaml:"killZ"`
	Ramps  []RampConfig  `json:"ramps" yaml:"ramps"`
	Blocks []BlockConfig `json:"blocks" yaml:"blocks"`
}

type PointConfig struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

type RampConfig struct {
	X0 float64 `json:"x0" yaml:"x0"`
	X1 float64 `json:"x1" yaml:"x1"`
	Z0 float64 `json:"z0" yaml:"z0"`
	Z1 float64 `json:"z1" yaml:"z1"`
}

type BlockConfig struct {
	Min PointConfig `json:"min" yaml:"min"`
	Max PointConfig `json:"max" yaml:"max"`
}

// DefaultSandbox returns a flat floor with a tunnel and a downhill ramp
func DefaultSandbox() *SandboxConfig {
	return &SandboxConfig{
		Display: DisplayConfig{
			ScreenWidth:  480,
			ScreenHeight: 270,
			Scale:        2,
			Framerate:    60,
			PixelsPerCm:  0.1,
		},
		Simulation: SimulationConfig{
			Gravity:             980,
			Mass:                100,
			Acceleration:        2048,
			JumpZVelocity:       420,
			MaxWalkSpeed:        600,
			GroundFriction:      8,
			BrakingDeceleration: 2048,
			AirControl:          0.05,
			StepHeight:          45,
			MaxFallSpeed:        4000,
		},
		Character: CharacterConfig{
			HalfHeight:    96,
			Radius:        55,
			CameraZOffset: 60,
		},
		Terrain: TerrainConfig{
			KillZ: -3000,
			Ramps: []RampConfig{
				{X0: -2000, X1: 4000, Z0: 0, Z1: 0},
			},
		},
	}
}
