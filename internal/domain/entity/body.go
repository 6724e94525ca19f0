package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is the kinematic state of the sandbox character.
// Position is the capsule center; the feet sit HalfHeight below it.
type Body struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3

	Yaw   float64 // degrees, 0 faces +X
	Pitch float64 // degrees, clamped to [-89, 89]

	Mode       MovementMode
	HalfHeight float64
	Radius     float64
	CameraZ    float64

	// Floor contact from the last step
	FloorNormal mgl64.Vec3
	OnFloor     bool

	// Movement input accumulated this tick, consumed by the next step
	PendingInput mgl64.Vec3
	// Movement input consumed by the last step
	LastInput mgl64.Vec3
}

// NewBody creates a body standing with its feet at the given position
func NewBody(feet mgl64.Vec3, halfHeight, radius, cameraZ float64) *Body {
	return &Body{
		Position:    feet.Add(mgl64.Vec3{0, 0, halfHeight}),
		Mode:        MovementWalking,
		HalfHeight:  halfHeight,
		Radius:      radius,
		CameraZ:     cameraZ,
		FloorNormal: Up,
		OnFloor:     true,
	}
}

// Feet returns the bottom of the capsule
func (b *Body) Feet() mgl64.Vec3 {
	return b.Position.Sub(mgl64.Vec3{0, 0, b.HalfHeight})
}

// SetFeet moves the body so that its feet are at z
func (b *Body) SetFeet(z float64) {
	b.Position[2] = z + b.HalfHeight
}

// Forward returns the horizontal facing direction
func (b *Body) Forward() mgl64.Vec3 {
	yaw := mgl64.DegToRad(b.Yaw)
	return mgl64.Vec3{math.Cos(yaw), math.Sin(yaw), 0}
}

// Right returns the horizontal right-hand direction
func (b *Body) Right() mgl64.Vec3 {
	yaw := mgl64.DegToRad(b.Yaw)
	return mgl64.Vec3{-math.Sin(yaw), math.Cos(yaw), 0}
}

// Rotate applies yaw and pitch deltas in degrees
func (b *Body) Rotate(yaw, pitch float64) {
	b.Yaw = math.Mod(b.Yaw+yaw, 360)
	b.Pitch = mgl64.Clamp(b.Pitch+pitch, -89, 89)
}

// SetHalfHeight resizes the capsule keeping the feet in place
func (b *Body) SetHalfHeight(h float64) {
	feet := b.Feet()
	b.HalfHeight = h
	b.Position[2] = feet.Z() + h
}

// Speed returns the velocity magnitude
func (b *Body) Speed() float64 {
	return b.Velocity.Len()
}
