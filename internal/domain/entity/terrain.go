package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ramp is a ground strip spanning [X0, X1] along the world X axis. Its surface
// rises linearly from Z0 to Z1 and is infinite along Y.
type Ramp struct {
	X0, X1 float64
	Z0, Z1 float64
}

// Contains reports whether x lies over the ramp
func (r Ramp) Contains(x float64) bool {
	return x >= r.X0 && x <= r.X1
}

// HeightAt returns the surface height at x (caller checks Contains)
func (r Ramp) HeightAt(x float64) float64 {
	if r.X1 == r.X0 {
		return math.Max(r.Z0, r.Z1)
	}
	t := (x - r.X0) / (r.X1 - r.X0)
	return r.Z0 + (r.Z1-r.Z0)*t
}

// Normal returns the unit surface normal of the ramp
func (r Ramp) Normal() mgl64.Vec3 {
	if r.X1 == r.X0 {
		return Up
	}
	slope := (r.Z1 - r.Z0) / (r.X1 - r.X0)
	return mgl64.Vec3{-slope, 0, 1}.Normalize()
}

// Block is an axis-aligned solid box, used for overhead obstacles
type Block struct {
	Min, Max mgl64.Vec3
}

// Overlaps reports whether the probe volume intersects the block
func (b Block) Overlaps(p ProbeVolume) bool {
	minX := math.Min(p.Bottom.X(), p.Top.X()) - p.Radius
	maxX := math.Max(p.Bottom.X(), p.Top.X()) + p.Radius
	minY := math.Min(p.Bottom.Y(), p.Top.Y()) - p.Radius
	maxY := math.Max(p.Bottom.Y(), p.Top.Y()) + p.Radius
	minZ := math.Min(p.Bottom.Z(), p.Top.Z())
	maxZ := math.Max(p.Bottom.Z(), p.Top.Z())

	return minX < b.Max.X() && maxX > b.Min.X() &&
		minY < b.Max.Y() && maxY > b.Min.Y() &&
		minZ < b.Max.Z() && maxZ > b.Min.Z()
}

// Terrain represents the sandbox level geometry
type Terrain struct {
	Ramps  []Ramp
	Blocks []Block
	Spawn  mgl64.Vec3
	KillZ  float64
}

// GroundAt returns the highest ramp surface at x that is not above maxZ.
// ok is false when there is no ground under x.
func (t *Terrain) GroundAt(x, maxZ float64) (height float64, normal mgl64.Vec3, ok bool) {
	height = math.Inf(-1)
	for _, r := range t.Ramps {
		if !r.Contains(x) {
			continue
		}
		h := r.HeightAt(x)
		if h > maxZ || h <= height {
			continue
		}
		height = h
		normal = r.Normal()
		ok = true
	}
	return height, normal, ok
}

// IsBlocked reports whether any block overlaps the probe
func (t *Terrain) IsBlocked(p ProbeVolume) bool {
	for _, b := range t.Blocks {
		if b.Overlaps(p) {
			return true
		}
	}
	return false
}
