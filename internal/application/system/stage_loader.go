package system

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/parkour/internal/domain/entity"
	"github.com/younwookim/parkour/internal/infrastructure/config"
)

// LoadTerrain converts a TerrainConfig into a Terrain entity
func LoadTerrain(cfg *config.TerrainConfig) *entity.Terrain {
	ramps := make([]entity.Ramp, 0, len(cfg.Ramps))
	for _, r := range cfg.Ramps {
		x0, x1, z0, z1 := r.X0, r.X1, r.Z0, r.Z1
		if x1 < x0 {
			x0, x1 = x1, x0
			z0, z1 = z1, z0
		}
		ramps = append(ramps, entity.Ramp{X0: x0, X1: x1, Z0: z0, Z1: z1})
	}

	blocks := make([]entity.Block, 0, len(cfg.Blocks))
	for _, b := range cfg.Blocks {
		lo, hi := toVec(b.Min), toVec(b.Max)
		blocks = append(blocks, entity.Block{
			Min: mgl64.Vec3{min(lo.X(), hi.X()), min(lo.Y(), hi.Y()), min(lo.Z(), hi.Z())},
			Max: mgl64.Vec3{max(lo.X(), hi.X()), max(lo.Y(), hi.Y()), max(lo.Z(), hi.Z())},
		})
	}

	return &entity.Terrain{
		Ramps:  ramps,
		Blocks: blocks,
		Spawn:  toVec(cfg.Spawn),
		KillZ:  cfg.KillZ,
	}
}

func toVec(p config.PointConfig) mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}
