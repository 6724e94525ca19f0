package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/parkour/internal/infrastructure/config"
)

func TestLoadTerrain(t *testing.T) {
	t.Run("loads ramps, blocks and spawn", func(t *testing.T) {
		cfg := &config.TerrainConfig{
			Spawn: config.PointConfig{X: 10, Y: 20, Z: 30},
			KillZ: -500,
			Ramps: []config.RampConfig{
				{X0: 0, X1: 100, Z0: 0, Z1: 0},
				{X0: 100, X1: 300, Z0: 0, Z1: -50},
			},
			Blocks: []config.BlockConfig{
				{Min: config.PointConfig{X: 1, Y: 2, Z: 3}, Max: config.PointConfig{X: 4, Y: 5, Z: 6}},
			},
		}

		terrain := LoadTerrain(cfg)

		require.NotNil(t, terrain)
		assert.Len(t, terrain.Ramps, 2)
		assert.Len(t, terrain.Blocks, 1)
		assert.Equal(t, mgl64.Vec3{10, 20, 30}, terrain.Spawn)
		assert.Equal(t, -500.0, terrain.KillZ)
		assert.Equal(t, -50.0, terrain.Ramps[1].Z1)
	})

	t.Run("orders reversed ramp ends", func(t *testing.T) {
		cfg := &config.TerrainConfig{
			Ramps: []config.RampConfig{{X0: 200, X1: 100, Z0: -20, Z1: 10}},
		}

		terrain := LoadTerrain(cfg)

		r := terrain.Ramps[0]
		assert.Equal(t, 100.0, r.X0)
		assert.Equal(t, 200.0, r.X1)
		assert.Equal(t, 10.0, r.Z0)
		assert.Equal(t, -20.0, r.Z1)
		assert.InDelta(t, 10.0, r.HeightAt(100), 1e-9)
	})

	t.Run("normalizes block corners", func(t *testing.T) {
		cfg := &config.TerrainConfig{
			Blocks: []config.BlockConfig{
				{Min: config.PointConfig{X: 5, Y: -1, Z: 9}, Max: config.PointConfig{X: 1, Y: 1, Z: 3}},
			},
		}

		terrain := LoadTerrain(cfg)

		b := terrain.Blocks[0]
		assert.Equal(t, mgl64.Vec3{1, -1, 3}, b.Min)
		assert.Equal(t, mgl64.Vec3{5, 1, 9}, b.Max)
	})

	t.Run("empty terrain", func(t *testing.T) {
		terrain := LoadTerrain(&config.TerrainConfig{})

		assert.Empty(t, terrain.Ramps)
		assert.Empty(t, terrain.Blocks)
	})

	t.Run("default sandbox has ground under spawn", func(t *testing.T) {
		terrain := LoadTerrain(&config.DefaultSandbox().Terrain)

		_, _, ok := terrain.GroundAt(terrain.Spawn.X(), terrain.Spawn.Z()+1)
		assert.True(t, ok)
	})
}
