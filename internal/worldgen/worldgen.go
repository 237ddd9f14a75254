// Package worldgen seeds a block store with repeatable value-noise
// terrain: layered soil, water below sea level, and scattered trees. It
// exists to create demo and fixture worlds; the engine itself never
// generates terrain.
package worldgen

import (
	"fmt"
	"math"

	"voxelforge/internal/world"
)

type Config struct {
	Seed        int64
	Frequency   float64
	Octaves     int
	Persistence float64
	Lacunarity  float64
	BaseHeight  int
	Amplitude   int
	SeaLevel    int
	// TreeChance is the per-column planting probability in [0,1].
	TreeChance float64
}

func DefaultConfig() Config {
	return Config{
		Seed:        1337,
		Frequency:   0.02,
		Octaves:     4,
		Persistence: 0.45,
		Lacunarity:  2.0,
		BaseHeight:  64,
		Amplitude:   12,
		SeaLevel:    60,
		TreeChance:  0.02,
	}
}

// Generate fills every column of rect with terrain derived from the
// configured noise field. The target regions must already be resident.
func Generate(store world.BlockStore, rect world.Rect, cfg Config) error {
	var (
		grass = world.NewMaterial("grass_block")
		dirt  = world.NewMaterial("dirt")
		stone = world.NewMaterial("stone")
		sand  = world.NewMaterial("sand")
		water = world.NewMaterial("water")
	)

	var genErr error
	rect.ForEach(func(c world.ColumnCoord) bool {
		noise := fractalNoise(float64(c.X), float64(c.Z), cfg)
		surface := cfg.BaseHeight + int(noise*float64(cfg.Amplitude))

		layers := []struct {
			y0, y1 int
			m      world.Material
		}{
			{surface - 6, surface - 3, stone},
			{surface - 2, surface - 1, dirt},
			{surface, surface, grass},
		}
		if surface <= cfg.SeaLevel {
			layers[2].m = sand
		}
		for _, layer := range layers {
			for y := layer.y0; y <= layer.y1; y++ {
				if err := store.SetBlock(c.At(y), layer.m); err != nil {
					genErr = fmt.Errorf("generate column (%d,%d): %w", c.X, c.Z, err)
					return false
				}
			}
		}
		for y := surface + 1; y <= cfg.SeaLevel; y++ {
			if err := store.SetBlock(c.At(y), water); err != nil {
				genErr = fmt.Errorf("generate column (%d,%d): %w", c.X, c.Z, err)
				return false
			}
		}

		if surface > cfg.SeaLevel && treeRoll(c, cfg.Seed) < cfg.TreeChance {
			if err := plantTree(store, c, surface, rect); err != nil {
				genErr = err
				return false
			}
		}
		return true
	})
	return genErr
}

// plantTree places a small oak: a four-block trunk with a canopy blob.
// Canopy blocks falling outside the generated rect are skipped.
func plantTree(store world.BlockStore, c world.ColumnCoord, surface int, rect world.Rect) error {
	trunk := world.NewMaterial("oak_log").WithProperty("axis", "y")
	leaves := world.NewMaterial("oak_leaves").WithProperty("persistent", "false")

	const trunkHeight = 4
	for y := surface + 1; y <= surface+trunkHeight; y++ {
		if err := store.SetBlock(c.At(y), trunk); err != nil {
			return fmt.Errorf("plant trunk at (%d,%d): %w", c.X, c.Z, err)
		}
	}
	canopyBase := surface + trunkHeight
	for dy := 0; dy <= 2; dy++ {
		radius := 2 - dy
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				col := world.ColumnCoord{X: c.X + dx, Z: c.Z + dz}
				if !rect.Contains(col) {
					continue
				}
				if dx == 0 && dz == 0 && dy == 0 {
					continue
				}
				if err := store.SetBlock(col.At(canopyBase+dy), leaves); err != nil {
					return fmt.Errorf("plant canopy at (%d,%d): %w", col.X, col.Z, err)
				}
			}
		}
	}
	return nil
}

func fractalNoise(x, z float64, cfg Config) float64 {
	frequency := cfg.Frequency
	amplitude := 1.0
	noiseSum := 0.0
	maxAmplitude := 0.0

	for i := 0; i < cfg.Octaves; i++ {
		noiseSum += valueNoise(x*frequency, z*frequency, cfg.Seed) * amplitude
		maxAmplitude += amplitude
		amplitude *= cfg.Persistence
		frequency *= cfg.Lacunarity
	}
	if maxAmplitude == 0 {
		return 0
	}
	return noiseSum / maxAmplitude
}

func valueNoise(x, z float64, seed int64) float64 {
	x0 := int(math.Floor(x))
	z0 := int(math.Floor(z))
	x1 := x0 + 1
	z1 := z0 + 1

	sx := smooth(x - float64(x0))
	sz := smooth(z - float64(z0))

	ix0 := lerp(random2D(x0, z0, seed), random2D(x1, z0, seed), sx)
	ix1 := lerp(random2D(x0, z1, seed), random2D(x1, z1, seed), sx)
	return lerp(ix0, ix1, sz)
}

func smooth(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func random2D(x, z int, seed int64) float64 {
	return float64(hash3(x, z, int(seed))&0xFFFF)/0x8000 - 1.0
}

func treeRoll(c world.ColumnCoord, seed int64) float64 {
	return float64(hash3(c.X, c.Z, int(seed)+0x5f3759)&0xFFFF) / 0x10000
}

func hash3(x, y, s int) uint32 {
	h := uint32(2166136261)
	for _, v := range [3]int{x, y, s} {
		h ^= uint32(v)
		h *= 16777619
		h ^= h >> 13
	}
	h ^= h << 7
	h ^= h >> 17
	return h
}
