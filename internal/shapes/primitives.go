package shapes

import (
	"math"

	"voxelforge/internal/world"
)

// rasterDisk stamps one y-level of a disk or ring. A filled disk keeps
// every column with distance <= r from the axis; a ring keeps the band
// [r-0.5, r+0.5].
func rasterDisk(out world.VoxelSet, cx, y, cz int, r float64, fill bool, m world.Material) {
	limit := int(math.Ceil(r)) + 1
	for dx := -limit; dx <= limit; dx++ {
		for dz := -limit; dz <= limit; dz++ {
			d := math.Hypot(float64(dx), float64(dz))
			if fill {
				if d > r {
					continue
				}
			} else if d < r-0.5 || d > r+0.5 {
				continue
			}
			out.Place(world.BlockCoord{X: cx + dx, Y: y, Z: cz + dz}, m)
		}
	}
}

func circle(center world.BlockCoord, radius int, fill bool, m world.Material) world.VoxelSet {
	out := make(world.VoxelSet)
	rasterDisk(out, center.X, center.Y, center.Z, float64(radius), fill, m)
	return out
}

func cylinder(center world.BlockCoord, radius, yMin, yMax int, hollow bool, m world.Material) world.VoxelSet {
	out := make(world.VoxelSet)
	for y := yMin; y <= yMax; y++ {
		rasterDisk(out, center.X, y, center.Z, float64(radius), !hollow, m)
	}
	return out
}

// cone tapers the per-level radius linearly from radius at the base to
// zero across the height range.
func cone(base world.BlockCoord, radius, height int, fill bool, m world.Material) world.VoxelSet {
	out := make(world.VoxelSet)
	for i := 0; i < height; i++ {
		level := float64(radius) * (1 - float64(i)/float64(height))
		rasterDisk(out, base.X, base.Y+i, base.Z, level, fill, m)
	}
	return out
}

// arch extrudes a half-ellipse profile along the given axis. The profile
// spans span columns, peaks height blocks above the base, and the curve
// carries thickness blocks of material beneath it.
func arch(base world.BlockCoord, axis Axis, span, height, length, thickness int, m world.Material) world.VoxelSet {
	out := make(world.VoxelSet)
	semi := float64(span-1) / 2
	for t := 0; t < span; t++ {
		u := (float64(t) - semi) / semi
		top := base.Y + int(math.Round(float64(height)*math.Sqrt(1-u*u)))
		bottom := top - thickness + 1
		if bottom < base.Y {
			bottom = base.Y
		}
		for y := bottom; y <= top; y++ {
			for l := 0; l < length; l++ {
				c := world.BlockCoord{X: base.X + t, Y: y, Z: base.Z + l}
				if axis == AxisX {
					c = world.BlockCoord{X: base.X + l, Y: y, Z: base.Z + t}
				}
				out.Place(c, m)
			}
		}
	}
	return out
}

// pitchedRoof builds two stair slopes rising toward a ridge row that runs
// along the given axis. Stair rows carry block variants facing their slope
// direction; with an odd column count the single center row becomes a
// top-half slab ridge.
func pitchedRoof(b world.Bounds, axis Axis, stair, slab world.Material) world.VoxelSet {
	out := make(world.VoxelSet)
	ridge := slab.WithProperty("type", "top").WithProperty("waterlogged", "false")
	variant := func(facing string) world.Material {
		return stair.
			WithProperty("facing", facing).
			WithProperty("half", "bottom").
			WithProperty("shape", "straight").
			WithProperty("waterlogged", "false")
	}

	if axis == AxisZ {
		half := (b.Max.X - b.Min.X) / 2
		for i := 0; i <= half; i++ {
			y := b.Min.Y + i
			for z := b.Min.Z; z <= b.Max.Z; z++ {
				if i == half && (b.Max.X-b.Min.X)%2 == 0 {
					out.Place(world.BlockCoord{X: b.Min.X + i, Y: y, Z: z}, ridge)
					continue
				}
				out.Place(world.BlockCoord{X: b.Min.X + i, Y: y, Z: z}, variant("east"))
				out.Place(world.BlockCoord{X: b.Max.X - i, Y: y, Z: z}, variant("west"))
			}
		}
		return out
	}

	half := (b.Max.Z - b.Min.Z) / 2
	for i := 0; i <= half; i++ {
		y := b.Min.Y + i
		for x := b.Min.X; x <= b.Max.X; x++ {
			if i == half && (b.Max.Z-b.Min.Z)%2 == 0 {
				out.Place(world.BlockCoord{X: x, Y: y, Z: b.Min.Z + i}, ridge)
				continue
			}
			out.Place(world.BlockCoord{X: x, Y: y, Z: b.Min.Z + i}, variant("south"))
			out.Place(world.BlockCoord{X: x, Y: y, Z: b.Max.Z - i}, variant("north"))
		}
	}
	return out
}

// box fills the bounds; hollow keeps every face block and excludes the
// strict interior.
func box(b world.Bounds, hollow bool, m world.Material) world.VoxelSet {
	out := make(world.VoxelSet)
	for x := b.Min.X; x <= b.Max.X; x++ {
		for y := b.Min.Y; y <= b.Max.Y; y++ {
			for z := b.Min.Z; z <= b.Max.Z; z++ {
				if hollow {
					interior := x > b.Min.X && x < b.Max.X &&
						y > b.Min.Y && y < b.Max.Y &&
						z > b.Min.Z && z < b.Max.Z
					if interior {
						continue
					}
				}
				out.Place(world.BlockCoord{X: x, Y: y, Z: z}, m)
			}
		}
	}
	return out
}
