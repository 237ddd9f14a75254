package terrain

import (
	"fmt"
	"math"

	"voxelforge/internal/world"
)

// Sculptor computes fill/clear voxel operations that reshape terrain. It
// only produces voxel sets; writing them to the world is the caller's job,
// so a failed computation never leaves a half-applied edit.
type Sculptor struct {
	scanner  *Scanner
	store    world.BlockStore
	classify world.Classifier
	fill     world.Material
}

func NewSculptor(scanner *Scanner, store world.BlockStore, classify world.Classifier, fill world.Material) *Sculptor {
	return &Sculptor{
		scanner:  scanner,
		store:    store,
		classify: classify,
		fill:     fill,
	}
}

// Flatten levels every column of rect to targetY: columns above the target
// are cleared down to it, columns below are filled up to it. A positive
// blendRadius additionally ramps columns outside the rect from the target
// elevation at the boundary to their original elevation at blendRadius
// distance, avoiding a vertical seam.
func (s *Sculptor) Flatten(rect world.Rect, targetY, blendRadius int) (world.VoxelSet, error) {
	if blendRadius < 0 {
		return nil, fmt.Errorf("blend radius must not be negative, got %d", blendRadius)
	}
	outer := rect.Expand(blendRadius)
	hm, err := s.scanner.ScanRect(outer, ScanSurface)
	if err != nil {
		return nil, err
	}

	ops := make(world.VoxelSet)
	var opErr error
	outer.ForEach(func(c world.ColumnCoord) bool {
		height, ok := hm.At(c)
		if !ok {
			opErr = fmt.Errorf("column (%d,%d) missing from scan", c.X, c.Z)
			return false
		}
		goal := blendTarget(rect.Distance(c), blendRadius, targetY, height)
		for y := goal + 1; y <= height; y++ {
			ops.Place(c.At(y), world.Air())
		}
		for y := height + 1; y <= goal; y++ {
			ops.Place(c.At(y), s.fill)
		}
		return true
	})
	if opErr != nil {
		return nil, opErr
	}
	return ops, nil
}

// blendTarget interpolates the goal elevation for a column at the given
// distance outside the flattened rect. Fractional heights round toward the
// original terrain so the transition stays visually continuous.
func blendTarget(distance, blendRadius, targetY, original int) int {
	if distance == 0 {
		return targetY
	}
	if distance >= blendRadius {
		return original
	}
	fraction := float64(distance) / float64(blendRadius)
	raw := float64(targetY) + (float64(original)-float64(targetY))*fraction
	if original > targetY {
		return int(math.Ceil(raw))
	}
	return int(math.Floor(raw))
}

// ClearVegetation schedules air for every vegetation block above ground
// height in rect, leaving the terrain below untouched.
func (s *Sculptor) ClearVegetation(rect world.Rect) (world.VoxelSet, error) {
	ground, err := s.scanner.ScanRect(rect, ScanGround)
	if err != nil {
		return nil, err
	}
	surface, err := s.scanner.ScanRect(rect, ScanSurface)
	if err != nil {
		return nil, err
	}

	ops := make(world.VoxelSet)
	var opErr error
	rect.ForEach(func(c world.ColumnCoord) bool {
		groundY, _ := ground.At(c)
		surfaceY, _ := surface.At(c)
		for y := groundY + 1; y <= surfaceY; y++ {
			material, err := s.store.Block(c.At(y))
			if err != nil {
				opErr = fmt.Errorf("clear vegetation at (%d,%d): %w", c.X, c.Z, err)
				return false
			}
			if s.classify.IsVegetation(material) {
				ops.Place(c.At(y), world.Air())
			}
		}
		return true
	})
	if opErr != nil {
		return nil, opErr
	}
	return ops, nil
}
