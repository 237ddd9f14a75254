package terrain

import (
	"fmt"

	"voxelforge/internal/world"
)

// ObstacleGrid records per-column passability over the same domain as the
// height map it was derived from. Grids are built fresh per request and
// never cached; the source world may have changed between calls.
type ObstacleGrid struct {
	rect     world.Rect
	passable map[world.ColumnCoord]bool
}

func (g *ObstacleGrid) Rect() world.Rect { return g.rect }

func (g *ObstacleGrid) Contains(c world.ColumnCoord) bool {
	_, ok := g.passable[c]
	return ok
}

// Passable reports whether the column can be traversed. Columns outside
// the grid domain are impassable.
func (g *ObstacleGrid) Passable(c world.ColumnCoord) bool {
	return g.passable[c]
}

var steps4 = [4]world.ColumnCoord{{X: 1, Z: 0}, {X: -1, Z: 0}, {X: 0, Z: 1}, {X: 0, Z: -1}}

// BuildObstacles derives passability for every column of the height map.
// A column is impassable when its surface block classifies as structure or
// deep water, or when its elevation differs from any 4-neighbor by more
// than maxStep. Neighbors outside the map domain are ignored.
func BuildObstacles(hm *HeightMap, classify world.Classifier, maxStep int) (*ObstacleGrid, error) {
	grid := &ObstacleGrid{
		rect:     hm.Rect(),
		passable: make(map[world.ColumnCoord]bool, hm.Len()),
	}
	for c, y := range hm.cells {
		class, err := classify.Classify(c.At(y))
		if err != nil {
			return nil, fmt.Errorf("build obstacles at (%d,%d): %w", c.X, c.Z, err)
		}
		open := class == world.ClassOpen
		if open {
			for _, d := range steps4 {
				neighborY, ok := hm.At(world.ColumnCoord{X: c.X + d.X, Z: c.Z + d.Z})
				if !ok {
					continue
				}
				delta := neighborY - y
				if delta < 0 {
					delta = -delta
				}
				if delta > maxStep {
					open = false
					break
				}
			}
		}
		grid.passable[c] = open
	}
	return grid, nil
}
