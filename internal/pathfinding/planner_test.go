package pathfinding

import (
	"errors"
	"reflect"
	"testing"

	"voxelforge/internal/config"
	"voxelforge/internal/terrain"
	"voxelforge/internal/world"
)

// flatWorld builds a resident store with grass at surfaceY everywhere.
func flatWorld(t *testing.T, resident world.Rect, surfaceY int) *world.MemoryStore {
	t.Helper()
	store := world.NewMemoryStore(resident)
	grass := world.NewMaterial("grass_block")
	var fillErr error
	resident.ForEach(func(c world.ColumnCoord) bool {
		if err := store.SetBlock(c.At(surfaceY), grass); err != nil {
			fillErr = err
			return false
		}
		return true
	})
	if fillErr != nil {
		t.Fatalf("build flat world: %v", fillErr)
	}
	return store
}

// scanFixture derives the height map and obstacle grid for the rect.
func scanFixture(t *testing.T, store *world.MemoryStore, rect world.Rect) (*terrain.HeightMap, *terrain.ObstacleGrid) {
	t.Helper()
	cfg := config.Default()
	classify := world.NewCatalogClassifier(store, cfg.Materials)
	scanner := terrain.NewScanner(store, classify, cfg.Scanner)

	hm, err := scanner.ScanRect(rect, terrain.ScanGround)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	grid, err := terrain.BuildObstacles(hm, classify, cfg.Pathfinding.MaxStep)
	if err != nil {
		t.Fatalf("build obstacles: %v", err)
	}
	return hm, grid
}

func testPlanner() *Planner {
	return NewPlanner(config.Default().Pathfinding)
}

func TestPlanStraightRoute(t *testing.T) {
	rect := world.RectAround(world.ColumnCoord{}, 5)
	store := flatWorld(t, rect, 64)
	hm, grid := scanFixture(t, store, rect)

	start := world.ColumnCoord{X: -4, Z: 0}
	end := world.ColumnCoord{X: 4, Z: 0}
	path, err := testPlanner().Plan(start, end, grid, hm, 1)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	// On open flat ground the optimal route is the straight line: 9 cells.
	if len(path) != 9 {
		t.Fatalf("expected 9 cells, got %d: %v", len(path), path)
	}
	if path[0] != start.At(65) {
		t.Fatalf("path should start at %v, got %v", start.At(65), path[0])
	}
	if path[len(path)-1] != end.At(65) {
		t.Fatalf("path should end at %v, got %v", end.At(65), path[len(path)-1])
	}
	for _, c := range path {
		if c.Z != 0 {
			t.Fatalf("straight route should not deviate, got %v", c)
		}
		if c.Y != 65 {
			t.Fatalf("route should sit one block above the surface, got %v", c)
		}
	}
}

func TestPlanDiagonalRouteUsesDiagonalSteps(t *testing.T) {
	rect := world.RectAround(world.ColumnCoord{}, 5)
	store := flatWorld(t, rect, 64)
	hm, grid := scanFixture(t, store, rect)

	path, err := testPlanner().Plan(world.ColumnCoord{X: -3, Z: -3}, world.ColumnCoord{X: 3, Z: 3}, grid, hm, 1)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	// Pure diagonal: 6 moves, 7 cells.
	if len(path) != 7 {
		t.Fatalf("expected 7 cells on the diagonal, got %d: %v", len(path), path)
	}
}

func TestPlanRoutesAroundWall(t *testing.T) {
	rect := world.RectAround(world.ColumnCoord{}, 4)
	store := flatWorld(t, rect, 64)
	// Wall across x=0, leaving a gap at the south edge.
	for z := -4; z <= 3; z++ {
		if err := store.SetBlock(world.BlockCoord{X: 0, Y: 64, Z: z}, world.NewMaterial("cobblestone")); err != nil {
			t.Fatalf("place wall: %v", err)
		}
	}
	hm, grid := scanFixture(t, store, rect)

	path, err := testPlanner().Plan(world.ColumnCoord{X: -3, Z: 0}, world.ColumnCoord{X: 3, Z: 0}, grid, hm, 1)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	crossedGap := false
	for _, c := range path {
		if c.X == 0 {
			if c.Z != 4 {
				t.Fatalf("route must cross the wall line at the gap, crossed at %v", c)
			}
			crossedGap = true
		}
	}
	if !crossedGap {
		t.Fatalf("route never crossed the wall line: %v", path)
	}
}

func TestPlanNoRouteThroughClosedWall(t *testing.T) {
	rect := world.RectAround(world.ColumnCoord{}, 4)
	store := flatWorld(t, rect, 64)
	for z := -4; z <= 4; z++ {
		if err := store.SetBlock(world.BlockCoord{X: 0, Y: 64, Z: z}, world.NewMaterial("cobblestone")); err != nil {
			t.Fatalf("place wall: %v", err)
		}
	}
	hm, grid := scanFixture(t, store, rect)

	_, err := testPlanner().Plan(world.ColumnCoord{X: -3, Z: 0}, world.ColumnCoord{X: 3, Z: 0}, grid, hm, 1)
	if !errors.Is(err, ErrNoPath) {
		t.Fatalf("expected ErrNoPath, got %v", err)
	}
}

func TestPlanRejectsEndpointsOutsideGrid(t *testing.T) {
	rect := world.RectAround(world.ColumnCoord{}, 3)
	store := flatWorld(t, rect, 64)
	hm, grid := scanFixture(t, store, rect)

	_, err := testPlanner().Plan(world.ColumnCoord{X: 0, Z: 0}, world.ColumnCoord{X: 9, Z: 0}, grid, hm, 1)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds for end outside the grid, got %v", err)
	}
	_, err = testPlanner().Plan(world.ColumnCoord{X: -9, Z: 0}, world.ColumnCoord{X: 0, Z: 0}, grid, hm, 1)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds for start outside the grid, got %v", err)
	}
}

func TestPlanRejectsBlockedEndpoints(t *testing.T) {
	rect := world.RectAround(world.ColumnCoord{}, 3)
	store := flatWorld(t, rect, 64)
	blocked := world.ColumnCoord{X: 2, Z: 0}
	if err := store.SetBlock(blocked.At(64), world.NewMaterial("cobblestone")); err != nil {
		t.Fatalf("place structure: %v", err)
	}
	hm, grid := scanFixture(t, store, rect)

	open := world.ColumnCoord{X: -2, Z: 0}
	if _, err := testPlanner().Plan(blocked, open, grid, hm, 1); !errors.Is(err, ErrNoPath) {
		t.Fatalf("expected ErrNoPath for a blocked start, got %v", err)
	}
	if _, err := testPlanner().Plan(open, blocked, grid, hm, 1); !errors.Is(err, ErrNoPath) {
		t.Fatalf("expected ErrNoPath for a blocked end, got %v", err)
	}
}

func TestPlanRejectsNonPositiveWidth(t *testing.T) {
	rect := world.RectAround(world.ColumnCoord{}, 2)
	store := flatWorld(t, rect, 64)
	hm, grid := scanFixture(t, store, rect)

	if _, err := testPlanner().Plan(world.ColumnCoord{}, world.ColumnCoord{X: 1, Z: 0}, grid, hm, 0); err == nil {
		t.Fatalf("expected error for zero width")
	}
}

func TestPlanSlopePenaltyAvoidsRidge(t *testing.T) {
	rect := world.NewRect(world.ColumnCoord{X: -3, Z: -1}, world.ColumnCoord{X: 3, Z: 1})
	store := flatWorld(t, rect, 64)
	// One-block ridge at the midpoint of the direct route: traversable, but
	// the climb costs more than a diagonal detour.
	if err := store.SetBlock(world.BlockCoord{X: 0, Y: 65, Z: 0}, world.NewMaterial("grass_block")); err != nil {
		t.Fatalf("raise ridge: %v", err)
	}
	hm, grid := scanFixture(t, store, rect)

	path, err := testPlanner().Plan(world.ColumnCoord{X: -3, Z: 0}, world.ColumnCoord{X: 3, Z: 0}, grid, hm, 1)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	for _, c := range path {
		if c.X == 0 && c.Z == 0 {
			t.Fatalf("route should detour around the ridge, got %v", path)
		}
	}
}

func TestPlanWidthExpandsLaterally(t *testing.T) {
	rect := world.RectAround(world.ColumnCoord{}, 5)
	store := flatWorld(t, rect, 64)
	hm, grid := scanFixture(t, store, rect)

	start := world.ColumnCoord{X: -4, Z: 0}
	end := world.ColumnCoord{X: 4, Z: 0}
	path, err := testPlanner().Plan(start, end, grid, hm, 3)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	// 9 centerline cells plus one cell on each side of every one of them.
	if len(path) != 27 {
		t.Fatalf("expected 27 cells for width 3, got %d", len(path))
	}
	if path[0] != start.At(65) {
		t.Fatalf("widened path should still start at %v, got %v", start.At(65), path[0])
	}

	cells := make(map[world.ColumnCoord]bool, len(path))
	for _, c := range path {
		cells[c.Column()] = true
	}
	for x := -4; x <= 4; x++ {
		for z := -1; z <= 1; z++ {
			if !cells[world.ColumnCoord{X: x, Z: z}] {
				t.Fatalf("expected widened route to cover (%d,%d)", x, z)
			}
		}
	}
}

func TestPlanWidthTruncatesAtGridEdge(t *testing.T) {
	rect := world.NewRect(world.ColumnCoord{X: -4, Z: 0}, world.ColumnCoord{X: 4, Z: 0})
	store := flatWorld(t, rect, 64)
	hm, grid := scanFixture(t, store, rect)

	// A single-row grid leaves no room for lateral expansion.
	path, err := testPlanner().Plan(world.ColumnCoord{X: -4, Z: 0}, world.ColumnCoord{X: 4, Z: 0}, grid, hm, 3)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(path) != 9 {
		t.Fatalf("expected the width to truncate at the grid edge, got %d cells", len(path))
	}
}

func TestPlanIsDeterministic(t *testing.T) {
	rect := world.RectAround(world.ColumnCoord{}, 5)
	store := flatWorld(t, rect, 64)
	hm, grid := scanFixture(t, store, rect)

	start := world.ColumnCoord{X: -4, Z: -4}
	end := world.ColumnCoord{X: 4, Z: 2}
	first, err := testPlanner().Plan(start, end, grid, hm, 2)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := testPlanner().Plan(start, end, grid, hm, 2)
		if err != nil {
			t.Fatalf("replan: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("identical inputs should reproduce the same path:\nfirst %v\nagain %v", first, again)
		}
	}
}
