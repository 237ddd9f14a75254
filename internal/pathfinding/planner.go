package pathfinding

import (
	"container/heap"
	"errors"
	"fmt"
	"math"

	"voxelforge/internal/config"
	"voxelforge/internal/terrain"
	"voxelforge/internal/world"
)

// ErrNoPath reports an exhausted search frontier. Recoverable: retry with a
// larger scan radius or a smaller width.
var ErrNoPath = errors.New("no path found")

// ErrOutOfBounds reports an endpoint outside the scanned grid domain. The
// search never starts; the planner does not implicitly expand its bounds.
var ErrOutOfBounds = errors.New("endpoint outside scanned area")

// Path is an ordered route through block space. Its (x,z) pairs are unique
// and stay inside the obstacle grid the route was planned on.
type Path []world.BlockCoord

// Planner performs terrain-following A* search over an obstacle grid.
type Planner struct {
	slopePenalty float64
	clearance    int
}

func NewPlanner(cfg config.PathfindingConfig) *Planner {
	return &Planner{
		slopePenalty: cfg.SlopePenalty,
		clearance:    cfg.Clearance,
	}
}

var steps8 = [8]world.ColumnCoord{
	{X: 1, Z: 0}, {X: -1, Z: 0}, {X: 0, Z: 1}, {X: 0, Z: -1},
	{X: 1, Z: 1}, {X: 1, Z: -1}, {X: -1, Z: 1}, {X: -1, Z: -1},
}

// Plan searches for a route from start to end, widens it, and lifts it to
// 3D using the height map's elevations plus the configured clearance.
//
// Move cost is 1 orthogonal, sqrt(2) diagonal, plus slopePenalty per block
// of elevation change. The heuristic is plain Euclidean distance and
// excludes the slope penalty: it stays admissible for the distance
// component, and the penalty trades strict optimality for gentler routes.
// Equal-priority frontier nodes expand in enqueue order, so identical
// inputs always reproduce the same path.
func (p *Planner) Plan(start, end world.ColumnCoord, grid *terrain.ObstacleGrid, hm *terrain.HeightMap, width int) (Path, error) {
	if width < 1 {
		return nil, fmt.Errorf("path width must be at least 1, got %d", width)
	}
	if !grid.Contains(start) {
		return nil, fmt.Errorf("start (%d,%d): %w", start.X, start.Z, ErrOutOfBounds)
	}
	if !grid.Contains(end) {
		return nil, fmt.Errorf("end (%d,%d): %w", end.X, end.Z, ErrOutOfBounds)
	}
	// A route may not begin or end on a blocked column; the search would
	// otherwise happily pass through an impassable start.
	if !grid.Passable(start) {
		return nil, fmt.Errorf("start (%d,%d) is blocked: %w", start.X, start.Z, ErrNoPath)
	}
	if !grid.Passable(end) {
		return nil, fmt.Errorf("end (%d,%d) is blocked: %w", end.X, end.Z, ErrNoPath)
	}

	centerline, err := p.search(start, end, grid, hm)
	if err != nil {
		return nil, err
	}
	return p.lift(p.widen(centerline, width, grid), hm), nil
}

func (p *Planner) search(start, end world.ColumnCoord, grid *terrain.ObstacleGrid, hm *terrain.HeightMap) ([]world.ColumnCoord, error) {
	open := &nodeQueue{}
	heap.Init(open)
	seq := 0
	heap.Push(open, &node{coord: start, seq: seq})

	cameFrom := map[world.ColumnCoord]world.ColumnCoord{}
	gScore := map[world.ColumnCoord]float64{start: 0}

	for open.Len() > 0 {
		current := heap.Pop(open).(*node)
		if current.coord == end {
			return reconstruct(cameFrom, current.coord), nil
		}

		currentY, _ := hm.At(current.coord)
		for _, d := range steps8 {
			neighbor := world.ColumnCoord{X: current.coord.X + d.X, Z: current.coord.Z + d.Z}
			if !grid.Passable(neighbor) {
				continue
			}
			neighborY, _ := hm.At(neighbor)
			stepCost := 1.0
			if d.X != 0 && d.Z != 0 {
				stepCost = math.Sqrt2
			}
			stepCost += p.slopePenalty * math.Abs(float64(neighborY-currentY))

			tentative := gScore[current.coord] + stepCost
			if known, ok := gScore[neighbor]; ok && tentative >= known {
				continue
			}
			cameFrom[neighbor] = current.coord
			gScore[neighbor] = tentative
			seq++
			heap.Push(open, &node{
				coord:    neighbor,
				priority: tentative + euclidean(neighbor, end),
				seq:      seq,
			})
		}
	}
	return nil, fmt.Errorf("route (%d,%d) -> (%d,%d): %w", start.X, start.Z, end.X, end.Z, ErrNoPath)
}

func euclidean(a, b world.ColumnCoord) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Z-b.Z))
}

func reconstruct(cameFrom map[world.ColumnCoord]world.ColumnCoord, current world.ColumnCoord) []world.ColumnCoord {
	path := []world.ColumnCoord{current}
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// widenedCell pairs a route column with the centerline column whose
// elevation it inherits.
type widenedCell struct {
	coord  world.ColumnCoord
	source world.ColumnCoord
}

// widen projects floor((width-1)/2) cells to each side of every centerline
// cell, perpendicular to the local path direction. Projection is a direct
// lateral copy, not a second search; cells beyond the grid boundary are
// truncated. Each widened cell keeps its centerline cell's elevation.
func (p *Planner) widen(centerline []world.ColumnCoord, width int, grid *terrain.ObstacleGrid) []widenedCell {
	cells := make([]widenedCell, 0, len(centerline)*width)
	seen := make(map[world.ColumnCoord]struct{}, len(centerline)*width)
	onCenterline := make(map[world.ColumnCoord]struct{}, len(centerline))
	for _, c := range centerline {
		onCenterline[c] = struct{}{}
	}
	add := func(c, source world.ColumnCoord) {
		if _, dup := seen[c]; dup {
			return
		}
		// Centerline cells keep their own slot in path order.
		if _, center := onCenterline[c]; center && c != source {
			return
		}
		if !grid.Contains(c) {
			return
		}
		seen[c] = struct{}{}
		cells = append(cells, widenedCell{coord: c, source: source})
	}

	half := (width - 1) / 2
	for i, c := range centerline {
		add(c, c)
		if half == 0 {
			continue
		}
		dir := localDirection(centerline, i)
		perp := world.ColumnCoord{X: -dir.Z, Z: dir.X}
		if perp.X == 0 && perp.Z == 0 {
			continue
		}
		for k := 1; k <= half; k++ {
			add(world.ColumnCoord{X: c.X + k*perp.X, Z: c.Z + k*perp.Z}, c)
			add(world.ColumnCoord{X: c.X - k*perp.X, Z: c.Z - k*perp.Z}, c)
		}
	}
	return cells
}

// localDirection estimates the path direction at index i from the
// surrounding cells, collapsed to unit steps per axis.
func localDirection(path []world.ColumnCoord, i int) world.ColumnCoord {
	prev := path[i]
	next := path[i]
	if i > 0 {
		prev = path[i-1]
	}
	if i < len(path)-1 {
		next = path[i+1]
	}
	return world.ColumnCoord{X: sign(next.X - prev.X), Z: sign(next.Z - prev.Z)}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// lift raises the widened route to 3D, each point at its source column's
// terrain elevation plus the clearance offset.
func (p *Planner) lift(cells []widenedCell, hm *terrain.HeightMap) Path {
	path := make(Path, 0, len(cells))
	for _, cell := range cells {
		y, _ := hm.At(cell.source)
		path = append(path, cell.coord.At(y+p.clearance))
	}
	return path
}

type node struct {
	coord    world.ColumnCoord
	priority float64
	seq      int
	index    int
}

type nodeQueue []*node

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	// Earliest enqueued wins ties for reproducible output.
	return q[i].seq < q[j].seq
}

func (q nodeQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *nodeQueue) Push(x any) {
	item := x.(*node)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}
