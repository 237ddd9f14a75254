package world

import "sort"

// BlockCoord describes a block position in global block space. Y is elevation.
type BlockCoord struct {
	X int
	Y int
	Z int
}

// ColumnCoord addresses a vertical column of blocks by its horizontal position.
type ColumnCoord struct {
	X int
	Z int
}

// Column returns the column containing the block.
func (c BlockCoord) Column() ColumnCoord {
	return ColumnCoord{X: c.X, Z: c.Z}
}

// At places the column at the given elevation.
func (c ColumnCoord) At(y int) BlockCoord {
	return BlockCoord{X: c.X, Y: y, Z: c.Z}
}

// Rect is an inclusive axis-aligned rectangle of columns. A rect with
// MinX > MaxX or MinZ > MaxZ is empty.
type Rect struct {
	MinX int
	MaxX int
	MinZ int
	MaxZ int
}

// NewRect builds a rect from two opposite corners in any order.
func NewRect(a, b ColumnCoord) Rect {
	r := Rect{MinX: a.X, MaxX: b.X, MinZ: a.Z, MaxZ: b.Z}
	if r.MinX > r.MaxX {
		r.MinX, r.MaxX = r.MaxX, r.MinX
	}
	if r.MinZ > r.MaxZ {
		r.MinZ, r.MaxZ = r.MaxZ, r.MinZ
	}
	return r
}

// RectAround returns the square of side 2*radius+1 centered on c. A negative
// radius yields an empty rect.
func RectAround(c ColumnCoord, radius int) Rect {
	if radius < 0 {
		return Rect{MinX: 1, MaxX: 0, MinZ: 1, MaxZ: 0}
	}
	return Rect{
		MinX: c.X - radius,
		MaxX: c.X + radius,
		MinZ: c.Z - radius,
		MaxZ: c.Z + radius,
	}
}

func (r Rect) Empty() bool {
	return r.MinX > r.MaxX || r.MinZ > r.MaxZ
}

func (r Rect) Contains(c ColumnCoord) bool {
	return c.X >= r.MinX && c.X <= r.MaxX && c.Z >= r.MinZ && c.Z <= r.MaxZ
}

// Columns returns the number of columns covered by the rect.
func (r Rect) Columns() int {
	if r.Empty() {
		return 0
	}
	return (r.MaxX - r.MinX + 1) * (r.MaxZ - r.MinZ + 1)
}

// Expand grows the rect by n columns on every side.
func (r Rect) Expand(n int) Rect {
	if r.Empty() {
		return r
	}
	return Rect{MinX: r.MinX - n, MaxX: r.MaxX + n, MinZ: r.MinZ - n, MaxZ: r.MaxZ + n}
}

// Distance returns the Chebyshev distance from c to the rect boundary,
// zero for columns inside the rect.
func (r Rect) Distance(c ColumnCoord) int {
	dx := 0
	if c.X < r.MinX {
		dx = r.MinX - c.X
	} else if c.X > r.MaxX {
		dx = c.X - r.MaxX
	}
	dz := 0
	if c.Z < r.MinZ {
		dz = r.MinZ - c.Z
	} else if c.Z > r.MaxZ {
		dz = c.Z - r.MaxZ
	}
	if dx > dz {
		return dx
	}
	return dz
}

// ForEach visits every column of the rect in row-major order.
func (r Rect) ForEach(fn func(ColumnCoord) bool) {
	for z := r.MinZ; z <= r.MaxZ; z++ {
		for x := r.MinX; x <= r.MaxX; x++ {
			if !fn(ColumnCoord{X: x, Z: z}) {
				return
			}
		}
	}
}

// Bounds is an inclusive axis-aligned box in block space.
type Bounds struct {
	Min BlockCoord
	Max BlockCoord
}

// NewBounds builds a box from two opposite corners in any order.
func NewBounds(a, b BlockCoord) Bounds {
	bb := Bounds{Min: a, Max: b}
	if bb.Min.X > bb.Max.X {
		bb.Min.X, bb.Max.X = bb.Max.X, bb.Min.X
	}
	if bb.Min.Y > bb.Max.Y {
		bb.Min.Y, bb.Max.Y = bb.Max.Y, bb.Min.Y
	}
	if bb.Min.Z > bb.Max.Z {
		bb.Min.Z, bb.Max.Z = bb.Max.Z, bb.Min.Z
	}
	return bb
}

func (b Bounds) Contains(c BlockCoord) bool {
	return c.X >= b.Min.X && c.X <= b.Max.X &&
		c.Y >= b.Min.Y && c.Y <= b.Max.Y &&
		c.Z >= b.Min.Z && c.Z <= b.Max.Z
}

// Material identifies a block kind together with its property state.
type Material struct {
	Name       string
	Properties map[string]string
}

const airName = "air"

// Air returns the empty-space material.
func Air() Material {
	return Material{Name: airName}
}

func NewMaterial(name string) Material {
	return Material{Name: name}
}

// WithProperty returns a copy of the material carrying the extra property.
func (m Material) WithProperty(key, value string) Material {
	dup := m.Clone()
	if dup.Properties == nil {
		dup.Properties = make(map[string]string, 1)
	}
	dup.Properties[key] = value
	return dup
}

func (m Material) IsAir() bool {
	return m.Name == "" || m.Name == airName
}

// Clone copies the material including its property map.
func (m Material) Clone() Material {
	dup := Material{Name: m.Name}
	if m.Properties != nil {
		dup.Properties = make(map[string]string, len(m.Properties))
		for k, v := range m.Properties {
			dup.Properties[k] = v
		}
	}
	return dup
}

// Equal compares name and full property state.
func (m Material) Equal(other Material) bool {
	if m.Name != other.Name || len(m.Properties) != len(other.Properties) {
		return false
	}
	for k, v := range m.Properties {
		if other.Properties[k] != v {
			return false
		}
	}
	return true
}

// VoxelSet maps block coordinates to the material scheduled for them.
// Later writes to the same coordinate win.
type VoxelSet map[BlockCoord]Material

func (s VoxelSet) Place(c BlockCoord, m Material) {
	s[c] = m
}

// Merge copies every entry of other into s, overwriting collisions.
func (s VoxelSet) Merge(other VoxelSet) {
	for c, m := range other {
		s[c] = m
	}
}

// SortedCoords returns the coordinates in deterministic (y, z, x) order.
func (s VoxelSet) SortedCoords() []BlockCoord {
	coords := make([]BlockCoord, 0, len(s))
	for c := range s {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		if coords[i].Z != coords[j].Z {
			return coords[i].Z < coords[j].Z
		}
		return coords[i].X < coords[j].X
	})
	return coords
}
