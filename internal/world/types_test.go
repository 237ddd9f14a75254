package world

import (
	"reflect"
	"testing"
)

func TestNewRectNormalizesCorners(t *testing.T) {
	r := NewRect(ColumnCoord{X: 5, Z: -2}, ColumnCoord{X: -3, Z: 4})
	want := Rect{MinX: -3, MaxX: 5, MinZ: -2, MaxZ: 4}
	if r != want {
		t.Fatalf("expected %+v, got %+v", want, r)
	}
	if r.Columns() != 9*7 {
		t.Fatalf("expected %d columns, got %d", 9*7, r.Columns())
	}
}

func TestRectAround(t *testing.T) {
	r := RectAround(ColumnCoord{X: 10, Z: -10}, 2)
	if r.Columns() != 25 {
		t.Fatalf("expected 25 columns, got %d", r.Columns())
	}
	if !r.Contains(ColumnCoord{X: 12, Z: -12}) {
		t.Fatalf("expected corner column to be contained")
	}
	if r.Contains(ColumnCoord{X: 13, Z: -10}) {
		t.Fatalf("column outside the radius should not be contained")
	}

	empty := RectAround(ColumnCoord{}, -1)
	if !empty.Empty() || empty.Columns() != 0 {
		t.Fatalf("negative radius should yield an empty rect, got %+v", empty)
	}
}

func TestRectDistance(t *testing.T) {
	r := NewRect(ColumnCoord{X: 0, Z: 0}, ColumnCoord{X: 4, Z: 4})
	tests := []struct {
		name string
		c    ColumnCoord
		want int
	}{
		{"inside", ColumnCoord{X: 2, Z: 2}, 0},
		{"on boundary", ColumnCoord{X: 0, Z: 4}, 0},
		{"one east", ColumnCoord{X: 5, Z: 2}, 1},
		{"diagonal corner", ColumnCoord{X: 7, Z: 7}, 3},
		{"far north", ColumnCoord{X: 2, Z: -6}, 6},
	}
	for _, tc := range tests {
		if got := r.Distance(tc.c); got != tc.want {
			t.Errorf("%s: expected distance %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestRectForEachRowMajor(t *testing.T) {
	r := NewRect(ColumnCoord{X: 0, Z: 0}, ColumnCoord{X: 1, Z: 1})
	var visited []ColumnCoord
	r.ForEach(func(c ColumnCoord) bool {
		visited = append(visited, c)
		return true
	})
	want := []ColumnCoord{{X: 0, Z: 0}, {X: 1, Z: 0}, {X: 0, Z: 1}, {X: 1, Z: 1}}
	if !reflect.DeepEqual(visited, want) {
		t.Fatalf("expected row-major order %v, got %v", want, visited)
	}
}

func TestNewBoundsNormalizesPerAxis(t *testing.T) {
	b := NewBounds(BlockCoord{X: 3, Y: -1, Z: 7}, BlockCoord{X: -3, Y: 5, Z: 2})
	if b.Min != (BlockCoord{X: -3, Y: -1, Z: 2}) || b.Max != (BlockCoord{X: 3, Y: 5, Z: 7}) {
		t.Fatalf("unexpected bounds %+v", b)
	}
	if !b.Contains(BlockCoord{X: 0, Y: 0, Z: 5}) {
		t.Fatalf("expected interior point to be contained")
	}
	if b.Contains(BlockCoord{X: 0, Y: 6, Z: 5}) {
		t.Fatalf("point above the box should not be contained")
	}
}

func TestMaterialWithPropertyDoesNotMutateOriginal(t *testing.T) {
	base := NewMaterial("oak_stairs").WithProperty("facing", "east")
	derived := base.WithProperty("half", "top")

	if _, ok := base.Properties["half"]; ok {
		t.Fatalf("WithProperty should copy, original gained property: %v", base.Properties)
	}
	if derived.Properties["facing"] != "east" || derived.Properties["half"] != "top" {
		t.Fatalf("derived material lost properties: %v", derived.Properties)
	}
}

func TestMaterialEqual(t *testing.T) {
	a := NewMaterial("oak_door").WithProperty("half", "lower").WithProperty("facing", "west")
	b := NewMaterial("oak_door").WithProperty("facing", "west").WithProperty("half", "lower")
	if !a.Equal(b) {
		t.Fatalf("materials with identical state should compare equal")
	}
	if a.Equal(b.WithProperty("open", "true")) {
		t.Fatalf("materials with different property sets should not compare equal")
	}
	if a.Equal(NewMaterial("iron_door")) {
		t.Fatalf("materials with different names should not compare equal")
	}
}

func TestMaterialIsAir(t *testing.T) {
	if !Air().IsAir() || !(Material{}).IsAir() {
		t.Fatalf("air and zero material should both report IsAir")
	}
	if NewMaterial("stone").IsAir() {
		t.Fatalf("stone should not report IsAir")
	}
}

func TestVoxelSetSortedCoords(t *testing.T) {
	s := make(VoxelSet)
	s.Place(BlockCoord{X: 1, Y: 2, Z: 0}, NewMaterial("stone"))
	s.Place(BlockCoord{X: 0, Y: 1, Z: 5}, NewMaterial("stone"))
	s.Place(BlockCoord{X: 4, Y: 1, Z: 0}, NewMaterial("stone"))
	s.Place(BlockCoord{X: 2, Y: 1, Z: 0}, NewMaterial("stone"))

	want := []BlockCoord{
		{X: 2, Y: 1, Z: 0},
		{X: 4, Y: 1, Z: 0},
		{X: 0, Y: 1, Z: 5},
		{X: 1, Y: 2, Z: 0},
	}
	if got := s.SortedCoords(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected order %v, got %v", want, got)
	}
}

func TestVoxelSetMergeLaterWins(t *testing.T) {
	a := make(VoxelSet)
	a.Place(BlockCoord{X: 0, Y: 0, Z: 0}, NewMaterial("stone"))
	b := make(VoxelSet)
	b.Place(BlockCoord{X: 0, Y: 0, Z: 0}, NewMaterial("glass"))

	a.Merge(b)
	if got := a[BlockCoord{X: 0, Y: 0, Z: 0}]; got.Name != "glass" {
		t.Fatalf("expected merge to overwrite with glass, got %q", got.Name)
	}
}
