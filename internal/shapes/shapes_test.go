package shapes

import (
	"errors"
	"testing"

	"voxelforge/internal/world"
)

func mustRasterize(t *testing.T, d Descriptor) world.VoxelSet {
	t.Helper()
	out, err := Rasterize(d)
	if err != nil {
		t.Fatalf("rasterize %s: %v", d.Kind, err)
	}
	return out
}

func TestCircleOutlineAndFill(t *testing.T) {
	center := world.BlockCoord{X: 0, Y: 64, Z: 0}
	stone := world.NewMaterial("stone")

	outline := mustRasterize(t, Descriptor{Kind: KindCircle, Center: center, Radius: 3, Material: stone})
	filled := mustRasterize(t, Descriptor{Kind: KindCircle, Center: center, Radius: 3, Fill: true, Material: stone})

	// Radius 3: the ring band holds 16 columns, the closed disk 29.
	if len(outline) != 16 {
		t.Fatalf("expected 16 outline blocks, got %d", len(outline))
	}
	if len(filled) != 29 {
		t.Fatalf("expected 29 filled blocks, got %d", len(filled))
	}
	for c := range outline {
		if c.Y != 64 {
			t.Fatalf("circle should stay on one level, got %v", c)
		}
	}
	if _, ok := filled[center]; !ok {
		t.Fatalf("filled circle should include its center")
	}
	if _, ok := outline[center]; ok {
		t.Fatalf("circle outline should not include its center")
	}
}

func TestCircleRadiusZeroIsSingleBlock(t *testing.T) {
	center := world.BlockCoord{X: 5, Y: 70, Z: -5}
	out := mustRasterize(t, Descriptor{Kind: KindCircle, Center: center, Radius: 0, Fill: true, Material: world.NewMaterial("stone")})
	if len(out) != 1 {
		t.Fatalf("expected a single block, got %d", len(out))
	}
	if _, ok := out[center]; !ok {
		t.Fatalf("expected the block at the center")
	}
}

func TestCylinderHollowAndSolid(t *testing.T) {
	axis := world.BlockCoord{X: 0, Y: 0, Z: 0}
	stone := world.NewMaterial("stone")

	hollow := mustRasterize(t, Descriptor{Kind: KindCylinder, Center: axis, Radius: 2, YMin: 0, YMax: 4, Hollow: true, Material: stone})
	solid := mustRasterize(t, Descriptor{Kind: KindCylinder, Center: axis, Radius: 2, YMin: 0, YMax: 4, Material: stone})

	// Radius 2: ring of 12 per level, disk of 13, across 5 levels.
	if len(hollow) != 60 {
		t.Fatalf("expected 60 hollow blocks, got %d", len(hollow))
	}
	if len(solid) != 65 {
		t.Fatalf("expected 65 solid blocks, got %d", len(solid))
	}
	if _, ok := hollow[world.BlockCoord{X: 0, Y: 2, Z: 0}]; ok {
		t.Fatalf("hollow cylinder should not fill its axis")
	}
	if _, ok := solid[world.BlockCoord{X: 0, Y: 2, Z: 0}]; !ok {
		t.Fatalf("solid cylinder should fill its axis")
	}
}

func TestConeTapers(t *testing.T) {
	base := world.BlockCoord{X: 0, Y: 10, Z: 0}
	out := mustRasterize(t, Descriptor{Kind: KindCone, Center: base, Radius: 2, Height: 3, Fill: true, Material: world.NewMaterial("stone")})

	perLevel := map[int]int{}
	for c := range out {
		perLevel[c.Y]++
	}
	if perLevel[10] != 13 || perLevel[11] != 5 || perLevel[12] != 1 {
		t.Fatalf("expected taper 13/5/1, got %v", perLevel)
	}
	if len(perLevel) != 3 {
		t.Fatalf("cone should span exactly its height, got levels %v", perLevel)
	}
}

func TestArchProfile(t *testing.T) {
	base := world.BlockCoord{X: 0, Y: 64, Z: 0}
	out := mustRasterize(t, Descriptor{
		Kind: KindArch, Base: base, Axis: AxisZ,
		Span: 5, Height: 3, Length: 1, Thickness: 1,
		Material: world.NewMaterial("stone_bricks"),
	})

	if len(out) != 5 {
		t.Fatalf("expected 5 blocks for a thin arch profile, got %d", len(out))
	}
	// Feet at base level, crown at base+height.
	if _, ok := out[world.BlockCoord{X: 0, Y: 64, Z: 0}]; !ok {
		t.Fatalf("expected the west foot at base elevation")
	}
	if _, ok := out[world.BlockCoord{X: 4, Y: 64, Z: 0}]; !ok {
		t.Fatalf("expected the east foot at base elevation")
	}
	if _, ok := out[world.BlockCoord{X: 2, Y: 67, Z: 0}]; !ok {
		t.Fatalf("expected the crown at base+height")
	}
}

func TestArchExtrudesAlongAxis(t *testing.T) {
	base := world.BlockCoord{X: 0, Y: 64, Z: 0}
	alongZ := mustRasterize(t, Descriptor{
		Kind: KindArch, Base: base, Axis: AxisZ,
		Span: 5, Height: 3, Length: 4, Thickness: 1,
		Material: world.NewMaterial("stone_bricks"),
	})
	if len(alongZ) != 20 {
		t.Fatalf("expected the profile repeated along z, got %d blocks", len(alongZ))
	}
	for l := 0; l < 4; l++ {
		if _, ok := alongZ[world.BlockCoord{X: 2, Y: 67, Z: l}]; !ok {
			t.Fatalf("missing crown at extrusion offset %d", l)
		}
	}

	alongX := mustRasterize(t, Descriptor{
		Kind: KindArch, Base: base, Axis: AxisX,
		Span: 5, Height: 3, Length: 4, Thickness: 1,
		Material: world.NewMaterial("stone_bricks"),
	})
	if _, ok := alongX[world.BlockCoord{X: 3, Y: 67, Z: 2}]; !ok {
		t.Fatalf("x-axis arch should span across z and extrude along x")
	}
}

func TestPitchedRoofSlopesAndRidge(t *testing.T) {
	out := mustRasterize(t, Descriptor{
		Kind:     KindPitchedRoof,
		Corner1:  world.BlockCoord{X: 0, Y: 10, Z: 0},
		Corner2:  world.BlockCoord{X: 4, Y: 10, Z: 2},
		Axis:     AxisZ,
		Material: world.NewMaterial("oak_stairs"),
		Ridge:    world.NewMaterial("oak_slab"),
	})

	// Two stair rows per side over two rises, plus the slab ridge row.
	if len(out) != 15 {
		t.Fatalf("expected 15 roof blocks, got %d", len(out))
	}

	east := out[world.BlockCoord{X: 0, Y: 10, Z: 0}]
	if east.Name != "oak_stairs" || east.Properties["facing"] != "east" || east.Properties["half"] != "bottom" {
		t.Fatalf("west slope should be east-facing bottom stairs, got %+v", east)
	}
	west := out[world.BlockCoord{X: 4, Y: 10, Z: 0}]
	if west.Properties["facing"] != "west" {
		t.Fatalf("east slope should be west-facing stairs, got %+v", west)
	}
	ridge := out[world.BlockCoord{X: 2, Y: 12, Z: 1}]
	if ridge.Name != "oak_slab" || ridge.Properties["type"] != "top" {
		t.Fatalf("odd-width roof should crown with a top slab ridge, got %+v", ridge)
	}
}

func TestPitchedRoofEvenWidthHasNoSlabRidge(t *testing.T) {
	out := mustRasterize(t, Descriptor{
		Kind:     KindPitchedRoof,
		Corner1:  world.BlockCoord{X: 0, Y: 10, Z: 0},
		Corner2:  world.BlockCoord{X: 3, Y: 10, Z: 1},
		Axis:     AxisZ,
		Material: world.NewMaterial("oak_stairs"),
		Ridge:    world.NewMaterial("oak_slab"),
	})
	for _, m := range out {
		if m.Name == "oak_slab" {
			t.Fatalf("even-width roof should meet in opposing stairs, found a slab")
		}
	}
}

func TestBoxSolidAndHollow(t *testing.T) {
	a := world.BlockCoord{X: 0, Y: 0, Z: 0}
	b := world.BlockCoord{X: 3, Y: 3, Z: 3}
	stone := world.NewMaterial("stone")

	solid := mustRasterize(t, Descriptor{Kind: KindBox, Corner1: a, Corner2: b, Material: stone})
	hollow := mustRasterize(t, Descriptor{Kind: KindBox, Corner1: a, Corner2: b, Hollow: true, Material: stone})

	if len(solid) != 64 {
		t.Fatalf("expected 64 solid blocks, got %d", len(solid))
	}
	if len(hollow) != 56 {
		t.Fatalf("expected 56 shell blocks, got %d", len(hollow))
	}
	if _, ok := hollow[world.BlockCoord{X: 1, Y: 1, Z: 1}]; ok {
		t.Fatalf("hollow box must exclude its strict interior")
	}
	if _, ok := hollow[world.BlockCoord{X: 1, Y: 0, Z: 1}]; !ok {
		t.Fatalf("hollow box must keep all six faces")
	}
}

func TestBoxMayCarveAir(t *testing.T) {
	out := mustRasterize(t, Descriptor{
		Kind:     KindBox,
		Corner1:  world.BlockCoord{X: 0, Y: 0, Z: 0},
		Corner2:  world.BlockCoord{X: 1, Y: 1, Z: 1},
		Material: world.Air(),
	})
	if len(out) != 8 {
		t.Fatalf("expected 8 carve operations, got %d", len(out))
	}
	for _, m := range out {
		if !m.IsAir() {
			t.Fatalf("carving box should schedule air, got %q", m.Name)
		}
	}
}

func TestRasterizeRejectsInvalidDescriptors(t *testing.T) {
	stone := world.NewMaterial("stone")
	tests := []struct {
		name string
		d    Descriptor
	}{
		{"negative circle radius", Descriptor{Kind: KindCircle, Radius: -1, Material: stone}},
		{"air circle", Descriptor{Kind: KindCircle, Radius: 2, Material: world.Air()}},
		{"inverted cylinder range", Descriptor{Kind: KindCylinder, Radius: 2, YMin: 5, YMax: 1, Material: stone}},
		{"zero cone height", Descriptor{Kind: KindCone, Radius: 2, Height: 0, Material: stone}},
		{"arch span too small", Descriptor{Kind: KindArch, Axis: AxisZ, Span: 1, Height: 2, Length: 1, Thickness: 1, Material: stone}},
		{"arch without axis", Descriptor{Kind: KindArch, Span: 5, Height: 2, Length: 1, Thickness: 1, Material: stone}},
		{"roof without ridge", Descriptor{Kind: KindPitchedRoof, Axis: AxisZ, Material: stone}},
		{"unknown kind", Descriptor{Kind: Kind("sphere"), Material: stone}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Rasterize(tc.d); !errors.Is(err, ErrInvalidParams) {
				t.Fatalf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	if kind, err := ParseKind("Pitched_Roof"); err != nil || kind != KindPitchedRoof {
		t.Fatalf("expected pitched_roof, got %v (%v)", kind, err)
	}
	if _, err := ParseKind("dome"); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for unknown kind, got %v", err)
	}
}
