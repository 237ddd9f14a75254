package blueprint

import (
	"fmt"

	"voxelforge/internal/shapes"
	"voxelforge/internal/world"
)

func compileStep(s Step, anchor world.BlockCoord, resolver world.NameResolver) (world.VoxelSet, error) {
	switch s.Kind {
	case "box":
		return shapes.Rasterize(shapes.Descriptor{
			Kind:     shapes.KindBox,
			Corner1:  vec(anchor, s.From),
			Corner2:  vec(anchor, s.To),
			Hollow:   s.Hollow,
			Material: s.material(resolver),
		})
	case "walls":
		return walls(s, anchor, resolver)
	case "floor":
		return floor(s, anchor, resolver)
	case "roof":
		if s.Slab == "" {
			return nil, fmt.Errorf("roof requires a slab material")
		}
		axis := shapes.AxisZ
		if s.Axis == "x" {
			axis = shapes.AxisX
		}
		return shapes.Rasterize(shapes.Descriptor{
			Kind:     shapes.KindPitchedRoof,
			Corner1:  vec(anchor, s.From),
			Corner2:  vec(anchor, s.To),
			Axis:     axis,
			Material: s.material(resolver),
			Ridge:    world.NewMaterial(resolver.Canonical(s.Slab)),
		})
	case "windows":
		return windows(s, anchor, resolver)
	case "door":
		return door(s, anchor, resolver)
	case "bed":
		return bed(s, anchor, resolver)
	case "set":
		if s.Block == "" {
			return nil, fmt.Errorf("set requires a block")
		}
		out := make(world.VoxelSet, 1)
		out.Place(vec(anchor, s.At), s.material(resolver))
		return out, nil
	case "circle":
		return shapes.Rasterize(shapes.Descriptor{
			Kind:     shapes.KindCircle,
			Center:   vec(anchor, s.At),
			Radius:   s.Radius,
			Fill:     s.Fill,
			Material: s.material(resolver),
		})
	case "cylinder":
		at := vec(anchor, s.At)
		return shapes.Rasterize(shapes.Descriptor{
			Kind:     shapes.KindCylinder,
			Center:   at,
			Radius:   s.Radius,
			YMin:     at.Y,
			YMax:     at.Y + s.Height - 1,
			Hollow:   s.Hollow,
			Material: s.material(resolver),
		})
	case "cone":
		return shapes.Rasterize(shapes.Descriptor{
			Kind:     shapes.KindCone,
			Center:   vec(anchor, s.At),
			Radius:   s.Radius,
			Height:   s.Height,
			Fill:     s.Fill,
			Material: s.material(resolver),
		})
	case "arch":
		axis := shapes.AxisZ
		if s.Axis == "x" {
			axis = shapes.AxisX
		}
		thickness := s.Thickness
		if thickness == 0 {
			thickness = 1
		}
		return shapes.Rasterize(shapes.Descriptor{
			Kind:      shapes.KindArch,
			Base:      vec(anchor, s.At),
			Axis:      axis,
			Span:      s.Span,
			Height:    s.Height,
			Length:    s.Length,
			Thickness: thickness,
			Material:  s.material(resolver),
		})
	default:
		return nil, fmt.Errorf("unknown step kind %q", s.Kind)
	}
}

// walls builds the four vertical faces of a footprint, with an optional
// distinct corner material.
func walls(s Step, anchor world.BlockCoord, resolver world.NameResolver) (world.VoxelSet, error) {
	if s.Block == "" {
		return nil, fmt.Errorf("walls require a block")
	}
	b := world.NewBounds(vec(anchor, s.From), vec(anchor, s.To))
	wall := s.material(resolver)
	corner := wall
	if s.Corner != "" {
		corner = world.NewMaterial(resolver.Canonical(s.Corner))
	}

	out := make(world.VoxelSet)
	for y := b.Min.Y; y <= b.Max.Y; y++ {
		for x := b.Min.X; x <= b.Max.X; x++ {
			for z := b.Min.Z; z <= b.Max.Z; z++ {
				edgeX := x == b.Min.X || x == b.Max.X
				edgeZ := z == b.Min.Z || z == b.Max.Z
				switch {
				case edgeX && edgeZ:
					out.Place(world.BlockCoord{X: x, Y: y, Z: z}, corner)
				case edgeX || edgeZ:
					out.Place(world.BlockCoord{X: x, Y: y, Z: z}, wall)
				}
			}
		}
	}
	return out, nil
}

// floor tiles one y-level, alternating with the checker material on odd
// (x+z) parity when set.
func floor(s Step, anchor world.BlockCoord, resolver world.NameResolver) (world.VoxelSet, error) {
	if s.Block == "" {
		return nil, fmt.Errorf("floor requires a block")
	}
	b := world.NewBounds(vec(anchor, s.From), vec(anchor, s.To))
	main := s.material(resolver)
	alt := main
	if s.Checker != "" {
		alt = world.NewMaterial(resolver.Canonical(s.Checker))
	}

	out := make(world.VoxelSet)
	for x := b.Min.X; x <= b.Max.X; x++ {
		for z := b.Min.Z; z <= b.Max.Z; z++ {
			m := main
			if (x+z)%2 != 0 {
				m = alt
			}
			out.Place(world.BlockCoord{X: x, Y: b.Min.Y, Z: z}, m)
		}
	}
	return out, nil
}

// windows places panes into the perimeter walls of the footprint at the
// given spacing, skipping corners.
func windows(s Step, anchor world.BlockCoord, resolver world.NameResolver) (world.VoxelSet, error) {
	if s.Block == "" {
		return nil, fmt.Errorf("windows require a block")
	}
	spacing := s.Spacing
	if spacing < 1 {
		spacing = 3
	}
	b := world.NewBounds(vec(anchor, s.From), vec(anchor, s.To))
	pane := s.material(resolver)

	out := make(world.VoxelSet)
	for y := b.Min.Y; y <= b.Max.Y; y++ {
		for x := b.Min.X + 1; x < b.Max.X; x++ {
			if (x-b.Min.X)%spacing == 0 {
				out.Place(world.BlockCoord{X: x, Y: y, Z: b.Min.Z}, pane)
				out.Place(world.BlockCoord{X: x, Y: y, Z: b.Max.Z}, pane)
			}
		}
		for z := b.Min.Z + 1; z < b.Max.Z; z++ {
			if (z-b.Min.Z)%spacing == 0 {
				out.Place(world.BlockCoord{X: b.Min.X, Y: y, Z: z}, pane)
				out.Place(world.BlockCoord{X: b.Max.X, Y: y, Z: z}, pane)
			}
		}
	}
	return out, nil
}

// door places a two-block door, lower half at the step coordinate.
func door(s Step, anchor world.BlockCoord, resolver world.NameResolver) (world.VoxelSet, error) {
	if s.Block == "" {
		return nil, fmt.Errorf("door requires a block")
	}
	facing := s.Facing
	if facing == "" {
		return nil, fmt.Errorf("door requires a facing")
	}
	base := world.NewMaterial(resolver.Canonical(s.Block)).
		WithProperty("facing", facing).
		WithProperty("hinge", "left").
		WithProperty("open", "false").
		WithProperty("powered", "false")

	at := vec(anchor, s.At)
	out := make(world.VoxelSet, 2)
	out.Place(at, base.WithProperty("half", "lower"))
	out.Place(world.BlockCoord{X: at.X, Y: at.Y + 1, Z: at.Z}, base.WithProperty("half", "upper"))
	return out, nil
}

var facingOffsets = map[string]world.ColumnCoord{
	"east":  {X: 1, Z: 0},
	"west":  {X: -1, Z: 0},
	"north": {X: 0, Z: -1},
	"south": {X: 0, Z: 1},
}

// bed places a foot/head pair extending toward the facing direction.
func bed(s Step, anchor world.BlockCoord, resolver world.NameResolver) (world.VoxelSet, error) {
	if s.Block == "" {
		return nil, fmt.Errorf("bed requires a block")
	}
	offset, ok := facingOffsets[s.Facing]
	if !ok {
		return nil, fmt.Errorf("bed requires a facing")
	}
	base := world.NewMaterial(resolver.Canonical(s.Block)).
		WithProperty("facing", s.Facing).
		WithProperty("occupied", "false")

	at := vec(anchor, s.At)
	out := make(world.VoxelSet, 2)
	out.Place(at, base.WithProperty("part", "foot"))
	out.Place(world.BlockCoord{X: at.X + offset.X, Y: at.Y, Z: at.Z + offset.Z}, base.WithProperty("part", "head"))
	return out, nil
}
