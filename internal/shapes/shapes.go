// Package shapes rasterizes parametric 3D primitives into voxel sets.
// Every generator is a pure function of its descriptor: no world reads, no
// side effects, and parameter validation happens before any voxel is
// produced, so a failed call never yields a partial shape.
package shapes

import (
	"errors"
	"fmt"
	"strings"

	"voxelforge/internal/world"
)

// ErrInvalidParams reports a descriptor that cannot be rasterized.
var ErrInvalidParams = errors.New("invalid shape parameters")

type Kind string

const (
	KindCircle      Kind = "circle"
	KindCylinder    Kind = "cylinder"
	KindCone        Kind = "cone"
	KindArch        Kind = "arch"
	KindPitchedRoof Kind = "pitched_roof"
	KindBox         Kind = "box"
)

// ParseKind parses a textual shape kind label.
func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(value)) {
	case KindCircle, KindCylinder, KindCone, KindArch, KindPitchedRoof, KindBox:
		return Kind(strings.ToLower(value)), nil
	default:
		return "", fmt.Errorf("%w: unknown shape kind %q", ErrInvalidParams, value)
	}
}

// Axis names a horizontal axis.
type Axis string

const (
	AxisX Axis = "x"
	AxisZ Axis = "z"
)

func (a Axis) valid() bool { return a == AxisX || a == AxisZ }

// Descriptor is the tagged parameter set for one shape. Kind selects the
// variant; the other fields used depend on it.
type Descriptor struct {
	Kind Kind

	// Circle: center (at its y level). Cylinder/Cone: axis position; the
	// cylinder spans [YMin,YMax], the cone rises Height levels from
	// Center.Y.
	Center world.BlockCoord
	Radius int
	Fill   bool
	YMin   int
	YMax   int
	Height int

	// Arch: Base is the low-span, extrusion-start corner; the profile
	// spans Span columns across the perpendicular axis, extrudes Length
	// columns along Axis, and carries Thickness blocks of material under
	// the curve.
	Base      world.BlockCoord
	Span      int
	Length    int
	Thickness int
	Axis      Axis

	// Box and PitchedRoof: opposite corners. Hollow boxes keep all six
	// faces and exclude the strict interior.
	Corner1 world.BlockCoord
	Corner2 world.BlockCoord
	Hollow  bool

	// Material fills the shape. Ridge is the pitched roof's center-row
	// material (slab) when the span is even.
	Material world.Material
	Ridge    world.Material
}

// Rasterize validates the descriptor and produces its voxel set.
func Rasterize(d Descriptor) (world.VoxelSet, error) {
	if d.Material.IsAir() && d.Kind != KindBox {
		// Boxes may rasterize air to carve space; the other shapes place material.
		return nil, fmt.Errorf("%w: %s requires a material", ErrInvalidParams, d.Kind)
	}
	switch d.Kind {
	case KindCircle:
		if d.Radius < 0 {
			return nil, fmt.Errorf("%w: circle radius %d", ErrInvalidParams, d.Radius)
		}
		return circle(d.Center, d.Radius, d.Fill, d.Material), nil
	case KindCylinder:
		if d.Radius < 0 {
			return nil, fmt.Errorf("%w: cylinder radius %d", ErrInvalidParams, d.Radius)
		}
		if d.YMin > d.YMax {
			return nil, fmt.Errorf("%w: cylinder y-range [%d,%d]", ErrInvalidParams, d.YMin, d.YMax)
		}
		return cylinder(d.Center, d.Radius, d.YMin, d.YMax, d.Hollow, d.Material), nil
	case KindCone:
		if d.Radius < 0 {
			return nil, fmt.Errorf("%w: cone radius %d", ErrInvalidParams, d.Radius)
		}
		if d.Height <= 0 {
			return nil, fmt.Errorf("%w: cone height %d", ErrInvalidParams, d.Height)
		}
		return cone(d.Center, d.Radius, d.Height, d.Fill, d.Material), nil
	case KindArch:
		if !d.Axis.valid() {
			return nil, fmt.Errorf("%w: arch axis %q", ErrInvalidParams, d.Axis)
		}
		if d.Span < 2 || d.Height <= 0 || d.Length <= 0 {
			return nil, fmt.Errorf("%w: arch span %d height %d length %d", ErrInvalidParams, d.Span, d.Height, d.Length)
		}
		if d.Thickness < 1 {
			return nil, fmt.Errorf("%w: arch thickness %d", ErrInvalidParams, d.Thickness)
		}
		return arch(d.Base, d.Axis, d.Span, d.Height, d.Length, d.Thickness, d.Material), nil
	case KindPitchedRoof:
		if !d.Axis.valid() {
			return nil, fmt.Errorf("%w: roof axis %q", ErrInvalidParams, d.Axis)
		}
		if d.Ridge.IsAir() {
			return nil, fmt.Errorf("%w: roof requires a ridge material", ErrInvalidParams)
		}
		return pitchedRoof(world.NewBounds(d.Corner1, d.Corner2), d.Axis, d.Material, d.Ridge), nil
	case KindBox:
		return box(world.NewBounds(d.Corner1, d.Corner2), d.Hollow, d.Material), nil
	default:
		return nil, fmt.Errorf("%w: unknown shape kind %q", ErrInvalidParams, d.Kind)
	}
}
