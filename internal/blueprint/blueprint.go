// Package blueprint compiles JSON build documents into voxel sets. A
// document is validated against an embedded JSON Schema before any step is
// interpreted, and compilation is pure: the world is only touched once a
// complete voxel set exists.
package blueprint

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"voxelforge/internal/world"
)

// ErrInvalidBlueprint reports a document that fails schema validation or a
// step whose parameters cannot be compiled.
var ErrInvalidBlueprint = errors.New("invalid blueprint")

const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["name", "steps"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "anchor": {"$ref": "#/$defs/vec3"},
    "steps": {"type": "array", "minItems": 1, "items": {"$ref": "#/$defs/step"}}
  },
  "$defs": {
    "vec3": {
      "type": "array",
      "items": {"type": "integer"},
      "minItems": 3,
      "maxItems": 3
    },
    "step": {
      "type": "object",
      "required": ["kind"],
      "properties": {
        "kind": {
          "enum": ["box", "walls", "floor", "roof", "windows", "door", "bed", "set",
                   "circle", "cylinder", "cone", "arch"]
        },
        "from": {"$ref": "#/$defs/vec3"},
        "to": {"$ref": "#/$defs/vec3"},
        "at": {"$ref": "#/$defs/vec3"},
        "block": {"type": "string", "minLength": 1},
        "corner": {"type": "string"},
        "checker": {"type": "string"},
        "slab": {"type": "string"},
        "props": {"type": "object", "additionalProperties": {"type": "string"}},
        "axis": {"enum": ["x", "z"]},
        "facing": {"enum": ["north", "south", "east", "west"]},
        "hollow": {"type": "boolean"},
        "fill": {"type": "boolean"},
        "spacing": {"type": "integer", "minimum": 1},
        "radius": {"type": "integer", "minimum": 0},
        "height": {"type": "integer", "minimum": 1},
        "span": {"type": "integer", "minimum": 2},
        "length": {"type": "integer", "minimum": 1},
        "thickness": {"type": "integer", "minimum": 1}
      }
    }
  }
}`

var schema = jsonschema.MustCompileString("blueprint.schema.json", schemaJSON)

// Step is one build instruction. Kind selects the variant; coordinates are
// relative to the blueprint anchor.
type Step struct {
	Kind      string            `json:"kind"`
	From      [3]int            `json:"from"`
	To        [3]int            `json:"to"`
	At        [3]int            `json:"at"`
	Block     string            `json:"block"`
	Corner    string            `json:"corner,omitempty"`
	Checker   string            `json:"checker,omitempty"`
	Slab      string            `json:"slab,omitempty"`
	Props     map[string]string `json:"props,omitempty"`
	Axis      string            `json:"axis,omitempty"`
	Facing    string            `json:"facing,omitempty"`
	Hollow    bool              `json:"hollow,omitempty"`
	Fill      bool              `json:"fill,omitempty"`
	Spacing   int               `json:"spacing,omitempty"`
	Radius    int               `json:"radius,omitempty"`
	Height    int               `json:"height,omitempty"`
	Span      int               `json:"span,omitempty"`
	Length    int               `json:"length,omitempty"`
	Thickness int               `json:"thickness,omitempty"`
}

// Blueprint is a named, ordered build document.
type Blueprint struct {
	Name   string `json:"name"`
	Anchor [3]int `json:"anchor,omitempty"`
	Steps  []Step `json:"steps"`
}

// Parse validates raw JSON against the blueprint schema and decodes it.
func Parse(data []byte) (*Blueprint, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBlueprint, err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBlueprint, err)
	}
	var b Blueprint
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBlueprint, err)
	}
	return &b, nil
}

// Compile expands every step into one voxel set anchored at base plus the
// blueprint's own anchor offset. Block names pass through the resolver.
func (b *Blueprint) Compile(base world.BlockCoord, resolver world.NameResolver) (world.VoxelSet, error) {
	if resolver == nil {
		resolver = world.PassThroughResolver{}
	}
	anchor := world.BlockCoord{
		X: base.X + b.Anchor[0],
		Y: base.Y + b.Anchor[1],
		Z: base.Z + b.Anchor[2],
	}
	out := make(world.VoxelSet)
	for i, step := range b.Steps {
		voxels, err := compileStep(step, anchor, resolver)
		if err != nil {
			return nil, fmt.Errorf("%w: step %d (%s): %v", ErrInvalidBlueprint, i, step.Kind, err)
		}
		out.Merge(voxels)
	}
	return out, nil
}

func (s Step) material(resolver world.NameResolver) world.Material {
	m := world.NewMaterial(resolver.Canonical(s.Block))
	for k, v := range s.Props {
		m = m.WithProperty(k, v)
	}
	return m
}

func vec(anchor world.BlockCoord, v [3]int) world.BlockCoord {
	return world.BlockCoord{X: anchor.X + v[0], Y: anchor.Y + v[1], Z: anchor.Z + v[2]}
}
