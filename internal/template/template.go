// Package template persists reusable voxel regions as structured text
// documents. A template maps relative coordinates to material and property
// state; round-trips preserve every triple exactly, and rotation/mirroring
// rewrite coordinates only.
package template

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"voxelforge/internal/world"
)

// ErrBadFormat reports a template document that cannot be decoded. Loading
// aborts; nothing partial is returned.
var ErrBadFormat = errors.New("malformed template document")

const formatVersion = 1

// Entry is one block of a template, at a coordinate relative to the
// template anchor.
type Entry struct {
	At    [3]int            `yaml:"at,flow"`
	Block string            `yaml:"block"`
	Props map[string]string `yaml:"props,omitempty"`
}

// Template is a serialized voxel-set-plus-material region.
type Template struct {
	Version int     `yaml:"version"`
	Name    string  `yaml:"name,omitempty"`
	Blocks  []Entry `yaml:"blocks"`
}

// Capture snapshots the world region inside bounds into a template with
// coordinates relative to origin. Air blocks are skipped.
func Capture(store world.BlockStore, origin world.BlockCoord, bounds world.Bounds, name string) (*Template, error) {
	t := &Template{Version: formatVersion, Name: name}
	for y := bounds.Min.Y; y <= bounds.Max.Y; y++ {
		for z := bounds.Min.Z; z <= bounds.Max.Z; z++ {
			for x := bounds.Min.X; x <= bounds.Max.X; x++ {
				material, err := store.Block(world.BlockCoord{X: x, Y: y, Z: z})
				if err != nil {
					return nil, fmt.Errorf("capture template: %w", err)
				}
				if material.IsAir() {
					continue
				}
				// Clone so the template never aliases the store's maps.
				t.Blocks = append(t.Blocks, Entry{
					At:    [3]int{x - origin.X, y - origin.Y, z - origin.Z},
					Block: material.Name,
					Props: material.Clone().Properties,
				})
			}
		}
	}
	return t, nil
}

// VoxelSet expands the template into absolute coordinates at anchor.
func (t *Template) VoxelSet(anchor world.BlockCoord) world.VoxelSet {
	out := make(world.VoxelSet, len(t.Blocks))
	for _, e := range t.Blocks {
		out.Place(
			world.BlockCoord{X: anchor.X + e.At[0], Y: anchor.Y + e.At[1], Z: anchor.Z + e.At[2]},
			world.Material{Name: e.Block, Properties: e.Props},
		)
	}
	return out
}

// Rotate returns a copy turned clockwise around the vertical axis. It
// accepts degrees (multiples of 90) or quarter-turn counts; material and
// property data pass through untouched.
func (t *Template) Rotate(rotation int) (*Template, error) {
	if rotation%90 != 0 && (rotation > 3 || rotation < -3) {
		return nil, fmt.Errorf("rotation must be a multiple of 90 degrees or a quarter-turn count, got %d", rotation)
	}
	quarters := normalizeRotation(rotation)
	out := t.clone()
	for i, e := range out.Blocks {
		x, z := rotateXZ(e.At[0], e.At[2], quarters)
		out.Blocks[i].At = [3]int{x, e.At[1], z}
	}
	return out, nil
}

// Mirror returns a copy reflected across the YZ plane (x negated).
func (t *Template) Mirror() *Template {
	out := t.clone()
	for i, e := range out.Blocks {
		out.Blocks[i].At = [3]int{-e.At[0], e.At[1], e.At[2]}
	}
	return out
}

func (t *Template) clone() *Template {
	out := &Template{Version: t.Version, Name: t.Name, Blocks: make([]Entry, len(t.Blocks))}
	copy(out.Blocks, t.Blocks)
	return out
}

// normalizeRotation converts degrees or raw quarter counts into a stable
// quarter-turn count in [0,3].
func normalizeRotation(r int) int {
	if r%90 == 0 && (r > 3 || r < -3) {
		r /= 90
	}
	r %= 4
	if r < 0 {
		r += 4
	}
	return r
}

// rotateXZ turns an (x,z) offset around the vertical axis by rot*90
// degrees clockwise.
func rotateXZ(x, z, rot int) (int, int) {
	switch rot & 3 {
	case 0:
		return x, z
	case 1:
		return z, -x
	case 2:
		return -x, -z
	default:
		return -z, x
	}
}

// Save writes the template as YAML, zstd-compressed when the path ends in
// ".zst".
func (t *Template) Save(path string) error {
	sorted := t.clone()
	sort.Slice(sorted.Blocks, func(i, j int) bool {
		a, b := sorted.Blocks[i].At, sorted.Blocks[j].At
		if a[1] != b[1] {
			return a[1] < b[1]
		}
		if a[2] != b[2] {
			return a[2] < b[2]
		}
		return a[0] < b[0]
	})

	data, err := yaml.Marshal(sorted)
	if err != nil {
		return fmt.Errorf("encode template: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create template file: %w", err)
	}
	defer f.Close()

	var w io.Writer = f
	var enc *zstd.Encoder
	if strings.HasSuffix(path, ".zst") {
		enc, err = zstd.NewWriter(f)
		if err != nil {
			return fmt.Errorf("open zstd writer: %w", err)
		}
		w = enc
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	if enc != nil {
		if err := enc.Close(); err != nil {
			return fmt.Errorf("finish zstd stream: %w", err)
		}
	}
	return nil
}

// Load reads a template document, transparently decompressing ".zst"
// archives. Any structural problem surfaces as ErrBadFormat.
func Load(path string) (*Template, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template file: %w", err)
	}
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("open zstd reader: %w", err)
		}
		defer dec.Close()
		raw, err = dec.DecodeAll(raw, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: decompress: %v", ErrBadFormat, err)
		}
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML template document.
func Parse(data []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	if t.Version != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadFormat, t.Version)
	}
	for i, e := range t.Blocks {
		if e.Block == "" {
			return nil, fmt.Errorf("%w: block %d has no material", ErrBadFormat, i)
		}
	}
	return &t, nil
}
