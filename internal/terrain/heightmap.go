package terrain

import (
	"fmt"
	"strings"

	"voxelforge/internal/config"
	"voxelforge/internal/world"
)

// ScanMode selects which block a column probe stops at.
type ScanMode int

const (
	// ScanSurface stops at the first non-air block from the top.
	ScanSurface ScanMode = iota
	// ScanGround additionally skips vegetation, seeing through canopy to
	// the terrain underneath.
	ScanGround
)

// ModeFromString parses a textual scan mode label.
func ModeFromString(value string) (ScanMode, error) {
	switch strings.ToLower(value) {
	case "surface":
		return ScanSurface, nil
	case "ground":
		return ScanGround, nil
	default:
		return ScanSurface, fmt.Errorf("unknown scan mode %q", value)
	}
}

// HeightMap is a point-in-time elevation snapshot over a column rectangle.
// Its domain is exactly the scanned rect. It is never updated in place;
// callers rescan after mutating the world.
type HeightMap struct {
	rect  world.Rect
	cells map[world.ColumnCoord]int
}

func (m *HeightMap) Rect() world.Rect { return m.rect }

func (m *HeightMap) Len() int { return len(m.cells) }

// At returns the recorded elevation of the column.
func (m *HeightMap) At(c world.ColumnCoord) (int, bool) {
	y, ok := m.cells[c]
	return y, ok
}

// HeightBounds is the extent of a height map in both plan and elevation.
type HeightBounds struct {
	MinX int
	MaxX int
	MinZ int
	MaxZ int
	MinY int
	MaxY int
}

// Bounds derives the map extent purely from its cells.
func (m *HeightMap) Bounds() HeightBounds {
	var b HeightBounds
	first := true
	for c, y := range m.cells {
		if first {
			b = HeightBounds{MinX: c.X, MaxX: c.X, MinZ: c.Z, MaxZ: c.Z, MinY: y, MaxY: y}
			first = false
			continue
		}
		if c.X < b.MinX {
			b.MinX = c.X
		}
		if c.X > b.MaxX {
			b.MaxX = c.X
		}
		if c.Z < b.MinZ {
			b.MinZ = c.Z
		}
		if c.Z > b.MaxZ {
			b.MaxZ = c.Z
		}
		if y < b.MinY {
			b.MinY = y
		}
		if y > b.MaxY {
			b.MaxY = y
		}
	}
	return b
}

// Scanner samples rectangular regions of a block store into height maps.
type Scanner struct {
	store    world.BlockStore
	classify world.Classifier
	top      int
	bottom   int
}

func NewScanner(store world.BlockStore, classify world.Classifier, cfg config.ScannerConfig) *Scanner {
	return &Scanner{
		store:    store,
		classify: classify,
		top:      cfg.ProbeTop,
		bottom:   cfg.ProbeBottom,
	}
}

// Scan samples the square of side 2*radius+1 around center. A negative
// radius yields an empty map.
func (s *Scanner) Scan(center world.ColumnCoord, radius int, mode ScanMode) (*HeightMap, error) {
	return s.ScanRect(world.RectAround(center, radius), mode)
}

// ScanRect samples every column of rect. A probe touching an unresident
// region fails immediately with the store's load error.
func (s *Scanner) ScanRect(rect world.Rect, mode ScanMode) (*HeightMap, error) {
	hm := &HeightMap{
		rect:  rect,
		cells: make(map[world.ColumnCoord]int, rect.Columns()),
	}
	var probeErr error
	rect.ForEach(func(c world.ColumnCoord) bool {
		y, err := s.probe(c, mode)
		if err != nil {
			probeErr = err
			return false
		}
		hm.cells[c] = y
		return true
	})
	if probeErr != nil {
		return nil, probeErr
	}
	return hm, nil
}

// probe walks the column downward and returns the elevation of the first
// relevant block. A column that is air (or canopy, in ground mode) all the
// way down pins to the probe floor.
func (s *Scanner) probe(c world.ColumnCoord, mode ScanMode) (int, error) {
	for y := s.top; y >= s.bottom; y-- {
		material, err := s.store.Block(c.At(y))
		if err != nil {
			return 0, fmt.Errorf("scan column (%d,%d): %w", c.X, c.Z, err)
		}
		if material.IsAir() {
			continue
		}
		if mode == ScanGround && s.classify.IsVegetation(material) {
			continue
		}
		return y, nil
	}
	return s.bottom, nil
}
