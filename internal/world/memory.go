package world

import "fmt"

// MemoryStore keeps blocks in a map with an explicit resident rectangle.
// It backs tests and synthetic fixture worlds; touching a column outside
// the resident area fails with ErrRegionNotLoaded exactly like a partially
// generated save would.
type MemoryStore struct {
	resident Rect
	blocks   map[BlockCoord]Material
}

func NewMemoryStore(resident Rect) *MemoryStore {
	return &MemoryStore{
		resident: resident,
		blocks:   make(map[BlockCoord]Material),
	}
}

func (s *MemoryStore) Block(c BlockCoord) (Material, error) {
	if !s.resident.Contains(c.Column()) {
		return Material{}, fmt.Errorf("column (%d,%d): %w", c.X, c.Z, ErrRegionNotLoaded)
	}
	if m, ok := s.blocks[c]; ok {
		return m, nil
	}
	return Air(), nil
}

func (s *MemoryStore) SetBlock(c BlockCoord, m Material) error {
	if !s.resident.Contains(c.Column()) {
		return fmt.Errorf("column (%d,%d): %w", c.X, c.Z, ErrRegionNotLoaded)
	}
	if m.IsAir() {
		delete(s.blocks, c)
		return nil
	}
	s.blocks[c] = m.Clone()
	return nil
}

// FillColumn writes the material into every block of [y0,y1] at the column.
func (s *MemoryStore) FillColumn(c ColumnCoord, y0, y1 int, m Material) error {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		if err := s.SetBlock(c.At(y), m); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of non-air blocks held.
func (s *MemoryStore) Len() int {
	return len(s.blocks)
}
