package world

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"
)

// regionSize is the side length in columns of one residency region. Reads
// and writes outside every resident region fail with ErrRegionNotLoaded.
const regionSize = 32

type regionKey struct {
	X int
	Z int
}

const sessionSchema = `
CREATE TABLE IF NOT EXISTS meta (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS regions (
  rx INTEGER NOT NULL,
  rz INTEGER NOT NULL,
  PRIMARY KEY (rx, rz)
);
CREATE TABLE IF NOT EXISTS blocks (
  x     INTEGER NOT NULL,
  y     INTEGER NOT NULL,
  z     INTEGER NOT NULL,
  name  TEXT NOT NULL,
  props TEXT NOT NULL DEFAULT '{}',
  PRIMARY KEY (x, y, z)
);
`

// Session is a persisted voxel world held in a SQLite file. It assumes a
// single owner for its whole lifetime: writes buffer in memory and reach
// disk on Flush or Close, so a caller controls back-pressure by flushing
// every N placed voxels.
type Session struct {
	db       *sql.DB
	path     string
	resident map[regionKey]struct{}
	pending  map[BlockCoord]*Material // nil entry marks a buffered clear
}

// Open opens or creates a persisted world at path.
func Open(path string) (*Session, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open world %s: %w", path, err)
	}
	if _, err := db.Exec(sessionSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare world schema: %w", err)
	}

	s := &Session{
		db:       db,
		path:     path,
		resident: make(map[regionKey]struct{}),
		pending:  make(map[BlockCoord]*Material),
	}
	if err := s.loadRegions(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Session) loadRegions() error {
	rows, err := s.db.Query(`SELECT rx, rz FROM regions`)
	if err != nil {
		return fmt.Errorf("load resident regions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var key regionKey
		if err := rows.Scan(&key.X, &key.Z); err != nil {
			return fmt.Errorf("scan region row: %w", err)
		}
		s.resident[key] = struct{}{}
	}
	return rows.Err()
}

func (s *Session) region(c ColumnCoord) regionKey {
	return regionKey{X: floorDiv(c.X, regionSize), Z: floorDiv(c.Z, regionSize)}
}

func (s *Session) isResident(c ColumnCoord) bool {
	_, ok := s.resident[s.region(c)]
	return ok
}

// MarkResident records every region overlapping the rect as generated, so
// subsequent reads and writes there succeed.
func (s *Session) MarkResident(rect Rect) error {
	if rect.Empty() {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("mark resident: %w", err)
	}
	minRX := floorDiv(rect.MinX, regionSize)
	maxRX := floorDiv(rect.MaxX, regionSize)
	minRZ := floorDiv(rect.MinZ, regionSize)
	maxRZ := floorDiv(rect.MaxZ, regionSize)
	for rx := minRX; rx <= maxRX; rx++ {
		for rz := minRZ; rz <= maxRZ; rz++ {
			if _, err := tx.Exec(`INSERT OR IGNORE INTO regions (rx, rz) VALUES (?, ?)`, rx, rz); err != nil {
				tx.Rollback()
				return fmt.Errorf("insert region (%d,%d): %w", rx, rz, err)
			}
			s.resident[regionKey{X: rx, Z: rz}] = struct{}{}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("mark resident: %w", err)
	}
	return nil
}

func (s *Session) Block(c BlockCoord) (Material, error) {
	if !s.isResident(c.Column()) {
		return Material{}, fmt.Errorf("column (%d,%d): %w", c.X, c.Z, ErrRegionNotLoaded)
	}
	if buffered, ok := s.pending[c]; ok {
		if buffered == nil {
			return Air(), nil
		}
		return buffered.Clone(), nil
	}

	var name, props string
	err := s.db.QueryRow(`SELECT name, props FROM blocks WHERE x = ? AND y = ? AND z = ?`, c.X, c.Y, c.Z).Scan(&name, &props)
	if err == sql.ErrNoRows {
		return Air(), nil
	}
	if err != nil {
		return Material{}, fmt.Errorf("read block (%d,%d,%d): %w", c.X, c.Y, c.Z, err)
	}
	return decodeMaterial(name, props)
}

func (s *Session) SetBlock(c BlockCoord, m Material) error {
	if !s.isResident(c.Column()) {
		return fmt.Errorf("column (%d,%d): %w", c.X, c.Z, ErrRegionNotLoaded)
	}
	if m.IsAir() {
		s.pending[c] = nil
		return nil
	}
	dup := m.Clone()
	s.pending[c] = &dup
	return nil
}

// PendingWrites reports how many buffered block writes await a Flush.
func (s *Session) PendingWrites() int {
	return len(s.pending)
}

// Flush commits every buffered write in one transaction.
func (s *Session) Flush() error {
	if len(s.pending) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("flush world: %w", err)
	}
	for c, m := range s.pending {
		if m == nil {
			_, err = tx.Exec(`DELETE FROM blocks WHERE x = ? AND y = ? AND z = ?`, c.X, c.Y, c.Z)
		} else {
			var props string
			props, err = encodeProps(m.Properties)
			if err == nil {
				_, err = tx.Exec(
					`INSERT OR REPLACE INTO blocks (x, y, z, name, props) VALUES (?, ?, ?, ?, ?)`,
					c.X, c.Y, c.Z, m.Name, props)
			}
		}
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("flush block (%d,%d,%d): %w", c.X, c.Y, c.Z, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("flush world: %w", err)
	}
	s.pending = make(map[BlockCoord]*Material)
	return nil
}

// Close flushes buffered writes and releases the database.
func (s *Session) Close() error {
	flushErr := s.Flush()
	closeErr := s.db.Close()
	if flushErr != nil {
		return flushErr
	}
	if closeErr != nil {
		return fmt.Errorf("close world %s: %w", s.path, closeErr)
	}
	return nil
}

// PlayerPosition returns the stored player block position and dimension.
func (s *Session) PlayerPosition() (BlockCoord, string, error) {
	var pos BlockCoord
	for key, dst := range map[string]*int{"player_x": &pos.X, "player_y": &pos.Y, "player_z": &pos.Z} {
		raw, err := s.metaValue(key)
		if err != nil {
			return BlockCoord{}, "", err
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return BlockCoord{}, "", fmt.Errorf("meta %s: %w", key, err)
		}
		*dst = v
	}
	dim, err := s.metaValue("dimension")
	if err != nil {
		return BlockCoord{}, "", err
	}
	return pos, dim, nil
}

// SetPlayerPosition stores the player block position and dimension.
func (s *Session) SetPlayerPosition(pos BlockCoord, dimension string) error {
	entries := map[string]string{
		"player_x":  strconv.Itoa(pos.X),
		"player_y":  strconv.Itoa(pos.Y),
		"player_z":  strconv.Itoa(pos.Z),
		"dimension": dimension,
	}
	for key, value := range entries {
		if _, err := s.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value); err != nil {
			return fmt.Errorf("store meta %s: %w", key, err)
		}
	}
	return nil
}

func (s *Session) metaValue(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("meta %s not recorded", key)
	}
	if err != nil {
		return "", fmt.Errorf("read meta %s: %w", key, err)
	}
	return value, nil
}

func encodeProps(props map[string]string) (string, error) {
	if len(props) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(props)
	if err != nil {
		return "", fmt.Errorf("encode properties: %w", err)
	}
	return string(data), nil
}

func decodeMaterial(name, props string) (Material, error) {
	m := Material{Name: name}
	if props != "" && props != "{}" {
		if err := json.Unmarshal([]byte(props), &m.Properties); err != nil {
			return Material{}, fmt.Errorf("decode properties for %s: %w", name, err)
		}
	}
	return m, nil
}

func floorDiv(value, size int) int {
	if size <= 0 {
		return 0
	}
	if value >= 0 {
		return value / size
	}
	return -((-value - 1) / size) - 1
}
