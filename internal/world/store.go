package world

import "errors"

// ErrRegionNotLoaded reports a read or write touching a part of the world
// that is not resident in the persisted save. Callers see it unmodified;
// nothing in the engine retries or swallows it.
var ErrRegionNotLoaded = errors.New("world region not loaded")

// BlockStore is the block-level view of a persisted world.
type BlockStore interface {
	Block(BlockCoord) (Material, error)
	SetBlock(BlockCoord, Material) error
}

// ColumnClass is the coarse passability classification of a column's
// surface block.
type ColumnClass int

const (
	ClassOpen ColumnClass = iota
	ClassStructure
	ClassWater
)

func (c ColumnClass) String() string {
	switch c {
	case ClassStructure:
		return "structure"
	case ClassWater:
		return "water"
	default:
		return "open"
	}
}

// Classifier is the injected block-classification capability. Scanning and
// obstacle building depend on this interface only, never on a concrete
// block catalog.
type Classifier interface {
	// Classify inspects the block at the coordinate (normally a column's
	// surface block) and reports its passability class.
	Classify(BlockCoord) (ColumnClass, error)
	// IsVegetation reports whether the material is plant matter a ground
	// scan should see through.
	IsVegetation(Material) bool
}

// NameResolver canonicalizes user-supplied material names. Unknown names
// pass through unchanged.
type NameResolver interface {
	Canonical(name string) string
}
