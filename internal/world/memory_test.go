package world

import (
	"errors"
	"testing"
)

func TestMemoryStoreReadsAirByDefault(t *testing.T) {
	store := NewMemoryStore(RectAround(ColumnCoord{}, 4))
	m, err := store.Block(BlockCoord{X: 1, Y: 64, Z: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.IsAir() {
		t.Fatalf("unwritten block should read as air, got %q", m.Name)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(RectAround(ColumnCoord{}, 4))
	want := NewMaterial("oak_stairs").WithProperty("facing", "north")
	c := BlockCoord{X: 2, Y: 70, Z: -3}

	if err := store.SetBlock(c, want); err != nil {
		t.Fatalf("set block: %v", err)
	}
	got, err := store.Block(c)
	if err != nil {
		t.Fatalf("read block: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestMemoryStoreAirClearsBlocks(t *testing.T) {
	store := NewMemoryStore(RectAround(ColumnCoord{}, 4))
	c := BlockCoord{X: 0, Y: 64, Z: 0}
	if err := store.SetBlock(c, NewMaterial("stone")); err != nil {
		t.Fatalf("set block: %v", err)
	}
	if err := store.SetBlock(c, Air()); err != nil {
		t.Fatalf("clear block: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected store to be empty after clearing, got %d blocks", store.Len())
	}
}

func TestMemoryStoreRejectsUnresidentColumns(t *testing.T) {
	store := NewMemoryStore(RectAround(ColumnCoord{}, 2))
	outside := BlockCoord{X: 3, Y: 64, Z: 0}

	if _, err := store.Block(outside); !errors.Is(err, ErrRegionNotLoaded) {
		t.Fatalf("expected ErrRegionNotLoaded on read, got %v", err)
	}
	if err := store.SetBlock(outside, NewMaterial("stone")); !errors.Is(err, ErrRegionNotLoaded) {
		t.Fatalf("expected ErrRegionNotLoaded on write, got %v", err)
	}
}

func TestMemoryStoreCopiesMaterialOnWrite(t *testing.T) {
	store := NewMemoryStore(RectAround(ColumnCoord{}, 2))
	m := NewMaterial("furnace").WithProperty("lit", "false")
	c := BlockCoord{X: 0, Y: 64, Z: 0}
	if err := store.SetBlock(c, m); err != nil {
		t.Fatalf("set block: %v", err)
	}

	m.Properties["lit"] = "true"
	got, err := store.Block(c)
	if err != nil {
		t.Fatalf("read block: %v", err)
	}
	if got.Properties["lit"] != "false" {
		t.Fatalf("stored material should be isolated from caller mutation, got %v", got.Properties)
	}
}
