package world

import (
	"fmt"

	"voxelforge/internal/config"
)

// CatalogClassifier classifies blocks from configured material catalogs.
// Deep water is detected by probing consecutive water blocks downward from
// the inspected coordinate.
type CatalogClassifier struct {
	store          BlockStore
	vegetation     map[string]struct{}
	structures     map[string]struct{}
	water          map[string]struct{}
	deepWaterDepth int
}

func NewCatalogClassifier(store BlockStore, cfg config.MaterialsConfig) *CatalogClassifier {
	return &CatalogClassifier{
		store:          store,
		vegetation:     nameSet(cfg.Vegetation),
		structures:     nameSet(cfg.Structures),
		water:          nameSet(cfg.Water),
		deepWaterDepth: cfg.DeepWaterDepth,
	}
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func (c *CatalogClassifier) Classify(coord BlockCoord) (ColumnClass, error) {
	material, err := c.store.Block(coord)
	if err != nil {
		return ClassOpen, fmt.Errorf("classify block: %w", err)
	}
	if _, ok := c.structures[material.Name]; ok {
		return ClassStructure, nil
	}
	if _, ok := c.water[material.Name]; ok {
		depth, err := c.waterDepth(coord)
		if err != nil {
			return ClassOpen, err
		}
		if depth >= c.deepWaterDepth {
			return ClassWater, nil
		}
	}
	return ClassOpen, nil
}

// waterDepth counts consecutive water blocks from coord downward, stopping
// once the configured threshold is reached.
func (c *CatalogClassifier) waterDepth(coord BlockCoord) (int, error) {
	depth := 0
	for depth < c.deepWaterDepth {
		material, err := c.store.Block(coord.Column().At(coord.Y - depth))
		if err != nil {
			return 0, fmt.Errorf("probe water depth: %w", err)
		}
		if _, ok := c.water[material.Name]; !ok {
			break
		}
		depth++
	}
	return depth, nil
}

func (c *CatalogClassifier) IsVegetation(m Material) bool {
	_, ok := c.vegetation[m.Name]
	return ok
}
