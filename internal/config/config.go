package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures the tunable parameters for terrain scanning, sculpting,
// path planning, and block classification.
type Config struct {
	Scanner     ScannerConfig     `yaml:"scanner"`
	Sculptor    SculptorConfig    `yaml:"sculptor"`
	Pathfinding PathfindingConfig `yaml:"pathfinding"`
	Materials   MaterialsConfig   `yaml:"materials"`
}

type ScannerConfig struct {
	// ProbeTop and ProbeBottom bound the vertical range a column probe walks.
	ProbeTop    int `yaml:"probeTop"`
	ProbeBottom int `yaml:"probeBottom"`
}

type SculptorConfig struct {
	// FillMaterial is placed when raising terrain toward a flatten target.
	FillMaterial string `yaml:"fillMaterial"`
}

type PathfindingConfig struct {
	MaxStep      int     `yaml:"maxStep"`      // largest traversable elevation change between neighbors
	SlopePenalty float64 `yaml:"slopePenalty"` // move cost added per block of elevation change
	Clearance    int     `yaml:"clearance"`    // vertical offset applied when lifting a route to 3D
}

type MaterialsConfig struct {
	Vegetation     []string          `yaml:"vegetation"`
	Structures     []string          `yaml:"structures"`
	Water          []string          `yaml:"water"`
	DeepWaterDepth int               `yaml:"deepWaterDepth"` // consecutive water blocks that make a column impassable
	Aliases        map[string]string `yaml:"aliases"`
}

// Load reads configuration from a YAML file if provided. An empty path
// returns defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Scanner: ScannerConfig{
			ProbeTop:    319,
			ProbeBottom: -64,
		},
		Sculptor: SculptorConfig{
			FillMaterial: "dirt",
		},
		Pathfinding: PathfindingConfig{
			MaxStep:      1,
			SlopePenalty: 2.0,
			Clearance:    1,
		},
		Materials: MaterialsConfig{
			Vegetation: []string{
				"oak_leaves", "birch_leaves", "spruce_leaves", "jungle_leaves",
				"acacia_leaves", "dark_oak_leaves", "azalea_leaves",
				"oak_log", "birch_log", "spruce_log",
				"short_grass", "tall_grass", "fern", "large_fern",
				"dandelion", "poppy", "oxeye_daisy", "cornflower",
				"sugar_cane", "sweet_berry_bush", "vine", "bamboo",
				"brown_mushroom", "red_mushroom", "dead_bush", "cactus",
			},
			Structures: []string{
				"oak_planks", "spruce_planks", "birch_planks",
				"cobblestone", "stone_bricks", "bricks", "smooth_stone",
				"deepslate_bricks", "polished_andesite", "polished_diorite",
				"glass", "glass_pane", "iron_block", "quartz_pillar",
				"oak_door", "oak_stairs", "oak_slab", "oak_fence",
			},
			Water: []string{
				"water",
			},
			DeepWaterDepth: 2,
			Aliases: map[string]string{
				"grass":       "grass_block",
				"wood":        "oak_planks",
				"wood_planks": "oak_planks",
				"plank":       "oak_planks",
				"planks":      "oak_planks",
				"log":         "oak_log",
				"leaves":      "oak_leaves",
				"cobble":      "cobblestone",
				"stone_brick": "stone_bricks",
				"glass_panel": "glass_pane",
				"slab":        "oak_slab",
				"stairs":      "oak_stairs",
			},
		},
	}
}

func (c *Config) Validate() error {
	if c.Scanner.ProbeTop <= c.Scanner.ProbeBottom {
		return fmt.Errorf("scanner probe range inverted: top %d, bottom %d", c.Scanner.ProbeTop, c.Scanner.ProbeBottom)
	}
	if c.Sculptor.FillMaterial == "" {
		return fmt.Errorf("sculptor fill material must not be empty")
	}
	if c.Pathfinding.MaxStep < 0 {
		return fmt.Errorf("pathfinding max step must not be negative")
	}
	if c.Pathfinding.SlopePenalty < 0 {
		return fmt.Errorf("pathfinding slope penalty must not be negative")
	}
	if c.Materials.DeepWaterDepth < 1 {
		return fmt.Errorf("deep water depth must be at least 1")
	}
	return nil
}
