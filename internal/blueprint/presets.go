package blueprint

import "fmt"

// House returns the preset blueprint for a simple timber house of the
// given footprint: cobblestone foundation, plank shell with log corners,
// slab roof, door, windows, and basic furnishings.
func House(width, height, depth int) (*Blueprint, error) {
	if width < 5 || height < 4 || depth < 5 {
		return nil, fmt.Errorf("%w: house needs at least a 5x4x5 shell, got %dx%dx%d",
			ErrInvalidBlueprint, width, height, depth)
	}
	w, h, d := width-1, height-1, depth-1
	doorZ := depth / 2

	steps := []Step{
		{Kind: "floor", From: [3]int{0, -1, 0}, To: [3]int{w, -1, d}, Block: "cobblestone"},
		{Kind: "floor", From: [3]int{0, 0, 0}, To: [3]int{w, 0, d}, Block: "oak_planks"},
		{Kind: "walls", From: [3]int{0, 1, 0}, To: [3]int{w, h, d}, Block: "oak_planks", Corner: "oak_log"},
		{Kind: "box", From: [3]int{1, 1, 1}, To: [3]int{w - 1, h, d - 1}, Block: "air"},
		{Kind: "floor", From: [3]int{0, height, 0}, To: [3]int{w, height, d}, Block: "oak_slab",
			Props: map[string]string{"type": "top", "waterlogged": "false"}},
		{Kind: "door", At: [3]int{0, 1, doorZ}, Block: "oak_door", Facing: "west"},
		{Kind: "windows", From: [3]int{0, 2, 0}, To: [3]int{w, 3, d}, Block: "glass_pane", Spacing: 3},
		{Kind: "set", At: [3]int{w - 1, 1, 1}, Block: "crafting_table"},
		{Kind: "set", At: [3]int{w - 1, 1, 2}, Block: "furnace",
			Props: map[string]string{"facing": "west", "lit": "false"}},
		{Kind: "set", At: [3]int{w - 1, 1, d - 1}, Block: "chest",
			Props: map[string]string{"facing": "west", "type": "single", "waterlogged": "false"}},
		{Kind: "bed", At: [3]int{1, 1, d - 1}, Block: "red_bed", Facing: "east"},
		{Kind: "set", At: [3]int{width / 2, h, depth / 2}, Block: "glowstone"},
		{Kind: "set", At: [3]int{-1, 0, doorZ}, Block: "oak_stairs",
			Props: map[string]string{"facing": "east", "half": "bottom", "shape": "straight", "waterlogged": "false"}},
	}
	return &Blueprint{Name: "house", Steps: steps}, nil
}

// Tower returns the preset blueprint for a glass-curtain tower: deepslate
// foundation, stacked floors with iron corner columns, a rimmed rooftop
// and a lightning-rod mast.
func Tower(width, depth, floors, floorHeight int) (*Blueprint, error) {
	if width < 5 || depth < 5 || floors < 1 || floorHeight < 3 {
		return nil, fmt.Errorf("%w: tower needs at least a 5x5 footprint, 1 floor of height 3, got %dx%d floors %d height %d",
			ErrInvalidBlueprint, width, depth, floors, floorHeight)
	}
	w, d := width-1, depth-1
	totalHeight := floors * floorHeight

	steps := []Step{
		{Kind: "box", From: [3]int{-1, -3, -1}, To: [3]int{w + 1, -1, d + 1}, Block: "deepslate_bricks"},
	}
	for fl := 0; fl < floors; fl++ {
		fy := fl * floorHeight
		steps = append(steps,
			Step{Kind: "floor", From: [3]int{1, fy, 1}, To: [3]int{w - 1, fy, d - 1},
				Block: "polished_diorite", Checker: "polished_andesite"},
			Step{Kind: "walls", From: [3]int{0, fy, 0}, To: [3]int{w, fy + floorHeight - 1, d},
				Block: "light_blue_stained_glass", Corner: "iron_block"},
			Step{Kind: "floor", From: [3]int{1, fy + floorHeight - 1, 1}, To: [3]int{w - 1, fy + floorHeight - 1, d - 1},
				Block: "smooth_stone"},
			Step{Kind: "set", At: [3]int{3, fy + floorHeight - 1, 3}, Block: "sea_lantern"},
			Step{Kind: "set", At: [3]int{w - 3, fy + floorHeight - 1, d - 3}, Block: "sea_lantern"},
		)
	}
	steps = append(steps,
		// Rooftop deck, parapet, and mast.
		Step{Kind: "floor", From: [3]int{-1, totalHeight, -1}, To: [3]int{w + 1, totalHeight, d + 1},
			Block: "smooth_stone_slab", Props: map[string]string{"type": "top", "waterlogged": "false"}},
		Step{Kind: "walls", From: [3]int{0, totalHeight + 1, 0}, To: [3]int{w, totalHeight + 1, d},
			Block: "stone_brick_wall"},
		Step{Kind: "cylinder", At: [3]int{width / 2, totalHeight + 1, depth / 2}, Radius: 0, Height: 7,
			Block: "iron_block"},
		Step{Kind: "set", At: [3]int{width / 2, totalHeight + 8, depth / 2}, Block: "sea_lantern"},
		Step{Kind: "set", At: [3]int{width / 2, totalHeight + 9, depth / 2}, Block: "lightning_rod"},
	)
	return &Blueprint{Name: "tower", Steps: steps}, nil
}
