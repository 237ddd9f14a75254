package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"voxelforge/internal/blueprint"
	"voxelforge/internal/config"
	"voxelforge/internal/pathfinding"
	"voxelforge/internal/shapes"
	"voxelforge/internal/template"
	"voxelforge/internal/terrain"
	"voxelforge/internal/world"
	"voxelforge/internal/worldgen"
)

// flushEvery bounds how many buffered block writes accumulate before the
// session is flushed to disk.
const flushEvery = 512

func main() {
	// Optional .env next to the binary may set VOXELFORGE_CONFIG/_WORLD.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	run, ok := commands[command]
	if !ok {
		log.Printf("unknown command %q", command)
		usage()
		os.Exit(1)
	}
	if err := run(args); err != nil {
		log.Fatalf("%s: %v", command, err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: voxelforge <command> [flags]

commands:
  info      print world metadata
  seed      generate fixture terrain around a point
  scan      sample a height map and print its bounds
  flatten   level terrain to a target elevation
  clearveg  remove vegetation above ground level
  path      plan and optionally pave a route
  shape     rasterize a parametric shape into the world
  build     compile and place a blueprint
  capture   save a world region as a template
  place     stamp a template into the world

common flags: -config <yaml>, -world <sqlite file>`)
}

var commands = map[string]func([]string) error{
	"info":     runInfo,
	"seed":     runSeed,
	"scan":     runScan,
	"flatten":  runFlatten,
	"clearveg": runClearVeg,
	"path":     runPath,
	"shape":    runShape,
	"build":    runBuild,
	"capture":  runCapture,
	"place":    runPlace,
}

// env bundles the opened session with the components wired around it.
type env struct {
	cfg      *config.Config
	session  *world.Session
	classify *world.CatalogClassifier
	resolver *world.AliasResolver
	scanner  *terrain.Scanner
	sculptor *terrain.Sculptor
	planner  *pathfinding.Planner
}

// commonFlags registers the flags every command shares, with environment
// fallbacks for scripted use.
func commonFlags(fs *flag.FlagSet) (cfgPath, worldPath *string) {
	cfgPath = fs.String("config", os.Getenv("VOXELFORGE_CONFIG"), "path to YAML configuration")
	worldPath = fs.String("world", os.Getenv("VOXELFORGE_WORLD"), "path to world database")
	return cfgPath, worldPath
}

func openEnv(cfgPath, worldPath string) (*env, error) {
	if worldPath == "" {
		return nil, fmt.Errorf("no world given: pass -world or set VOXELFORGE_WORLD")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	session, err := world.Open(worldPath)
	if err != nil {
		return nil, err
	}

	classify := world.NewCatalogClassifier(session, cfg.Materials)
	scanner := terrain.NewScanner(session, classify, cfg.Scanner)
	e := &env{
		cfg:      cfg,
		session:  session,
		classify: classify,
		resolver: world.NewAliasResolver(cfg.Materials.Aliases),
		scanner:  scanner,
		sculptor: terrain.NewSculptor(scanner, session, classify, world.NewMaterial(cfg.Sculptor.FillMaterial)),
		planner:  pathfinding.NewPlanner(cfg.Pathfinding),
	}
	return e, nil
}

func (e *env) close() {
	if err := e.session.Close(); err != nil {
		log.Printf("close world: %v", err)
	}
}

// apply writes a voxel set to the session in deterministic order, flushing
// every flushEvery blocks.
func (e *env) apply(voxels world.VoxelSet) error {
	placed := 0
	for _, c := range voxels.SortedCoords() {
		if err := e.session.SetBlock(c, voxels[c]); err != nil {
			return err
		}
		placed++
		if e.session.PendingWrites() >= flushEvery {
			if err := e.session.Flush(); err != nil {
				return err
			}
			log.Printf("placed %d/%d blocks", placed, len(voxels))
		}
	}
	if err := e.session.Flush(); err != nil {
		return err
	}
	log.Printf("placed %d blocks", placed)
	return nil
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	cfgPath, worldPath := commonFlags(fs)
	fs.Parse(args)

	e, err := openEnv(*cfgPath, *worldPath)
	if err != nil {
		return err
	}
	defer e.close()

	pos, dim, err := e.session.PlayerPosition()
	if err != nil {
		return err
	}
	fmt.Printf("player: (%d, %d, %d) dimension: %s\n", pos.X, pos.Y, pos.Z, dim)
	return nil
}

func runSeed(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	cfgPath, worldPath := commonFlags(fs)
	x := fs.Int("x", 0, "center x")
	z := fs.Int("z", 0, "center z")
	radius := fs.Int("radius", 64, "half side of the generated square")
	seed := fs.Int64("seed", worldgen.DefaultConfig().Seed, "terrain seed")
	fs.Parse(args)

	e, err := openEnv(*cfgPath, *worldPath)
	if err != nil {
		return err
	}
	defer e.close()

	center := world.ColumnCoord{X: *x, Z: *z}
	rect := world.RectAround(center, *radius)
	if err := e.session.MarkResident(rect); err != nil {
		return err
	}
	genCfg := worldgen.DefaultConfig()
	genCfg.Seed = *seed
	if err := worldgen.Generate(e.session, rect, genCfg); err != nil {
		return err
	}
	if err := e.session.Flush(); err != nil {
		return err
	}

	hm, err := e.scanner.Scan(center, 0, terrain.ScanSurface)
	if err != nil {
		return err
	}
	surface, _ := hm.At(center)
	if err := e.session.SetPlayerPosition(center.At(surface+1), "overworld"); err != nil {
		return err
	}
	log.Printf("seeded %d columns around (%d,%d)", rect.Columns(), *x, *z)
	return nil
}

func runScan(args []string) error {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	cfgPath, worldPath := commonFlags(fs)
	x := fs.Int("x", 0, "center x")
	z := fs.Int("z", 0, "center z")
	radius := fs.Int("radius", 16, "scan radius")
	mode := fs.String("mode", "surface", "scan mode: surface or ground")
	fs.Parse(args)

	scanMode, err := terrain.ModeFromString(*mode)
	if err != nil {
		return err
	}
	e, err := openEnv(*cfgPath, *worldPath)
	if err != nil {
		return err
	}
	defer e.close()

	hm, err := e.scanner.Scan(world.ColumnCoord{X: *x, Z: *z}, *radius, scanMode)
	if err != nil {
		return err
	}
	b := hm.Bounds()
	fmt.Printf("columns: %d\n", hm.Len())
	fmt.Printf("x: [%d, %d]  z: [%d, %d]  elevation: [%d, %d]\n",
		b.MinX, b.MaxX, b.MinZ, b.MaxZ, b.MinY, b.MaxY)
	return nil
}

func runFlatten(args []string) error {
	fs := flag.NewFlagSet("flatten", flag.ExitOnError)
	cfgPath, worldPath := commonFlags(fs)
	x1 := fs.Int("x1", 0, "rect corner x")
	z1 := fs.Int("z1", 0, "rect corner z")
	x2 := fs.Int("x2", 0, "opposite corner x")
	z2 := fs.Int("z2", 0, "opposite corner z")
	targetY := fs.Int("y", 64, "target elevation")
	blend := fs.Int("blend", 0, "blend radius outside the rect")
	fs.Parse(args)

	e, err := openEnv(*cfgPath, *worldPath)
	if err != nil {
		return err
	}
	defer e.close()

	rect := world.NewRect(world.ColumnCoord{X: *x1, Z: *z1}, world.ColumnCoord{X: *x2, Z: *z2})
	ops, err := e.sculptor.Flatten(rect, *targetY, *blend)
	if err != nil {
		return err
	}
	return e.apply(ops)
}

func runClearVeg(args []string) error {
	fs := flag.NewFlagSet("clearveg", flag.ExitOnError)
	cfgPath, worldPath := commonFlags(fs)
	x1 := fs.Int("x1", 0, "rect corner x")
	z1 := fs.Int("z1", 0, "rect corner z")
	x2 := fs.Int("x2", 0, "opposite corner x")
	z2 := fs.Int("z2", 0, "opposite corner z")
	fs.Parse(args)

	e, err := openEnv(*cfgPath, *worldPath)
	if err != nil {
		return err
	}
	defer e.close()

	rect := world.NewRect(world.ColumnCoord{X: *x1, Z: *z1}, world.ColumnCoord{X: *x2, Z: *z2})
	ops, err := e.sculptor.ClearVegetation(rect)
	if err != nil {
		return err
	}
	return e.apply(ops)
}

func runPath(args []string) error {
	fs := flag.NewFlagSet("path", flag.ExitOnError)
	cfgPath, worldPath := commonFlags(fs)
	sx := fs.Int("sx", 0, "start x")
	sz := fs.Int("sz", 0, "start z")
	ex := fs.Int("ex", 0, "end x")
	ez := fs.Int("ez", 0, "end z")
	margin := fs.Int("margin", 8, "extra columns scanned around the endpoints")
	width := fs.Int("width", 1, "route width in blocks")
	pave := fs.String("pave", "", "material to pave the route with (optional)")
	fs.Parse(args)

	e, err := openEnv(*cfgPath, *worldPath)
	if err != nil {
		return err
	}
	defer e.close()

	start := world.ColumnCoord{X: *sx, Z: *sz}
	end := world.ColumnCoord{X: *ex, Z: *ez}
	rect := world.NewRect(start, end).Expand(*margin)

	hm, err := e.scanner.ScanRect(rect, terrain.ScanGround)
	if err != nil {
		return err
	}
	grid, err := terrain.BuildObstacles(hm, e.classify, e.cfg.Pathfinding.MaxStep)
	if err != nil {
		return err
	}
	route, err := e.planner.Plan(start, end, grid, hm, *width)
	if err != nil {
		return err
	}
	log.Printf("route found: %d cells", len(route))

	if *pave == "" {
		for _, c := range route {
			fmt.Printf("%d %d %d\n", c.X, c.Y, c.Z)
		}
		return nil
	}
	surfacing := world.NewMaterial(e.resolver.Canonical(*pave))
	ops := make(world.VoxelSet, len(route))
	for _, c := range route {
		// Replace the surface block underneath the walkable clearance.
		ops.Place(world.BlockCoord{X: c.X, Y: c.Y - e.cfg.Pathfinding.Clearance, Z: c.Z}, surfacing)
	}
	return e.apply(ops)
}

func runShape(args []string) error {
	fs := flag.NewFlagSet("shape", flag.ExitOnError)
	cfgPath, worldPath := commonFlags(fs)
	kind := fs.String("kind", "", "circle, cylinder, cone, arch, pitched_roof, or box")
	x := fs.Int("x", 0, "anchor x")
	y := fs.Int("y", 64, "anchor y")
	z := fs.Int("z", 0, "anchor z")
	x2 := fs.Int("x2", 0, "second corner x (box, roof)")
	y2 := fs.Int("y2", 0, "second corner y (box, roof, cylinder)")
	z2 := fs.Int("z2", 0, "second corner z (box, roof)")
	radius := fs.Int("radius", 0, "radius (circle, cylinder, cone)")
	height := fs.Int("height", 0, "height (cone, arch)")
	span := fs.Int("span", 0, "span (arch)")
	length := fs.Int("length", 1, "extrusion length (arch)")
	thickness := fs.Int("thickness", 1, "curve thickness (arch)")
	axis := fs.String("axis", "z", "axis (arch, pitched_roof)")
	fill := fs.Bool("fill", false, "fill the shape (circle, cone)")
	hollow := fs.Bool("hollow", false, "hollow variant (cylinder, box)")
	block := fs.String("block", "", "material name")
	slab := fs.String("slab", "oak_slab", "ridge material (pitched_roof)")
	fs.Parse(args)

	e, err := openEnv(*cfgPath, *worldPath)
	if err != nil {
		return err
	}
	defer e.close()

	shapeKind, err := shapes.ParseKind(*kind)
	if err != nil {
		return err
	}
	anchor := world.BlockCoord{X: *x, Y: *y, Z: *z}
	voxels, err := shapes.Rasterize(shapes.Descriptor{
		Kind:      shapeKind,
		Center:    anchor,
		Base:      anchor,
		Corner1:   anchor,
		Corner2:   world.BlockCoord{X: *x2, Y: *y2, Z: *z2},
		Radius:    *radius,
		Height:    *height,
		Span:      *span,
		Length:    *length,
		Thickness: *thickness,
		Axis:      shapes.Axis(*axis),
		Fill:      *fill,
		Hollow:    *hollow,
		YMin:      *y,
		YMax:      *y2,
		Material:  world.NewMaterial(e.resolver.Canonical(*block)),
		Ridge:     world.NewMaterial(e.resolver.Canonical(*slab)),
	})
	if err != nil {
		return err
	}
	return e.apply(voxels)
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	cfgPath, worldPath := commonFlags(fs)
	file := fs.String("file", "", "blueprint JSON document")
	preset := fs.String("preset", "", "preset blueprint: house or tower")
	width := fs.Int("w", 7, "preset width")
	height := fs.Int("h", 5, "preset height (house)")
	depth := fs.Int("d", 7, "preset depth")
	floors := fs.Int("floors", 8, "preset floors (tower)")
	floorHeight := fs.Int("floorheight", 5, "preset floor height (tower)")
	x := fs.Int("x", 0, "anchor x (defaults to player position)")
	y := fs.Int("y", 0, "anchor y")
	z := fs.Int("z", 0, "anchor z")
	fs.Parse(args)

	e, err := openEnv(*cfgPath, *worldPath)
	if err != nil {
		return err
	}
	defer e.close()

	var bp *blueprint.Blueprint
	switch {
	case *file != "":
		data, err := os.ReadFile(*file)
		if err != nil {
			return fmt.Errorf("read blueprint: %w", err)
		}
		bp, err = blueprint.Parse(data)
		if err != nil {
			return err
		}
	case *preset == "house":
		bp, err = blueprint.House(*width, *height, *depth)
	case *preset == "tower":
		bp, err = blueprint.Tower(*width, *depth, *floors, *floorHeight)
	default:
		return fmt.Errorf("pass -file or -preset house|tower")
	}
	if err != nil {
		return err
	}

	base := world.BlockCoord{X: *x, Y: *y, Z: *z}
	if !flagsSet(fs, "x", "y", "z") {
		pos, _, err := e.session.PlayerPosition()
		if err != nil {
			return fmt.Errorf("no anchor given and %w", err)
		}
		// Build beside the player rather than on top of them.
		base = world.BlockCoord{X: pos.X + 5, Y: pos.Y, Z: pos.Z}
	}

	voxels, err := bp.Compile(base, e.resolver)
	if err != nil {
		return err
	}
	log.Printf("blueprint %s: %d blocks at (%d,%d,%d)", bp.Name, len(voxels), base.X, base.Y, base.Z)
	return e.apply(voxels)
}

func runCapture(args []string) error {
	fs := flag.NewFlagSet("capture", flag.ExitOnError)
	cfgPath, worldPath := commonFlags(fs)
	x1 := fs.Int("x1", 0, "corner x")
	y1 := fs.Int("y1", 0, "corner y")
	z1 := fs.Int("z1", 0, "corner z")
	x2 := fs.Int("x2", 0, "opposite corner x")
	y2 := fs.Int("y2", 0, "opposite corner y")
	z2 := fs.Int("z2", 0, "opposite corner z")
	out := fs.String("out", "", "output file (.yml or .yml.zst)")
	name := fs.String("name", "", "template name")
	fs.Parse(args)

	if *out == "" {
		return fmt.Errorf("pass -out")
	}
	e, err := openEnv(*cfgPath, *worldPath)
	if err != nil {
		return err
	}
	defer e.close()

	bounds := world.NewBounds(
		world.BlockCoord{X: *x1, Y: *y1, Z: *z1},
		world.BlockCoord{X: *x2, Y: *y2, Z: *z2},
	)
	tpl, err := template.Capture(e.session, bounds.Min, bounds, *name)
	if err != nil {
		return err
	}
	if err := tpl.Save(*out); err != nil {
		return err
	}
	log.Printf("captured %d blocks to %s", len(tpl.Blocks), *out)
	return nil
}

func runPlace(args []string) error {
	fs := flag.NewFlagSet("place", flag.ExitOnError)
	cfgPath, worldPath := commonFlags(fs)
	file := fs.String("file", "", "template file")
	x := fs.Int("x", 0, "anchor x")
	y := fs.Int("y", 64, "anchor y")
	z := fs.Int("z", 0, "anchor z")
	rotate := fs.Int("rotate", 0, "clockwise rotation in degrees (0, 90, 180, 270)")
	mirror := fs.Bool("mirror", false, "mirror across the YZ plane before placing")
	fs.Parse(args)

	if *file == "" {
		return fmt.Errorf("pass -file")
	}
	e, err := openEnv(*cfgPath, *worldPath)
	if err != nil {
		return err
	}
	defer e.close()

	tpl, err := template.Load(*file)
	if err != nil {
		return err
	}
	if *rotate != 0 {
		tpl, err = tpl.Rotate(*rotate)
		if err != nil {
			return err
		}
	}
	if *mirror {
		tpl = tpl.Mirror()
	}
	return e.apply(tpl.VoxelSet(world.BlockCoord{X: *x, Y: *y, Z: *z}))
}

func flagsSet(fs *flag.FlagSet, names ...string) bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	for _, name := range names {
		if set[name] {
			return true
		}
	}
	return false
}
