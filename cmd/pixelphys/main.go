//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"pixelphys/internal/app"
	"pixelphys/internal/core"
	"pixelphys/internal/phys"
	"pixelphys/internal/sand"
	"pixelphys/internal/scene"
)

func main() {
	var (
		sceneName = flag.String("scene", "dunes", "initial scene name")
		width     = flag.Int("w", 400, "simulation width in cells")
		height    = flag.Int("h", 300, "simulation height in cells")
		chunk     = flag.Int("chunk", 16, "chunk side length")
		scale     = flag.Int("scale", 3, "screen pixels per cell")
		tps       = flag.Int("tps", 60, "simulation ticks per second")
		seed      = flag.Int64("seed", 1337, "rng seed")
		epsilon   = flag.Float64("epsilon", phys.DefaultConfig().Epsilon, "contour simplification tolerance")
		gravity   = flag.Float64("gravity", phys.DefaultConfig().GravityY, "rigid-body gravity")
		bodies    = flag.Bool("bodies", true, "seed a block of dynamic bodies")
	)
	flag.Parse()

	cfg := sand.DefaultConfig()
	cfg.Width = *width
	cfg.Height = *height
	cfg.ChunkSize = *chunk
	cfg.Seed = *seed

	world := sand.NewWithConfig(cfg)
	blob, err := scene.Build(*sceneName, *width, *height, *seed)
	if err != nil {
		log.Fatal(err)
	}
	if err := world.Load(blob); err != nil {
		log.Fatalf("loading scene %q: %v", *sceneName, err)
	}

	bcfg := phys.DefaultConfig()
	bcfg.ChunkSize = *chunk
	bcfg.Epsilon = *epsilon
	bcfg.GravityY = *gravity

	solver := phys.NewSpace(core.Vec2{Y: bcfg.GravityY})
	bridge := phys.NewBridge(bcfg, solver, phys.EarClip{})
	bridge.AddWorldFrame(*width, *height)
	if *bodies {
		seedBodies(bridge, *width, *height)
	}
	defer bridge.Teardown()

	game := app.New(world, bridge, *scale, *tps, *seed)

	ebiten.SetWindowTitle("pixelphys — " + *sceneName)
	ebiten.SetWindowSize(*width**scale, *height**scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

// seedBodies drops a block of small convex quads into the upper part of the
// world so there is something for the pixel terrain to catch.
func seedBodies(bridge *phys.Bridge, w, h int) {
	quad := []core.Vec2{{X: 0, Y: 0}, {X: 10, Y: 5}, {X: 5, Y: 10}, {X: 0, Y: 10}}
	baseX := float64(w) / 4
	baseY := float64(h) / 2
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			pos := core.Vec2{X: baseX + 22*float64(i), Y: baseY + 22*float64(j)}
			if pos.X+12 >= float64(w) || pos.Y+12 >= float64(h) {
				continue
			}
			bridge.SpawnDynamic(pos, quad)
		}
	}
}
