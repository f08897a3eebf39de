//go:build ebiten

package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"pixelphys/internal/core"
	"pixelphys/internal/phys"
	"pixelphys/internal/render"
	"pixelphys/internal/sand"
)

// brushKeys maps the digit row onto paintable kinds, matching the classic
// powder-toy ordering: 1=Sand ... 0=Fuse.
var brushKeys = map[ebiten.Key]sand.KindID{
	ebiten.KeyDigit1: sand.Sand,
	ebiten.KeyDigit2: sand.Water,
	ebiten.KeyDigit3: sand.Oil,
	ebiten.KeyDigit4: sand.Wood,
	ebiten.KeyDigit5: sand.Fire,
	ebiten.KeyDigit6: sand.Smoke,
	ebiten.KeyDigit7: sand.Gunpowder,
	ebiten.KeyDigit8: sand.Acid,
	ebiten.KeyDigit9: sand.Cotton,
	ebiten.KeyDigit0: sand.Fuse,
}

// Game adapts the simulation and physics bridge to the ebiten.Game interface.
type Game struct {
	world  *sand.World
	bridge *phys.Bridge

	painter  *render.GridPainter
	palette  []color.RGBA
	snapshot []sand.CellView

	step  *core.FixedStep
	scale int

	paused       bool
	tickOnce     bool
	showContours bool

	brush  sand.KindID
	radius float64
	rng    *core.RNG
}

// New constructs a Game. The bridge may be nil to run the sand simulation
// without rigid bodies.
func New(world *sand.World, bridge *phys.Bridge, scale, tps int, seed int64) *Game {
	size := world.Size()
	return &Game{
		world:   world,
		bridge:  bridge,
		painter: render.NewGridPainter(size.W, size.H),
		palette: render.Palette(),
		step:    core.NewFixedStep(tps),
		scale:   scale,
		paused:  true,
		brush:   sand.Sand,
		radius:  5,
		rng:     core.NewRNG(seed),
	}
}

// Update handles input and advances the simulation at the configured rate.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		g.step.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.showContours = !g.showContours
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.world.Reset()
	}
	for key, kind := range brushKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.brush = kind
		}
	}
	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		g.radius += wheelY
		if g.radius < 1 {
			g.radius = 1
		}
		if g.radius > 100 {
			g.radius = 100
		}
	}

	g.paint()

	if !g.paused || g.tickOnce {
		for g.step.ShouldStep() || g.tickOnce {
			g.world.Step()
			if g.bridge != nil {
				g.bridge.Step(g.world.SolidMask())
			}
			if g.tickOnce {
				g.tickOnce = false
				break
			}
		}
	}
	return nil
}

// paint applies the brush while a mouse button is held. Left paints the
// selected kind, right erases to Air.
func (g *Game) paint() {
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if !left && !right {
		return
	}
	kind := g.brush
	if right {
		kind = sand.Air
	}
	mx, my := ebiten.CursorPosition()
	size := g.world.Size()
	x := mx / g.scale
	y := size.H - 1 - my/g.scale
	g.world.Grid().Paint(x, y, g.radius, kind, g.rng)
}

// Draw renders the readout, optional contour overlay, and status line.
func (g *Game) Draw(screen *ebiten.Image) {
	g.snapshot = g.world.Readout(g.snapshot)
	g.painter.Blit(screen, g.snapshot, g.palette, g.scale)

	if g.showContours && g.bridge != nil {
		g.drawContours(screen)
	}

	kind, _ := sand.KindOf(g.brush)
	status := fmt.Sprintf("tick %d  brush %s r=%.0f", g.world.Tick(), kind.Name, g.radius)
	if g.paused {
		status += "  [paused]"
	}
	ebitenutil.DebugPrint(screen, status)
}

// drawContours strokes the most recent contour loops in screen space.
func (g *Game) drawContours(screen *ebiten.Image) {
	size := g.world.Size()
	toScreen := func(p core.Vec2) (float32, float32) {
		return float32(p.X * float64(g.scale)), float32((float64(size.H) - p.Y) * float64(g.scale))
	}
	line := color.RGBA{R: 255, G: 255, B: 255, A: 200}
	for _, c := range g.bridge.Contours() {
		for i := range c {
			x0, y0 := toScreen(c[i])
			x1, y1 := toScreen(c[(i+1)%len(c)])
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, line, false)
		}
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.world.Size()
	return s.W * g.scale, s.H * g.scale
}
