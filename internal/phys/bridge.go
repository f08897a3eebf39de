package phys

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"pixelphys/internal/core"
	"pixelphys/internal/march"
)

// Bridge rebuilds collision geometry from the solid mask every tick. The
// geometry is deliberately stateless across ticks: the pixel world mutates
// freely, so static triangle bodies are created, stepped once, and destroyed
// rather than incrementally maintained. Dynamic bodies persist.
type Bridge struct {
	cfg    Config
	solver Solver
	part   Partition

	dynamics []Body

	mu        sync.Mutex
	contours  []march.Contour
	triangles []Triangle
}

// NewBridge wires a solver and a partition collaborator.
func NewBridge(cfg Config, solver Solver, part Partition) *Bridge {
	if cfg.ChunkSize < 4 {
		cfg.ChunkSize = DefaultConfig().ChunkSize
	}
	return &Bridge{cfg: cfg, solver: solver, part: part}
}

// Step contours the mask chunk-wise, injects one static body per triangle,
// steps the solver once, and tears the static bodies down again. Chunks with
// no rigid-body fixture in their bounding box are skipped.
func (b *Bridge) Step(mask *core.ByteGrid) {
	cs := b.cfg.ChunkSize
	chunksX := (mask.W + cs - 1) / cs
	chunksY := (mask.H + cs - 1) / cs

	var mu sync.Mutex
	var tris []Triangle
	var contours []march.Contour

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for cy := 0; cy < chunksY; cy++ {
		for cx := 0; cx < chunksX; cx++ {
			x0, y0 := cx*cs, cy*cs
			rect := core.Rect{
				Min: core.Vec2{X: float64(x0), Y: float64(y0)},
				Max: core.Vec2{X: float64(x0 + cs), Y: float64(y0 + cs)},
			}
			if !b.solver.QueryAABB(rect) {
				continue
			}
			g.Go(func() error {
				chunkTris, chunkContours := b.chunkGeometry(mask, x0, y0)
				if len(chunkTris) == 0 && len(chunkContours) == 0 {
					return nil
				}
				mu.Lock()
				tris = append(tris, chunkTris...)
				contours = append(contours, chunkContours...)
				mu.Unlock()
				return nil
			})
		}
	}
	g.Wait()

	static := make([]Body, 0, len(tris))
	for _, t := range tris {
		static = append(static, b.solver.CreateStaticBody(t[:]))
	}

	b.solver.Step(b.cfg.TimeStep, b.cfg.VelocityIterations, b.cfg.PositionIterations)

	for _, body := range static {
		b.solver.DestroyBody(body)
	}

	// swap in the outputs for consumers only once the tick is complete
	b.mu.Lock()
	b.contours = contours
	b.triangles = tris
	b.mu.Unlock()
}

// chunkGeometry extracts, simplifies, and triangulates one chunk's contours.
func (b *Bridge) chunkGeometry(mask *core.ByteGrid, x0, y0 int) ([]Triangle, []march.Contour) {
	cs := b.cfg.ChunkSize
	raw := march.ExtractWindow(mask, x0, y0, cs, cs)
	if len(raw) == 0 {
		return nil, nil
	}

	polys := make([]Polygon, 0, len(raw))
	kept := make([]march.Contour, 0, len(raw))
	for _, c := range raw {
		s := march.Simplify(c, b.cfg.Epsilon)
		if len(s) < 3 {
			continue
		}
		kept = append(kept, s)
		polys = append(polys, Polygon{
			Verts: []core.Vec2(s),
			Hole:  SignedArea(s) < 0,
		})
	}
	if len(polys) == 0 {
		return nil, nil
	}
	return b.part.Triangulate(polys), kept
}

// SpawnDynamic creates a persistent dynamic body tracked until Teardown.
func (b *Bridge) SpawnDynamic(pos core.Vec2, verts []core.Vec2) Body {
	body := b.solver.CreateDynamicBody(pos, verts)
	b.dynamics = append(b.dynamics, body)
	return body
}

// AddWorldFrame installs a static chain loop around the world border so
// dynamic bodies cannot leave the grid.
func (b *Bridge) AddWorldFrame(w, h int) Body {
	frame := []core.Vec2{
		{X: 0, Y: 0},
		{X: 0, Y: float64(h)},
		{X: float64(w), Y: float64(h)},
		{X: float64(w), Y: 0},
	}
	body := b.solver.CreateStaticLoop(frame)
	b.dynamics = append(b.dynamics, body)
	return body
}

// Teardown destroys every persistent body the bridge created.
func (b *Bridge) Teardown() {
	for _, body := range b.dynamics {
		b.solver.DestroyBody(body)
	}
	b.dynamics = nil
}

// Contours returns the contour list from the most recent Step.
func (b *Bridge) Contours() []march.Contour {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.contours
}

// Triangles returns the triangle list from the most recent Step.
func (b *Bridge) Triangles() []Triangle {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.triangles
}
