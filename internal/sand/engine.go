package sand

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"pixelphys/internal/core"
)

// Candidate offsets per kind family, searched in order. A fair coin flips the
// x sign per cell to remove chirality bias.
var (
	powderOffsets = [][2]int{{0, -1}, {1, -1}, {-1, -1}}
	liquidOffsets = [][2]int{{0, -1}, {2, -1}, {-2, -1}, {1, -1}, {-1, -1}, {2, 0}, {-2, 0}, {1, 0}, {-1, 0}}
	smokeOffsets  = [][2]int{{0, 1}, {1, 1}, {-1, 1}, {1, 0}, {-1, 0}}

	mooreOffsets = [][2]int{{-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}}
)

const smokeFromFireChance = 0.001

// Step advances the world by one tick.
//
// The grid is partitioned into ChunkSize² chunks processed in four waves by
// chunk-coordinate parity. Within a wave no two active chunks are adjacent,
// so a swap (radius ≤ 2) stays inside the chunk or reaches only into a chunk
// idle this wave. The wave barrier serializes cross-chunk interactions.
func (w *World) Step() {
	cells := w.grid.cells
	for i := range cells {
		cells[i].updated = false
	}

	cs := w.cfg.ChunkSize
	chunksX := (w.w + cs - 1) / cs
	chunksY := (w.h + cs - 1) / cs

	// Scan order rotates with the tick so no direction accumulates bias.
	dir := int(w.tick % 4)

	waves := [4][2]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for _, wave := range waves {
		var g errgroup.Group
		g.SetLimit(runtime.GOMAXPROCS(0))
		for cy := wave[1]; cy < chunksY; cy += 2 {
			for cx := wave[0]; cx < chunksX; cx += 2 {
				cx, cy := cx, cy
				stream := uint64(w.tick)*uint64(chunksX*chunksY) + uint64(cy*chunksX+cx)
				g.Go(func() error {
					w.tickChunk(cx*cs, cy*cs, dir, w.noiseFor(stream))
					return nil
				})
			}
		}
		g.Wait()
	}

	w.refreshSolidMask()
	w.tick++
}

// tickChunk applies the per-cell rule to every cell of one chunk in the scan
// order selected for this tick.
func (w *World) tickChunk(x0, y0, dir int, noise core.Noise) {
	x1, y1 := x0+w.cfg.ChunkSize, y0+w.cfg.ChunkSize
	if x1 > w.w {
		x1 = w.w
	}
	if y1 > w.h {
		y1 = w.h
	}
	switch dir {
	case 0:
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				w.tickCell(x, y, noise)
			}
		}
	case 1:
		for y := y0; y < y1; y++ {
			for x := x1 - 1; x >= x0; x-- {
				w.tickCell(x, y, noise)
			}
		}
	case 2:
		for y := y1 - 1; y >= y0; y-- {
			for x := x1 - 1; x >= x0; x-- {
				w.tickCell(x, y, noise)
			}
		}
	default:
		for y := y1 - 1; y >= y0; y-- {
			for x := x0; x < x1; x++ {
				w.tickCell(x, y, noise)
			}
		}
	}
}

// tickCell dispatches the rule for one cell. The updated flag guards every
// cell against a second visit within the same tick.
func (w *World) tickCell(x, y int, noise core.Noise) {
	c := w.grid.cell(x, y)
	if c.updated {
		return
	}
	c.updated = true

	k := c.kind
	switch k {
	case Fire:
		k = c.secondary
		w.updateFire(x, y, noise)
		if c.kind != Fire {
			return // burned out this tick
		}
	case Acid:
		w.updateAcid(x, y, noise)
	}

	switch k {
	case Sand, Gunpowder:
		w.updateMovable(k, x, y, powderOffsets, noise)
	case Water, Oil, Acid:
		w.updateMovable(k, x, y, liquidOffsets, noise)
	case Smoke:
		w.updateMovable(k, x, y, smokeOffsets, noise)
	}
}

// updateMovable picks the most density-preferred candidate among the offsets
// and swaps with probability driven by the density ratio: dissimilar
// densities swap almost always, near-equal ones rarely.
func (w *World) updateMovable(k KindID, x, y int, offsets [][2]int, noise core.Noise) {
	t := kinds[k]
	preferDown := t.Density > kinds[Air].Density

	var swap *Cell
	best := 0.0
	if preferDown {
		best = math.Inf(1)
	}

	inverted := noise.Float64() > 0.5
	for _, off := range offsets {
		sx := x + off[0]
		if inverted {
			sx = x - off[0]
		}
		sy := y + off[1]
		if !w.grid.InBounds(sx, sy) {
			continue
		}
		candidate := w.grid.cell(sx, sy)
		if !candidate.movable() || (t.Solid && kinds[candidate.kind].Solid) {
			continue
		}
		d := candidate.density()
		if (preferDown && d < best) || (!preferDown && d > best) {
			best = d
			swap = candidate
		}
	}
	if swap == nil {
		return
	}

	rel := t.Density / best
	if rel > 1 {
		rel = 1 / rel
	}
	if noise.Float64() > rel/2 {
		self := w.grid.cell(x, y)
		*self, *swap = *swap, *self
		self.updated = true
	}
}

// updateFire advances a burning cell: it ages, tries to ignite one Moore
// neighbour, occasionally smokes into Air, and reverts to Air once its
// secondary's burn time is spent.
func (w *World) updateFire(x, y int, noise core.Noise) {
	c := w.grid.cell(x, y)
	c.lifetime++

	off := mooreOffsets[int(noise.Float64()*float64(len(mooreOffsets)))]
	nx, ny := x+off[0], y+off[1]
	if w.grid.InBounds(nx, ny) {
		n := w.grid.cell(nx, ny)
		if noise.Float64() < kinds[n.kind].Flammability {
			n.setFire(n.kind)
			// don't let the neighbour spread this tick
			n.updated = true
		} else if n.kind == Air && noise.Float64() < smokeFromFireChance {
			n.setKind(Smoke)
		}
	}

	if c.lifetime > kinds[c.secondary].BurnTime {
		c.setKind(Air)
	}
}

// updateAcid gives one Moore neighbour a chance to dissolve into Air.
func (w *World) updateAcid(x, y int, noise core.Noise) {
	off := mooreOffsets[int(noise.Float64()*float64(len(mooreOffsets)))]
	nx, ny := x+off[0], y+off[1]
	if !w.grid.InBounds(nx, ny) {
		return
	}
	n := w.grid.cell(nx, ny)
	if noise.Float64() < kinds[n.kind].Acidability {
		n.updated = true
		n.setKind(Air)
	}
}
