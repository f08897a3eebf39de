package sand

import (
	"fmt"

	"pixelphys/internal/core"
)

// World owns the particle grid, the solid mask derived from it, and the tick
// counter. Step mutates the grid in place; Load, Reset and the Grid's Set and
// Paint helpers write it between ticks. Between ticks readers observe a
// consistent snapshot.
type World struct {
	cfg Config

	w, h  int
	grid  *Grid
	solid *core.ByteGrid

	tick int64

	// noiseFor hands each chunk worker its own noise stream so draws never
	// race across goroutines. Tests may replace it.
	noiseFor func(stream uint64) core.Noise
}

// New returns a world with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a world configured from the provided options.
func NewWithConfig(cfg Config) *World {
	cfg = cfg.normalized()
	w := &World{
		cfg:   cfg,
		w:     cfg.Width,
		h:     cfg.Height,
		grid:  NewGrid(cfg.Width, cfg.Height),
		solid: core.NewByteGrid(cfg.Width, cfg.Height),
	}
	seed := cfg.Seed
	w.noiseFor = func(stream uint64) core.Noise {
		return core.NewStream(seed, stream)
	}
	return w
}

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// Grid exposes the particle grid.
func (w *World) Grid() *Grid { return w.grid }

// SolidMask exposes the byte grid of solid bits refreshed at the end of every
// tick. It is read-only for callers.
func (w *World) SolidMask() *core.ByteGrid { return w.solid }

// Tick returns how many steps the world has advanced.
func (w *World) Tick() int64 { return w.tick }

// ChunkSize returns the configured chunk side length.
func (w *World) ChunkSize() int { return w.cfg.ChunkSize }

// SetNoise replaces the per-chunk noise factory. Useful for scripted sources
// in tests; the stream argument is unique per (tick, chunk).
func (w *World) SetNoise(f func(stream uint64) core.Noise) {
	if f != nil {
		w.noiseFor = f
	}
}

// Reset clears the grid to Air and rewinds the tick counter.
func (w *World) Reset() {
	w.grid.Reset()
	w.solid.Clear()
	w.tick = 0
}

// Load replaces the grid contents from a kind-id blob of length W×H in
// top-left-origin row-major order. Rows are flipped vertically because the
// grid's y=0 is the bottom. Fire cells default their secondary to Oil.
// An unknown id fails the whole load; nothing is committed.
func (w *World) Load(blob []byte) error {
	if len(blob) != w.w*w.h {
		return fmt.Errorf("world load: need %d bytes, got %d", w.w*w.h, len(blob))
	}
	for i, b := range blob {
		if int(b) >= NumKinds() {
			return fmt.Errorf("world load: bad kind id %d at offset %d", b, i)
		}
	}
	for row := 0; row < w.h; row++ {
		y := w.h - 1 - row
		for x := 0; x < w.w; x++ {
			id := KindID(blob[row*w.w+x])
			w.grid.Set(x, y, id, Oil)
		}
	}
	w.refreshSolidMask()
	return nil
}

// refreshSolidMask projects the grid onto the solid byte mask: 1 where the
// cell's effective kind is solid, 0 elsewhere.
func (w *World) refreshSolidMask() {
	cells := w.solid.Cells()
	for y := 0; y < w.h; y++ {
		for x := 0; x < w.w; x++ {
			v := uint8(0)
			if kinds[w.grid.cell(x, y).Effective()].Solid {
				v = 1
			}
			cells[y*w.w+x] = v
		}
	}
}
