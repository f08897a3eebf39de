// Package scene builds initial-state blobs for the simulation: kind ids in
// top-left-origin row-major order, the same format World.Load ingests.
package scene

import (
	"fmt"
	"sort"

	"github.com/aquilax/go-perlin"

	"pixelphys/internal/sand"
)

// Builder produces a w×h kind-id blob for a seed.
type Builder func(w, h int, seed int64) []byte

var scenes = map[string]Builder{
	"empty":     buildEmpty,
	"dunes":     buildDunes,
	"basin":     buildBasin,
	"powderkeg": buildPowderkeg,
}

// Build renders the named scene. Unknown names list the available scenes.
func Build(name string, w, h int, seed int64) ([]byte, error) {
	b, ok := scenes[name]
	if !ok {
		return nil, fmt.Errorf("scene %q not found (have %v)", name, Names())
	}
	return b(w, h, seed), nil
}

// Names returns the registered scene names sorted.
func Names() []string {
	out := make([]string, 0, len(scenes))
	for name := range scenes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// blob wraps the top-left-origin buffer with a bottom-origin setter so
// builders can think in world coordinates (y=0 at the bottom).
type blob struct {
	w, h int
	data []byte
}

func newBlob(w, h int) *blob {
	return &blob{w: w, h: h, data: make([]byte, w*h)}
}

func (b *blob) set(x, y int, id sand.KindID) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return
	}
	b.data[(b.h-1-y)*b.w+x] = byte(id)
}

func buildEmpty(w, h int, seed int64) []byte {
	return newBlob(w, h).data
}

// buildDunes rolls a perlin heightfield of sand with oil pockets trapped in
// the dunes and water pooled over the low ground.
func buildDunes(w, h int, seed int64) []byte {
	b := newBlob(w, h)
	height := perlin.NewPerlin(2, 2, 3, seed)
	pocket := perlin.NewPerlin(2, 2, 3, seed+1)

	waterLevel := h / 5
	for x := 0; x < w; x++ {
		n := height.Noise2D(float64(x)/float64(w)*4, 0.5)
		ground := int(float64(h) * (0.25 + 0.2*n))
		for y := 0; y < ground && y < h; y++ {
			id := sand.Sand
			if pocket.Noise2D(float64(x)/24, float64(y)/24) > 0.35 {
				id = sand.Oil
			}
			b.set(x, y, id)
		}
		for y := ground; y < waterLevel; y++ {
			b.set(x, y, sand.Water)
		}
	}
	return b.data
}

// buildBasin fills a wood container with a water column beside an oil
// column, the classic stratification setup.
func buildBasin(w, h int, seed int64) []byte {
	b := newBlob(w, h)
	x0, x1 := w/6, w-w/6
	y0, y1 := h/8, h-h/4

	for x := x0; x <= x1; x++ {
		b.set(x, y0, sand.Wood)
	}
	for y := y0; y <= y1; y++ {
		b.set(x0, y, sand.Wood)
		b.set(x1, y, sand.Wood)
	}

	mid := (x0 + x1) / 2
	for y := y0 + 1; y < y0+(y1-y0)/2; y++ {
		for x := x0 + 1; x < x1; x++ {
			if x < mid {
				b.set(x, y, sand.Water)
			} else {
				b.set(x, y, sand.Oil)
			}
		}
	}
	return b.data
}

// buildPowderkeg lays a wood floor holding a gunpowder pile, a fuse line
// running to it, cotton stacked nearby, and a fire cell lit at the fuse end.
func buildPowderkeg(w, h int, seed int64) []byte {
	b := newBlob(w, h)
	floor := h / 6
	for x := 0; x < w; x++ {
		b.set(x, floor, sand.Wood)
	}

	pileX, pileW := w/2, w/10
	for dy := 0; dy < pileW; dy++ {
		for dx := -pileW + dy; dx <= pileW-dy; dx++ {
			b.set(pileX+dx, floor+1+dy, sand.Gunpowder)
		}
	}

	for x := w/8 + 1; x < pileX-pileW; x++ {
		b.set(x, floor+1, sand.Fuse)
	}

	for dy := 1; dy <= 4; dy++ {
		for dx := 0; dx < 3; dx++ {
			b.set(w-w/8+dx, floor+dy, sand.Cotton)
		}
	}

	b.set(w/8, floor+1, sand.Fire)
	return b.data
}
