package sand

import "pixelphys/internal/core"

// Grid is a dense W×H field of cells in row-major order with y=0 at the
// bottom. Cells are allocated once and reinitialized in place.
type Grid struct {
	w, h  int
	cells []Cell
}

// NewGrid allocates a grid filled with Air.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	g := &Grid{w: w, h: h, cells: make([]Cell, w*h)}
	g.Reset()
	return g
}

// Size reports the grid dimensions.
func (g *Grid) Size() core.Size { return core.Size{W: g.w, H: g.h} }

// Reset reinitializes every cell to Air.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i].setKind(Air)
	}
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// At returns the cell at (x, y). Out-of-bounds coordinates return a zero
// Air cell and false, never a panic.
func (g *Grid) At(x, y int) (Cell, bool) {
	if !g.InBounds(x, y) {
		return Cell{}, false
	}
	return g.cells[y*g.w+x], true
}

func (g *Grid) cell(x, y int) *Cell {
	return &g.cells[y*g.w+x]
}

// Set reinitializes the cell at (x, y) to the given kind. Fire cells get the
// provided secondary; other kinds ignore it. Out-of-bounds writes are dropped.
func (g *Grid) Set(x, y int, id KindID, secondary KindID) {
	if !g.InBounds(x, y) {
		return
	}
	c := g.cell(x, y)
	if id == Fire {
		c.setFire(secondary)
	} else {
		c.setKind(id)
	}
}

// Paint fills a disc of the given radius with a kind. Powders and liquids
// spawn sparsely so a stroke reads as loose grains; rigid kinds and Air fill
// the whole disc. Fire defaults its secondary to Oil.
func (g *Grid) Paint(cx, cy int, radius float64, id KindID, noise core.Noise) {
	sparse := 0.99
	switch id {
	case Wood, Air, Cotton, Fuse:
		sparse = 0
	}
	r := int(radius) + 1
	for offY := -r; offY <= r; offY++ {
		for offX := -r; offX <= r; offX++ {
			if float64(offX*offX)+float64(offY*offY) >= radius*radius {
				continue
			}
			x, y := cx+offX, cy+offY
			if !g.InBounds(x, y) {
				continue
			}
			if sparse > 0 && noise.Float64() <= sparse {
				continue
			}
			g.Set(x, y, id, Oil)
		}
	}
}

// CountKind returns how many cells currently hold the given primary kind.
func (g *Grid) CountKind(id KindID) int {
	n := 0
	for i := range g.cells {
		if g.cells[i].kind == id {
			n++
		}
	}
	return n
}
