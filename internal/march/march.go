// Package march extracts closed boundary contours from a binary solid mask
// using marching squares, and simplifies them with Douglas-Peucker.
package march

import "pixelphys/internal/core"

// Contour is an ordered closed loop of vertices in grid coordinates. The
// last vertex connects back to the first. Loops enclosing solids run
// counter-clockwise; holes run clockwise.
type Contour []core.Vec2

// minContourLen drops boundary specks too small to matter; shorter loops are
// discarded before simplification.
const minContourLen = 11

// Saddle states 5 and 10 are the two configurations with solids on opposite
// diagonals. The exit edge depends on the entry direction, and the same
// position can be legitimately traversed by two distinct contours, so these
// states carry one visited bit per entry sense.
const (
	visitedNeg = 1 << 0
	visitedPos = 1 << 1
)

// Extract walks every boundary loop of the mask. The mask is implicitly
// padded with a 1-cell zero frame so solids touching the edge still close.
func Extract(mask *core.ByteGrid) []Contour {
	return ExtractWindow(mask, 0, 0, mask.W, mask.H)
}

// ExtractWindow extracts contours from the sub-window of the mask with
// origin (x0, y0) and the given size. Cells outside the window read as
// empty, and emitted vertices are in whole-mask coordinates.
func ExtractWindow(mask *core.ByteGrid, x0, y0, w, h int) []Contour {
	if w <= 0 || h <= 0 {
		return nil
	}
	// State (x, y) encodes the 2x2 of solid bits at (x-1, y-1), (x, y-1),
	// (x, y), (x-1, y) as a 4-bit integer; the +1 sizing provides the
	// zero-padded frame.
	nw, nh := w+1, h+1
	states := make([]uint8, nw*nh)
	visited := make([]uint8, nw*nh)

	at := func(x, y int) uint8 {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0
		}
		return mask.At(x0+x, y0+y)
	}
	for y := 0; y < nh; y++ {
		for x := 0; x < nw; x++ {
			states[y*nw+x] = at(x-1, y-1) | at(x, y-1)<<1 | at(x, y)<<2 | at(x-1, y)<<3
		}
	}

	var contours []Contour
	for y := 0; y < nh; y++ {
		for x := 0; x < nw; x++ {
			s := states[y*nw+x]
			// Walks never start on empty, full, or saddle states; saddles
			// are resolved mid-walk where the entry direction is known.
			if s == 0 || s == 15 || s == 5 || s == 10 || visited[y*nw+x] != 0 {
				continue
			}
			c := walk(states, visited, nw, x, y, x0, y0)
			if len(c) >= minContourLen {
				// the walk table traverses screen-space counter-clockwise,
				// which is clockwise with y up; flip so loops enclosing
				// solids come out counter-clockwise in grid coordinates
				for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
					c[i], c[j] = c[j], c[i]
				}
				contours = append(contours, c)
			}
		}
	}
	return contours
}

// walk follows one counter-clockwise loop starting at (x, y), marking states
// visited, and returns the mid-edge vertex sequence.
func walk(states, visited []uint8, nw, x, y, offX, offY int) Contour {
	var c Contour
	cx, cy := x, y
	px, py := x, y
	fromPositive := false
	for {
		i := cx + cy*nw
		s := states[i]

		switch s {
		case 5:
			fromPositive = px > cx
		case 10:
			fromPositive = py > cy
		}

		if s == 5 || s == 10 {
			bit := uint8(visitedNeg)
			if fromPositive {
				bit = visitedPos
			}
			if visited[i]&bit != 0 {
				return c
			}
			visited[i] |= bit
		} else {
			if visited[i] != 0 {
				return c
			}
			visited[i] = 1
		}

		nx, ny, ok := next(s, cx, cy, fromPositive)
		if !ok {
			return c
		}

		c = append(c, core.Vec2{
			X: float64(offX) + float64(cx) + float64(nx-cx)*0.5,
			Y: float64(offY) + float64(cy) + float64(ny-cy)*0.5,
		})

		px, py = cx, cy
		cx, cy = nx, ny
	}
}

// next returns the cell the counter-clockwise walk moves to from a given
// state. States 0 and 15 carry no boundary segment.
func next(s uint8, x, y int, fromPositive bool) (int, int, bool) {
	switch s {
	case 1, 9, 13:
		return x, y - 1, true
	case 2, 3, 11:
		return x + 1, y, true
	case 4, 6, 7:
		return x, y + 1, true
	case 8, 12, 14:
		return x - 1, y, true
	case 5:
		if fromPositive {
			return x, y + 1, true
		}
		return x, y - 1, true
	case 10:
		if fromPositive {
			return x - 1, y, true
		}
		return x + 1, y, true
	}
	return 0, 0, false
}
