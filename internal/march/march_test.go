package march

import (
	"math"
	"testing"

	"pixelphys/internal/core"
)

func maskFromRows(rows []string) *core.ByteGrid {
	h := len(rows)
	w := len(rows[0])
	g := core.NewByteGrid(w, h)
	// rows are written top-down for readability; y=0 is the bottom
	for i, row := range rows {
		y := h - 1 - i
		for x := 0; x < w; x++ {
			if row[x] == '#' {
				g.Set(x, y, 1)
			}
		}
	}
	return g
}

func signedArea(c Contour) float64 {
	sum := 0.0
	for i, p := range c {
		q := c[(i+1)%len(c)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

func pointInContour(p core.Vec2, c Contour) bool {
	inside := false
	for i := range c {
		a, b := c[i], c[(i+1)%len(c)]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < a.X+(p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X) {
			inside = !inside
		}
	}
	return inside
}

func solidRing(n int) *core.ByteGrid {
	g := core.NewByteGrid(n, n)
	for i := 0; i < n; i++ {
		g.Set(i, 0, 1)
		g.Set(i, n-1, 1)
		g.Set(0, i, 1)
		g.Set(n-1, i, 1)
	}
	return g
}

func TestRingYieldsOuterLoopAndHole(t *testing.T) {
	cs := Extract(solidRing(10))
	if len(cs) != 2 {
		t.Fatalf("got %d contours for a ring, want 2", len(cs))
	}

	outer, inner := cs[0], cs[1]
	if math.Abs(signedArea(outer)) < math.Abs(signedArea(inner)) {
		outer, inner = inner, outer
	}

	if a := signedArea(outer); a <= 0 {
		t.Fatalf("outer loop signed area %.2f, want counter-clockwise (positive)", a)
	}
	if a := signedArea(inner); a >= 0 {
		t.Fatalf("hole signed area %.2f, want clockwise (negative)", a)
	}
	// mid-edge vertices clip half a cell off each corner of the 10x10 square
	if a := signedArea(outer); a < 95 || a > 100 {
		t.Fatalf("outer loop area %.2f, want ~99.5", a)
	}
}

func TestRingWithFillStillTwoContours(t *testing.T) {
	// partially filling the ring from the floor merges the fill with the
	// ring; the remaining air pocket is the single hole
	g := solidRing(10)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 8; x++ {
			g.Set(x, y, 1)
		}
	}
	cs := Extract(g)
	if len(cs) != 2 {
		t.Fatalf("got %d contours, want outer loop plus one hole", len(cs))
	}
}

func TestContoursAreClosedLoops(t *testing.T) {
	g := solidRing(12)
	for _, c := range Extract(g) {
		for i := range c {
			a, b := c[i], c[(i+1)%len(c)]
			d := math.Hypot(a.X-b.X, a.Y-b.Y)
			if d > 1.001 {
				t.Fatalf("gap of %.3f between consecutive vertices %d and %d", d, i, (i+1)%len(c))
			}
		}
	}
}

func TestSaddlesSplitIntoTwoContours(t *testing.T) {
	// two solid blocks meeting at exactly one corner: the ambiguous state
	// must produce two loops, not a figure-eight
	g := core.NewByteGrid(8, 8)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			g.Set(x, y, 1)
		}
	}
	for y := 4; y <= 6; y++ {
		for x := 4; x <= 6; x++ {
			g.Set(x, y, 1)
		}
	}

	cs := Extract(g)
	if len(cs) != 2 {
		t.Fatalf("diagonal blocks produced %d contours, want 2", len(cs))
	}
	for i, c := range cs {
		if a := signedArea(c); a <= 0 {
			t.Fatalf("contour %d signed area %.2f, want positive", i, a)
		}
	}
}

func TestTinyContoursDropped(t *testing.T) {
	g := core.NewByteGrid(6, 6)
	g.Set(2, 2, 1)
	if cs := Extract(g); len(cs) != 0 {
		t.Fatalf("a single solid cell produced %d contours, want 0", len(cs))
	}
}

func TestSolidCellsEnclosedByContours(t *testing.T) {
	g := maskFromRows([]string{
		"............",
		".#########..",
		".#########..",
		".##....###..",
		".##....###..",
		".##....###..",
		".##....###..",
		".#########..",
		".#########..",
		".#########..",
		"............",
		"............",
	})
	cs := Extract(g)
	if len(cs) < 2 {
		t.Fatalf("expected outer loop and hole, got %d contours", len(cs))
	}

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			center := core.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			enclosed := 0
			for _, c := range cs {
				if pointInContour(center, c) {
					enclosed++
				}
			}
			// solid cells sit inside the outer loop only; cells of the
			// hole are inside both the loop and the hole contour
			solid := g.At(x, y) == 1
			if solid && enclosed != 1 {
				t.Fatalf("solid cell (%d,%d) enclosed by %d contours, want 1", x, y, enclosed)
			}
			if !solid && enclosed == 1 {
				t.Fatalf("empty cell (%d,%d) enclosed by exactly the outer loop", x, y)
			}
		}
	}
}

func TestWindowOffsetsVertices(t *testing.T) {
	g := core.NewByteGrid(40, 40)
	for y := 20; y < 26; y++ {
		for x := 18; x < 28; x++ {
			g.Set(x, y, 1)
		}
	}

	cs := ExtractWindow(g, 16, 16, 16, 16)
	if len(cs) == 0 {
		t.Fatal("window extraction found nothing")
	}
	for _, c := range cs {
		for _, v := range c {
			if v.X < 16 || v.X > 32 || v.Y < 16 || v.Y > 32 {
				t.Fatalf("vertex (%.1f,%.1f) outside the window's world range", v.X, v.Y)
			}
		}
	}

	// solids outside the window are invisible to it
	if cs := ExtractWindow(g, 0, 0, 16, 16); len(cs) != 0 {
		t.Fatalf("window without solids produced %d contours", len(cs))
	}
}

func TestWindowClipsAtMaskEdge(t *testing.T) {
	g := core.NewByteGrid(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			g.Set(x, y, 1)
		}
	}
	// a window larger than the mask pads with empty, one closed loop
	cs := ExtractWindow(g, 0, 0, 16, 16)
	if len(cs) != 1 {
		t.Fatalf("full mask in oversized window produced %d contours, want 1", len(cs))
	}
	if a := signedArea(cs[0]); a <= 0 {
		t.Fatalf("loop signed area %.2f, want positive", a)
	}
}
