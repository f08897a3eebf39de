package phys

import (
	"math"

	"pixelphys/internal/core"
)

// EarClip is the default Partition: holes are bridged into their enclosing
// polygon and the resulting simple polygons are ear-clipped. Degenerate
// input produces a partial or empty triangle list rather than an error.
type EarClip struct{}

const geomEps = 1e-9

// Triangulate implements Partition.
func (EarClip) Triangulate(polys []Polygon) []Triangle {
	var outers, holes [][]core.Vec2
	for _, p := range polys {
		vs := dropRepeats(p.Verts)
		if len(vs) < 3 {
			continue
		}
		if p.Hole {
			// holes are kept clockwise so splicing preserves winding
			if SignedArea(vs) > 0 {
				reverse(vs)
			}
			holes = append(holes, vs)
		} else {
			if SignedArea(vs) < 0 {
				reverse(vs)
			}
			outers = append(outers, vs)
		}
	}

	for _, h := range holes {
		oi := containingOuter(outers, h[0])
		if oi < 0 {
			continue
		}
		outers[oi] = spliceHole(outers[oi], h)
	}

	var tris []Triangle
	for _, o := range outers {
		tris = append(tris, earClip(o)...)
	}
	return tris
}

// containingOuter returns the index of the outer polygon containing p, or -1.
func containingOuter(outers [][]core.Vec2, p core.Vec2) int {
	for i, o := range outers {
		if pointInPolygon(p, o) {
			return i
		}
	}
	return -1
}

// spliceHole cuts a bridge from the hole's rightmost vertex to a mutually
// visible outer vertex and returns the combined simple polygon.
func spliceHole(outer, hole []core.Vec2) []core.Vec2 {
	// rightmost hole vertex
	hi := 0
	for i, v := range hole {
		if v.X > hole[hi].X {
			hi = i
		}
	}
	m := hole[hi]

	// closest outer edge hit by the +x ray from m
	bestT := math.Inf(1)
	bestEdge := -1
	var hit core.Vec2
	for i := range outer {
		a, b := outer[i], outer[(i+1)%len(outer)]
		if (a.Y > m.Y) == (b.Y > m.Y) {
			continue
		}
		t := a.X + (m.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
		if t >= m.X-geomEps && t < bestT {
			bestT = t
			bestEdge = i
			hit = core.Vec2{X: t, Y: m.Y}
		}
	}
	if bestEdge < 0 {
		return outer
	}

	// candidate bridge endpoint: the edge endpoint with the larger x
	cand := bestEdge
	if outer[(bestEdge+1)%len(outer)].X > outer[bestEdge].X {
		cand = (bestEdge + 1) % len(outer)
	}

	// a reflex outer vertex inside triangle (m, hit, cand) would block the
	// bridge; pick the blocker closest in angle to the ray instead
	p := outer[cand]
	bestAngle := math.Inf(1)
	for i, v := range outer {
		if i == cand {
			continue
		}
		if !isReflex(outer, i) {
			continue
		}
		if !pointInTriangle(v, m, hit, p) {
			continue
		}
		angle := math.Abs(math.Atan2(v.Y-m.Y, v.X-m.X))
		if angle < bestAngle {
			bestAngle = angle
			cand = i
			p = v
		}
	}

	// outer[..cand], hole[hi..] wrapped, then back across the bridge
	out := make([]core.Vec2, 0, len(outer)+len(hole)+2)
	out = append(out, outer[:cand+1]...)
	for i := 0; i < len(hole); i++ {
		out = append(out, hole[(hi+i)%len(hole)])
	}
	out = append(out, hole[hi], outer[cand])
	out = append(out, outer[cand+1:]...)
	return out
}

// earClip triangulates one simple CCW polygon. If no ear can be found the
// remaining fan is abandoned; callers tolerate partial geometry.
func earClip(verts []core.Vec2) []Triangle {
	n := len(verts)
	if n < 3 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	var tris []Triangle
	for len(idx) > 3 {
		clipped := false
		for i := 0; i < len(idx); i++ {
			a := verts[idx[(i+len(idx)-1)%len(idx)]]
			b := verts[idx[i]]
			c := verts[idx[(i+1)%len(idx)]]
			if cross(a, b, c) <= geomEps {
				continue
			}
			if containsOther(verts, idx, i, a, b, c) {
				continue
			}
			tris = append(tris, Triangle{a, b, c})
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return tris
		}
	}
	tris = append(tris, Triangle{verts[idx[0]], verts[idx[1]], verts[idx[2]]})
	return tris
}

// containsOther reports whether any remaining vertex other than the ear's
// corners lies inside triangle (a, b, c). Vertices coincident with a corner
// are skipped: hole bridges duplicate their endpoints.
func containsOther(verts []core.Vec2, idx []int, ear int, a, b, c core.Vec2) bool {
	prev := (ear + len(idx) - 1) % len(idx)
	next := (ear + 1) % len(idx)
	for j, vi := range idx {
		if j == ear || j == prev || j == next {
			continue
		}
		v := verts[vi]
		if samePoint(v, a) || samePoint(v, b) || samePoint(v, c) {
			continue
		}
		if pointInTriangle(v, a, b, c) {
			return true
		}
	}
	return false
}

func samePoint(a, b core.Vec2) bool {
	return math.Abs(a.X-b.X) < geomEps && math.Abs(a.Y-b.Y) < geomEps
}

func cross(a, b, c core.Vec2) float64 {
	return (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
}

func isReflex(poly []core.Vec2, i int) bool {
	n := len(poly)
	return cross(poly[(i+n-1)%n], poly[i], poly[(i+1)%n]) < 0
}

func pointInTriangle(p, a, b, c core.Vec2) bool {
	d1 := cross(a, b, p)
	d2 := cross(b, c, p)
	d3 := cross(c, a, p)
	hasNeg := d1 < -geomEps || d2 < -geomEps || d3 < -geomEps
	hasPos := d1 > geomEps || d2 > geomEps || d3 > geomEps
	return !(hasNeg && hasPos)
}

func pointInPolygon(p core.Vec2, poly []core.Vec2) bool {
	inside := false
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < a.X+(p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X) {
			inside = !inside
		}
	}
	return inside
}

func dropRepeats(verts []core.Vec2) []core.Vec2 {
	out := make([]core.Vec2, 0, len(verts))
	for _, v := range verts {
		if len(out) > 0 {
			last := out[len(out)-1]
			if math.Abs(last.X-v.X) < geomEps && math.Abs(last.Y-v.Y) < geomEps {
				continue
			}
		}
		out = append(out, v)
	}
	if len(out) > 1 {
		first, last := out[0], out[len(out)-1]
		if math.Abs(first.X-last.X) < geomEps && math.Abs(first.Y-last.Y) < geomEps {
			out = out[:len(out)-1]
		}
	}
	return out
}

func reverse(verts []core.Vec2) {
	for i, j := 0, len(verts)-1; i < j; i, j = i+1, j-1 {
		verts[i], verts[j] = verts[j], verts[i]
	}
}
