package phys

import (
	"github.com/jakecoffman/cp"

	"pixelphys/internal/core"
)

// Space is the Chipmunk-backed Solver. Velocity iterations map onto
// cp.Space.Iterations; Chipmunk has no separate position pass, so position
// iterations are accepted and ignored.
type Space struct {
	space *cp.Space
}

type cpHandle struct {
	body   *cp.Body
	shapes []*cp.Shape
}

const (
	dynamicDensity  = 1.0
	dynamicFriction = 0.3
	staticFriction  = 0.6
)

// NewSpace creates a solver with the given gravity vector.
func NewSpace(gravity core.Vec2) *Space {
	s := cp.NewSpace()
	s.SetGravity(cp.Vector{X: gravity.X, Y: gravity.Y})
	return &Space{space: s}
}

// CreateDynamicBody implements Solver.
func (s *Space) CreateDynamicBody(pos core.Vec2, verts []core.Vec2) Body {
	vs := toVectors(verts)
	mass := cp.AreaForPoly(len(vs), vs, 0) * dynamicDensity
	if mass <= 0 {
		mass = dynamicDensity
	}
	moment := cp.MomentForPoly(mass, len(vs), vs, cp.Vector{}, 0)

	body := s.space.AddBody(cp.NewBody(mass, moment))
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})

	shape := s.space.AddShape(cp.NewPolyShape(body, len(vs), vs, cp.NewTransformIdentity(), 0))
	shape.SetFriction(dynamicFriction)

	return &cpHandle{body: body, shapes: []*cp.Shape{shape}}
}

// CreateStaticBody implements Solver.
func (s *Space) CreateStaticBody(verts []core.Vec2) Body {
	vs := toVectors(verts)
	body := s.space.AddBody(cp.NewStaticBody())
	shape := s.space.AddShape(cp.NewPolyShape(body, len(vs), vs, cp.NewTransformIdentity(), 0))
	shape.SetFriction(staticFriction)
	return &cpHandle{body: body, shapes: []*cp.Shape{shape}}
}

// CreateStaticLoop implements Solver.
func (s *Space) CreateStaticLoop(verts []core.Vec2) Body {
	body := s.space.AddBody(cp.NewStaticBody())
	h := &cpHandle{body: body}
	for i := range verts {
		a := verts[i]
		b := verts[(i+1)%len(verts)]
		seg := s.space.AddShape(cp.NewSegment(body, cp.Vector{X: a.X, Y: a.Y}, cp.Vector{X: b.X, Y: b.Y}, 0))
		seg.SetFriction(staticFriction)
		h.shapes = append(h.shapes, seg)
	}
	return h
}

// DestroyBody implements Solver.
func (s *Space) DestroyBody(b Body) {
	h, ok := b.(*cpHandle)
	if !ok || h == nil {
		return
	}
	for _, shape := range h.shapes {
		s.space.RemoveShape(shape)
	}
	s.space.RemoveBody(h.body)
}

// Step implements Solver.
func (s *Space) Step(dt float64, velocityIters, positionIters int) {
	if velocityIters > 0 {
		s.space.Iterations = uint(velocityIters)
	}
	_ = positionIters
	s.space.Step(dt)
}

// QueryAABB implements Solver.
func (s *Space) QueryAABB(r core.Rect) bool {
	found := false
	bb := cp.BB{L: r.Min.X, B: r.Min.Y, R: r.Max.X, T: r.Max.Y}
	s.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		found = true
	}, nil)
	return found
}

// Position returns a dynamic body's world position, e.g. for debug overlays.
func (s *Space) Position(b Body) (core.Vec2, bool) {
	h, ok := b.(*cpHandle)
	if !ok || h == nil {
		return core.Vec2{}, false
	}
	p := h.body.Position()
	return core.Vec2{X: p.X, Y: p.Y}, true
}

func toVectors(verts []core.Vec2) []cp.Vector {
	vs := make([]cp.Vector, len(verts))
	for i, v := range verts {
		vs[i] = cp.Vector{X: v.X, Y: v.Y}
	}
	return vs
}
