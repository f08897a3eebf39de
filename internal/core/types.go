package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Vec2 is a position in grid coordinates. The grid's y axis points up, so
// y=0 is the bottom row of the world.
type Vec2 struct {
	X float64
	Y float64
}

// Rect is an axis-aligned box with inclusive min and exclusive max corners.
type Rect struct {
	Min Vec2
	Max Vec2
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}
