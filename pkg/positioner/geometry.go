package positioner

// Point is a pointer location in viewport coordinates.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Origin is the zero point. The last pointer point rests here while idle.
var Origin = Point{}

// Sub returns the displacement from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is the measured extent of an element or panel.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether p lies within [0, Width] x [0, Height].
// Both edges are inclusive.
func (s Size) Contains(p Point) bool {
	return InRange(p.X, 0, s.Width) && InRange(p.Y, 0, s.Height)
}

// Limits returns the largest left and top offsets at which a block of size
// block still fits inside s.
func (s Size) Limits(block Size) (right, bottom int) {
	return s.Width - block.Width, s.Height - block.Height
}

// Clamp restricts v to [lo, hi]. The low bound is checked first, so an
// empty interval (hi < lo) yields hi for any v >= lo.
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// InRange reports whether lo <= v <= hi.
func InRange(v, lo, hi int) bool {
	return v >= lo && v <= hi
}
