package elbow

import "math"

// epsilon is the tolerance used for coordinate comparisons throughout
// the router. Inputs are expected to be in screen units, so 1e-6 is
// far below anything visually meaningful.
const epsilon = 1e-6

// Vec2 is a 2D point or displacement. Value type, no identity.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// V2 is a convenience constructor for Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by s.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Neg returns the negation of the vector.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Distance calculates the Euclidean distance between two points.
func (v Vec2) Distance(w Vec2) float64 {
	dx := v.X - w.X
	dy := v.Y - w.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Approx reports whether both coordinates are equal within tol.
func (v Vec2) Approx(w Vec2, tol float64) bool {
	return math.Abs(v.X-w.X) <= tol && math.Abs(v.Y-w.Y) <= tol
}

// cross calculates the 2D cross product of v and w. Its sign gives the
// turn direction from v to w.
func cross(v, w Vec2) float64 {
	return v.X*w.Y - v.Y*w.X
}

// sameX reports whether two points share an x-coordinate within epsilon.
func sameX(a, b Vec2) bool {
	return math.Abs(a.X-b.X) <= epsilon
}

// sameY reports whether two points share a y-coordinate within epsilon.
func sameY(a, b Vec2) bool {
	return math.Abs(a.Y-b.Y) <= epsilon
}

// sign returns -1, 0 or 1.
func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Aabb is an axis-aligned bounding box. Padding and expansion mutate
// the box in place; Left <= Right and Top <= Bottom once normalized.
type Aabb struct {
	Left, Top, Right, Bottom float64
}

// NewAabb builds the bounding box of a set of points.
func NewAabb(points ...Vec2) Aabb {
	if len(points) == 0 {
		return Aabb{}
	}
	b := Aabb{points[0].X, points[0].Y, points[0].X, points[0].Y}
	for _, p := range points[1:] {
		b.ExpandToInclude(p)
	}
	return b
}

// Pad grows every side of the box outward by d.
func (b *Aabb) Pad(d float64) {
	b.Left -= d
	b.Top -= d
	b.Right += d
	b.Bottom += d
}

// ExpandToInclude grows the box so that p lies inside it.
func (b *Aabb) ExpandToInclude(p Vec2) {
	b.Left = math.Min(b.Left, p.X)
	b.Top = math.Min(b.Top, p.Y)
	b.Right = math.Max(b.Right, p.X)
	b.Bottom = math.Max(b.Bottom, p.Y)
}

// Width returns the horizontal extent of the box.
func (b Aabb) Width() float64 { return b.Right - b.Left }

// Height returns the vertical extent of the box.
func (b Aabb) Height() float64 { return b.Bottom - b.Top }

// Center returns the midpoint of the box.
func (b Aabb) Center() Vec2 {
	return Vec2{X: (b.Left + b.Right) / 2, Y: (b.Top + b.Bottom) / 2}
}

// Corners returns the four corners in clockwise order starting at the
// top-left.
func (b Aabb) Corners() [4]Vec2 {
	return [4]Vec2{
		{b.Left, b.Top},
		{b.Right, b.Top},
		{b.Right, b.Bottom},
		{b.Left, b.Bottom},
	}
}

// Contains reports whether p lies inside the box, boundary included.
func (b Aabb) Contains(p Vec2) bool {
	return p.X >= b.Left-epsilon && p.X <= b.Right+epsilon &&
		p.Y >= b.Top-epsilon && p.Y <= b.Bottom+epsilon
}

// ContainsInterior reports whether p lies strictly inside the box.
// Points on the boundary are not interior.
func (b Aabb) ContainsInterior(p Vec2) bool {
	return p.X > b.Left+epsilon && p.X < b.Right-epsilon &&
		p.Y > b.Top+epsilon && p.Y < b.Bottom-epsilon
}

// Intersection returns the overlap of two boxes. The result is
// degenerate (zero width and/or height) when the boxes only touch, and
// inverted when they do not meet at all; IsValid distinguishes the two.
func (b Aabb) Intersection(o Aabb) Aabb {
	return Aabb{
		Left:   math.Max(b.Left, o.Left),
		Top:    math.Max(b.Top, o.Top),
		Right:  math.Min(b.Right, o.Right),
		Bottom: math.Min(b.Bottom, o.Bottom),
	}
}

// IsValid reports whether the box is normalized (possibly degenerate,
// never inverted).
func (b Aabb) IsValid() bool {
	return b.Left <= b.Right+epsilon && b.Top <= b.Bottom+epsilon
}

// Ray is a point with an axis-aligned unit direction. A zero direction
// only appears in explicit fallback states.
type Ray struct {
	Origin Vec2
	Dir    Vec2
}

// BlockRect is a read-only snapshot of a block's rectangle as supplied
// by the host: top-left position, size, and rotation in radians about
// the rectangle's center. The router never mutates it.
type BlockRect struct {
	Position Vec2    `json:"position"`
	Size     Vec2    `json:"size"`
	Rotation float64 `json:"rotation"`
}

// Center returns the rotation pivot of the block.
func (r BlockRect) Center() Vec2 {
	return Vec2{X: r.Position.X + r.Size.X/2, Y: r.Position.Y + r.Size.Y/2}
}

// Corners returns the block's four corners in world space, rotation
// applied, in clockwise order starting at the top-left.
func (r BlockRect) Corners() [4]Vec2 {
	c := r.Center()
	sin, cos := math.Sincos(r.Rotation)
	unrotated := [4]Vec2{
		r.Position,
		{r.Position.X + r.Size.X, r.Position.Y},
		{r.Position.X + r.Size.X, r.Position.Y + r.Size.Y},
		{r.Position.X, r.Position.Y + r.Size.Y},
	}
	var out [4]Vec2
	for i, p := range unrotated {
		dx := p.X - c.X
		dy := p.Y - c.Y
		out[i] = Vec2{
			X: c.X + dx*cos - dy*sin,
			Y: c.Y + dx*sin + dy*cos,
		}
	}
	return out
}

// Bounds returns the world-space bounding box of the rotated block.
func (r BlockRect) Bounds() Aabb {
	corners := r.Corners()
	return NewAabb(corners[:]...)
}

// toLocal maps a point into the block's own unrotated coordinate
// frame, where the rectangle spans [Position, Position+Size].
func (r BlockRect) toLocal(p Vec2) Vec2 {
	c := r.Center()
	sin, cos := math.Sincos(-r.Rotation)
	dx := p.X - c.X
	dy := p.Y - c.Y
	return Vec2{
		X: c.X + dx*cos - dy*sin,
		Y: c.Y + dx*sin + dy*cos,
	}
}

// ContainsPoint reports whether p lies inside the rotated rectangle,
// boundary included.
func (r BlockRect) ContainsPoint(p Vec2) bool {
	q := r.toLocal(p)
	return q.X >= r.Position.X-epsilon && q.X <= r.Position.X+r.Size.X+epsilon &&
		q.Y >= r.Position.Y-epsilon && q.Y <= r.Position.Y+r.Size.Y+epsilon
}

// ContainsPointInterior reports whether p lies strictly inside the
// rotated rectangle.
func (r BlockRect) ContainsPointInterior(p Vec2) bool {
	q := r.toLocal(p)
	return q.X > r.Position.X+epsilon && q.X < r.Position.X+r.Size.X-epsilon &&
		q.Y > r.Position.Y+epsilon && q.Y < r.Position.Y+r.Size.Y-epsilon
}
