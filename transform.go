package elbow

import "math"

// Matrix is a 2D affine transformation in row-major 2x3 form:
//
//	| A  B  C |
//	| D  E  F |
//
// representing x' = A*x + B*y + C and y' = D*x + E*y + F.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{A: cos, B: -sin, D: sin, E: cos}
}

// Mul returns the composition m∘n, i.e. the transform that applies n
// first and then m.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.B*n.D,
		B: m.A*n.B + m.B*n.E,
		C: m.A*n.C + m.B*n.F + m.C,
		D: m.D*n.A + m.E*n.D,
		E: m.D*n.B + m.E*n.E,
		F: m.D*n.C + m.E*n.F + m.F,
	}
}

// Apply transforms a point.
func (m Matrix) Apply(p Vec2) Vec2 {
	return Vec2{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// Frame is the arrow-local coordinate frame: translated so the
// midpoint of the two endpoints is the origin and rotated so the
// arrow's own orientation is axis-aligned. All routing math happens in
// this frame; the finished path is mapped back to world space.
type Frame struct {
	rotation float64
	toLocal  Matrix
	toWorld  Matrix
}

// NewFrame builds the local frame for an arrow between start and end
// with the given rotation in radians.
func NewFrame(start, end Vec2, rotation float64) Frame {
	pivot := Vec2{X: (start.X + end.X) / 2, Y: (start.Y + end.Y) / 2}
	return Frame{
		rotation: rotation,
		toLocal:  Rotate(-rotation).Mul(Translate(-pivot.X, -pivot.Y)),
		toWorld:  Translate(pivot.X, pivot.Y).Mul(Rotate(rotation)),
	}
}

// ToLocal maps a world point into the frame.
func (f Frame) ToLocal(p Vec2) Vec2 {
	return f.toLocal.Apply(p)
}

// ToWorld maps a frame point back to world space.
func (f Frame) ToWorld(p Vec2) Vec2 {
	return f.toWorld.Apply(p)
}

// LocalBlock maps a block snapshot into the frame. The block's center
// is transformed and its rotation is re-expressed relative to the
// frame's own rotation.
func (f Frame) LocalBlock(r BlockRect) BlockRect {
	center := f.ToLocal(r.Center())
	return BlockRect{
		Position: Vec2{X: center.X - r.Size.X/2, Y: center.Y - r.Size.Y/2},
		Size:     r.Size,
		Rotation: r.Rotation - f.rotation,
	}
}

// WorldPath maps a whole frame-space polyline back to world space.
func (f Frame) WorldPath(pts []Vec2) []Vec2 {
	out := make([]Vec2, len(pts))
	for i, p := range pts {
		out[i] = f.ToWorld(p)
	}
	return out
}
