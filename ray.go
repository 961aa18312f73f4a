package elbow

import "math"

const (
	// centerNudge pulls an anchor point 1% of the way toward the block
	// center before ray casting, so points exactly on an edge do not
	// produce zero-distance hits.
	centerNudge = 0.01

	// centerBias is the fraction of each half-extent within which an
	// anchor counts as "near the center" for tie-breaking.
	centerBias = 0.2
)

// axisDirections are the four candidate exit directions: up, down,
// left, right.
var axisDirections = [4]Vec2{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// dominantDirection returns the axis-aligned unit direction of the
// dominant axis from one point toward another. Ties break toward
// horizontal; coincident points default to +x.
func dominantDirection(from, to Vec2) Vec2 {
	dx := to.X - from.X
	dy := to.Y - from.Y
	if math.Abs(dx) >= math.Abs(dy) {
		if s := sign(dx); s != 0 {
			return Vec2{X: s}
		}
		return Vec2{X: 1}
	}
	return Vec2{Y: sign(dy)}
}

// rayBlockExit returns the smallest positive distance at which a ray
// crosses the rotated rectangle's boundary, or -1 when the ray misses
// it entirely. For an origin inside the rectangle this is the exit
// distance; for an origin outside it is the entry distance.
func rayBlockExit(origin, dir Vec2, r BlockRect) float64 {
	sin, cos := math.Sincos(-r.Rotation)
	q := r.toLocal(origin)
	d := Vec2{X: dir.X*cos - dir.Y*sin, Y: dir.X*sin + dir.Y*cos}
	return slabDistance(q, d,
		Vec2{X: r.Position.X, Y: r.Position.Y},
		Vec2{X: r.Position.X + r.Size.X, Y: r.Position.Y + r.Size.Y})
}

// slabDistance runs the slab test of a ray against an axis-aligned box
// and returns the nearest positive boundary crossing, or -1.
func slabDistance(q, d, min, max Vec2) float64 {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	for axis := 0; axis < 2; axis++ {
		var o, dd, lo, hi float64
		if axis == 0 {
			o, dd, lo, hi = q.X, d.X, min.X, max.X
		} else {
			o, dd, lo, hi = q.Y, d.Y, min.Y, max.Y
		}
		if math.Abs(dd) <= epsilon {
			if o < lo-epsilon || o > hi+epsilon {
				return -1
			}
			continue
		}
		t1 := (lo - o) / dd
		t2 := (hi - o) / dd
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	}

	if tmin > tmax+epsilon || tmax < epsilon {
		return -1
	}
	if tmin > epsilon {
		return tmin
	}
	return tmax
}

// exitRay resolves the direction a path must initially travel from a
// point. With no block attached the direction is simply the dominant
// axis toward the target. With a block, the point is nudged slightly
// toward the block center and rays are cast in all four axis
// directions against the rotated rectangle; the nearest edge wins.
// Anchors near the block center instead take the direction dominant
// toward the target, since all edges are roughly equidistant there.
//
// Degenerate blocks that no ray can hit fall back to the direction
// away from the block center; this never fails.
func exitRay(p Vec2, block *BlockRect, target Vec2) Ray {
	if block == nil {
		return Ray{Origin: p, Dir: dominantDirection(p, target)}
	}

	center := block.Center()
	nudged := p.Add(center.Sub(p).Mul(centerNudge))

	best := -1.0
	var bestDir Vec2
	tied := 0
	for _, dir := range axisDirections {
		dist := rayBlockExit(nudged, dir, *block)
		if dist < 0 {
			continue
		}
		switch {
		case best < 0 || dist < best-epsilon:
			best = dist
			bestDir = dir
			tied = 1
		case dist <= best+epsilon:
			tied++
		}
	}

	if best < 0 {
		away := p.Sub(center)
		dir := dominantDirection(center, p)
		if away.Approx(Vec2{}, epsilon) {
			dir = dominantDirection(p, target)
		}
		logger().Warn("exit ray found no block intersection, using direction away from center",
			"point_x", p.X, "point_y", p.Y,
			"block_w", block.Size.X, "block_h", block.Size.Y)
		return Ray{Origin: p, Dir: dir}
	}

	if tied > 1 && anchorNearCenter(p, *block) {
		return Ray{Origin: p, Dir: dominantDirection(p, target)}
	}
	return Ray{Origin: p, Dir: bestDir}
}

// anchorNearCenter reports whether the un-nudged anchor projects
// within centerBias of both half-extents of the block center.
func anchorNearCenter(p Vec2, r BlockRect) bool {
	q := r.toLocal(p)
	c := r.Center()
	return math.Abs(q.X-c.X) <= centerBias*r.Size.X/2 &&
		math.Abs(q.Y-c.Y) <= centerBias*r.Size.Y/2
}
