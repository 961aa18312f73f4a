package elbow

// SimplifyPath reduces a routed polyline to its minimal visually-clean
// form. Three passes run in order: consecutive duplicates collapse,
// interior points that turn nowhere drop out, and zig-zag jogs merge.
// Simplification is idempotent: re-running it on its own output is a
// no-op.
func SimplifyPath(pts []Vec2) []Vec2 {
	pts = dedupeConsecutive(pts)
	pts = removeCollinear(pts)
	pts = removeZigZags(pts)
	return pts
}

// dedupeConsecutive collapses runs of points equal within epsilon.
func dedupeConsecutive(pts []Vec2) []Vec2 {
	if len(pts) < 2 {
		return pts
	}
	out := pts[:1]
	for _, p := range pts[1:] {
		if !p.Approx(out[len(out)-1], epsilon) {
			out = append(out, p)
		}
	}
	return out
}

// removeCollinear drops interior points that share an x or a y
// coordinate with both neighbors; they contribute no turn.
func removeCollinear(pts []Vec2) []Vec2 {
	if len(pts) < 3 {
		return pts
	}
	out := pts[:1]
	for i := 1; i < len(pts)-1; i++ {
		prev := out[len(out)-1]
		cur, next := pts[i], pts[i+1]
		if (sameX(prev, cur) && sameX(cur, next)) ||
			(sameY(prev, cur) && sameY(cur, next)) {
			continue
		}
		out = append(out, cur)
	}
	return append(out, pts[len(pts)-1])
}

// turnDir classifies the turn at b on the way a→b→c: 1 for left, -1
// for right, 0 for straight.
func turnDir(a, b, c Vec2) int {
	cr := cross(b.Sub(a), c.Sub(b))
	switch {
	case cr > epsilon:
		return 1
	case cr < -epsilon:
		return -1
	}
	return 0
}

// removeZigZags merges left-right-left / right-left-right jogs. For a
// window a..e with alternating turns at its three interior points, the
// two flanking turn points drop and the inner point snaps to share an
// axis with both remaining neighbors, preferring alignment it already
// has with a, then with e. Windows where no single-coordinate snap
// keeps the path axis-aligned, or where the snap would collapse a
// segment to zero length, are left alone rather than introduce a
// diagonal.
func removeZigZags(pts []Vec2) []Vec2 {
	i := 0
	for i+4 < len(pts) {
		t1 := turnDir(pts[i], pts[i+1], pts[i+2])
		t2 := turnDir(pts[i+1], pts[i+2], pts[i+3])
		t3 := turnDir(pts[i+2], pts[i+3], pts[i+4])
		if t1 == 0 || t2 != -t1 || t3 != t1 {
			i++
			continue
		}

		a, c, e := pts[i], pts[i+2], pts[i+4]
		snapped, ok := snapInner(a, c, e)
		if !ok {
			i++
			continue
		}

		pts = append(pts[:i+1], append([]Vec2{snapped}, pts[i+4:]...)...)
		// Re-examine from just before the merged region; merges never
		// cascade further back than the snapped point.
		if i > 0 {
			i--
		}
	}
	return pts
}

// snapInner moves one coordinate of c so that both a→c and c→e are
// axis-aligned. Returns false when c shares no axis with either
// neighbor or when snapping would produce a zero-length segment.
func snapInner(a, c, e Vec2) (Vec2, bool) {
	switch {
	case sameX(c, a):
		c.Y = e.Y
	case sameY(c, a):
		c.X = e.X
	case sameX(c, e):
		c.Y = a.Y
	case sameY(c, e):
		c.X = a.X
	default:
		return Vec2{}, false
	}
	if c.Approx(a, epsilon) || c.Approx(e, epsilon) {
		return Vec2{}, false
	}
	return c, true
}
