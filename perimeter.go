package elbow

import (
	"math"
	"sort"
)

// pointKey quantizes a point to integer precision and packs it into a
// single comparable key, used to deduplicate perimeter points.
func pointKey(p Vec2) int64 {
	rx := int32(math.Round(p.X))
	ry := int32(math.Round(p.Y))
	return int64(rx)<<32 | int64(uint32(ry))
}

// dedupePoints removes duplicate points (at integer precision),
// keeping first occurrences in order.
func dedupePoints(pts []Vec2) []Vec2 {
	seen := make(map[int64]bool, len(pts))
	out := pts[:0]
	for _, p := range pts {
		k := pointKey(p)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return out
}

// chainGraph connects a perimeter point set into a graph: points that
// share an x-coordinate become a sorted vertical chain, points that
// share a y-coordinate a sorted horizontal chain. Edge weight is the
// coordinate delta along the shared axis.
func chainGraph(pts []Vec2) *graph {
	g := newGraph()
	for _, p := range pts {
		g.addNode(p)
	}

	group := func(key func(Vec2) int32, along func(Vec2) float64) {
		groups := make(map[int32][]int)
		var keys []int32
		for _, n := range g.nodes {
			k := key(n.pt)
			if _, ok := groups[k]; !ok {
				keys = append(keys, k)
			}
			groups[k] = append(groups[k], n.id)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, k := range keys {
			ids := groups[k]
			sort.Slice(ids, func(i, j int) bool {
				return along(g.node(ids[i]).pt) < along(g.node(ids[j]).pt)
			})
			for i := 0; i < len(ids)-1; i++ {
				a, b := g.node(ids[i]), g.node(ids[i+1])
				g.connect(a.id, b.id, math.Abs(along(b.pt)-along(a.pt)))
			}
		}
	}

	group(func(p Vec2) int32 { return int32(math.Round(p.X)) }, func(p Vec2) float64 { return p.Y })
	group(func(p Vec2) int32 { return int32(math.Round(p.Y)) }, func(p Vec2) float64 { return p.X })
	return g
}

// perimeterTwoRects builds the navigable perimeter graph for two
// padded rectangles. Rectangles that do not overlap are first extended
// toward each other along each separating axis until they meet at the
// midpoint of the gap, which keeps the graph connected for distant
// blocks. The perimeter point set is the corners of each rectangle not
// strictly inside the other, plus the corners of their intersection
// region not strictly inside either.
func perimeterTwoRects(a, b Aabb) *graph {
	if a.Right < b.Left {
		mid := (a.Right + b.Left) / 2
		a.Right, b.Left = mid, mid
	} else if b.Right < a.Left {
		mid := (b.Right + a.Left) / 2
		b.Right, a.Left = mid, mid
	}
	if a.Bottom < b.Top {
		mid := (a.Bottom + b.Top) / 2
		a.Bottom, b.Top = mid, mid
	} else if b.Bottom < a.Top {
		mid := (b.Bottom + a.Top) / 2
		b.Bottom, a.Top = mid, mid
	}

	var pts []Vec2
	for _, c := range a.Corners() {
		if !b.ContainsInterior(c) {
			pts = append(pts, c)
		}
	}
	for _, c := range b.Corners() {
		if !a.ContainsInterior(c) {
			pts = append(pts, c)
		}
	}
	if inter := a.Intersection(b); inter.IsValid() {
		for _, c := range inter.Corners() {
			if !a.ContainsInterior(c) && !b.ContainsInterior(c) {
				pts = append(pts, c)
			}
		}
	}

	return chainGraph(dedupePoints(pts))
}

// perimeterSingleRect builds the perimeter graph for one padded
// rectangle: its four corners connected into a cycle. When the free
// endpoint sits outside the box and its ray cannot reach the box at
// all (the point is behind the block along the routing direction), the
// box is grown to include the point first.
func perimeterSingleRect(box Aabb, freeRay Ray) *graph {
	if !box.Contains(freeRay.Origin) {
		if hit := slabDistance(freeRay.Origin, freeRay.Dir,
			Vec2{X: box.Left, Y: box.Top}, Vec2{X: box.Right, Y: box.Bottom}); hit < 0 {
			box.ExpandToInclude(freeRay.Origin)
		}
	}

	corners := box.Corners()
	g := newGraph()
	for _, c := range corners {
		g.addNode(c)
	}
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		g.connect(i, j, corners[i].Distance(corners[j]))
	}
	return g
}

// edgeHit is the result of intersecting a ray with one graph edge.
type edgeHit struct {
	t  float64
	pt Vec2
	a  int
	b  int
}

// rayEdgeIntersection intersects an axis-aligned ray with one
// axis-aligned segment. Collinear overlaps resolve to the nearest
// segment endpoint in the ray direction.
func rayEdgeIntersection(r Ray, pa, pb Vec2) (edgeHit, bool) {
	o := r.Origin

	hitAt := func(t float64, pt Vec2) (edgeHit, bool) {
		if t < -epsilon {
			return edgeHit{}, false
		}
		return edgeHit{t: math.Max(t, 0), pt: pt}, true
	}

	if r.Dir.Y == 0 {
		if sameX(pa, pb) { // vertical segment
			t := (pa.X - o.X) / r.Dir.X
			lo, hi := math.Min(pa.Y, pb.Y), math.Max(pa.Y, pb.Y)
			if o.Y < lo-epsilon || o.Y > hi+epsilon {
				return edgeHit{}, false
			}
			return hitAt(t, Vec2{X: pa.X, Y: o.Y})
		}
		// horizontal segment: only collinear overlap counts
		if !sameY(o, pa) {
			return edgeHit{}, false
		}
		ta := (pa.X - o.X) / r.Dir.X
		tb := (pb.X - o.X) / r.Dir.X
		if ta <= tb {
			if h, ok := hitAt(ta, pa); ok {
				return h, ok
			}
			return hitAt(tb, pb)
		}
		if h, ok := hitAt(tb, pb); ok {
			return h, ok
		}
		return hitAt(ta, pa)
	}

	if sameY(pa, pb) { // horizontal segment
		t := (pa.Y - o.Y) / r.Dir.Y
		lo, hi := math.Min(pa.X, pb.X), math.Max(pa.X, pb.X)
		if o.X < lo-epsilon || o.X > hi+epsilon {
			return edgeHit{}, false
		}
		return hitAt(t, Vec2{X: o.X, Y: pa.Y})
	}
	// vertical segment: collinear overlap
	if !sameX(o, pa) {
		return edgeHit{}, false
	}
	ta := (pa.Y - o.Y) / r.Dir.Y
	tb := (pb.Y - o.Y) / r.Dir.Y
	if ta <= tb {
		if h, ok := hitAt(ta, pa); ok {
			return h, ok
		}
		return hitAt(tb, pb)
	}
	if h, ok := hitAt(tb, pb); ok {
		return h, ok
	}
	return hitAt(ta, pa)
}

// nearestEdgeHit folds the ray over every current edge and returns the
// closest intersection. Ties keep the first edge in iteration order,
// which is stable.
func nearestEdgeHit(g *graph, r Ray) (edgeHit, bool) {
	var best edgeHit
	found := false
	g.forEachEdge(func(a, b *graphNode) {
		h, ok := rayEdgeIntersection(r, a.pt, b.pt)
		if !ok {
			return
		}
		h.a, h.b = a.id, b.id
		if !found || h.t < best.t-epsilon {
			best = h
			found = true
		}
	})
	return best, found
}

// spliceRay inserts a resolved ray origin into the graph. If the
// origin already lands exactly on an existing node, within epsilon,
// that node is reused. Otherwise the nearest ray/edge intersection
// becomes a new node: the hit edge is split in two and the origin is
// connected to the new node. Returns the origin's node id, and false
// when the ray reaches no edge at all (degenerate input; the caller
// falls back).
func (g *graph) spliceRay(r Ray) (int, bool) {
	for _, n := range g.nodes {
		if n.pt.Approx(r.Origin, epsilon) {
			return n.id, true
		}
	}

	hit, ok := nearestEdgeHit(g, r)
	if !ok {
		return g.addNode(r.Origin), false
	}

	origin := g.addNode(r.Origin)
	if hit.t <= epsilon {
		// Origin sits exactly on the edge: splice it in directly.
		g.disconnect(hit.a, hit.b)
		g.connect(hit.a, origin, g.node(hit.a).pt.Distance(r.Origin))
		g.connect(origin, hit.b, r.Origin.Distance(g.node(hit.b).pt))
		return origin, true
	}

	for _, n := range g.nodes {
		if n.id != origin && n.pt.Approx(hit.pt, epsilon) {
			g.connect(origin, n.id, r.Origin.Distance(n.pt))
			return origin, true
		}
	}

	mid := g.addNode(hit.pt)
	g.disconnect(hit.a, hit.b)
	g.connect(hit.a, mid, g.node(hit.a).pt.Distance(hit.pt))
	g.connect(mid, hit.b, hit.pt.Distance(g.node(hit.b).pt))
	g.connect(origin, mid, r.Origin.Distance(hit.pt))
	return origin, true
}
