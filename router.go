// Package elbow computes obstacle-aware orthogonal ("elbow") arrow
// paths between two endpoints, each either a free point or an anchor
// on a rectangular, possibly-rotated block. Routing is a pure,
// synchronous function: padded perimeter graph construction, Dijkstra,
// and polyline simplification all happen within a single call and
// nothing persists between calls.
package elbow

import "math"

// Route computes a Manhattan-style path from start to end in world
// coordinates. startBlock and endBlock are optional read-only
// snapshots of the blocks the endpoints are anchored to; nil means a
// free-floating endpoint. padding is the clearance kept around blocks
// and arrowRotation (radians) rotates the whole local routing frame.
//
// The returned path has at least two points, its first and last points
// equal the resolved endpoints, and every segment is axis-aligned in
// the arrow's local frame. Degenerate geometry never fails: the router
// falls back to simpler strategies and reports the event through the
// diagnostic logger (see SetLogger).
func Route(start, end Vec2, startBlock, endBlock *BlockRect, padding, arrowRotation float64) []Vec2 {
	frame := NewFrame(start, end, arrowRotation)
	ls, le := frame.ToLocal(start), frame.ToLocal(end)

	var sb, eb *BlockRect
	if startBlock != nil {
		b := frame.LocalBlock(*startBlock)
		sb = &b
	}
	if endBlock != nil {
		b := frame.LocalBlock(*endBlock)
		eb = &b
	}

	var path []Vec2
	switch {
	case sb == nil && eb == nil:
		path = routePoints(ls, le)
	case sb != nil && eb == nil:
		path = routeBlockToPoint(sb, ls, le, padding)
	case sb == nil && eb != nil:
		path = reversePath(routeBlockToPoint(eb, le, ls, padding))
	default:
		path = routeBlocks(sb, eb, ls, le, padding)
	}

	return frame.WorldPath(path)
}

// routePoints routes between two free points. A segment that is
// already horizontal or vertical is returned as-is; anything else
// becomes a Z-shaped path bending at the midpoint of the dominant
// axis.
func routePoints(a, b Vec2) []Vec2 {
	if sameX(a, b) || sameY(a, b) {
		return []Vec2{a, b}
	}
	if math.Abs(b.X-a.X) >= math.Abs(b.Y-a.Y) {
		mid := (a.X + b.X) / 2
		return []Vec2{a, {X: mid, Y: a.Y}, {X: mid, Y: b.Y}, b}
	}
	mid := (a.Y + b.Y) / 2
	return []Vec2{a, {X: a.X, Y: mid}, {X: b.X, Y: mid}, b}
}

// routeBlockToPoint routes from an anchor on a block to a free point
// using the single-rectangle perimeter graph.
func routeBlockToPoint(block *BlockRect, anchor, free Vec2, padding float64) []Vec2 {
	anchorRay := exitRay(anchor, block, free)
	freeRay := exitRay(free, nil, anchor)

	box := block.Bounds()
	box.Pad(padding)

	// A free point inside the padded margin must leave it outward: a
	// ray aimed at the anchor would splice onto the margin's far side,
	// straight across the block.
	if box.Contains(free) {
		freeRay.Dir = dominantDirection(block.Center(), free)
	}

	g := perimeterSingleRect(box, freeRay)
	return routeThroughGraph(g, anchorRay, freeRay)
}

// routeBlocks routes between anchors on two blocks. Blocks whose
// padded footprints already contain the other endpoint are touching or
// overlapping; routing around them would produce nonsensical loops, so
// the path degrades to direct point-to-point.
func routeBlocks(startBlock, endBlock *BlockRect, anchorStart, anchorEnd Vec2, padding float64) []Vec2 {
	boxA := startBlock.Bounds()
	boxA.Pad(padding)
	boxB := endBlock.Bounds()
	boxB.Pad(padding)

	if boxB.Contains(anchorStart) || boxA.Contains(anchorEnd) {
		return routePoints(anchorStart, anchorEnd)
	}

	startRay := exitRay(anchorStart, startBlock, anchorEnd)
	endRay := exitRay(anchorEnd, endBlock, anchorStart)

	g := perimeterTwoRects(boxA, boxB)
	return routeThroughGraph(g, startRay, endRay)
}

// routeThroughGraph splices both rays into the perimeter graph, runs
// the shortest-path search and simplifies the result. Construction or
// search failures are recoverable: the router answers with a direct
// path and a diagnostic, never an error.
func routeThroughGraph(g *graph, startRay, endRay Ray) []Vec2 {
	startID, ok := g.spliceRay(startRay)
	if !ok {
		logger().Warn("start ray reached no perimeter edge, using direct path",
			"x", startRay.Origin.X, "y", startRay.Origin.Y)
		return routePoints(startRay.Origin, endRay.Origin)
	}
	endID, ok := g.spliceRay(endRay)
	if !ok {
		logger().Warn("end ray reached no perimeter edge, using direct path",
			"x", endRay.Origin.X, "y", endRay.Origin.Y)
		return routePoints(startRay.Origin, endRay.Origin)
	}

	path, ok := shortestPath(g, startID, endID)
	if !ok {
		logger().Warn("perimeter graph is disconnected, using direct path",
			"nodes", len(g.nodes))
		return routePoints(startRay.Origin, endRay.Origin)
	}

	path = SimplifyPath(path)
	if len(path) < 2 {
		// Both rays spliced onto the same node; coincident endpoints.
		return routePoints(startRay.Origin, endRay.Origin)
	}
	return path
}

func reversePath(pts []Vec2) []Vec2 {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
	return pts
}
