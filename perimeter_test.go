package elbow

import "testing"

func TestDedupePoints(t *testing.T) {
	pts := dedupePoints([]Vec2{{0, 0}, {10, 0}, {0, 0}, {10.0000001, 0}, {5, 5}})
	want := []Vec2{{0, 0}, {10, 0}, {5, 5}}
	if len(pts) != len(want) {
		t.Fatalf("got %v, want %v", pts, want)
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, pts[i], want[i])
		}
	}
}

func TestChainGraph_Square(t *testing.T) {
	g := chainGraph([]Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}})

	if len(g.nodes) != 4 {
		t.Fatalf("node count = %d, want 4", len(g.nodes))
	}
	for _, n := range g.nodes {
		if len(n.neighbors) != 2 {
			t.Errorf("node %d at %v has %d neighbors, want 2", n.id, n.pt, len(n.neighbors))
		}
		for _, nb := range n.neighbors {
			if w := n.lengths[nb]; w != 10 {
				t.Errorf("edge %d-%d weight = %v, want 10", n.id, nb, w)
			}
		}
	}
}

func TestPerimeterTwoRects_SeparatedExtendToMeet(t *testing.T) {
	// A gap of 20 on the x axis: both boxes extend to meet at x = 20.
	g := perimeterTwoRects(Aabb{0, 0, 10, 10}, Aabb{30, 0, 40, 10})

	if len(g.nodes) != 6 {
		t.Fatalf("node count = %d, want 6", len(g.nodes))
	}

	findNode := func(p Vec2) *graphNode {
		for _, n := range g.nodes {
			if pointKey(n.pt) == pointKey(p) {
				return n
			}
		}
		t.Fatalf("no node at %v", p)
		return nil
	}

	// The shared seam at x=20 must be a traversable vertical chain.
	top, bottom := findNode(V2(20, 0)), findNode(V2(20, 10))
	connected := false
	for _, nb := range top.neighbors {
		if nb == bottom.id {
			connected = true
			if w := top.lengths[nb]; w != 10 {
				t.Errorf("seam edge weight = %v, want 10", w)
			}
		}
	}
	if !connected {
		t.Error("seam corners (20,0) and (20,10) are not connected")
	}
}

func TestPerimeterTwoRects_OverlapDropsBuriedCorners(t *testing.T) {
	g := perimeterTwoRects(Aabb{0, 0, 10, 10}, Aabb{5, 5, 15, 15})

	// One corner of each box is strictly inside the other and must be
	// dropped; the two intersection corners on the outline are added.
	if len(g.nodes) != 8 {
		t.Fatalf("node count = %d, want 8", len(g.nodes))
	}
	for _, n := range g.nodes {
		if pointKey(n.pt) == pointKey(V2(10, 10)) {
			t.Errorf("buried corner (10,10) should not be a node")
		}
		if pointKey(n.pt) == pointKey(V2(5, 5)) {
			t.Errorf("buried corner (5,5) should not be a node")
		}
	}
}

func TestPerimeterSingleRect_Cycle(t *testing.T) {
	// Free point inside the box: no growth, plain 4-corner cycle.
	g := perimeterSingleRect(Aabb{-10, -10, 10, 10}, Ray{Origin: V2(0, 0), Dir: V2(1, 0)})

	if len(g.nodes) != 4 {
		t.Fatalf("node count = %d, want 4", len(g.nodes))
	}
	for _, n := range g.nodes {
		if len(n.neighbors) != 2 {
			t.Errorf("corner %v has %d neighbors, want 2", n.pt, len(n.neighbors))
		}
	}
}

func TestPerimeterSingleRect_GrowsWhenRayMisses(t *testing.T) {
	// The free point's ray points left along y=30 and never reaches the
	// box, so the box grows to include the point.
	g := perimeterSingleRect(Aabb{-10, -10, 10, 10}, Ray{Origin: V2(50, 30), Dir: V2(-1, 0)})

	found := false
	for _, n := range g.nodes {
		if pointKey(n.pt) == pointKey(V2(50, 30)) {
			found = true
		}
	}
	if !found {
		t.Error("grown box should have a corner at the free point (50, 30)")
	}
}

func TestPerimeterSingleRect_NoGrowthWhenRayHits(t *testing.T) {
	// Same free point x but on the box's y band: the ray reaches the box
	// and the original corners stay.
	g := perimeterSingleRect(Aabb{-10, -10, 10, 10}, Ray{Origin: V2(50, 0), Dir: V2(-1, 0)})

	want := []Vec2{{-10, -10}, {10, -10}, {10, 10}, {-10, 10}}
	if len(g.nodes) != 4 {
		t.Fatalf("node count = %d, want 4", len(g.nodes))
	}
	for i, n := range g.nodes {
		if n.pt != want[i] {
			t.Errorf("corner %d = %v, want %v", i, n.pt, want[i])
		}
	}
}

func TestRayEdgeIntersection(t *testing.T) {
	tests := []struct {
		name   string
		ray    Ray
		pa, pb Vec2
		wantOK bool
		wantT  float64
		wantPt Vec2
	}{
		{"horizontal ray hits vertical segment", Ray{V2(0, 5), V2(1, 0)}, V2(10, 0), V2(10, 10), true, 10, V2(10, 5)},
		{"horizontal ray misses short segment", Ray{V2(0, 15), V2(1, 0)}, V2(10, 0), V2(10, 10), false, 0, Vec2{}},
		{"vertical ray hits horizontal segment", Ray{V2(5, -5), V2(0, 1)}, V2(0, 0), V2(10, 0), true, 5, V2(5, 0)},
		{"behind the origin", Ray{V2(20, 5), V2(1, 0)}, V2(10, 0), V2(10, 10), false, 0, Vec2{}},
		{"collinear resolves to near endpoint", Ray{V2(15, 0), V2(-1, 0)}, V2(0, 0), V2(10, 0), true, 5, V2(10, 0)},
		{"origin on the segment", Ray{V2(5, 0), V2(0, -1)}, V2(0, 0), V2(10, 0), true, 0, V2(5, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := rayEdgeIntersection(tt.ray, tt.pa, tt.pb)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if h.t != tt.wantT {
				t.Errorf("t = %v, want %v", h.t, tt.wantT)
			}
			if h.pt != tt.wantPt {
				t.Errorf("pt = %v, want %v", h.pt, tt.wantPt)
			}
		})
	}
}

func squareGraph() *graph {
	return chainGraph([]Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}})
}

func TestSpliceRay_ReusesExistingNode(t *testing.T) {
	g := squareGraph()
	id, ok := g.spliceRay(Ray{Origin: V2(0, 0), Dir: V2(1, 0)})
	if !ok {
		t.Fatal("splice failed")
	}
	if id != 0 {
		t.Errorf("id = %d, want reuse of node 0", id)
	}
	if len(g.nodes) != 4 {
		t.Errorf("node count = %d, want unchanged 4", len(g.nodes))
	}
}

func TestSpliceRay_SplitsEdge(t *testing.T) {
	g := squareGraph()
	id, ok := g.spliceRay(Ray{Origin: V2(5, -5), Dir: V2(0, 1)})
	if !ok {
		t.Fatal("splice failed")
	}
	if len(g.nodes) != 6 {
		t.Fatalf("node count = %d, want 6 (origin + split point)", len(g.nodes))
	}

	origin := g.node(id)
	if origin.pt != V2(5, -5) {
		t.Fatalf("origin node at %v", origin.pt)
	}
	if len(origin.neighbors) != 1 {
		t.Fatalf("origin neighbors = %v, want one", origin.neighbors)
	}
	mid := g.node(origin.neighbors[0])
	if mid.pt != V2(5, 0) {
		t.Errorf("split point at %v, want (5, 0)", mid.pt)
	}

	// The hit edge is replaced: its endpoints now route through mid.
	for _, nb := range g.node(0).neighbors {
		if nb == 1 {
			t.Error("edge (0,0)-(10,0) should have been removed by the split")
		}
	}
	if w := mid.lengths[0]; w != 5 {
		t.Errorf("split edge weight = %v, want 5", w)
	}
}

func TestSpliceRay_HitOnExistingNode(t *testing.T) {
	g := squareGraph()
	id, ok := g.spliceRay(Ray{Origin: V2(15, 0), Dir: V2(-1, 0)})
	if !ok {
		t.Fatal("splice failed")
	}
	if len(g.nodes) != 5 {
		t.Fatalf("node count = %d, want 5 (origin only)", len(g.nodes))
	}

	origin := g.node(id)
	if len(origin.neighbors) != 1 {
		t.Fatalf("origin neighbors = %v", origin.neighbors)
	}
	if hit := g.node(origin.neighbors[0]); hit.pt != V2(10, 0) {
		t.Errorf("origin connected to %v, want existing corner (10, 0)", hit.pt)
	}
}

func TestSpliceRay_OriginOnEdge(t *testing.T) {
	g := squareGraph()
	id, ok := g.spliceRay(Ray{Origin: V2(5, 0), Dir: V2(0, -1)})
	if !ok {
		t.Fatal("splice failed")
	}
	if len(g.nodes) != 5 {
		t.Fatalf("node count = %d, want 5", len(g.nodes))
	}

	origin := g.node(id)
	if len(origin.neighbors) != 2 {
		t.Fatalf("on-edge origin neighbors = %v, want two", origin.neighbors)
	}
}

func TestSpliceRay_NoEdgeReached(t *testing.T) {
	g := squareGraph()
	if _, ok := g.spliceRay(Ray{Origin: V2(50, 50), Dir: V2(1, 0)}); ok {
		t.Error("ray pointing away from every edge should report failure")
	}
}
