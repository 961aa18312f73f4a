package elbow

import "sort"

// graphNode is one navigable point of a perimeter graph. Node ids are
// dense slice indices, stable for the duration of a single routing
// call; neighbor ids are kept sorted so that iteration order, and
// therefore the whole search, is deterministic.
type graphNode struct {
	id        int
	pt        Vec2
	neighbors []int
	lengths   map[int]float64
}

// graph is an arena of perimeter nodes. It is created, spliced,
// searched and discarded within one routing call.
type graph struct {
	nodes []*graphNode
}

func newGraph() *graph {
	return &graph{}
}

// addNode appends a node and returns its id.
func (g *graph) addNode(pt Vec2) int {
	id := len(g.nodes)
	g.nodes = append(g.nodes, &graphNode{
		id:      id,
		pt:      pt,
		lengths: make(map[int]float64),
	})
	return id
}

func (g *graph) node(id int) *graphNode {
	return g.nodes[id]
}

// connect adds a bidirectional edge of the given length between two
// nodes. Reconnecting an existing pair just updates the length.
func (g *graph) connect(a, b int, length float64) {
	if a == b {
		return
	}
	g.nodes[a].addNeighbor(b, length)
	g.nodes[b].addNeighbor(a, length)
}

// disconnect removes the edge between two nodes, if present.
func (g *graph) disconnect(a, b int) {
	g.nodes[a].removeNeighbor(b)
	g.nodes[b].removeNeighbor(a)
}

func (n *graphNode) addNeighbor(id int, length float64) {
	if _, ok := n.lengths[id]; !ok {
		i := sort.SearchInts(n.neighbors, id)
		n.neighbors = append(n.neighbors, 0)
		copy(n.neighbors[i+1:], n.neighbors[i:])
		n.neighbors[i] = id
	}
	n.lengths[id] = length
}

func (n *graphNode) removeNeighbor(id int) {
	if _, ok := n.lengths[id]; !ok {
		return
	}
	delete(n.lengths, id)
	i := sort.SearchInts(n.neighbors, id)
	n.neighbors = append(n.neighbors[:i], n.neighbors[i+1:]...)
}

// forEachEdge visits every undirected edge exactly once, in a fixed
// order (ascending node id, then ascending neighbor id).
func (g *graph) forEachEdge(fn func(a, b *graphNode)) {
	for _, n := range g.nodes {
		for _, nb := range n.neighbors {
			if nb > n.id {
				fn(n, g.nodes[nb])
			}
		}
	}
}
