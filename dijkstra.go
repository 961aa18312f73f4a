package elbow

import (
	"container/heap"
)

// searchNode tracks the Dijkstra state for one graph node.
type searchNode struct {
	nodeID int
	dist   float64 // tentative distance from start
	parent *searchNode
	index  int // position in the heap, kept for decrease-key
}

// searchQueue implements heap.Interface as a binary min-heap keyed by
// tentative distance. Combined with the id→node map kept by the
// caller, heap.Fix on the stored index gives O(log n) decrease-key.
type searchQueue []*searchNode

func (pq searchQueue) Len() int { return len(pq) }

func (pq searchQueue) Less(i, j int) bool {
	return pq[i].dist < pq[j].dist
}

func (pq searchQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *searchQueue) Push(x interface{}) {
	n := len(*pq)
	node := x.(*searchNode)
	node.index = n
	*pq = append(*pq, node)
}

func (pq *searchQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*pq = old[0 : n-1]
	return node
}

// shortestPath runs Dijkstra over the perimeter graph and returns the
// point sequence from start to goal. Ties between equally short paths
// resolve by heap insertion order, which is stable for identical
// graphs, so identical inputs always produce identical paths. The
// second return value is false when the goal is unreachable.
func shortestPath(g *graph, startID, goalID int) ([]Vec2, bool) {
	if g == nil || len(g.nodes) == 0 {
		return nil, false
	}

	open := &searchQueue{}
	heap.Init(open)

	start := &searchNode{nodeID: startID}
	heap.Push(open, start)

	closed := make(map[int]bool)
	openSet := make(map[int]*searchNode)
	openSet[startID] = start

	for open.Len() > 0 {
		current := heap.Pop(open).(*searchNode)
		delete(openSet, current.nodeID)

		if current.nodeID == goalID {
			var path []Vec2
			for n := current; n != nil; n = n.parent {
				path = append(path, g.node(n.nodeID).pt)
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path, true
		}

		closed[current.nodeID] = true

		for _, neighborID := range g.node(current.nodeID).neighbors {
			if closed[neighborID] {
				continue
			}

			weight, ok := g.node(current.nodeID).lengths[neighborID]
			if !ok {
				weight = 1 // should not occur; keeps the search total
			}
			tentative := current.dist + weight

			neighbor, exists := openSet[neighborID]
			if !exists {
				neighbor = &searchNode{
					nodeID: neighborID,
					dist:   tentative,
					parent: current,
				}
				heap.Push(open, neighbor)
				openSet[neighborID] = neighbor
			} else if tentative < neighbor.dist {
				neighbor.dist = tentative
				neighbor.parent = current
				heap.Fix(open, neighbor.index)
			}
		}
	}

	return nil, false
}
