package elbow

import (
	"math"

	"github.com/dhconnelly/rtreego"
)

// SceneBlock is a block known to the host scene: a stable id plus the
// rectangle snapshot the router consumes.
type SceneBlock struct {
	ID   string    `json:"id"`
	Rect BlockRect `json:"rect"`
}

// Bounds implements rtreego.Spatial over the block's world-space
// bounding box.
func (b *SceneBlock) Bounds() rtreego.Rect {
	box := b.Rect.Bounds()
	r, err := rtreego.NewRect(
		rtreego.Point{box.Left, box.Top},
		[]float64{math.Max(box.Width(), epsilon), math.Max(box.Height(), epsilon)},
	)
	if err != nil {
		// Only reachable with non-finite coordinates, which are the
		// caller's responsibility; an empty rect keeps the tree sane.
		r, _ = rtreego.NewRect(rtreego.Point{0, 0}, []float64{epsilon, epsilon})
	}
	return r
}

// SceneIndex answers spatial queries over a set of scene blocks. The
// router itself only ever sees the two anchor blocks of one arrow; the
// index is how a host with many blocks finds those two, and which
// blocks sit near a route corridor.
type SceneIndex struct {
	tree *rtreego.Rtree
}

// NewSceneIndex builds an index over the given blocks.
func NewSceneIndex(blocks []SceneBlock) *SceneIndex {
	tree := rtreego.NewTree(2, 25, 50)
	for i := range blocks {
		b := blocks[i]
		tree.Insert(&b)
	}
	return &SceneIndex{tree: tree}
}

// QueryRegion returns the blocks whose bounds intersect the given box.
func (si *SceneIndex) QueryRegion(minX, minY, maxX, maxY float64) []SceneBlock {
	rect, err := rtreego.NewRect(
		rtreego.Point{minX, minY},
		[]float64{math.Max(maxX-minX, epsilon), math.Max(maxY-minY, epsilon)},
	)
	if err != nil {
		return nil
	}

	results := si.tree.SearchIntersect(rect)
	blocks := make([]SceneBlock, 0, len(results))
	for _, item := range results {
		blocks = append(blocks, *item.(*SceneBlock))
	}
	return blocks
}

// BlockAt returns the block whose rotated rectangle contains p, or nil.
// Candidates come from the R-tree; the exact rotated-rectangle test
// decides. When several blocks overlap the point, the one with the
// smallest footprint wins, which matches how hosts pick the visually
// topmost small block under a cursor.
func (si *SceneIndex) BlockAt(p Vec2) *SceneBlock {
	candidates := si.QueryRegion(p.X-epsilon, p.Y-epsilon, p.X+epsilon, p.Y+epsilon)

	var best *SceneBlock
	bestArea := math.Inf(1)
	for i := range candidates {
		b := candidates[i]
		if !b.Rect.ContainsPoint(p) {
			continue
		}
		area := b.Rect.Size.X * b.Rect.Size.Y
		if area < bestArea {
			bestArea = area
			best = &candidates[i]
		}
	}
	return best
}

// RouteBounds calculates the bounding box of a route corridor between
// two endpoints with the given margin.
func RouteBounds(start, end Vec2, margin float64) (minX, minY, maxX, maxY float64) {
	minX = math.Min(start.X, end.X) - margin
	maxX = math.Max(start.X, end.X) + margin
	minY = math.Min(start.Y, end.Y) - margin
	maxY = math.Max(start.Y, end.Y) + margin
	return
}
