package geometry

import (
	"math/rand"
	"sort"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"golang.org/x/xerrors"
)

// BVHNode is a node of a binary Bounding Volume Hierarchy. Children are either
// further nodes or scene primitives. A node built over a single primitive has
// no right child.
type BVHNode struct {
	Box   core.AABB
	Left  core.Primitive
	Right core.Primitive // nil for single-primitive leaves
}

// bvhItem pairs a primitive with its bounding box so construction never has
// to ask for it twice
type bvhItem struct {
	primitive core.Primitive
	box       core.AABB
}

// NewBVH constructs a BVH over the given primitives. Every primitive must
// report a bounding box; the split axis of each node is drawn from random.
// The returned tree is read-only and safe to share between goroutines.
func NewBVH(primitives []core.Primitive, random *rand.Rand) (*BVHNode, error) {
	if len(primitives) == 0 {
		return nil, ErrEmptyBVH
	}

	// Work on a copy so the caller's slice order is left untouched
	items := make([]bvhItem, len(primitives))
	for i, primitive := range primitives {
		box, ok := primitive.BoundingBox()
		if !ok {
			return nil, xerrors.Errorf("primitive %d (%T): %w", i, primitive, ErrNoBoundingBox)
		}
		items[i] = bvhItem{primitive: primitive, box: box}
	}

	return buildBVH(items, random), nil
}

// buildBVH recursively splits items at the median along a random axis
func buildBVH(items []bvhItem, random *rand.Rand) *BVHNode {
	axis := random.Intn(3)
	less := func(i, j int) bool {
		return items[i].box.Min.Axis(axis) < items[j].box.Min.Axis(axis)
	}

	switch len(items) {
	case 1:
		return &BVHNode{
			Box:  items[0].box,
			Left: items[0].primitive,
		}
	case 2:
		if less(1, 0) {
			items[0], items[1] = items[1], items[0]
		}
		return &BVHNode{
			Box:   core.SurroundingBox(items[0].box, items[1].box),
			Left:  items[0].primitive,
			Right: items[1].primitive,
		}
	}

	sort.Slice(items, less)

	mid := len(items) / 2
	left := buildBVH(items[:mid], random)
	right := buildBVH(items[mid:], random)

	return &BVHNode{
		Box:   core.SurroundingBox(left.Box, right.Box),
		Left:  left,
		Right: right,
	}
}

// Hit tests the node's box, then both children, and returns the closer hit.
// The right child is searched only up to the left child's hit distance.
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax)
	if n.Right == nil {
		return leftHit, hitLeft
	}

	closestSoFar := tMax
	if hitLeft {
		closestSoFar = leftHit.T
	}

	if rightHit, hitRight := n.Right.Hit(ray, tMin, closestSoFar); hitRight {
		return rightHit, true
	}

	return leftHit, hitLeft
}

// BoundingBox returns the cached union of the children's boxes
func (n *BVHNode) BoundingBox() (core.AABB, bool) {
	return n.Box, true
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes      int
	LeafNodes       int // Nodes whose children are all primitives
	MaxDepth        int
	AvgDepth        float64
	TotalPrimitives int
}

// Stats returns statistics about the BVH structure
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	n.collectStats(0, &stats)

	// Calculate average depth after collecting all data
	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}

	return stats
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.TotalNodes++

	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	isLeaf := true
	for _, child := range []core.Primitive{n.Left, n.Right} {
		if child == nil {
			continue
		}
		if node, ok := child.(*BVHNode); ok {
			isLeaf = false
			node.collectStats(depth+1, stats)
		} else {
			stats.TotalPrimitives++
		}
	}

	if isLeaf {
		stats.LeafNodes++
		stats.AvgDepth += float64(depth) // Accumulate depth for average calculation
	}
}
