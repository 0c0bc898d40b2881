package voxray

import "sort"

// bvhNode is either a leaf (sphere >= 0) or an internal node with two children.
type bvhNode struct {
	box         AABB
	left, right int32
	sphere      int32
}

func (n *bvhNode) leaf() bool { return n.sphere >= 0 }

// BVH is a median-split hierarchy over spheres, stored as an arena of nodes.
// It is rebuilt wholesale whenever the sphere set changes.
type BVH struct {
	nodes   []bvhNode
	spheres []*Sphere
	root    int32
}

// BuildBVH builds the hierarchy; the input slice itself is not reordered.
func BuildBVH(spheres []*Sphere) *BVH {
	b := &BVH{root: -1}
	for _, s := range spheres {
		if s != nil {
			b.spheres = append(b.spheres, s)
		}
	}
	if len(b.spheres) == 0 {
		return b
	}
	idx := make([]int32, len(b.spheres))
	for i := range idx {
		idx[i] = int32(i)
	}
	b.nodes = make([]bvhNode, 0, 2*len(idx)-1)
	b.root = b.buildRec(idx)
	DebugLog("BVH built: spheres=%d nodes=%d", len(b.spheres), len(b.nodes))
	return b
}

func (b *BVH) buildRec(idx []int32) int32 {
	if len(idx) == 1 {
		b.nodes = append(b.nodes, bvhNode{box: b.spheres[idx[0]].Bounds(), left: -1, right: -1, sphere: idx[0]})
		return int32(len(b.nodes) - 1)
	}
	box := b.spheres[idx[0]].Bounds()
	for _, i := range idx[1:] {
		box = box.Union(b.spheres[i].Bounds())
	}
	axis := box.LongestAxis()
	sort.SliceStable(idx, func(i, j int) bool {
		return b.spheres[idx[i]].Center[axis] < b.spheres[idx[j]].Center[axis]
	})
	mid := len(idx) / 2

	// Reserve the slot first so the parent precedes its children.
	self := int32(len(b.nodes))
	b.nodes = append(b.nodes, bvhNode{box: box, sphere: -1})
	l := b.buildRec(idx[:mid])
	r := b.buildRec(idx[mid:])
	b.nodes[self].left, b.nodes[self].right = l, r
	return self
}

func (b *BVH) Len() int { return len(b.spheres) }

// Intersect finds the nearest sphere hit closer than ray.Length. Both children
// are always visited, so the result equals a linear scan over all spheres.
func (b *BVH) Intersect(ray *Ray, hit *HitInfo) bool {
	if b == nil || b.root < 0 {
		return false
	}
	return b.intersect(b.root, ray, hit)
}

func (b *BVH) intersect(i int32, ray *Ray, hit *HitInfo) bool {
	n := &b.nodes[i]
	if n.leaf() {
		return b.spheres[n.sphere].Hit(ray, hit, ray.Length)
	}
	hl := b.intersect(n.left, ray, hit)
	hr := b.intersect(n.right, ray, hit)
	return hl || hr
}
