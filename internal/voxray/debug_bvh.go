package voxray

import (
	"fmt"
	"io"
	"strings"
)

type BVHStats struct {
	Nodes  int
	Leaves int
	Depth  int
}

func (b *BVH) Stats() BVHStats {
	if b == nil || b.root < 0 {
		return BVHStats{}
	}
	var st BVHStats
	b.count(b.root, 1, &st)
	return st
}

func (b *BVH) count(i int32, depth int, st *BVHStats) {
	st.Nodes++
	if depth > st.Depth {
		st.Depth = depth
	}
	n := &b.nodes[i]
	if n.leaf() {
		st.Leaves++
		return
	}
	b.count(n.left, depth+1, st)
	b.count(n.right, depth+1, st)
}

// Dump prints the tree with one tab per level and the box of every node.
func (b *BVH) Dump(w io.Writer) {
	if b == nil || b.root < 0 {
		fmt.Fprintln(w, "[BVH] <empty>")
		return
	}
	st := b.Stats()
	fmt.Fprintf(w, "[BVH] root: nodes=%d leaves=%d depth=%d\n", st.Nodes, st.Leaves, st.Depth)
	b.print(w, b.root, 0)
}

func (b *BVH) print(w io.Writer, i int32, depth int) {
	n := &b.nodes[i]
	ind := strings.Repeat("\t", depth)
	if n.leaf() {
		s := b.spheres[n.sphere]
		fmt.Fprintf(w, "%sLEAF  sphere=%s r=%.5g | min=(%.5g,%.5g,%.5g) max=(%.5g,%.5g,%.5g)\n",
			ind, s.ID, s.Radius,
			n.box.Min[0], n.box.Min[1], n.box.Min[2],
			n.box.Max[0], n.box.Max[1], n.box.Max[2],
		)
		return
	}
	fmt.Fprintf(w, "%sNODE  | min=(%.5g,%.5g,%.5g) max=(%.5g,%.5g,%.5g)\n",
		ind,
		n.box.Min[0], n.box.Min[1], n.box.Min[2],
		n.box.Max[0], n.box.Max[1], n.box.Max[2],
	)
	b.print(w, n.left, depth+1)
	b.print(w, n.right, depth+1)
}
