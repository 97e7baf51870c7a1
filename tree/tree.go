// Package tree implements the Barnes-Hut spatial tree: a 2^D-way
// recursive spatial subdivision used for bounded neighbor queries and the
// multipole gravity walk. Nodes are allocated from a contiguous arena and
// referenced by index, never by pointer;
// the tree is rebuilt from scratch every step and is read-only during
// queries.
package tree

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/vecn"
)

const nchild = 1 << uint(vecn.D) // 2, 4, 8 for D=1,2,3

// Node is one cell of the tree arena.
type Node struct {
	Center vecn.Vec
	Width  float64 // half-extent (cube/square/segment)

	COM       vecn.Vec
	MassTotal float64

	FirstParticleIndex int // offset into Tree.order for leaves
	Count              int

	Children [nchild]int // arena index, -1 if absent
	IsLeaf   bool
}

// Tree is the arena-backed Barnes-Hut tree over a snapshot of particle
// positions and masses.
type Tree struct {
	nodes []Node
	order []int // permutation of particle indices, grouped by leaf

	pos  []vecn.Vec
	mass []float64
	per  vecn.Periodic

	leafParticleNumber int
}

// Build constructs the tree from the given positions/masses. It borrows
// pos/mass for the lifetime of queries; callers must not mutate them
// until the tree is discarded (the per-step rebuild discipline of
// the per-step rebuild discipline guarantees this).
func Build(pos []vecn.Vec, mass []float64, leafParticleNumber int, per vecn.Periodic) *Tree {
	if leafParticleNumber < 1 {
		leafParticleNumber = 16
	}
	t := &Tree{
		pos:                pos,
		mass:               mass,
		per:                per,
		leafParticleNumber: leafParticleNumber,
	}
	n := len(pos)
	if n == 0 {
		return t
	}
	t.order = make([]int, n)
	for i := range t.order {
		t.order[i] = i
	}

	center, width := boundingBox(pos)
	t.nodes = make([]Node, 0, 2*n/leafParticleNumber+nchild)
	t.build(center, width, 0, n)
	return t
}

// boundingBox returns the smallest enclosing cube (centered box) over pos.
func boundingBox(pos []vecn.Vec) (center vecn.Vec, halfWidth float64) {
	lo, hi := pos[0], pos[0]
	for _, p := range pos[1:] {
		for i := 0; i < vecn.D; i++ {
			if p[i] < lo[i] {
				lo[i] = p[i]
			}
			if p[i] > hi[i] {
				hi[i] = p[i]
			}
		}
	}
	var maxExtent float64
	for i := 0; i < vecn.D; i++ {
		center[i] = 0.5 * (lo[i] + hi[i])
		if e := hi[i] - lo[i]; e > maxExtent {
			maxExtent = e
		}
	}
	halfWidth = 0.5*maxExtent + 1e-9
	if halfWidth == 0 {
		halfWidth = 1e-9
	}
	return
}

// octant returns the child index [0, nchild) of p relative to center.
func octant(p, center vecn.Vec) int {
	idx := 0
	for i := 0; i < vecn.D; i++ {
		if p[i] >= center[i] {
			idx |= 1 << uint(i)
		}
	}
	return idx
}

// childCenter returns the center of child c of a node with the given
// center and half-width.
func childCenter(center vecn.Vec, width float64, c int) (cc vecn.Vec) {
	half := 0.5 * width
	for i := 0; i < vecn.D; i++ {
		if c&(1<<uint(i)) != 0 {
			cc[i] = center[i] + half
		} else {
			cc[i] = center[i] - half
		}
	}
	return
}

// build recursively partitions t.order[lo:hi] and appends the resulting
// node to the arena, returning its arena index.
func (t *Tree) build(center vecn.Vec, width float64, lo, hi int) int {
	idx := len(t.nodes)
	t.nodes = append(t.nodes, Node{Center: center, Width: width, FirstParticleIndex: lo, Count: hi - lo})

	if hi-lo <= t.leafParticleNumber {
		t.nodes[idx].IsLeaf = true
		for i := range t.nodes[idx].Children {
			t.nodes[idx].Children[i] = -1
		}
		t.finalizeMoments(idx, lo, hi)
		return idx
	}

	// partition t.order[lo:hi] into nchild contiguous buckets by octant
	buckets := make([][]int, nchild)
	for k := lo; k < hi; k++ {
		p := t.pos[t.order[k]]
		c := octant(p, center)
		buckets[c] = append(buckets[c], t.order[k])
	}
	k := lo
	for c := 0; c < nchild; c++ {
		for _, pidx := range buckets[c] {
			t.order[k] = pidx
			k++
		}
	}

	// degenerate case: all particles landed in one bucket (coincident
	// points or a cell narrower than float precision) - force a leaf to
	// avoid infinite recursion.
	nonEmpty := 0
	for c := 0; c < nchild; c++ {
		if len(buckets[c]) > 0 {
			nonEmpty++
		}
	}
	if nonEmpty <= 1 || width < 1e-12 {
		t.nodes[idx].IsLeaf = true
		for i := range t.nodes[idx].Children {
			t.nodes[idx].Children[i] = -1
		}
		t.finalizeMoments(idx, lo, hi)
		return idx
	}

	k = lo
	var children [nchild]int
	for c := 0; c < nchild; c++ {
		n := len(buckets[c])
		if n == 0 {
			children[c] = -1
			continue
		}
		cc := childCenter(center, width, c)
		children[c] = t.build(cc, 0.5*width, k, k+n)
		k += n
	}
	t.nodes[idx].Children = children
	t.finalizeMoments(idx, lo, hi)
	return idx
}

// finalizeMoments computes total mass and center of mass over
// t.order[lo:hi] for the node at idx.
func (t *Tree) finalizeMoments(idx, lo, hi int) {
	var massTotal float64
	var com vecn.Vec
	for k := lo; k < hi; k++ {
		m := t.mass[t.order[k]]
		massTotal += m
		com = com.AddScaled(m, t.pos[t.order[k]])
	}
	if massTotal > 0 {
		com = com.Scale(1 / massTotal)
	}
	t.nodes[idx].MassTotal = massTotal
	t.nodes[idx].COM = com
}

// Root returns the root node index, or -1 for an empty tree.
func (t *Tree) Root() int {
	if len(t.nodes) == 0 {
		return -1
	}
	return 0
}

// Node returns the node at arena index i.
func (t *Tree) Node(i int) *Node {
	return &t.nodes[i]
}

// NumNodes returns the arena size.
func (t *Tree) NumNodes() int {
	return len(t.nodes)
}

// boxDistance returns the distance from p to the closest point of the
// axis-aligned box [center-width, center+width], under the tree's
// periodic minimum-image convention.
func (t *Tree) boxDistance(p vecn.Vec, center vecn.Vec, width float64) float64 {
	d := t.per.CalcRij(p, center)
	var sum2 float64
	for i := 0; i < vecn.D; i++ {
		a := d[i]
		if a < 0 {
			a = -a
		}
		excess := a - width
		if excess > 0 {
			sum2 += excess * excess
		}
	}
	return math.Sqrt(sum2)
}
