package tree

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/vecn"
)

// Neighbors enumerates all j with |r_ij| < h (or < max(h, hOther(j)) when
// symmetric is true) into buf, returning the count written. Self (index i)
// is never emitted. Returns a resource-failure error if buf is too small
// to hold the full result, which is treated as an error.
func (t *Tree) Neighbors(i int, h float64, buf []int, symmetric bool, hOther func(j int) float64) (n int, err error) {
	root := t.Root()
	if root < 0 {
		return 0, nil
	}
	pi := t.pos[i]
	n, err = t.walkNeighbors(root, i, pi, h, buf, 0, symmetric, hOther)
	return
}

func (t *Tree) walkNeighbors(nodeIdx, i int, pi vecn.Vec, h float64, buf []int, n int, symmetric bool, hOther func(j int) float64) (int, error) {
	node := &t.nodes[nodeIdx]

	// prune: closest point of the box to pi must be within h, else no
	// particle under this cell can be a neighbor of i.
	if t.boxDistance(pi, node.Center, node.Width) >= h {
		return n, nil
	}

	if !node.IsLeaf {
		var err error
		for _, c := range node.Children {
			if c < 0 {
				continue
			}
			n, err = t.walkNeighbors(c, i, pi, h, buf, n, symmetric, hOther)
			if err != nil {
				return n, err
			}
		}
		return n, nil
	}

	for k := node.FirstParticleIndex; k < node.FirstParticleIndex+node.Count; k++ {
		j := t.order[k]
		if j == i {
			continue
		}
		r := t.per.CalcRij(pi, t.pos[j]).Norm()
		limit := h
		if symmetric {
			hj := hOther(j)
			if hj > limit {
				limit = hj
			}
		}
		if r < limit {
			if n >= len(buf) {
				return n, chk.Err("tree: neighbor list overflow for particle %d (capacity %d)", i, len(buf))
			}
			buf[n] = j
			n++
		}
	}
	return n, nil
}
