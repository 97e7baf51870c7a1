package tree

import (
	"math"

	"github.com/cpmech/gosph/vecn"
)

// Gravity computes -G * sum_j m_j (r_i - r_j) / (|r_ij|^2 + eps^2)^1.5 via
// the Barnes-Hut multipole walk: a node is accepted as a single monopole
// source when width/dist < theta; otherwise the walk descends. At the
// leaves the particle itself is skipped by index comparison so its own
// mass never contributes there.
func (t *Tree) Gravity(i int, theta, g, eps2 float64) vecn.Vec {
	root := t.Root()
	if root < 0 {
		return vecn.Vec{}
	}
	pi := t.pos[i]
	return t.walkGravity(root, i, pi, theta, g, eps2)
}

func (t *Tree) walkGravity(nodeIdx, i int, pi vecn.Vec, theta, g, eps2 float64) (acc vecn.Vec) {
	node := &t.nodes[nodeIdx]
	if node.MassTotal == 0 {
		return
	}

	if node.IsLeaf {
		for k := node.FirstParticleIndex; k < node.FirstParticleIndex+node.Count; k++ {
			j := t.order[k]
			if j == i {
				continue
			}
			rij := t.per.CalcRij(t.pos[j], pi)
			d2 := rij.Norm2() + eps2
			if d2 <= 0 {
				continue
			}
			inv := 1 / (d2 * math.Sqrt(d2))
			acc = acc.AddScaled(g*t.mass[j]*inv, rij)
		}
		return
	}

	rNode := t.per.CalcRij(node.COM, pi)
	dist := rNode.Norm()
	if dist == 0 {
		// coincides with the node's own COM: must descend to avoid a
		// singular monopole approximation at zero distance.
		for _, c := range node.Children {
			if c < 0 {
				continue
			}
			acc = acc.Add(t.walkGravity(c, i, pi, theta, g, eps2))
		}
		return
	}

	if node.Width/dist < theta {
		d2 := dist*dist + eps2
		inv := 1 / (d2 * math.Sqrt(d2))
		acc = acc.AddScaled(g*node.MassTotal*inv, rNode)
		return
	}

	for _, c := range node.Children {
		if c < 0 {
			continue
		}
		acc = acc.Add(t.walkGravity(c, i, pi, theta, g, eps2))
	}
	return
}
