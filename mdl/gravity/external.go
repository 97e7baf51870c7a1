package gravity

import (
	"math"

	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/sph"
	"github.com/cpmech/gosph/tree"
	"github.com/cpmech/gosph/vecn"
)

// External adds the pull of a small, fixed set of point-mass sources
// (particles flagged IsPointMass, e.g. a central star in an accretion-disk
// setup) via direct summation rather than the tree walk: there are
// typically only a handful of them, so the O(N*M) cost is negligible and
// the force is exact rather than a monopole approximation. It is not
// bound through the module factory (self-gravity already covers the same
// particles when enabled); the integrator composes it directly when
// Params.EnableExternalGravity is set.
type External struct {
	Prm Params
}

// NewExternal returns an external-point-mass gravity module.
func NewExternal(prm Params) *External {
	return &External{Prm: prm}
}

// Run adds every hydro particle's acceleration due to the configured
// point masses to p.Acc; point masses themselves are left unmodified
// here (the integrator may additionally enable self-gravity to let
// point masses pull on each other and on hydro particles alike).
func (o *External) Run(st *particle.State, tr *tree.Tree) error {
	sources := make([]int, 0, 4)
	for j := range st.Particles {
		if st.Particles[j].IsPointMass {
			sources = append(sources, j)
		}
	}
	if len(sources) == 0 {
		return nil
	}

	n := len(st.Particles)
	eps2 := o.Prm.eps2()
	sph.ParallelFor(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			p := &st.Particles[i]
			if p.IsPointMass {
				continue
			}
			var acc vecn.Vec
			for _, j := range sources {
				s := &st.Particles[j]
				rij := st.Periodic.CalcRij(s.Pos, p.Pos)
				d2 := rij.Norm2() + eps2
				if d2 <= 0 {
					continue
				}
				inv := 1 / (d2 * math.Sqrt(d2))
				acc = acc.AddScaled(o.Prm.G*s.Mass*inv, rij)
			}
			p.Acc = p.Acc.Add(acc)
		}
	})
	return nil
}
