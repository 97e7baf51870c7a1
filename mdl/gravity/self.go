package gravity

import (
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/sph"
	"github.com/cpmech/gosph/tree"
)

func init() {
	// Self-gravity is a hydro-discretization-independent role: the same
	// tree walk applies whether the fluid force came from SSPH, DISPH,
	// GSPH, or GDISPH, so all four variants bind to the one allocator.
	alloc := func() sph.Module { return NewSelf(DefaultParams()) }
	sph.Register(sph.SSPH, sph.RoleGravity, alloc)
	sph.Register(sph.DISPH, sph.RoleGravity, alloc)
	sph.Register(sph.GSPH, sph.RoleGravity, alloc)
	sph.Register(sph.GDISPH, sph.RoleGravity, alloc)
}

// Self is the mutual self-gravity pass: every particle (hydro or point
// mass) pulls on every other via the Barnes-Hut monopole walk.
type Self struct {
	Prm Params
}

// NewSelf returns a self-gravity module with the given parameters.
func NewSelf(prm Params) *Self {
	return &Self{Prm: prm}
}

// SetParams overrides the module's parameters; integrator.NewDriver calls
// this after factory construction to inject the run's configured Params.
func (o *Self) SetParams(prm Params) { o.Prm = prm }

// Run adds each particle's self-gravity acceleration to p.Acc.
func (o *Self) Run(st *particle.State, tr *tree.Tree) error {
	n := len(st.Particles)
	sph.ParallelFor(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			p := &st.Particles[i]
			g := tr.Gravity(i, o.Prm.Theta, o.Prm.G, o.Prm.eps2())
			p.Acc = p.Acc.Add(g)
		}
	})
	return nil
}
