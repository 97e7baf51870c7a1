package fluidforce

import (
	"math"
	"sync"

	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/sph"
	"github.com/cpmech/gosph/tree"
	"github.com/cpmech/gosph/vecn"
)

func init() {
	sph.Register(sph.DISPH, sph.RoleFluidForce, func() sph.Module { return NewDISPH(DefaultParams()) })
}

// DISPH is the pressure-energy (volume-element) fluid-force pass: the
// pair force uses internal-energy densities q_i = p_i/(gamma-1) in place
// of density ratios, eliminating the spurious force at contact
// discontinuities that SSPH exhibits.
type DISPH struct {
	Prm Params
}

// NewDISPH returns a DISPH fluid-force module.
func NewDISPH(prm Params) *DISPH {
	return &DISPH{Prm: prm}
}

// SetParams overrides the module's parameters; integrator.NewDriver calls
// this after factory construction to inject the run's configured Params.
func (o *DISPH) SetParams(prm Params) { o.Prm = prm }

// Run accumulates dv_i/dt and du_i/dt for every hydro particle.
func (o *DISPH) Run(st *particle.State, tr *tree.Tree) error {
	n := len(st.Particles)
	var mu sync.Mutex
	var firstErr error
	recordErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	sph.ParallelFor(n, func(lo, hi int) {
		buf := make([]int, o.Prm.NeighborBufCap)
		for i := lo; i < hi; i++ {
			p := &st.Particles[i]
			if p.IsPointMass {
				continue
			}
			qi := p.Pres / math.Max(o.Prm.Gamma-1, 1e-300)

			radius := math.Max(p.Sml, 0) * st.Kernel.SupportRatio()
			nb, err := tr.Neighbors(i, radius, buf, true, func(j int) float64 {
				return st.Particles[j].Sml * st.Kernel.SupportRatio()
			})
			if err != nil {
				recordErr(err)
				return
			}

			var acc vecn.Vec
			var dene float64

			for _, jIdx := range buf[:nb] {
				q := &st.Particles[jIdx]
				if q.IsPointMass {
					continue
				}
				qj := q.Pres / math.Max(o.Prm.Gamma-1, 1e-300)

				rij := st.Periodic.CalcRij(p.Pos, q.Pos)
				r := rij.Norm()
				if r <= 0 {
					continue
				}
				if r >= math.Max(p.Sml, q.Sml)*st.Kernel.SupportRatio() {
					continue
				}

				gi := st.Kernel.DW(rij, r, p.Sml)
				gj := st.Kernel.DW(rij, r, q.Sml)
				gradWbar := avGradWbar(st, rij, r, p.Sml, q.Sml)

				bracket := gi.Scale(p.GradH / math.Max(qi, 1e-300)).Add(gj.Scale(q.GradH / math.Max(qj, 1e-300)))
				prefactor := -(o.Prm.Gamma - 1) * p.Ene * q.Mass * q.Ene

				alphaIJ := pairAlpha(p, q, o.Prm.UseBalsara)
				pi := monaghanPi(p, q, rij, r, alphaIJ, o.Prm.BetaAV)

				acc = acc.AddScaled(prefactor, bracket).AddScaled(-q.Mass*pi, gradWbar)

				vij := p.Vel.Sub(q.Vel)
				duBracket := gi.Scale(p.GradH / math.Max(qi, 1e-300))
				dene += -prefactor * duBracket.Dot(vij)
				dene += 0.5 * q.Mass * pi * vij.Dot(gradWbar)

				if o.Prm.UseConductivity {
					dene += q.Mass * artificialConductivity(p, q, rij, r, gradWbar, o.Prm.AlphaU) / math.Max(p.Dens, 1e-300)
				}
			}

			if p.IsWall {
				acc = vecn.Vec{}
				dene = 0
			}

			p.Acc = acc
			p.Dene = dene
		}
	})
	return firstErr
}
