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
	sph.Register(sph.SSPH, sph.RoleFluidForce, func() sph.Module { return NewSSPH(DefaultParams()) })
}

// SSPH is the standard pressure-gradient fluid-force pass with grad-h
// correction and Monaghan artificial viscosity/conductivity.
type SSPH struct {
	Prm Params
}

// NewSSPH returns an SSPH fluid-force module.
func NewSSPH(prm Params) *SSPH {
	return &SSPH{Prm: prm}
}

// SetParams overrides the module's parameters; integrator.NewDriver calls
// this after factory construction to inject the run's configured Params.
func (o *SSPH) SetParams(prm Params) { o.Prm = prm }

// Run accumulates dv_i/dt and du_i/dt for every hydro particle.
func (o *SSPH) Run(st *particle.State, tr *tree.Tree) error {
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

				termI := p.GradH * p.Pres / (p.Dens * p.Dens)
				termJ := q.GradH * q.Pres / (q.Dens * q.Dens)

				alphaIJ := pairAlpha(p, q, o.Prm.UseBalsara)
				pi := monaghanPi(p, q, rij, r, alphaIJ, o.Prm.BetaAV)

				forceVec := gi.Scale(termI).Add(gj.Scale(termJ)).Add(gradWbar.Scale(pi))
				acc = acc.AddScaled(-q.Mass, forceVec)

				vij := p.Vel.Sub(q.Vel)
				dene += q.Mass * termI * vij.Dot(gi)
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
