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
	sph.Register(sph.GDISPH, sph.RoleFluidForce, func() sph.Module { return NewGDISPH(DefaultParams()) })
}

// GDISPH couples GSPH's per-pair Riemann interface state to DISPH's
// volume-element momentum/energy equation: it replaces the arithmetic
// pressure used by SolveHLL's inputs with the pressure-weight
// formulation DISPH already carries (p.Pres is Q_i there), and uses the
// star-state pressure p* in place of qi/qj in the DISPH force bracket.
// Like GSPH it falls back to the DISPH+AV pair force in near-smooth flow.
type GDISPH struct {
	Prm Params
}

// NewGDISPH returns a GDISPH fluid-force module.
func NewGDISPH(prm Params) *GDISPH {
	return &GDISPH{Prm: prm}
}

// SetParams overrides the module's parameters; integrator.NewDriver calls
// this after factory construction to inject the run's configured Params.
func (o *GDISPH) SetParams(prm Params) { o.Prm = prm }

// Run accumulates dv_i/dt and du_i/dt for every hydro particle.
func (o *GDISPH) Run(st *particle.State, tr *tree.Tree) error {
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

	if o.Prm.Is2ndOrder {
		if err := ComputeGradients(st, tr, o.Prm.NeighborBufCap); err != nil {
			return err
		}
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

			shockQuiet := isShockQuiet(p, o.Prm.ShockQuietRatio)

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
				nHat := rij.Scale(1 / r)

				var pStar, vStarN float64
				if shockQuiet && isShockQuiet(q, o.Prm.ShockQuietRatio) {
					alphaIJ := pairAlpha(p, q, o.Prm.UseBalsara)
					pi := monaghanPi(p, q, rij, r, alphaIJ, o.Prm.BetaAV)
					pStar = 0.5*(p.Pres+q.Pres) + 0.5*pi*0.5*(p.Dens+q.Dens)
					vStarN = 0.5 * (p.Vel.Dot(nHat) + q.Vel.Dot(nHat))
				} else {
					rhoL, presL, velL := reconstructAt(st, p, rij, -0.5*r, o.Prm.Is2ndOrder)
					rhoR, presR, velR := reconstructAt(st, q, rij, 0.5*r, o.Prm.Is2ndOrder)
					uL := velL.Dot(nHat)
					uR := velR.Dot(nHat)
					pStar, vStarN = SolveHLL(rhoL, presL, uL, p.Sound, rhoR, presR, uR, q.Sound)
				}

				if o.Prm.ForceCorrection {
					pBar := 0.5 * (p.Pres + q.Pres)
					pStar = 0.5 * (pStar + pBar)
				}

				// DISPH's volume-element bracket with qi/qj replaced by the
				// star-state pressure converted back to an internal-energy
				// density via each side's own gamma-1 factor, so the
				// bracket stays dimensionally a reciprocal energy density.
				qStar := pStar / math.Max(o.Prm.Gamma-1, 1e-300)
				bracket := gi.Scale(p.GradH * qStar / math.Max(qi*qi, 1e-300)).
					Add(gj.Scale(q.GradH * qStar / math.Max(qj*qj, 1e-300)))
				prefactor := -(o.Prm.Gamma - 1) * p.Ene * q.Mass * q.Ene

				acc = acc.AddScaled(1, bracket.Scale(prefactor))

				vStar := nHat.Scale(vStarN)
				relI := p.Vel.Sub(vStar)
				duBracket := gi.Scale(p.GradH * qStar / math.Max(qi*qi, 1e-300))
				dene += -prefactor * duBracket.Dot(relI)

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
