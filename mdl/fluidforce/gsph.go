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
	sph.Register(sph.GSPH, sph.RoleFluidForce, func() sph.Module { return NewGSPH(DefaultParams()) })
}

// GSPH is the Godunov-SPH fluid-force pass: every pair interaction solves
// a 1D Riemann problem along the line joining the particles (hll.go) and
// uses the resulting star-state pressure/velocity in place of the
// arithmetic pressure average SSPH uses. In near-smooth flow (below
// ShockQuietRatio) it falls back to SSPH's pressure-average plus Monaghan
// AV, since the Riemann solve is unnecessary overhead away from shocks
// and the HLL linearization loses accuracy there.
type GSPH struct {
	Prm Params
}

// NewGSPH returns a GSPH fluid-force module.
func NewGSPH(prm Params) *GSPH {
	return &GSPH{Prm: prm}
}

// SetParams overrides the module's parameters; integrator.NewDriver calls
// this after factory construction to inject the run's configured Params.
func (o *GSPH) SetParams(prm Params) { o.Prm = prm }

// Run accumulates dv_i/dt and du_i/dt for every hydro particle.
func (o *GSPH) Run(st *particle.State, tr *tree.Tree) error {
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
					// Smooth-flow fallback: arithmetic pressure average
					// plus Monaghan AV folded into p*, analogous to (not
					// identical in form with) SSPH's pair force.
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

				pForce := pStar
				if o.Prm.ForceCorrection {
					// Inutsuka (2002) consistency correction: the plain
					// Riemann force is first-order accurate in smooth
					// regions because p* generally differs from the
					// arithmetic mean even away from shocks; nudge it
					// back toward the mean there.
					pBar := 0.5 * (p.Pres + q.Pres)
					pForce = 0.5 * (pStar + pBar)
				}

				termI := p.GradH * pForce / (p.Dens * p.Dens)
				termJ := q.GradH * pForce / (q.Dens * q.Dens)
				forceVec := gi.Scale(termI).Add(gj.Scale(termJ))
				acc = acc.AddScaled(-q.Mass, forceVec)

				vStar := nHat.Scale(vStarN)
				relI := p.Vel.Sub(vStar)
				dene += q.Mass * termI * relI.Dot(gi)

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

// isShockQuiet reports whether particle p's flow is smooth enough
// (|div v| h / c below the threshold) to skip the Riemann solve.
func isShockQuiet(p *particle.Particle, ratio float64) bool {
	if p.Sound <= 0 {
		return true
	}
	return math.Abs(p.DivV)*p.Sml/p.Sound < ratio
}

// reconstructAt extrapolates particle p's state to a point offset along
// rij (half the pair separation, signed) using the MUSCL gradients when
// secondOrder is requested; otherwise it returns p's state unchanged
// (first-order, donor-cell Godunov-SPH).
func reconstructAt(st *particle.State, p *particle.Particle, rij vecn.Vec, signedHalf float64, secondOrder bool) (rho, pres float64, vel vecn.Vec) {
	if !secondOrder {
		return p.Dens, p.Pres, p.Vel
	}
	r := rij.Norm()
	if r <= 0 {
		return p.Dens, p.Pres, p.Vel
	}
	nHat := rij.Scale(1 / r)
	disp := nHat.Scale(signedHalf)
	rho = vanLeerLimit(p.Dens, p.GradRho.Dot(nHat), signedHalf, p.DensMin, p.DensMax)
	pres = vanLeerLimit(p.Pres, p.GradP.Dot(nHat), signedHalf, p.PresMin, p.PresMax)
	vel = p.Vel
	for k := 0; k < vecn.D; k++ {
		vel[k] += p.GradVel[k].Dot(disp)
	}
	if rho <= 0 {
		rho = p.Dens
	}
	if pres < 0 {
		pres = 0
	}
	return
}
