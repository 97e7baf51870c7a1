package preinteraction

import (
	"math"
	"sync"

	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/sph"
	"github.com/cpmech/gosph/tree"
	"github.com/cpmech/gosph/vecn"
)

func init() {
	sph.Register(sph.SSPH, sph.RolePreInteraction, func() sph.Module { return NewSSPH(DefaultParams()) })
	// GSPH shares SSPH's density-formulation pre-interaction pass: the
	// h-solve and rho/p assembly are the same for SSPH and GSPH; only
	// fluid-force differs.
	sph.Register(sph.GSPH, sph.RolePreInteraction, func() sph.Module { return NewSSPH(DefaultParams()) })
}

// SSPH is the standard-SPH pre-interaction pass: density by direct
// summation, pressure p = (gamma-1) rho u, and Omega grad-h correction.
type SSPH struct {
	Prm Params
}

// NewSSPH returns an SSPH pre-interaction module with the given parameters.
func NewSSPH(prm Params) *SSPH {
	return &SSPH{Prm: prm}
}

// SetParams overrides the module's parameters; integrator.NewDriver calls
// this after factory construction to inject the run's configured Params.
func (o *SSPH) SetParams(prm Params) { o.Prm = prm }

// Run solves h_i for every hydro particle and assembles rho, p, sound
// speed, volume, grad-h, the Balsara switch, and (optionally) the
// time-dependent AV coefficient.
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
			h, nNbr, err := SolveH(st, tr, i, o.Prm, p.Sml)
			if err != nil {
				recordErr(err)
				return
			}
			p.Sml = h
			p.Neighbor = nNbr

			radius := h * st.Kernel.SupportRatio()
			nb, qerr := tr.Neighbors(i, radius, buf, false, nil)
			if qerr != nil {
				recordErr(qerr)
				return
			}
			nbrs := buf[:nb]

			rho, _ := densitySum(st, i, h, nbrs)
			p.Dens = rho
			p.Pres = (o.Prm.Gamma - 1) * rho * p.Ene
			if p.Pres < 0 {
				p.Pres = 0
			}
			p.Sound = math.Sqrt(o.Prm.Gamma * p.Pres / math.Max(rho, 1e-300))
			p.Volume = p.Mass / math.Max(rho, 1e-300)

			// Omega_i = [1 + (h/(Deff*n_i)) sum m_j dhw_ij]^-1, using the
			// unweighted kernel-sum number density.
			var numDens, sumMDhw float64
			for _, j := range nbrs {
				r := st.Periodic.CalcRij(p.Pos, st.Particles[j].Pos).Norm()
				numDens += st.Kernel.W(r, h)
				sumMDhw += st.Particles[j].Mass * st.Kernel.DHW(r, h)
			}
			numDens += st.Kernel.W(0, h)
			p.NumDens = numDens
			omegaInv := 1.0
			if numDens > 0 {
				omegaInv = 1 + (h/(float64(vecn.EffDim)*numDens))*sumMDhw
			}
			if omegaInv <= 0 {
				omegaInv = 1
			}
			p.GradH = 1 / omegaInv

			s := computeShearAndSignal(st, i, nbrs)
			p.DivV = s.divV
			st.NamedArray("vsig")[i] = s.vSig
			if vecn.D >= 2 && o.Prm.UseBalsaraSwitch {
				p.Balsara = balsaraFactor(s, p.Sound, h, o.Prm.EpsilonAV)
			} else {
				p.Balsara = 1
			}
			if o.Prm.UseTimeDependentAV {
				if p.Alpha == 0 {
					p.Alpha = o.Prm.AlphaMin
				}
				p.Alpha = evolveAlpha(p.Alpha, s.divV, p.Sound, h, st.Dt, o.Prm)
			} else {
				p.Alpha = o.Prm.AlphaMax
			}
		}
	})
	return firstErr
}
