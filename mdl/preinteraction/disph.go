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
	sph.Register(sph.DISPH, sph.RolePreInteraction, func() sph.Module { return NewDISPH(DefaultParams()) })
	// GDISPH reuses DISPH's pressure-energy pre-interaction pass; only its
	// fluid-force couples the Riemann interface state (see
	// mdl/fluidforce/gdisph.go).
	sph.Register(sph.GDISPH, sph.RolePreInteraction, func() sph.Module { return NewDISPH(DefaultParams()) })
}

// DISPH is the density-independent (pressure-energy) pre-interaction
// pass: the SPH-summed density rho is an intermediary only; pressure is
// the SPH-summed pressure-weight Q_i = (gamma-1) sum_j m_j u_j W_ij.
type DISPH struct {
	Prm Params
}

// NewDISPH returns a DISPH pre-interaction module with the given parameters.
func NewDISPH(prm Params) *DISPH {
	return &DISPH{Prm: prm}
}

// SetParams overrides the module's parameters; integrator.NewDriver calls
// this after factory construction to inject the run's configured Params.
func (o *DISPH) SetParams(prm Params) { o.Prm = prm }

// Run mirrors SSPH.Run's h-solve but assembles p_i = Q_i directly, and a
// DISPH-analogue grad-h ratio built from sum m_j u_j dhw_ij.
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

			// Q_i = (gamma-1) sum_j m_j u_j W_ij (including self)
			qi := (o.Prm.Gamma - 1) * p.Mass * p.Ene * st.Kernel.W(0, h)
			var numDens, sumUDhw float64
			for _, j := range nbrs {
				q := &st.Particles[j]
				r := st.Periodic.CalcRij(p.Pos, q.Pos).Norm()
				w := st.Kernel.W(r, h)
				qi += (o.Prm.Gamma - 1) * q.Mass * q.Ene * w
				numDens += w
				sumUDhw += q.Mass * q.Ene * st.Kernel.DHW(r, h)
			}
			numDens += st.Kernel.W(0, h)
			sumUDhw += p.Mass * p.Ene * st.Kernel.DHW(0, h)

			p.PresWeight = qi
			p.NumDens = numDens
			p.Pres = qi
			if p.Pres < 0 {
				p.Pres = 0
			}
			p.Sound = math.Sqrt(o.Prm.Gamma * p.Pres / math.Max(rho, 1e-300))
			p.Volume = p.Mass / math.Max(rho, 1e-300)

			// DISPH grad-h: the analogous ratio using sum m_j u_j dhw_ij in
			// place of sum m_j dhw_ij.
			omegaInv := 1.0
			if numDens > 0 && qi > 0 {
				omegaInv = 1 + (h/(float64(vecn.EffDim)*numDens))*(sumUDhw*(o.Prm.Gamma-1)*p.Mass/math.Max(qi, 1e-300))
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
