package fluidforce

import (
	"math"

	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/vecn"
)

// monaghanPi evaluates the Monaghan (1992) artificial-viscosity pair term
// Pi_ij, zero unless the pair is approaching (v_ij . r_ij < 0). alphaIJ is
// the caller-supplied pairwise alpha (already averaged and, when enabled,
// Balsara-limited).
func monaghanPi(pi, pj *particle.Particle, rij vecn.Vec, r float64, alphaIJ, beta float64) float64 {
	vij := pi.Vel.Sub(pj.Vel)
	vijRij := vij.Dot(rij)
	if vijRij >= 0 {
		return 0
	}
	hbar := 0.5 * (pi.Sml + pj.Sml)
	cbar := 0.5 * (pi.Sound + pj.Sound)
	rhobar := 0.5 * (pi.Dens + pj.Dens)
	mu := hbar * vijRij / (r*r + 0.01*hbar*hbar)
	return (-alphaIJ*cbar*mu + beta*mu*mu) / math.Max(rhobar, 1e-300)
}

// pairAlpha returns alpha_ij = 0.5*(alpha_i+alpha_j), optionally multiplied
// by the Balsara factor 0.5*(f_i+f_j).
func pairAlpha(pi, pj *particle.Particle, useBalsara bool) float64 {
	a := 0.5 * (pi.Alpha + pj.Alpha)
	if useBalsara {
		a *= 0.5 * (pi.Balsara + pj.Balsara)
	}
	return a
}

// avGradWbar returns the symmetrized kernel gradient 0.5*(DW(h_i)+DW(h_j))
// used by the AV and conductivity pair terms.
func avGradWbar(st *particle.State, rij vecn.Vec, r, hi, hj float64) vecn.Vec {
	gi := st.Kernel.DW(rij, r, hi)
	gj := st.Kernel.DW(rij, r, hj)
	return gi.Add(gj).Scale(0.5)
}
