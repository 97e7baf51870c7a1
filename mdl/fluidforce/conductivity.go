package fluidforce

import (
	"math"

	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/vecn"
)

// artificialConductivity returns the contribution to du_i/dt of the
// optional conductivity term alpha_u * vsig * u_ij/rhobar * (v_i-v_j).gradWbar,
// reducing spurious temperature jumps at contact discontinuities in SSPH.
// Disabled by default in DISPH/GSPH.
func artificialConductivity(pi, pj *particle.Particle, rij vecn.Vec, r float64, gradWbar vecn.Vec, alphaU float64) float64 {
	rhobar := 0.5 * (pi.Dens + pj.Dens)
	if rhobar <= 0 {
		return 0
	}
	vSig := math.Abs(pi.Sound + pj.Sound)
	uij := pi.Ene - pj.Ene
	vij := pi.Vel.Sub(pj.Vel)
	return alphaU * vSig * uij / rhobar * vij.Dot(gradWbar)
}
