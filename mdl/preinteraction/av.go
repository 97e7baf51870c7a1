package preinteraction

import (
	"math"

	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/vecn"
)

// shearState accumulates the SPH estimates of divergence and curl of the
// velocity field needed by the Balsara switch, plus the maximal signal
// velocity over the neighbor set (feeds the CFL timestep candidate).
type shearState struct {
	divV  float64
	curlV vecn.Vec // only the D==3 cross-product components are meaningful
	curl2 float64  // signed curl v for D==2, where curl is a pseudo-scalar
	vSig  float64
}

// computeShearAndSignal walks i's neighbors (already gathered in nbrs) and
// accumulates div v, curl v (or its 2D pseudo-scalar magnitude), and the
// maximal pairwise signal velocity.
func computeShearAndSignal(st *particle.State, i int, nbrs []int) shearState {
	p := &st.Particles[i]
	var s shearState
	for _, j := range nbrs {
		q := &st.Particles[j]
		rij := st.Periodic.CalcRij(p.Pos, q.Pos)
		r := rij.Norm()
		if r <= 0 {
			continue
		}
		vij := p.Vel.Sub(q.Vel)
		gradW := st.Kernel.DW(rij, r, p.Sml)

		volj := q.Mass / q.Dens
		s.divV += -volj * vij.Dot(gradW)

		accumulateCurl(&s, vij, gradW, volj)

		rHat := rij.Scale(1 / r)
		vSigIJ := p.Sound + q.Sound - 3*vij.Dot(rHat)
		if vSigIJ > s.vSig {
			s.vSig = vSigIJ
		}
	}
	return s
}

// balsaraFactor implements f_i = |div v| / (|div v| + |curl v| + eps*c/h).
func balsaraFactor(s shearState, soundSpeed, h, eps float64) float64 {
	curlMag := curlMagnitude(s)
	denom := math.Abs(s.divV) + curlMag + eps*soundSpeed/h
	if denom <= 0 {
		return 0
	}
	return math.Abs(s.divV) / denom
}

// evolveAlpha integrates the time-dependent AV coefficient by one
// explicit Euler substep of size dt: dalpha/dt = -(alpha-alphaMin)/tau +
// max(-div v, 0)*(alphaMax-alpha), tau = h/(epsTau*c).
func evolveAlpha(alphaOld, divV, soundSpeed, h, dt float64, prm Params) float64 {
	tau := h / (prm.EpsilonTau * math.Max(soundSpeed, 1e-300))
	source := math.Max(-divV, 0) * (prm.AlphaMax - alphaOld)
	decay := -(alphaOld - prm.AlphaMin) / tau
	alpha := alphaOld + dt*(decay+source)
	if alpha < prm.AlphaMin {
		alpha = prm.AlphaMin
	}
	if alpha > prm.AlphaMax {
		alpha = prm.AlphaMax
	}
	return alpha
}
