package inp

import (
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/vecn"
)

func init() {
	RegisterSample("sod1d", buildSod1D)
}

// buildSod1D lays out the classic Sod (1978) shock tube along the first
// axis: rho=1,p=1 for x<0 and rho=0.125,p=0.1 for x>0, both at rest,
// uniform spacing within each side, the right-side spacing 8 times the
// left-side one, so every particle carries the same mass (standard
// Sod-tube SPH setup).
func buildSod1D(gamma float64) *particle.State {
	const nLeft = 400
	const nRight = 50 // nLeft/8 == density ratio 8, equal particle mass both sides
	const rhoL, pL = 1.0, 1.0
	const rhoR, pR = 0.125, 0.1
	const xMin, xMax = -0.5, 0.5

	n := nLeft + nRight
	st := newState(n, gamma)

	dxL := 0.5 / float64(nLeft)
	dxR := 0.5 / float64(nRight)
	mass := rhoL * dxL // equal-mass particles on both sides

	idx := 0
	for i := 0; i < nLeft; i++ {
		x := xMin + (float64(i)+0.5)*dxL
		p := &st.Particles[idx]
		p.ID = idx
		p.Pos[0] = x
		p.Mass = mass
		p.Dens = rhoL
		p.Ene = pL / ((gamma - 1) * rhoL)
		idx++
	}
	for i := 0; i < nRight; i++ {
		x := (float64(i) + 0.5) * dxR
		p := &st.Particles[idx]
		p.ID = idx
		p.Pos[0] = x
		p.Mass = mass
		p.Dens = rhoR
		p.Ene = pR / ((gamma - 1) * rhoR)
		idx++
	}

	st.Periodic = vecn.Periodic{RangeMin: vecMin(xMin), RangeMax: vecMin(xMax)}
	st.NeighborNumber = 5
	return st
}

// vecMin returns a vecn.Vec with its first component set to v and every
// other axis at 0 (the non-leading axes are unused by 1D samples run
// under a dim1 build, and harmlessly zero under higher-D builds).
func vecMin(v float64) (r vecn.Vec) {
	r[0] = v
	return
}
