package fluidforce

import "math"

// SolveHLL solves the 1D Riemann problem along the pair interface normal
// given left/right states (rho, p, u-velocity-along-normal, soundspeed),
// returning the HLL star-state pressure and normal velocity. The solver
// is stateless and deterministic, and uses the acoustic-impedance form of
// the two-wave HLL contact average (C_L = rho_L c_L, C_R = rho_R c_R are
// the left/right acoustic impedances):
//
//	p* = (C_R p_L + C_L p_R - C_L C_R (u_R - u_L)) / (C_L + C_R)
//	v* = (C_L u_L + C_R u_R - (p_R - p_L)) / (C_L + C_R)
//
// which reduces to p*=p_L, v*=u_L when the left and right states coincide.
func SolveHLL(rhoL, pL, uL, cL, rhoR, pR, uR, cR float64) (pStar, vStar float64) {
	cImpL := math.Max(rhoL, 0) * math.Max(cL, 0)
	cImpR := math.Max(rhoR, 0) * math.Max(cR, 0)
	sum := cImpL + cImpR
	if sum <= 0 {
		return 0.5 * (pL + pR), 0.5 * (uL + uR)
	}
	pStar = (cImpR*pL + cImpL*pR - cImpL*cImpR*(uR-uL)) / sum
	vStar = (cImpL*uL + cImpR*uR - (pR - pL)) / sum
	return
}
