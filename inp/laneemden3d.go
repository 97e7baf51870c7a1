package inp

import (
	"math"

	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/vecn"
)

func init() {
	RegisterSample("laneemden3d", buildLaneEmden3D)
}

// buildLaneEmden3D seeds a self-gravitating polytropic sphere (n=1,
// gamma=2, the analytically solvable Lane-Emden case: rho(r) =
// rho_c * sinc(pi*r/R)) in hydrostatic balance under self-gravity,
// the end-to-end regression test exercising the gravity role together
// with the fluid-force role. Particles are placed on a simple cubic
// lattice rather than stretched radially; every lattice point whose
// profile density exceeds 1e-3*rho_c is kept and carries mass
// rho(r)*dx^3, so the profile lives in the masses, not the spacing.
func buildLaneEmden3D(gamma float64) *particle.State {
	const nGrid = 40
	const boxHalf = 1.2 // in units of R, the polytrope's radius
	const rhoC = 1.0
	const radiusR = 1.0

	dx := 2 * boxHalf / float64(nGrid)
	cellVol := dx * dx * dx

	type pt struct {
		pos vecn.Vec
		rho float64
	}
	var pts []pt

	profile := func(r float64) float64 {
		if r >= radiusR {
			return 0
		}
		x := math.Pi * r / radiusR
		if x == 0 {
			return rhoC
		}
		return rhoC * math.Sin(x) / x
	}

	for ix := 0; ix < nGrid; ix++ {
		x := -boxHalf + (float64(ix)+0.5)*dx
		for iy := 0; iy < nGrid; iy++ {
			y := -boxHalf + (float64(iy)+0.5)*dx
			for iz := 0; iz < nGrid; iz++ {
				z := -boxHalf + (float64(iz)+0.5)*dx
				r := math.Sqrt(x*x + y*y + z*z)
				rho := profile(r)
				if rho <= 1e-3*rhoC {
					continue
				}
				var pos vecn.Vec
				setAxes(&pos, x, y, z)
				pts = append(pts, pt{pos: pos, rho: rho})
			}
		}
	}

	st := newState(len(pts), gamma)
	for i, q := range pts {
		p := &st.Particles[i]
		p.ID = i
		p.Pos = q.pos
		p.Mass = q.rho * cellVol
		p.Dens = q.rho
		// isothermal-ish internal energy normalization; the self-gravity
		// role (not this sample) is responsible for driving the profile
		// toward its true hydrostatic balance over the first few
		// dynamical times.
		p.Ene = 1.0 / (gamma - 1)
	}
	st.NeighborNumber = 32
	return st
}
