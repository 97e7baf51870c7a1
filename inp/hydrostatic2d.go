package inp

import (
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/vecn"
)

func init() {
	RegisterSample("hydrostatic2d", buildHydrostatic2D)
}

// buildHydrostatic2D places a uniform-density square lattice in
// isobaric equilibrium: constant density and pressure, zero velocity.
// With self-gravity disabled and no external field it stays static
// exactly (dv/dt==0 analytically); it is the baseline regression test
// for "does the fluid force correctly produce zero net acceleration in
// a uniform medium", the simplest invariant every discretization must
// satisfy before a shock test is meaningful.
func buildHydrostatic2D(gamma float64) *particle.State {
	const nx, ny = 32, 32
	const rho0, p0 = 1.0, 1.0
	const lx, ly = 1.0, 1.0

	n := nx * ny
	st := newState(n, gamma)
	dx := lx / float64(nx)
	dy := ly / float64(ny)
	mass := rho0 * dx * dy

	idx := 0
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			p := &st.Particles[idx]
			p.ID = idx
			setAxes(&p.Pos, (float64(ix)+0.5)*dx, (float64(iy)+0.5)*dy)
			p.Mass = mass
			p.Dens = rho0
			p.Ene = p0 / ((gamma - 1) * rho0)
			idx++
		}
	}

	var rangeMax vecn.Vec
	setAxes(&rangeMax, lx, ly)
	var isPer [vecn.D]bool
	setAxesBool(&isPer, true, true)
	st.Periodic = vecn.Periodic{RangeMax: rangeMax, IsPer: isPer}
	st.NeighborNumber = 32
	return st
}
