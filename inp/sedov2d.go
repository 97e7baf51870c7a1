package inp

import (
	"math"

	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/vecn"
)

func init() {
	RegisterSample("sedov2d", buildSedov2D)
}

// buildSedov2D is the Sedov-Taylor point-blast test: a uniform-density
// square lattice at rest, with the injection energy E0 deposited into
// the handful of particles nearest the domain center (the standard SPH
// rendition of the blast, since a true delta-function source has no
// meaningful single-particle representation).
func buildSedov2D(gamma float64) *particle.State {
	const nx, ny = 64, 64
	const rho0 = 1.0
	const lx, ly = 1.0, 1.0
	const e0 = 1.0
	const pBackground = 1e-5

	n := nx * ny
	st := newState(n, gamma)
	dx := lx / float64(nx)
	dy := ly / float64(ny)
	mass := rho0 * dx * dy

	cx, cy := 0.5*lx, 0.5*ly
	type seed struct {
		idx  int
		dist float64
	}
	var nearest []seed

	idx := 0
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			x := (float64(ix) + 0.5) * dx
			y := (float64(iy) + 0.5) * dy
			p := &st.Particles[idx]
			p.ID = idx
			setAxes(&p.Pos, x, y)
			p.Mass = mass
			p.Dens = rho0
			p.Ene = pBackground / ((gamma - 1) * rho0)
			nearest = append(nearest, seed{idx, math.Hypot(x-cx, y-cy)})
			idx++
		}
	}

	// inject e0 into the ~20 particles closest to the center, split
	// evenly by mass so the total injected internal energy is exactly e0
	for k := 0; k < len(nearest)-1; k++ {
		for l := k + 1; l < len(nearest); l++ {
			if nearest[l].dist < nearest[k].dist {
				nearest[k], nearest[l] = nearest[l], nearest[k]
			}
		}
		if k >= 20 {
			break
		}
	}
	const nSeed = 20
	perParticleEne := e0 / (float64(nSeed) * mass)
	for k := 0; k < nSeed && k < len(nearest); k++ {
		st.Particles[nearest[k].idx].Ene += perParticleEne
	}

	var rangeMax vecn.Vec
	setAxes(&rangeMax, lx, ly)
	var isPer [vecn.D]bool
	setAxesBool(&isPer, true, true)
	st.Periodic = vecn.Periodic{RangeMax: rangeMax, IsPer: isPer}
	st.NeighborNumber = 32
	return st
}
