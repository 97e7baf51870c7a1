package inp

import (
	"math"

	"github.com/cpmech/gosl/rnd"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/vecn"
)

func init() {
	RegisterSample("kh2d", buildKH2D)
}

// buildKH2D is the Kelvin-Helmholtz instability test (Price 2008 style):
// a dense middle band moving at the same speed as the outer bands but in
// the opposite direction, at equal pressure, seeded with a single-mode sinusoidal
// vertical velocity perturbation at the two shear interfaces.
func buildKH2D(gamma float64) *particle.State {
	const nx = 128
	const lx, ly = 1.0, 1.0
	const rhoIn, rhoOut = 2.0, 1.0
	const vIn, vOut = 0.5, -0.5
	const p0 = 2.5
	const waveAmp = 0.025
	const waveLen = 0.5 // lambda = lx/2, two interfaces per box height

	ny := nx
	// equal particle spacing everywhere with unequal mass to realize the
	// density contrast without resorting to unequal spacing (keeps the
	// smoothing length roughly uniform across the shear layer).
	n := nx * ny
	st := newState(n, gamma)
	rnd.Init(1) // fixed seed: the perturbation must be reproducible run to run
	dx := lx / float64(nx)
	dy := ly / float64(ny)

	idx := 0
	for iy := 0; iy < ny; iy++ {
		y := (float64(iy) + 0.5) * dy
		inBand := y > 0.25*ly && y < 0.75*ly
		rho := rhoOut
		vx := vOut
		if inBand {
			rho = rhoIn
			vx = vIn
		}
		mass := rho * dx * dy
		for ix := 0; ix < nx; ix++ {
			x := (float64(ix) + 0.5) * dx
			p := &st.Particles[idx]
			p.ID = idx
			setAxes(&p.Pos, x, y)
			vy := waveAmp*math.Sin(2*math.Pi*x/waveLen) + rnd.Float64(-1, 1)*waveAmp*0.1
			if y < 0.26*ly && y > 0.24*ly || y < 0.76*ly && y > 0.74*ly {
				setAxes(&p.Vel, vx, vy)
			} else {
				setAxes(&p.Vel, vx, 0)
			}
			p.Mass = mass
			p.Dens = rho
			p.Ene = p0 / ((gamma - 1) * rho)
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
