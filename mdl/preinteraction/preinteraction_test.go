package preinteraction

import (
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/tree"
	"github.com/cpmech/gosph/vecn"
)

func buildUniformState(n int, seed int64) (*particle.State, *tree.Tree) {
	rng := rand.New(rand.NewSource(seed))
	st := &particle.State{
		Kernel:         kernel.CubicSpline{},
		Gamma:          1.4,
		NeighborNumber: 32,
	}
	st.Particles = make([]particle.Particle, n)
	pos := make([]vecn.Vec, n)
	mass := make([]float64, n)
	for i := range st.Particles {
		var pv vecn.Vec
		for d := 0; d < vecn.D; d++ {
			pv[d] = rng.Float64()
		}
		st.Particles[i] = particle.Particle{
			ID:   i,
			Pos:  pv,
			Mass: 1.0 / float64(n),
			Dens: 1.0,
			Ene:  1.0,
			Sml:  0.1,
		}
		pos[i] = pv
		mass[i] = st.Particles[i].Mass
	}
	var per vecn.Periodic
	for d := 0; d < vecn.D; d++ {
		per.RangeMin[d] = 0
		per.RangeMax[d] = 1
	}
	st.Periodic = per
	tr := tree.Build(pos, mass, 16, per)
	return st, tr
}

func Test_preinteraction01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("preinteraction01 (SSPH neighbor count convergence)")

	st, tr := buildUniformState(2000, 1)
	prm := DefaultParams()
	prm.NeighborNumber = 32

	m := NewSSPH(prm)
	if err := m.Run(st, tr); err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}

	for i := range st.Particles {
		p := &st.Particles[i]
		if p.Neighbor < 10 || p.Neighbor > 80 {
			tst.Errorf("particle %d: neighbor count %d far from target %v", i, p.Neighbor, prm.NeighborNumber)
		}
		if p.Dens <= 0 {
			tst.Errorf("particle %d: non-positive density %v", i, p.Dens)
		}
		if p.Sml <= 0 {
			tst.Errorf("particle %d: non-positive smoothing length", i)
		}
	}
}

func Test_preinteraction02(tst *testing.T) {

	chk.PrintTitle("preinteraction02 (DISPH -> SSPH limit when u uniform)")

	stS, trS := buildUniformState(1500, 2)
	stD, trD := buildUniformState(1500, 2)

	prm := DefaultParams()
	NewSSPH(prm).Run(stS, trS)
	NewDISPH(prm).Run(stD, trD)

	for i := range stS.Particles {
		ps, pd := &stS.Particles[i], &stD.Particles[i]
		if diff := ps.Pres - pd.Pres; diff > 1e-6 || diff < -1e-6 {
			tst.Errorf("particle %d: DISPH/SSPH pressure mismatch under uniform u: %v vs %v", i, ps.Pres, pd.Pres)
		}
	}
}
