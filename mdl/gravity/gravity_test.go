package gravity

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/tree"
	"github.com/cpmech/gosph/vecn"
)

func buildTwoBody() (*particle.State, *tree.Tree) {
	st := &particle.State{}
	st.Particles = make([]particle.Particle, 2)
	var posA, posB vecn.Vec
	posB[0] = 1.0
	st.Particles[0] = particle.Particle{ID: 0, Pos: posA, Mass: 2.0}
	st.Particles[1] = particle.Particle{ID: 1, Pos: posB, Mass: 3.0}
	pos := []vecn.Vec{posA, posB}
	mass := []float64{2.0, 3.0}
	var per vecn.Periodic
	for d := 0; d < vecn.D; d++ {
		per.RangeMin[d] = -10
		per.RangeMax[d] = 10
	}
	st.Periodic = per
	tr := tree.Build(pos, mass, 16, per)
	return st, tr
}

func Test_gravity01(tst *testing.T) {

	chk.PrintTitle("gravity01 (two-body self-gravity matches Newton's law)")

	st, tr := buildTwoBody()
	prm := DefaultParams()
	prm.Theta = 0.5
	m := NewSelf(prm)
	if err := m.Run(st, tr); err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}

	want := prm.G * st.Particles[1].Mass / 1.0 // G*m_B/r^2, r=1
	got := st.Particles[0].Acc.Norm()
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		tst.Errorf("expected |acc_0|=%v, got %v", want, got)
	}

	// action and reaction: each acceleration's magnitude scales with the
	// other particle's mass, not the particle's own.
	wantB := prm.G * st.Particles[0].Mass / 1.0
	gotB := st.Particles[1].Acc.Norm()
	if diff := gotB - wantB; diff > 1e-9 || diff < -1e-9 {
		tst.Errorf("expected |acc_1|=%v, got %v", wantB, gotB)
	}
}

func Test_gravity02(tst *testing.T) {

	chk.PrintTitle("gravity02 (external point mass pulls hydro particles only)")

	st := &particle.State{}
	st.Particles = make([]particle.Particle, 2)
	var posStar, posGas vecn.Vec
	posGas[0] = 2.0
	st.Particles[0] = particle.Particle{ID: 0, Pos: posStar, Mass: 100.0, IsPointMass: true}
	st.Particles[1] = particle.Particle{ID: 1, Pos: posGas, Mass: 1e-3}
	var per vecn.Periodic
	for d := 0; d < vecn.D; d++ {
		per.RangeMin[d] = -10
		per.RangeMax[d] = 10
	}
	st.Periodic = per

	prm := DefaultParams()
	ext := NewExternal(prm)
	if err := ext.Run(st, nil); err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}

	if st.Particles[0].Acc.Norm() != 0 {
		tst.Errorf("expected point mass to be left untouched by External, got acc=%v", st.Particles[0].Acc)
	}
	want := prm.G * 100.0 / 4.0
	got := math.Abs(st.Particles[1].Acc[0])
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		tst.Errorf("expected gas particle acceleration %v, got %v", want, got)
	}
}
