package timestep

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/particle"
)

func Test_timestep01(tst *testing.T) {

	chk.PrintTitle("timestep01 (CFL candidate picks the tightest of CFL/force/energy)")

	st := &particle.State{}
	st.Particles = []particle.Particle{
		{Sml: 1.0, Ene: 1.0, Dene: -0.5}, // energy candidate: 0.3*1/0.5=0.6
	}
	vsig := st.NamedArray("vsig")
	vsig[0] = 2.0 // CFL candidate: 0.3*1/2=0.15, tightest (tied with force)
	st.Particles[0].Acc[0] = 4.0 // force candidate: 0.3*sqrt(1/4)=0.15

	m := New(DefaultParams())
	if err := m.Run(st, nil); err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}

	want := 0.15
	if diff := st.Dt - want; diff > 1e-9 || diff < -1e-9 {
		tst.Errorf("expected dt=%v, got %v", want, st.Dt)
	}
}

func Test_timestep02(tst *testing.T) {

	chk.PrintTitle("timestep02 (point masses are excluded from the reduction)")

	st := &particle.State{}
	st.Particles = []particle.Particle{
		{Sml: 1e-6, IsPointMass: true}, // would dominate if not excluded
		{Sml: 1.0},
	}
	vsig := st.NamedArray("vsig")
	vsig[0] = 1e6
	vsig[1] = 1.0

	m := New(DefaultParams())
	if err := m.Run(st, nil); err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}

	want := 0.3 * 1.0 / 1.0
	if diff := st.Dt - want; diff > 1e-9 || diff < -1e-9 {
		tst.Errorf("expected dt=%v (point mass excluded), got %v", want, st.Dt)
	}
}

func Test_timestep03(tst *testing.T) {

	chk.PrintTitle("timestep03 (all-zero signal falls back to DtMax)")

	st := &particle.State{}
	st.Particles = []particle.Particle{{Sml: 1.0}}
	st.NamedArray("vsig")

	prm := DefaultParams()
	prm.DtMax = 7.0
	m := New(prm)
	if err := m.Run(st, nil); err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	if st.Dt != 7.0 {
		tst.Errorf("expected fallback to DtMax=7, got %v", st.Dt)
	}
	if !math.IsInf(st.HPerVSig, 1) {
		tst.Errorf("expected HPerVSig=+Inf when vsig is zero everywhere, got %v", st.HPerVSig)
	}
}
