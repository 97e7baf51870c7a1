package integrator

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/inp"
	"github.com/cpmech/gosph/mdl/fluidforce"
	"github.com/cpmech/gosph/mdl/preinteraction"
	"github.com/cpmech/gosph/mdl/timestep"
	"github.com/cpmech/gosph/sph"
)

func Test_kdk01(tst *testing.T) {

	chk.PrintTitle("kdk01 (hydrostatic lattice stays near-static and conserves momentum)")

	sampleFn, err := inp.Get("hydrostatic2d")
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	st := sampleFn(1.4)
	st.Dt = 1e-3

	driver, err := NewDriver(Params{
		Variant:            sph.SSPH,
		LeafParticleNumber: 16,
		EnergyFloor:        1e-10,
		PreInteraction:     preinteraction.DefaultParams(),
		FluidForce:         fluidforce.DefaultParams(),
		Timestep:           timestep.DefaultParams(),
	})
	if err != nil {
		tst.Errorf("unexpected error constructing driver: %v", err)
		return
	}

	e0 := st.TotalEnergy()
	for step := 0; step < 5; step++ {
		if err := driver.Step(st); err != nil {
			tst.Errorf("step %d: unexpected error: %v", step, err)
			return
		}
	}

	mom := st.TotalMomentum()
	if n := mom.Norm(); n > 1e-6 {
		tst.Errorf("expected net momentum to stay near zero in a symmetric lattice, got |p|=%v", n)
	}

	e1 := st.TotalEnergy()
	if rel := (e1 - e0) / e0; rel > 0.05 || rel < -0.05 {
		tst.Errorf("expected total energy to stay within 5%% over 5 steps of a near-equilibrium lattice, got e0=%v e1=%v", e0, e1)
	}
}
