// Package integrator drives the simulation loop: a symplectic
// kick-drift-kick step that rebuilds the tree and runs the
// pre-interaction, fluid-force, gravity, and timestep roles in sequence
// every step.
package integrator

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/mdl/fluidforce"
	"github.com/cpmech/gosph/mdl/gravity"
	"github.com/cpmech/gosph/mdl/preinteraction"
	"github.com/cpmech/gosph/mdl/timestep"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/sph"
	"github.com/cpmech/gosph/tree"
	"github.com/cpmech/gosph/vecn"
)

// Params collects the driver's own knobs plus the per-role module
// parameters; NewDriver injects the latter into each factory-constructed
// module via its SetParams method once, at construction time.
type Params struct {
	Variant sph.SPHType

	LeafParticleNumber int
	EnergyFloor        float64

	PreInteraction preinteraction.Params
	FluidForce     fluidforce.Params
	Timestep       timestep.Params

	EnableSelfGravity     bool
	EnableExternalGravity bool
	Gravity               gravity.Params
}

// preParamSetter, fluidForceParamSetter, timestepParamSetter, and
// gravityParamSetter are satisfied by every registered module of the
// matching role; NewDriver asserts to them right after construction so the
// factory's DefaultParams() placeholder is immediately replaced by the
// run's actual configuration.
type preParamSetter interface {
	SetParams(preinteraction.Params)
}

type fluidForceParamSetter interface {
	SetParams(fluidforce.Params)
}

type timestepParamSetter interface {
	SetParams(timestep.Params)
}

type gravityParamSetter interface {
	SetParams(gravity.Params)
}

// Driver orchestrates one KDK step (or a full run) over a particle.State.
// Its four role modules are resolved once, at construction, via the
// sph factory so a configuration error (unknown variant) surfaces
// immediately instead of mid-run.
type Driver struct {
	Prm Params

	preInteraction preinteraction.Model
	fluidForce     fluidForceModel
	selfGravity    gravity.Model
	extGravity     gravity.Model
	timestep       timestepModel

	Latch *sph.InterruptLatch
}

// fluidForceModel and timestepModel mirror the Run(state,tree)error shape
// locally rather than importing mdl/fluidforce.Model and mdl/timestep.Model
// by name, since the factory's Module contract is already satisfied by any
// matching Run method.
type fluidForceModel interface {
	Run(st *particle.State, tr *tree.Tree) error
}

type timestepModel interface {
	Run(st *particle.State, tr *tree.Tree) error
}

// NewDriver resolves every role's allocator for the given variant and
// constructs a ready-to-run Driver. Gravity is composed outside the
// factory lookup (mdl/gravity.Self is keyed under RoleGravity for every
// variant, but External is additive and only wired in when requested).
func NewDriver(prm Params) (*Driver, error) {
	preAlloc, err := sph.Get(prm.Variant, sph.RolePreInteraction)
	if err != nil {
		return nil, err
	}
	ffAlloc, err := sph.Get(prm.Variant, sph.RoleFluidForce)
	if err != nil {
		return nil, err
	}
	tsAlloc, err := sph.Get(prm.Variant, sph.RoleTimestep)
	if err != nil {
		return nil, err
	}

	pre, ok := preAlloc().(preinteraction.Model)
	if !ok {
		return nil, chk.Err("integrator: pre-interaction allocator for %q does not satisfy preinteraction.Model", prm.Variant)
	}
	preSetter, ok := pre.(preParamSetter)
	if !ok {
		return nil, chk.Err("integrator: pre-interaction module for %q does not accept injected parameters", prm.Variant)
	}
	preSetter.SetParams(prm.PreInteraction)

	ff, ok := ffAlloc().(fluidForceModel)
	if !ok {
		return nil, chk.Err("integrator: fluid-force allocator for %q does not satisfy the Run(state,tree)error shape", prm.Variant)
	}
	ffSetter, ok := ff.(fluidForceParamSetter)
	if !ok {
		return nil, chk.Err("integrator: fluid-force module for %q does not accept injected parameters", prm.Variant)
	}
	ffSetter.SetParams(prm.FluidForce)

	ts, ok := tsAlloc().(timestepModel)
	if !ok {
		return nil, chk.Err("integrator: timestep allocator for %q does not satisfy the Run(state,tree)error shape", prm.Variant)
	}
	tsSetter, ok := ts.(timestepParamSetter)
	if !ok {
		return nil, chk.Err("integrator: timestep module for %q does not accept injected parameters", prm.Variant)
	}
	tsSetter.SetParams(prm.Timestep)

	d := &Driver{
		Prm:            prm,
		preInteraction: pre,
		fluidForce:     ff,
		timestep:       ts,
	}

	if prm.EnableSelfGravity {
		gAlloc, err := sph.Get(prm.Variant, sph.RoleGravity)
		if err != nil {
			return nil, err
		}
		g, ok := gAlloc().(gravity.Model)
		if !ok {
			return nil, chk.Err("integrator: gravity allocator for %q does not satisfy gravity.Model", prm.Variant)
		}
		gSetter, ok := g.(gravityParamSetter)
		if !ok {
			return nil, chk.Err("integrator: gravity module for %q does not accept injected parameters", prm.Variant)
		}
		gSetter.SetParams(prm.Gravity)
		d.selfGravity = g
	}
	if prm.EnableExternalGravity {
		d.extGravity = gravity.NewExternal(prm.Gravity)
	}

	return d, nil
}

// Step advances the simulation by one symplectic kick-drift-kick cycle:
//
//  1. half-kick velocities using the forces from the previous step
//  2. drift positions (and internal energy) by the full dt
//  3. rebuild the tree at the drifted positions
//  4. pre-interaction (smoothing length, density, pressure)
//  5. fluid-force, then gravity, accumulating into p.Acc/p.Dene
//  6. recompute dt for the next step (timestep role), then half-kick
//     velocities using the new forces
//
// The energy floor is enforced after the drift and after the closing
// half-kick; periodic wrapping is
// applied after the drift.
func (d *Driver) Step(st *particle.State) error {
	n := len(st.Particles)
	dtOld := st.Dt
	if dtOld <= 0 {
		dtOld = 0
	}

	for i := 0; i < n; i++ {
		p := &st.Particles[i]
		p.Vel = p.Vel.AddScaled(0.5*dtOld, p.Acc)
	}

	// drift needs the step's dt; on the very first call st.Dt is whatever
	// the caller seeded (e.g. from config), subsequent steps use the dt
	// the previous Step computed.
	dt := st.Dt
	for i := range st.Particles {
		p := &st.Particles[i]
		p.Pos = p.Pos.AddScaled(dt, p.Vel)
		p.Pos = st.Periodic.Wrap(p.Pos)
		p.Ene = p.Ene + dt*p.Dene
		p.ClampEnergy(d.Prm.EnergyFloor)
	}

	tr := tree.Build(st.Positions(), massSlice(st), d.Prm.LeafParticleNumber, st.Periodic)

	if err := d.preInteraction.Run(st, tr); err != nil {
		return err
	}

	for i := range st.Particles {
		st.Particles[i].Acc = vecn.Vec{}
	}
	if err := d.fluidForce.Run(st, tr); err != nil {
		return err
	}
	if d.selfGravity != nil {
		if err := d.selfGravity.Run(st, tr); err != nil {
			return err
		}
	}
	if d.extGravity != nil {
		if err := d.extGravity.Run(st, tr); err != nil {
			return err
		}
	}

	for i := range st.Particles {
		p := &st.Particles[i]
		if anyNaN(p.Acc) || math.IsNaN(p.Dene) {
			return chk.Err("integrator: NaN in acc/dene for particle %d at T=%v step=%d", p.ID, st.T, st.Step)
		}
	}

	if err := d.timestep.Run(st, tr); err != nil {
		return err
	}

	for i := range st.Particles {
		p := &st.Particles[i]
		p.Vel = p.Vel.AddScaled(0.5*st.Dt, p.Acc)
		p.ClampEnergy(d.Prm.EnergyFloor)
	}

	st.T += dt
	st.Step++
	return nil
}

// Run steps the simulation until tEnd is reached or the interrupt latch
// trips at a step boundary; onStep, if non-nil, is called after every
// completed step (output/checkpoint cadence is the caller's concern).
func (d *Driver) Run(st *particle.State, tEnd float64, onStep func(*particle.State) error) error {
	for st.T < tEnd {
		if d.Latch != nil && d.Latch.Triggered() {
			return nil
		}
		if err := d.Step(st); err != nil {
			return err
		}
		if onStep != nil {
			if err := onStep(st); err != nil {
				return err
			}
		}
		if math.IsNaN(st.Dt) || st.Dt <= 0 {
			return chk.Err("integrator: non-positive timestep dt=%v at T=%v step=%d", st.Dt, st.T, st.Step)
		}
	}
	return nil
}

// anyNaN reports whether any component of v is NaN.
func anyNaN(v vecn.Vec) bool {
	for i := 0; i < vecn.D; i++ {
		if math.IsNaN(v[i]) {
			return true
		}
	}
	return false
}

func massSlice(st *particle.State) []float64 {
	m := make([]float64, len(st.Particles))
	for i := range st.Particles {
		m[i] = st.Particles[i].Mass
	}
	return m
}
