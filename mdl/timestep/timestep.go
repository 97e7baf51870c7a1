// Package timestep implements the global-timestep role: per-particle CFL,
// force, and energy-change candidates, reduced to a single dt via
// sph.MinReduce so every particle advances in lockstep (the KDK
// integrator is not individually time-stepped).
package timestep

import (
	"math"

	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/sph"
	"github.com/cpmech/gosph/tree"
)

func init() {
	alloc := func() sph.Module { return New(DefaultParams()) }
	sph.Register(sph.SSPH, sph.RoleTimestep, alloc)
	sph.Register(sph.DISPH, sph.RoleTimestep, alloc)
	sph.Register(sph.GSPH, sph.RoleTimestep, alloc)
	sph.Register(sph.GDISPH, sph.RoleTimestep, alloc)
}

// Params collects the Courant-condition safety factors.
type Params struct {
	CourantCFL   float64 // applied to h / v_sig
	CourantForce float64 // applied to sqrt(h / |a|)
	CourantEne   float64 // applied to u / |du/dt|
	DtMax        float64
}

// DefaultParams returns conventional CFL safety factors (~0.3). DtMax is
// finite so an all-zero-signal step (e.g. the very first step of a sample
// with no initial velocity/acceleration/cooling) cannot leave st.Dt at
// +Inf; callers running with a much larger natural timescale should raise
// it explicitly.
func DefaultParams() Params {
	return Params{CourantCFL: 0.3, CourantForce: 0.3, CourantEne: 0.3, DtMax: 1.0}
}

// Model is the timestep role's capability.
type Model interface {
	Run(st *particle.State, tr *tree.Tree) error
}

// CFL is the standard CFL/force/energy-change timestep module.
type CFL struct {
	Prm Params
}

// New returns a timestep module with the given parameters.
func New(prm Params) *CFL {
	return &CFL{Prm: prm}
}

// SetParams overrides the module's parameters; integrator.NewDriver calls
// this after factory construction to inject the run's configured Params.
func (o *CFL) SetParams(prm Params) { o.Prm = prm }

// Run computes the global dt and stores it in st.Dt; st.HPerVSig records
// the tightest h/v_sig ratio, which out.WriteMetadata reports alongside
// the step for post-hoc Courant-number auditing.
func (o *CFL) Run(st *particle.State, tr *tree.Tree) error {
	n := len(st.Particles)
	vsig := st.NamedArray("vsig")

	chunkMin := func(lo, hi int) float64 {
		dt := math.Inf(1)
		for i := lo; i < hi; i++ {
			p := &st.Particles[i]
			if p.IsPointMass {
				continue
			}

			if vsig[i] > 0 {
				dtCFL := o.Prm.CourantCFL * p.Sml / vsig[i]
				if dtCFL < dt {
					dt = dtCFL
				}
			}

			aNorm := p.Acc.Norm()
			if aNorm > 0 {
				dtForce := o.Prm.CourantForce * math.Sqrt(p.Sml/aNorm)
				if dtForce < dt {
					dt = dtForce
				}
			}

			if p.Dene < 0 && p.Ene > 0 {
				dtEne := o.Prm.CourantEne * p.Ene / -p.Dene
				if dtEne < dt {
					dt = dtEne
				}
			}
		}
		return dt
	}

	dt := sph.MinReduce(n, chunkMin)
	if dt > o.Prm.DtMax {
		dt = o.Prm.DtMax
	}
	if math.IsInf(dt, 1) || dt <= 0 {
		dt = o.Prm.DtMax
	}
	st.Dt = dt

	minHVsig := math.Inf(1)
	for i := 0; i < n; i++ {
		if vsig[i] > 0 {
			r := st.Particles[i].Sml / vsig[i]
			if r < minHVsig {
				minHVsig = r
			}
		}
	}
	st.HPerVSig = minHVsig
	return nil
}
