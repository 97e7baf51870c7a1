package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/vecn"
)

// SampleFunc builds the initial particle.State for a named worked
// scenario, given the pre-interaction gamma (every sample is adiabatic).
type SampleFunc func(gamma float64) *particle.State

var samples = map[string]SampleFunc{}

// RegisterSample adds a named initial-condition builder; called from
// each sample's own init().
func RegisterSample(name string, fn SampleFunc) {
	if _, ok := samples[name]; ok {
		chk.Panic("inp: sample %q already registered", name)
	}
	samples[name] = fn
}

// Get returns the builder registered under name.
func Get(name string) (SampleFunc, error) {
	fn, ok := samples[name]
	if !ok {
		return nil, chk.Err("inp: unknown sample %q", name)
	}
	return fn, nil
}

// newState returns a State with a cubic-spline kernel and a zero-valued,
// non-periodic domain; samples override Periodic/Kernel as needed.
func newState(n int, gamma float64) *particle.State {
	return &particle.State{
		Particles: make([]particle.Particle, n),
		Kernel:    kernel.CubicSpline{},
		Gamma:     gamma,
	}
}

// setAxes assigns vals[0..] into dst[0..], silently dropping any axis
// index that does not exist in the active build's vecn.D (so a sample
// written for 2D or 3D geometry still compiles, harmlessly no-op'ing the
// extra axes, under a dim1 build it is never actually invoked under).
func setAxes(dst *vecn.Vec, vals ...float64) {
	for i := 0; i < vecn.D && i < len(vals); i++ {
		dst[i] = vals[i]
	}
}

// setAxesBool is setAxes' boolean counterpart, used for vecn.Periodic.IsPer.
func setAxesBool(dst *[vecn.D]bool, vals ...bool) {
	for i := 0; i < vecn.D && i < len(vals); i++ {
		dst[i] = vals[i]
	}
}
