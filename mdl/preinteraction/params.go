// Package preinteraction implements the pre-interaction pass: adaptive
// smoothing-length solve, density/pressure state assembly, grad-h
// correction, the Balsara shear switch, and time-dependent artificial
// viscosity. ssph.go and disph.go share the Newton-Raphson h-solve in
// hsolve.go and differ only in how pressure/grad-h are assembled from the
// converged neighbor sum.
package preinteraction

import "math"

// Params collects the physical and numerical knobs shared by every
// pre-interaction variant.
type Params struct {
	Gamma          float64
	NeighborNumber float64 // N_target
	LeafParticleNumber int

	HTol    float64 // Newton-Raphson relative tolerance on h
	HMaxIter int

	UseBalsaraSwitch      bool
	UseTimeDependentAV    bool
	AlphaMin, AlphaMax    float64
	EpsilonAV             float64 // epsilon in the Balsara denominator
	EpsilonTau            float64 // tau_i = h_i / (epsilon_tau * c_i)

	NeighborBufCap int
}

// DefaultParams returns the conventional defaults used throughout the
// worked scenarios.
func DefaultParams() Params {
	return Params{
		Gamma:              1.4,
		NeighborNumber:     32,
		LeafParticleNumber: 16,
		HTol:               1e-6,
		HMaxIter:           20,
		UseBalsaraSwitch:   true,
		UseTimeDependentAV: false,
		AlphaMin:           0.1,
		AlphaMax:           1.5,
		EpsilonAV:          1e-4,
		EpsilonTau:         0.1,
		NeighborBufCap:     512,
	}
}

// aEff is the normalization constant relating N_target, rho, h, and m:
// N_target = (aEff/m) * rho * h^Deff, aEff = 2, pi, 4pi/3 for Deff=1,2,3.
func aEff(deff int) float64 {
	switch deff {
	case 1:
		return 2.0
	case 2:
		return math.Pi
	default:
		return 4.0 / 3.0 * math.Pi
	}
}
