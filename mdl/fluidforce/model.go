// Package fluidforce implements the momentum and energy equations of the
// three (four, counting GDISPH) SPH discretizations: SSPH, DISPH, GSPH,
// and GDISPH. All variants share the same outer neighbor-walk structure;
// they differ in the kernel of the pair contribution (ssph.go, disph.go,
// gsph.go, gdisph.go). The HLL Riemann solver (hll.go) and MUSCL
// reconstruction (muscl.go) are shared by GSPH and GDISPH; artificial
// viscosity (av.go) and conductivity (conductivity.go) are used by all
// four (GSPH and GDISPH apply the viscosity in their shock-quiet fallback
// and the conductivity when UseConductivity is set).
package fluidforce

import (
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/tree"
)

// Model is the fluid-force role's capability.
type Model interface {
	Run(st *particle.State, tr *tree.Tree) error
}

// Params collects the knobs shared by every fluid-force variant.
type Params struct {
	Gamma float64

	AlphaAV, BetaAV float64 // Monaghan AV coefficients (beta typically 2*alpha); AlphaAV is not read here, the pair alpha comes from the particles' Alpha
	UseBalsara      bool

	UseConductivity bool
	AlphaU          float64 // artificial conductivity coefficient

	Is2ndOrder      bool // GSPH/GDISPH MUSCL reconstruction
	ForceCorrection bool // GSPH "force_correction" option
	ShockQuietRatio float64 // |div v| h / c threshold below which GSPH/GDISPH fall back to SPH+AV

	NeighborBufCap int
}

// DefaultParams returns conventional defaults.
func DefaultParams() Params {
	return Params{
		Gamma:           1.4,
		AlphaAV:         1.0,
		BetaAV:          2.0,
		UseBalsara:      true,
		UseConductivity: false,
		AlphaU:          1.0,
		Is2ndOrder:      false,
		ForceCorrection: false,
		ShockQuietRatio: 0.1,
		NeighborBufCap:  512,
	}
}
