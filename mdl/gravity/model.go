// Package gravity implements the gravity role: a monopole Barnes-Hut tree
// walk for mutual self-gravity among all particles (self.go), plus a
// direct-summation pass over a small set of external point masses
// (external.go) that the integrator composes alongside it when
// EnableExternalGravity is set.
package gravity

import (
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/tree"
)

// Model is the gravity role's capability: accumulate each particle's
// acceleration contribution from whatever source the implementation
// represents (self-gravity, external masses) into p.Acc. Unlike
// fluidforce.Model, gravity.Model adds to p.Acc rather than overwriting
// it, so the integrator must run it only after the fluid-force pass.
type Model interface {
	Run(st *particle.State, tr *tree.Tree) error
}

// Params collects the knobs shared by both gravity implementations.
type Params struct {
	G       float64 // gravitational constant in the simulation's unit system
	Theta   float64 // Barnes-Hut opening angle
	Softening float64 // Plummer softening length; Eps2 = Softening^2
}

// DefaultParams returns conventional defaults (theta=0.5, no softening).
func DefaultParams() Params {
	return Params{G: 1.0, Theta: 0.5, Softening: 0.0}
}

func (p Params) eps2() float64 {
	return p.Softening * p.Softening
}
