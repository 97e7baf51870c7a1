// Package kernel implements the SPH smoothing kernels: the isotropic
// radial kernels (cubic spline, Wendland C4) and the anisotropic
// disk-geometry product kernel. Normalization depends on vecn.EffDim.
package kernel

import (
	"github.com/cpmech/gosph/vecn"
)

// Kernel is the capability every isotropic SPH kernel must implement.
type Kernel interface {
	// W evaluates the radial kernel; returns 0 for r >= h*SupportRatio().
	W(r, h float64) float64

	// DW returns the gradient vector grad_i W(r_ij, h); antisymmetric in rij.
	DW(rij vecn.Vec, r, h float64) vecn.Vec

	// DHW returns dW/dh analytically.
	DHW(r, h float64) float64

	// SupportRatio returns the kernel's support radius in units of h.
	SupportRatio() float64
}

// AnisoKernel is the capability of the disk-geometry product kernel; it
// does not satisfy Kernel (isotropic calls are unsupported operations).
type AnisoKernel interface {
	WAniso(rxy, z, hxy, hz float64) float64
	DWAniso(rxyVec vecn.Vec, z float64, rxy, hxy, hz float64) (vecn.Vec, float64)
	DHWAniso(rxy, z, hxy, hz float64) (float64, float64)
}
