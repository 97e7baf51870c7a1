package kernel

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/vecn"
)

// Anisotropic is the disk-geometry product kernel W2D(r_xy;h_xy) *
// W1D(z;h_z): the xy factor is the 2D cubic spline, the z factor an
// independent-scale Gaussian. It implements AnisoKernel only; the
// isotropic Kernel entry points (W, DW, DHW) are unsupported operations
// here since callers must route through the specialized *Aniso methods.
// The effective dimension while this kernel is active is always 2
// (vecn.EffDim must be set accordingly by the caller).
type Anisotropic struct{}

const sigma2D = 10.0 / (7.0 * 3.141592653589793)

// gauss1D is the normalized 1D Gaussian factor used for the z-direction.
func gauss1D(z, hz float64) float64 {
	if hz <= 0 {
		return 0
	}
	return 1 / (math.Sqrt(2*math.Pi) * hz) * math.Exp(-z*z/(2*hz*hz))
}

func dGauss1Ddz(z, hz float64) float64 {
	g := gauss1D(z, hz)
	return -z / (hz * hz) * g
}

func dGauss1Ddh(z, hz float64) float64 {
	g := gauss1D(z, hz)
	return g * (z*z - hz*hz) / (hz * hz * hz)
}

// WAniso evaluates the product kernel at (rxy, z).
func (Anisotropic) WAniso(rxy, z, hxy, hz float64) float64 {
	if hxy <= 0 {
		return 0
	}
	q := rxy / hxy
	if q >= 2 {
		return 0
	}
	w2d := sigma2D / (hxy * hxy) * cubicSplineF(q)
	return w2d * gauss1D(z, hz)
}

// DWAniso returns the xy-plane gradient (as a full-length Vec with the
// z-component zero) and the z-direction derivative separately; callers
// combine them into the final gradient vector.
func (Anisotropic) DWAniso(rxyVec vecn.Vec, z float64, rxy, hxy, hz float64) (xyGrad vecn.Vec, dWdz float64) {
	if hxy <= 0 || rxy <= 0 {
		return
	}
	q := rxy / hxy
	if q >= 2 {
		return
	}
	gz := gauss1D(z, hz)
	dW2Ddr := sigma2D / (hxy * hxy * hxy) * cubicSplineDF(q)
	xyGrad = rxyVec.Scale(dW2Ddr / rxy * gz)
	w2d := sigma2D / (hxy * hxy) * cubicSplineF(q)
	dWdz = w2d * dGauss1Ddz(z, hz)
	return
}

// DHWAniso returns (dW/dhxy, dW/dhz) analytically.
func (Anisotropic) DHWAniso(rxy, z, hxy, hz float64) (dWdhxy, dWdhz float64) {
	if hxy <= 0 {
		return
	}
	q := rxy / hxy
	if q >= 2 {
		return
	}
	f := cubicSplineF(q)
	df := cubicSplineDF(q)
	gz := gauss1D(z, hz)
	dW2Ddh := -sigma2D / (hxy * hxy * hxy) * (2*f + q*df)
	dWdhxy = dW2Ddh * gz
	w2d := sigma2D / (hxy * hxy) * f
	dWdhz = w2d * dGauss1Ddh(z, hz)
	return
}

// W is an unsupported operation on the anisotropic kernel: callers must
// use WAniso.
func (Anisotropic) W(r, h float64) float64 {
	chk.Panic("kernel.Anisotropic does not support the isotropic W entry point; use WAniso")
	return 0
}

// DW is an unsupported operation on the anisotropic kernel: callers must
// use DWAniso.
func (Anisotropic) DW(rij vecn.Vec, r, h float64) vecn.Vec {
	chk.Panic("kernel.Anisotropic does not support the isotropic DW entry point; use DWAniso")
	return vecn.Vec{}
}

// DHW is an unsupported operation on the anisotropic kernel: callers must
// use DHWAniso.
func (Anisotropic) DHW(r, h float64) float64 {
	chk.Panic("kernel.Anisotropic does not support the isotropic DHW entry point; use DHWAniso")
	return 0
}

// SupportRatio returns 2 (the xy factor's support; the z factor is
// unbounded Gaussian and is truncated by the caller's neighbor search
// radius, which is set from hxy).
func (Anisotropic) SupportRatio() float64 { return 2.0 }
