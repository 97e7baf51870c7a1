package kernel

import (
	"math"

	"github.com/cpmech/gosph/vecn"
)

// CubicSpline is the standard M4 cubic-spline kernel (Monaghan 1992),
// compact support q=r/h in [0,2] (internally rescaled by 1/2 relative to
// the historical h-normalization where support==h).
type CubicSpline struct{}

// sigma returns the normalization constant for the active effective dimension.
func cubicSplineSigma() float64 {
	switch vecn.EffDim {
	case 1:
		return 2.0 / 3.0
	case 2:
		return 10.0 / (7.0 * math.Pi)
	default:
		return 1.0 / math.Pi
	}
}

func cubicSplineF(q float64) float64 {
	switch {
	case q < 0:
		return 0
	case q < 1:
		return 1 - 1.5*q*q + 0.75*q*q*q
	case q < 2:
		t := 2 - q
		return 0.25 * t * t * t
	default:
		return 0
	}
}

func cubicSplineDF(q float64) float64 {
	switch {
	case q < 0:
		return 0
	case q < 1:
		return -3*q + 2.25*q*q
	case q < 2:
		t := 2 - q
		return -0.75 * t * t
	default:
		return 0
	}
}

// SupportRatio returns 2: the kernel vanishes for r >= 2h.
func (CubicSpline) SupportRatio() float64 { return 2.0 }

// W evaluates the radial kernel.
func (CubicSpline) W(r, h float64) float64 {
	if h <= 0 {
		return 0
	}
	q := r / h
	if q >= 2 {
		return 0
	}
	d := float64(vecn.EffDim)
	return cubicSplineSigma() / math.Pow(h, d) * cubicSplineF(q)
}

// DW returns the gradient vector grad_i W(rij, h); antisymmetric in rij.
func (CubicSpline) DW(rij vecn.Vec, r, h float64) (g vecn.Vec) {
	if h <= 0 || r <= 0 {
		return
	}
	q := r / h
	if q >= 2 {
		return
	}
	d := float64(vecn.EffDim)
	dWdr := cubicSplineSigma() / math.Pow(h, d+1) * cubicSplineDF(q)
	return rij.Scale(dWdr / r)
}

// DHW returns dW/dh analytically.
func (CubicSpline) DHW(r, h float64) float64 {
	if h <= 0 {
		return 0
	}
	q := r / h
	if q >= 2 {
		return 0
	}
	d := float64(vecn.EffDim)
	f := cubicSplineF(q)
	df := cubicSplineDF(q)
	return -cubicSplineSigma() / math.Pow(h, d+1) * (d*f + q*df)
}
