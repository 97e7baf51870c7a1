package kernel

import (
	"math"

	"github.com/cpmech/gosph/vecn"
)

// WendlandC4 is the Wendland (1995) C4-smoothness kernel in the
// Dehnen & Aly (2012) normalization; compact support q=r/h in [0,1].
// The same polynomial is used in every dimension; in 1D its constant is
// the one that gives it unit integral.
type WendlandC4 struct{}

func wendlandSigma() float64 {
	switch vecn.EffDim {
	case 1:
		return 27.0 / 16.0
	case 2:
		return 9.0 / math.Pi
	default:
		return 495.0 / (32.0 * math.Pi)
	}
}

func wendlandF(q float64) float64 {
	if q < 0 || q >= 1 {
		return 0
	}
	t := 1 - q
	t6 := t * t * t * t * t * t
	return t6 * (1 + 6*q + 35.0/3.0*q*q)
}

func wendlandDF(q float64) float64 {
	if q < 0 || q >= 1 {
		return 0
	}
	t := 1 - q
	t5 := t * t * t * t * t
	return -(56.0 / 3.0) * q * (1 + 5*q) * t5
}

// SupportRatio returns 1: the kernel vanishes for r >= h.
func (WendlandC4) SupportRatio() float64 { return 1.0 }

// W evaluates the radial kernel.
func (WendlandC4) W(r, h float64) float64 {
	if h <= 0 {
		return 0
	}
	q := r / h
	if q >= 1 {
		return 0
	}
	d := float64(vecn.EffDim)
	return wendlandSigma() / math.Pow(h, d) * wendlandF(q)
}

// DW returns the gradient vector grad_i W(rij, h); antisymmetric in rij.
func (WendlandC4) DW(rij vecn.Vec, r, h float64) (g vecn.Vec) {
	if h <= 0 || r <= 0 {
		return
	}
	q := r / h
	if q >= 1 {
		return
	}
	d := float64(vecn.EffDim)
	dWdr := wendlandSigma() / math.Pow(h, d+1) * wendlandDF(q)
	return rij.Scale(dWdr / r)
}

// DHW returns dW/dh analytically.
func (WendlandC4) DHW(r, h float64) float64 {
	if h <= 0 {
		return 0
	}
	q := r / h
	if q >= 1 {
		return 0
	}
	d := float64(vecn.EffDim)
	f := wendlandF(q)
	df := wendlandDF(q)
	return -wendlandSigma() / math.Pow(h, d+1) * (d*f + q*df)
}
