package kernel

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"
	"github.com/cpmech/gosph/vecn"
)

// checkGradient verifies that the centered-difference of W(r,h) in r
// matches the analytic radial derivative implied by DW, and that the
// centered-difference of W(r,h) in h matches DHW, both to O(h^2).
func checkGradient(tst *testing.T, name string, k Kernel, h float64) {
	for _, r := range []float64{0.1, 0.3, 0.5, 0.7, 0.9, 1.2, 1.5, 1.9} {
		if r >= k.SupportRatio()*h {
			continue
		}
		// dW/dr via centered difference
		dWdrNum := num.DerivCen(func(x float64, args ...interface{}) float64 {
			return k.W(x, h)
		}, r)
		var rij vecn.Vec
		rij[0] = r
		g := k.DW(rij, r, h)
		dWdrAna := g[0] // since rij is purely along axis 0, grad . unit == dW/dr
		if diff := dWdrAna - dWdrNum; diff > 1e-4 || diff < -1e-4 {
			tst.Errorf("%s: dW/dr mismatch at r=%v h=%v: analytic=%v numeric=%v", name, r, h, dWdrAna, dWdrNum)
		}

		// dW/dh via centered difference
		dWdhNum := num.DerivCen(func(x float64, args ...interface{}) float64 {
			return k.W(r, x)
		}, h)
		dWdhAna := k.DHW(r, h)
		if diff := dWdhAna - dWdhNum; diff > 1e-4 || diff < -1e-4 {
			tst.Errorf("%s: dW/dh mismatch at r=%v h=%v: analytic=%v numeric=%v", name, r, h, dWdhAna, dWdhNum)
		}
	}
}

func Test_kernel01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("kernel01 (cubic spline gradient accuracy)")
	checkGradient(tst, "cubic_spline", CubicSpline{}, 1.0)
}

func Test_kernel02(tst *testing.T) {

	chk.PrintTitle("kernel02 (wendland c4 gradient accuracy)")
	checkGradient(tst, "wendland_c4", WendlandC4{}, 1.0)
}

func Test_kernel03(tst *testing.T) {

	chk.PrintTitle("kernel03 (cubic spline vanishes at support)")
	k := CubicSpline{}
	h := 0.5
	if w := k.W(2*h+1e-9, h); w != 0 {
		tst.Errorf("expected W==0 beyond support, got %v", w)
	}
}

func Test_kernel04(tst *testing.T) {

	chk.PrintTitle("kernel04 (anisotropic kernel rejects isotropic calls)")
	a := Anisotropic{}
	ok := func() (panicked bool) {
		defer func() {
			if r := recover(); r != nil {
				panicked = true
			}
		}()
		a.W(0.1, 1.0)
		return
	}()
	if !ok {
		tst.Errorf("expected panic calling W on Anisotropic kernel")
	}
}
