package fluidforce

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_hll01(tst *testing.T) {

	chk.PrintTitle("hll01 (coincident states reduce to p_L, u_L)")
	rho, p, u, c := 1.0, 1.0, 0.3, 1.4
	pStar, vStar := SolveHLL(rho, p, u, c, rho, p, u, c)
	if diff := pStar - p; diff > 1e-12 || diff < -1e-12 {
		tst.Errorf("expected p*=%v, got %v", p, pStar)
	}
	if diff := vStar - u; diff > 1e-12 || diff < -1e-12 {
		tst.Errorf("expected v*=%v, got %v", u, vStar)
	}
}

func Test_hll02(tst *testing.T) {

	chk.PrintTitle("hll02 (swap + negate symmetry)")
	pStar1, vStar1 := SolveHLL(1.0, 1.0, 0.5, 1.2, 0.5, 0.3, -0.2, 1.0)
	pStar2, vStar2 := SolveHLL(0.5, 0.3, 0.2, 1.0, 1.0, 1.0, -0.5, 1.2)
	if diff := pStar1 - pStar2; diff > 1e-12 || diff < -1e-12 {
		tst.Errorf("expected p* symmetric under swap+negate, got %v vs %v", pStar1, pStar2)
	}
	if diff := vStar1 + vStar2; diff > 1e-12 || diff < -1e-12 {
		tst.Errorf("expected v* antisymmetric under swap+negate, got %v vs %v", vStar1, vStar2)
	}
}

func Test_hll03(tst *testing.T) {

	chk.PrintTitle("hll03 (zero impedance falls back to arithmetic mean)")
	pStar, vStar := SolveHLL(0, 1.0, 0.3, 0, 0, 2.0, -0.1, 0)
	if diff := pStar - 1.5; diff > 1e-12 || diff < -1e-12 {
		tst.Errorf("expected p*=1.5, got %v", pStar)
	}
	if diff := vStar - 0.1; diff > 1e-12 || diff < -1e-12 {
		tst.Errorf("expected v*=0.1, got %v", vStar)
	}
}

func Test_hll04(tst *testing.T) {

	chk.PrintTitle("hll04 (sod shock tube left/right states give intermediate p*)")
	// classic Sod: left (rho=1, p=1), right (rho=0.125, p=0.1), at rest
	cL, cR := math.Sqrt(1.4*1.0/1.0), math.Sqrt(1.4*0.1/0.125)
	pStar, _ := SolveHLL(1.0, 1.0, 0, cL, 0.125, 0.1, 0, cR)
	if pStar <= 0.1 || pStar >= 1.0 {
		tst.Errorf("expected p* strictly between right and left pressure, got %v", pStar)
	}
}
