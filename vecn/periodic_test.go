package vecn

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_periodic01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("periodic01")

	var per Periodic
	for i := 0; i < D; i++ {
		per.RangeMin[i] = -1.0
		per.RangeMax[i] = 1.0
		per.IsPer[i] = true
	}

	var a, b Vec
	a[0] = 0.9
	b[0] = -0.9
	r := per.CalcRij(a, b)
	if math.Abs(r[0]-0.2) > 1e-12 {
		tst.Errorf("minimum image wrong: got %v, want 0.2 on axis 0", r[0])
	}

	// antisymmetry: calc_r_ij(a,b) == -calc_r_ij(b,a) exactly
	r2 := per.CalcRij(b, a)
	for i := 0; i < D; i++ {
		if r[i] != -r2[i] {
			tst.Errorf("antisymmetry failed on axis %d: %v != -%v", i, r[i], r2[i])
		}
	}

	// every periodic-axis component has |component| <= L/2
	for i := 0; i < D; i++ {
		if per.IsPer[i] {
			halfL := 0.5 * per.length(i)
			if math.Abs(r[i]) > halfL+1e-12 {
				tst.Errorf("axis %d: |%v| exceeds L/2=%v", i, r[i], halfL)
			}
		}
	}
}

func Test_periodic02(tst *testing.T) {

	chk.PrintTitle("periodic02 (non-periodic identity)")

	var per Periodic // IsPer all false by zero value
	var a, b Vec
	a[0] = 5.0
	b[0] = -3.0
	r := per.CalcRij(a, b)
	if math.Abs(r[0]-8.0) > 1e-12 {
		tst.Errorf("non-periodic axis should behave as identity subtraction, got %v", r[0])
	}
}
