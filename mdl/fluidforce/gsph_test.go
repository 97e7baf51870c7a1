package fluidforce

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/vecn"
)

func Test_gsph01(tst *testing.T) {

	chk.PrintTitle("gsph01 (shock-quiet switch thresholds on |div v| h / c)")
	p := &particle.Particle{Sound: 1.0, Sml: 1.0, DivV: 0.01}
	if !isShockQuiet(p, 0.1) {
		tst.Errorf("expected shock-quiet for small |div v| h / c")
	}
	p.DivV = 5.0
	if isShockQuiet(p, 0.1) {
		tst.Errorf("expected not shock-quiet for large |div v| h / c")
	}
}

func Test_gsph02(tst *testing.T) {

	chk.PrintTitle("gsph02 (zero sound speed degenerates to shock-quiet)")
	p := &particle.Particle{Sound: 0, Sml: 1.0, DivV: 1e6}
	if !isShockQuiet(p, 0.1) {
		tst.Errorf("expected shock-quiet fallback when sound speed is zero")
	}
}

func Test_gsph03(tst *testing.T) {

	chk.PrintTitle("gsph03 (first-order reconstruction returns particle state unchanged)")
	st := &particle.State{}
	p := &particle.Particle{Dens: 1.2, Pres: 0.8}
	var rij vecn.Vec
	rij[0] = 1
	rho, pres, _ := reconstructAt(st, p, rij, 0.1, false)
	if rho != p.Dens || pres != p.Pres {
		tst.Errorf("expected unchanged state for first-order reconstruction, got rho=%v pres=%v", rho, pres)
	}
}
