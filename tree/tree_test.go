package tree

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/vecn"
)

func bruteForceNeighbors(pos []vecn.Vec, per vecn.Periodic, i int, h float64) []int {
	var out []int
	for j := range pos {
		if j == i {
			continue
		}
		if per.CalcRij(pos[i], pos[j]).Norm() < h {
			out = append(out, j)
		}
	}
	sort.Ints(out)
	return out
}

func Test_tree01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tree01 (neighbor completeness)")

	rng := rand.New(rand.NewSource(42))
	n := 200
	pos := make([]vecn.Vec, n)
	mass := make([]float64, n)
	for i := range pos {
		for d := 0; d < vecn.D; d++ {
			pos[i][d] = rng.Float64()
		}
		mass[i] = 1.0
	}
	var per vecn.Periodic
	for d := 0; d < vecn.D; d++ {
		per.RangeMin[d] = 0
		per.RangeMax[d] = 1
		per.IsPer[d] = false
	}

	tr := Build(pos, mass, 8, per)

	h := 0.15
	buf := make([]int, n)
	for i := 0; i < n; i++ {
		got, err := tr.Neighbors(i, h, buf, false, nil)
		if err != nil {
			tst.Errorf("unexpected error: %v", err)
			continue
		}
		gotSorted := append([]int{}, buf[:got]...)
		sort.Ints(gotSorted)
		want := bruteForceNeighbors(pos, per, i, h)
		if len(gotSorted) != len(want) {
			tst.Errorf("particle %d: neighbor count mismatch got=%d want=%d", i, len(gotSorted), len(want))
			continue
		}
		for k := range want {
			if gotSorted[k] != want[k] {
				tst.Errorf("particle %d: neighbor set mismatch got=%v want=%v", i, gotSorted, want)
				break
			}
		}
	}
}

func Test_tree02(tst *testing.T) {

	chk.PrintTitle("tree02 (neighbor list overflow is an error)")

	pos := []vecn.Vec{{}, {}, {}}
	mass := []float64{1, 1, 1}
	var per vecn.Periodic
	tr := Build(pos, mass, 8, per)

	buf := make([]int, 1) // too small to hold the other two particles
	_, err := tr.Neighbors(0, 10.0, buf, false, nil)
	if err == nil {
		tst.Errorf("expected overflow error")
	}
}

func Test_tree03(tst *testing.T) {

	chk.PrintTitle("tree03 (mass conservation in tree moments)")

	rng := rand.New(rand.NewSource(7))
	n := 64
	pos := make([]vecn.Vec, n)
	mass := make([]float64, n)
	var totalMass float64
	for i := range pos {
		for d := 0; d < vecn.D; d++ {
			pos[i][d] = rng.Float64()
		}
		mass[i] = 1.0 + rng.Float64()
		totalMass += mass[i]
	}
	var per vecn.Periodic
	tr := Build(pos, mass, 4, per)
	root := tr.Node(tr.Root())
	if diff := root.MassTotal - totalMass; diff > 1e-9 || diff < -1e-9 {
		tst.Errorf("root mass %v != total mass %v", root.MassTotal, totalMass)
	}
}
