package out

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/vecn"
)

func Test_checkpoint01(tst *testing.T) {

	chk.PrintTitle("checkpoint01 (round-trip preserves every packed particle field)")

	st := &particle.State{T: 1.25, Dt: 1e-3, Step: 42, Gamma: 1.4}
	st.Particles = make([]particle.Particle, 3)
	for i := range st.Particles {
		p := &st.Particles[i]
		p.ID = i
		p.Mass = 1.0 + float64(i)
		p.Dens = 2.0
		p.Pres = 3.0
		p.Ene = 4.0
		p.Dene = 5.0
		p.Sound = 6.0
		p.Sml = 7.0
		p.Volume = 8.0
		p.GradH = 9.0
		p.Alpha = 1.5
		p.Balsara = 0.8
		for d := 0; d < vecn.D; d++ {
			p.Pos[d] = float64(d) + float64(i)*0.1
			p.Vel[d] = float64(d) - float64(i)*0.1
		}
		p.IsWall = i == 0
	}
	st.Particles[1].IsPointMass = true

	dir := tst.TempDir()
	path := filepath.Join(dir, "final.ckpt")
	if err := WriteCheckpoint(path, st); err != nil {
		tst.Errorf("unexpected error writing checkpoint: %v", err)
		return
	}

	got, err := ReadCheckpoint(path)
	if err != nil {
		tst.Errorf("unexpected error reading checkpoint: %v", err)
		return
	}

	if got.T != st.T || got.Dt != st.Dt || got.Step != st.Step || got.Gamma != st.Gamma {
		tst.Errorf("header mismatch: got %+v", got)
	}
	if len(got.Particles) != len(st.Particles) {
		tst.Fatalf("expected %d particles, got %d", len(st.Particles), len(got.Particles))
	}
	for i := range st.Particles {
		want := st.Particles[i]
		have := got.Particles[i]
		if have.ID != want.ID || have.Mass != want.Mass || have.Dens != want.Dens ||
			have.Pres != want.Pres || have.Ene != want.Ene || have.Dene != want.Dene ||
			have.Sound != want.Sound || have.Sml != want.Sml || have.Volume != want.Volume ||
			have.GradH != want.GradH || have.Alpha != want.Alpha || have.Balsara != want.Balsara ||
			have.IsPointMass != want.IsPointMass || have.IsWall != want.IsWall ||
			have.Pos != want.Pos || have.Vel != want.Vel {
			tst.Errorf("particle %d round-trip mismatch:\n want=%+v\n have=%+v", i, want, have)
		}
	}
}

func Test_checkpoint02(tst *testing.T) {

	chk.PrintTitle("checkpoint02 (corrupted payload is rejected by digest check)")

	st := &particle.State{Gamma: 1.4}
	st.Particles = []particle.Particle{{ID: 0, Mass: 1.0}}

	dir := tst.TempDir()
	path := filepath.Join(dir, "final.ckpt")
	if err := WriteCheckpoint(path, st); err != nil {
		tst.Errorf("unexpected error writing checkpoint: %v", err)
		return
	}

	b, err := os.ReadFile(path)
	if err != nil {
		tst.Errorf("unexpected error reading back file: %v", err)
		return
	}
	b[len(b)-1] ^= 0xFF // flip the last payload byte
	if err := os.WriteFile(path, b, 0o644); err != nil {
		tst.Errorf("unexpected error corrupting file: %v", err)
		return
	}

	if _, err := ReadCheckpoint(path); err == nil {
		tst.Errorf("expected digest mismatch error, got nil")
	}
}
