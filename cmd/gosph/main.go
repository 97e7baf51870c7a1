// Command gosph runs a single smoothed-particle-hydrodynamics
// simulation described by a JSON or YAML configuration file.
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosph/inp"
	"github.com/cpmech/gosph/integrator"
	"github.com/cpmech/gosph/out"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/sph"
)

func main() {
	verbose := flag.Bool("v", false, "verbose: print every snapshot step")
	flag.Parse()

	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	if len(flag.Args()) == 0 {
		chk.Panic("Please provide a configuration file. Ex.: gosph run.json")
	}
	cfgPath := flag.Arg(0)

	cfg, err := inp.Read(cfgPath)
	if err != nil {
		chk.Panic("%v", err)
	}
	if err := cfg.Validate(); err != nil {
		chk.Panic("%v", err)
	}
	if err := cfg.EnsureOutDir(); err != nil {
		chk.Panic("%v", err)
	}

	sampleFn, err := inp.Get(cfg.Sample)
	if err != nil {
		chk.Panic("%v", err)
	}
	st := sampleFn(cfg.PreInteraction.Gamma)
	st.Dt = cfg.DtInit
	st.NeighborNumber = cfg.PreInteraction.NeighborNumber

	driver, err := integrator.NewDriver(integrator.Params{
		Variant:               cfg.Variant,
		LeafParticleNumber:    cfg.LeafParticleNumber,
		EnergyFloor:           cfg.EnergyFloor,
		PreInteraction:        cfg.PreInteraction,
		FluidForce:            cfg.FluidForce,
		Timestep:              cfg.Timestep,
		EnableSelfGravity:     cfg.EnableSelfGravity,
		EnableExternalGravity: cfg.EnableExternalGravity,
		Gravity:               cfg.Gravity,
	})
	if err != nil {
		chk.Panic("%v", err)
	}
	driver.Latch = sph.NewInterruptLatch()
	defer driver.Latch.Stop()

	io.Pf("gosph: variant=%s sample=%s N=%d tEnd=%g\n", cfg.Variant, cfg.Sample, len(st.Particles), cfg.TEnd)

	stepCount := 0
	err = driver.Run(st, cfg.TEnd, func(current *particle.State) error {
		stepCount++
		if *verbose {
			io.Pf("step=%d t=%g dt=%g\n", current.Step, current.T, current.Dt)
		}
		if cfg.SnapshotStep > 0 && current.Step%cfg.SnapshotStep == 0 {
			if err := out.WriteSnapshot(cfg.OutDir, current, cfg.Binary); err != nil {
				return err
			}
			if err := out.WriteMetadata(cfg.OutDir, current); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		chk.Panic("%v", err)
	}

	ckptPath := filepath.Join(cfg.OutDir, "final.ckpt")
	if err := out.WriteCheckpoint(ckptPath, st); err != nil {
		chk.Panic("%v", err)
	}
	io.Pf("gosph: done, %d steps, final checkpoint at %s\n", stepCount, ckptPath)
}
