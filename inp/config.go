// Package inp reads the run configuration (a JSON file mirroring
// Config's field groups) and holds the registry of built-in initial-
// condition samples (sod1d, hydrostatic2d, sedov2d, kh2d, laneemden3d).
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosph/mdl/fluidforce"
	"github.com/cpmech/gosph/mdl/gravity"
	"github.com/cpmech/gosph/mdl/preinteraction"
	"github.com/cpmech/gosph/mdl/timestep"
	"github.com/cpmech/gosph/sph"
	"gopkg.in/yaml.v3"
)

// Config is the top-level run description, decoded from a single JSON
// (or YAML, by file extension) file.
type Config struct {
	Variant sph.SPHType `json:"variant" yaml:"variant"`
	Sample  string      `json:"sample" yaml:"sample"`

	TEnd               float64 `json:"tEnd" yaml:"tEnd"`
	DtInit             float64 `json:"dtInit" yaml:"dtInit"`
	LeafParticleNumber int     `json:"leafParticleNumber" yaml:"leafParticleNumber"`
	EnergyFloor        float64 `json:"energyFloor" yaml:"energyFloor"`

	EnableSelfGravity     bool `json:"enableSelfGravity" yaml:"enableSelfGravity"`
	EnableExternalGravity bool `json:"enableExternalGravity" yaml:"enableExternalGravity"`

	PreInteraction preinteraction.Params `json:"preInteraction" yaml:"preInteraction"`
	FluidForce     fluidforce.Params     `json:"fluidForce" yaml:"fluidForce"`
	Gravity        gravity.Params        `json:"gravity" yaml:"gravity"`
	Timestep       timestep.Params       `json:"timestep" yaml:"timestep"`

	OutDir       string `json:"outDir" yaml:"outDir"`
	SnapshotStep int    `json:"snapshotStep" yaml:"snapshotStep"`
	Binary       bool   `json:"binary" yaml:"binary"`

	SampleParamsFile string `json:"sampleParamsFile" yaml:"sampleParamsFile"`
}

// Default returns a Config with every sub-group's conventional defaults;
// callers then unmarshal over it so an input file only needs to name
// what it overrides.
func Default() Config {
	return Config{
		Variant:            sph.SSPH,
		TEnd:               1.0,
		DtInit:             1e-4,
		LeafParticleNumber: 16,
		EnergyFloor:        1e-10,
		PreInteraction:     preinteraction.DefaultParams(),
		FluidForce:         fluidforce.DefaultParams(),
		Gravity:            gravity.DefaultParams(),
		Timestep:           timestep.DefaultParams(),
		OutDir:             "out",
		SnapshotStep:       100,
	}
}

// Read loads a Config from path; JSON is assumed unless the extension is
// .yml or .yaml. Unset fields keep Default()'s values.
func Read(path string) (Config, error) {
	cfg := Default()
	b, err := io.ReadFile(path)
	if err != nil {
		return cfg, chk.Err("inp: cannot read config file %q: %v", path, err)
	}
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, chk.Err("inp: cannot parse YAML config %q: %v", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, chk.Err("inp: cannot parse JSON config %q: %v", path, err)
		}
	}
	if cfg.Sample == "" {
		return cfg, chk.Err("inp: config %q names no sample", path)
	}
	return cfg, nil
}

// Validate checks cross-field invariants a plain JSON schema cannot
// express (e.g. variant/role registration existing, positive tEnd).
func (c Config) Validate() error {
	if c.TEnd <= 0 {
		return chk.Err("inp: tEnd must be positive, got %v", c.TEnd)
	}
	if c.DtInit <= 0 {
		return chk.Err("inp: dtInit must be positive, got %v", c.DtInit)
	}
	if _, err := sph.Get(c.Variant, sph.RolePreInteraction); err != nil {
		return err
	}
	if _, err := sph.Get(c.Variant, sph.RoleFluidForce); err != nil {
		return err
	}
	if _, err := sph.Get(c.Variant, sph.RoleTimestep); err != nil {
		return err
	}
	if _, err := Get(c.Sample); err != nil {
		return err
	}
	return nil
}

// EnsureOutDir creates OutDir (and parents) if it does not already exist.
func (c Config) EnsureOutDir() error {
	if c.OutDir == "" {
		return nil
	}
	if err := os.MkdirAll(c.OutDir, 0o755); err != nil {
		return chk.Err("inp: cannot create output directory %q: %v", c.OutDir, err)
	}
	return nil
}
