package out

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/particle"
)

// Metadata is the run-level summary written alongside every snapshot
// batch: conserved quantities and solver-health counters a post-hoc
// audit checks without re-reading every snapshot.
type Metadata struct {
	Step                int     `json:"step"`
	T                   float64 `json:"t"`
	Dt                  float64 `json:"dt"`
	NumParticles        int     `json:"numParticles"`
	TotalMass           float64 `json:"totalMass"`
	TotalEnergy         float64 `json:"totalEnergy"`
	Momentum            []float64 `json:"momentum"`
	HPerVSig            float64 `json:"hPerVSig"`
	ConvergenceWarnings int     `json:"convergenceWarnings"`
}

// BuildMetadata snapshots st's run-level summary fields.
func BuildMetadata(st *particle.State) Metadata {
	mom := st.TotalMomentum()
	momSlice := make([]float64, len(mom))
	copy(momSlice, mom[:])
	return Metadata{
		Step:                st.Step,
		T:                   st.T,
		Dt:                  st.Dt,
		NumParticles:        len(st.Particles),
		TotalMass:           st.TotalMass(),
		TotalEnergy:         st.TotalEnergy(),
		Momentum:            momSlice,
		HPerVSig:            st.HPerVSig,
		ConvergenceWarnings: st.ConvergenceWarnings,
	}
}

// WriteMetadata writes metadata.json (pretty-printed) to dir.
func WriteMetadata(dir string, st *particle.State) error {
	md := BuildMetadata(st)
	b, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return chk.Err("out: cannot marshal metadata: %v", err)
	}
	path := filepath.Join(dir, "metadata.json")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return chk.Err("out: cannot write metadata %q: %v", path, err)
	}
	return nil
}
