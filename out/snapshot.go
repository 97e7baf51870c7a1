package out

import (
	"encoding/binary"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/vecn"
)

// snapshotColumns names the CSV header shared by WriteCSV and the binary
// record layout in WriteBinary, kept identical so both formats describe
// the same fields in the same order.
func snapshotColumns() []string {
	cols := []string{"id", "mass", "dens", "pres", "ene", "sml", "sound"}
	for i := 0; i < vecn.D; i++ {
		cols = append(cols, fmt.Sprintf("pos_%d", i))
	}
	for i := 0; i < vecn.D; i++ {
		cols = append(cols, fmt.Sprintf("vel_%d", i))
	}
	return cols
}

// WriteCSV writes one row per particle to path, overwriting any existing
// file. Column order is fixed by snapshotColumns.
func WriteCSV(path string, st *particle.State) error {
	f, err := os.Create(path)
	if err != nil {
		return chk.Err("out: cannot create CSV snapshot %q: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(snapshotColumns()); err != nil {
		return chk.Err("out: cannot write CSV header to %q: %v", path, err)
	}

	row := make([]string, len(snapshotColumns()))
	for i := range st.Particles {
		p := &st.Particles[i]
		row = row[:0]
		row = append(row,
			fmt.Sprintf("%d", p.ID),
			fmt.Sprintf("%.17g", p.Mass),
			fmt.Sprintf("%.17g", p.Dens),
			fmt.Sprintf("%.17g", p.Pres),
			fmt.Sprintf("%.17g", p.Ene),
			fmt.Sprintf("%.17g", p.Sml),
			fmt.Sprintf("%.17g", p.Sound),
		)
		for d := 0; d < vecn.D; d++ {
			row = append(row, fmt.Sprintf("%.17g", p.Pos[d]))
		}
		for d := 0; d < vecn.D; d++ {
			row = append(row, fmt.Sprintf("%.17g", p.Vel[d]))
		}
		if err := w.Write(row); err != nil {
			return chk.Err("out: cannot write CSV row %d to %q: %v", i, path, err)
		}
	}
	return w.Error()
}

// WriteBinary writes a compact little-endian record per particle: an
// int64 ID followed by float64 fields in snapshotColumns order (minus
// the id column). It is the cadence format for large runs where CSV's
// per-row text formatting dominates wall time.
func WriteBinary(path string, st *particle.State) error {
	f, err := os.Create(path)
	if err != nil {
		return chk.Err("out: cannot create binary snapshot %q: %v", path, err)
	}
	defer f.Close()

	for i := range st.Particles {
		p := &st.Particles[i]
		if err := binary.Write(f, binary.LittleEndian, int64(p.ID)); err != nil {
			return chk.Err("out: cannot write binary record %d to %q: %v", i, path, err)
		}
		fields := make([]float64, 0, 6+2*vecn.D)
		fields = append(fields, p.Mass, p.Dens, p.Pres, p.Ene, p.Sml, p.Sound)
		for d := 0; d < vecn.D; d++ {
			fields = append(fields, p.Pos[d])
		}
		for d := 0; d < vecn.D; d++ {
			fields = append(fields, p.Vel[d])
		}
		if err := binary.Write(f, binary.LittleEndian, fields); err != nil {
			return chk.Err("out: cannot write binary record %d to %q: %v", i, path, err)
		}
	}
	return nil
}

// snapshotPath joins dir with a step-numbered filename, e.g. step-000120.csv.
func snapshotPath(dir string, step int, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("step-%06d.%s", step, ext))
}

// WriteSnapshot writes either a CSV or binary snapshot for the current
// step, choosing the filename and format from binary.
func WriteSnapshot(dir string, st *particle.State, binaryFormat bool) error {
	if binaryFormat {
		return WriteBinary(snapshotPath(dir, st.Step, "bin"), st)
	}
	return WriteCSV(snapshotPath(dir, st.Step, "csv"), st)
}
