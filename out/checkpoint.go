package out

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/vecn"
)

// checkpointMagic identifies the file format; checkpointVersion bumps
// whenever the packed particle record layout changes incompatibly.
const (
	checkpointMagic   = "GOSPHCKPT"
	checkpointVersion = 1
)

// checkpointHeader is the JSON parameter block preceding the packed
// particle payload: the run clock, gamma, the particle count, the build
// dimension and the payload digest. It does not record the kernel, the
// periodic domain, NeighborNumber or any role parameters.
type checkpointHeader struct {
	Version int     `json:"version"`
	Step    int     `json:"step"`
	T       float64 `json:"t"`
	Dt      float64 `json:"dt"`
	Gamma   float64 `json:"gamma"`
	N       int     `json:"n"`
	Dim     int     `json:"dim"`
	Digest  string  `json:"digest"` // sha256 of the packed payload, hex
}

// WriteCheckpoint serializes st to path: a magic line, the int64 length
// of the JSON header, the JSON header, then the packed binary particle
// payload the header's Digest covers. Only the fields packParticles
// writes round-trip; Acc, Neighbor, DivV, PresWeight, NumDens, the
// gradients and the neighbor extrema are not stored, nor are the State's
// kernel, periodic domain, NeighborNumber or named arrays.
func WriteCheckpoint(path string, st *particle.State) error {
	payload, err := packParticles(st.Particles)
	if err != nil {
		return err
	}
	digest := sha256.Sum256(payload)

	hdr := checkpointHeader{
		Version: checkpointVersion,
		Step:    st.Step,
		T:       st.T,
		Dt:      st.Dt,
		Gamma:   st.Gamma,
		N:       len(st.Particles),
		Dim:     vecn.D,
		Digest:  hex.EncodeToString(digest[:]),
	}
	hdrBytes, err := json.Marshal(hdr)
	if err != nil {
		return chk.Err("out: cannot marshal checkpoint header: %v", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return chk.Err("out: cannot create checkpoint %q: %v", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(checkpointMagic + "\n"); err != nil {
		return chk.Err("out: cannot write checkpoint magic to %q: %v", path, err)
	}
	if err := binary.Write(f, binary.LittleEndian, int64(len(hdrBytes))); err != nil {
		return chk.Err("out: cannot write checkpoint header length to %q: %v", path, err)
	}
	if _, err := f.Write(hdrBytes); err != nil {
		return chk.Err("out: cannot write checkpoint header to %q: %v", path, err)
	}
	if _, err := f.Write(payload); err != nil {
		return chk.Err("out: cannot write checkpoint payload to %q: %v", path, err)
	}
	return nil
}

// ReadCheckpoint reads a checkpoint written by WriteCheckpoint, verifying
// the payload digest before unpacking; a mismatch is treated as file
// corruption (spec error kind), not silently tolerated.
func ReadCheckpoint(path string) (*particle.State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, chk.Err("out: cannot open checkpoint %q: %v", path, err)
	}
	defer f.Close()

	magic := make([]byte, len(checkpointMagic)+1)
	if _, err := io.ReadFull(f, magic); err != nil {
		return nil, chk.Err("out: cannot read checkpoint magic from %q: %v", path, err)
	}
	if string(magic[:len(checkpointMagic)]) != checkpointMagic {
		return nil, chk.Err("out: %q is not a gosph checkpoint file", path)
	}

	var hdrLen int64
	if err := binary.Read(f, binary.LittleEndian, &hdrLen); err != nil {
		return nil, chk.Err("out: cannot read checkpoint header length from %q: %v", path, err)
	}
	hdrBytes := make([]byte, hdrLen)
	if _, err := io.ReadFull(f, hdrBytes); err != nil {
		return nil, chk.Err("out: cannot read checkpoint header from %q: %v", path, err)
	}
	var hdr checkpointHeader
	if err := json.Unmarshal(hdrBytes, &hdr); err != nil {
		return nil, chk.Err("out: cannot parse checkpoint header from %q: %v", path, err)
	}
	if hdr.Version != checkpointVersion {
		return nil, chk.Err("out: checkpoint %q has version %d, expected %d", path, hdr.Version, checkpointVersion)
	}
	if hdr.Dim != vecn.D {
		return nil, chk.Err("out: checkpoint %q was written for D=%d, this build has D=%d", path, hdr.Dim, vecn.D)
	}

	payload, err := io.ReadAll(f)
	if err != nil {
		return nil, chk.Err("out: cannot read checkpoint payload from %q: %v", path, err)
	}
	digest := sha256.Sum256(payload)
	if hex.EncodeToString(digest[:]) != hdr.Digest {
		return nil, chk.Err("out: checkpoint %q payload digest mismatch (file corrupted)", path)
	}

	particles, err := unpackParticles(payload, hdr.N)
	if err != nil {
		return nil, err
	}

	st := &particle.State{
		Particles: particles,
		T:         hdr.T,
		Dt:        hdr.Dt,
		Step:      hdr.Step,
		Gamma:     hdr.Gamma,
	}
	return st, nil
}

// particleFieldCount is the number of fixed-size fields packParticles
// writes per particle after the ID, independent of D (the D-sized Pos and
// Vel vectors and the flags are written after them).
const particleFieldCount = 11

func packParticles(particles []particle.Particle) ([]byte, error) {
	var buf bytes.Buffer
	for i := range particles {
		p := &particles[i]
		if err := binary.Write(&buf, binary.LittleEndian, int64(p.ID)); err != nil {
			return nil, chk.Err("out: cannot pack particle %d: %v", i, err)
		}
		scalars := []float64{
			p.Mass, p.Dens, p.Pres, p.Ene, p.Dene, p.Sound,
			p.Sml, p.Volume, p.GradH, p.Alpha, p.Balsara,
		}
		if len(scalars) != particleFieldCount {
			return nil, chk.Err("out: particleFieldCount out of sync with packParticles")
		}
		if err := binary.Write(&buf, binary.LittleEndian, scalars); err != nil {
			return nil, chk.Err("out: cannot pack particle %d scalars: %v", i, err)
		}
		if err := binary.Write(&buf, binary.LittleEndian, p.Pos[:]); err != nil {
			return nil, chk.Err("out: cannot pack particle %d position: %v", i, err)
		}
		if err := binary.Write(&buf, binary.LittleEndian, p.Vel[:]); err != nil {
			return nil, chk.Err("out: cannot pack particle %d velocity: %v", i, err)
		}
		var flags int64
		if p.IsPointMass {
			flags |= 1
		}
		if p.IsWall {
			flags |= 2
		}
		if err := binary.Write(&buf, binary.LittleEndian, flags); err != nil {
			return nil, chk.Err("out: cannot pack particle %d flags: %v", i, err)
		}
	}
	return buf.Bytes(), nil
}

func unpackParticles(payload []byte, n int) ([]particle.Particle, error) {
	r := bytes.NewReader(payload)
	particles := make([]particle.Particle, n)
	for i := 0; i < n; i++ {
		p := &particles[i]
		var id int64
		if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
			return nil, chk.Err("out: cannot unpack particle %d id: %v", i, err)
		}
		p.ID = int(id)

		scalars := make([]float64, particleFieldCount)
		if err := binary.Read(r, binary.LittleEndian, scalars); err != nil {
			return nil, chk.Err("out: cannot unpack particle %d scalars: %v", i, err)
		}
		p.Mass, p.Dens, p.Pres, p.Ene, p.Dene, p.Sound = scalars[0], scalars[1], scalars[2], scalars[3], scalars[4], scalars[5]
		p.Sml, p.Volume, p.GradH, p.Alpha, p.Balsara = scalars[6], scalars[7], scalars[8], scalars[9], scalars[10]

		pos := make([]float64, vecn.D)
		if err := binary.Read(r, binary.LittleEndian, pos); err != nil {
			return nil, chk.Err("out: cannot unpack particle %d position: %v", i, err)
		}
		copy(p.Pos[:], pos)

		vel := make([]float64, vecn.D)
		if err := binary.Read(r, binary.LittleEndian, vel); err != nil {
			return nil, chk.Err("out: cannot unpack particle %d velocity: %v", i, err)
		}
		copy(p.Vel[:], vel)

		var flags int64
		if err := binary.Read(r, binary.LittleEndian, &flags); err != nil {
			return nil, chk.Err("out: cannot unpack particle %d flags: %v", i, err)
		}
		p.IsPointMass = flags&1 != 0
		p.IsWall = flags&2 != 0
	}
	return particles, nil
}

