//go:build dim2

package preinteraction

import (
	"math"

	"github.com/cpmech/gosph/vecn"
)

// accumulateCurl adds one neighbor pair's contribution to the running 2D
// pseudo-scalar curl estimate, vol_j (v_ij x gradW).
func accumulateCurl(s *shearState, vij, gradW vecn.Vec, volj float64) {
	s.curl2 += volj * vij.Cross2D(gradW)
}

// curlMagnitude returns |curl v| for the Balsara denominator.
func curlMagnitude(s shearState) float64 {
	return math.Abs(s.curl2)
}
