//go:build dim1

package preinteraction

import "github.com/cpmech/gosph/vecn"

// accumulateCurl is a no-op in 1D: a 1D velocity field has no curl.
func accumulateCurl(s *shearState, vij, gradW vecn.Vec, volj float64) {}

// curlMagnitude is always zero in 1D.
func curlMagnitude(s shearState) float64 {
	return 0
}
