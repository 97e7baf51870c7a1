//go:build !dim1 && !dim2

package preinteraction

import "github.com/cpmech/gosph/vecn"

// accumulateCurl adds one neighbor pair's contribution to the running curl
// estimate: -vol_j (v_ij x gradW), the full 3D cross product.
func accumulateCurl(s *shearState, vij, gradW vecn.Vec, volj float64) {
	c := vij.Cross(gradW)
	s.curlV = s.curlV.AddScaled(-volj, c)
}

// curlMagnitude returns |curl v| for the Balsara denominator.
func curlMagnitude(s shearState) float64 {
	return s.curlV.Norm()
}
