//go:build dim1

package vecn

// D is the compile-time spatial dimension of this build.
const D = 1
