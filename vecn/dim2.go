//go:build dim2

package vecn

// D is the compile-time spatial dimension of this build.
const D = 2
