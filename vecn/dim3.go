//go:build !dim1 && !dim2

// Package vecn implements fixed-dimension vector arithmetic and the
// periodic minimum-image displacement operator used throughout the SPH
// core. The dimension D is a compile-time constant selected by build
// tags (dim1, dim2, dim3; dim3 is the default).
package vecn

// D is the compile-time spatial dimension of this build.
const D = 3
