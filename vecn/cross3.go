//go:build !dim1 && !dim2

package vecn

// Cross returns the 3D cross product a x b. Only compiled into the D==3
// build, since the components indexed here are out of range for D<3.
func (a Vec) Cross(b Vec) (r Vec) {
	r[0] = a[1]*b[2] - a[2]*b[1]
	r[1] = a[2]*b[0] - a[0]*b[2]
	r[2] = a[0]*b[1] - a[1]*b[0]
	return
}
