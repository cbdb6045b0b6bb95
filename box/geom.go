/*package box contains routines for dealing with the periodic geometry of
cosmological simulations boxes.*/
package box

import "math"

// SymBound maps a coordinate difference dx onto the range [-L/2, +L/2] of a
// periodic box with width L. It assumes |dx| < 3L/2, which holds for any
// difference of two points inside the box.
func SymBound(dx, L float64) float64 {
	if dx > +L/2 {
		dx -= L
	}
	if dx < -L/2 {
		dx += L
	}
	return dx
}

// Displacement returns the periodic displacement x - x0 in a box of width L.
func Displacement(x, x0 [3]float64, L float64) [3]float64 {
	var dx [3]float64
	for k := 0; k < 3; k++ {
		dx[k] = SymBound(x[k]-x0[k], L)
	}
	return dx
}

// Norm returns the Euclidean length of a displacement vector.
func Norm(dx [3]float64) float64 {
	return math.Sqrt(dx[0]*dx[0] + dx[1]*dx[1] + dx[2]*dx[2])
}
