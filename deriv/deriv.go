/*package deriv computes finite-difference derivatives of sampled functions on
non-uniform grids.*/
package deriv

import (
	"errors"
	"fmt"
)

var (
	ErrTooShort      = errors.New("deriv: fewer than two samples")
	ErrNotIncreasing = errors.New("deriv: samples are not strictly increasing")
)

// Check returns an error if ts cannot be used as the independent variable of
// Vector: it needs at least two strictly increasing samples.
func Check(ts []float64) error {
	if len(ts) < 2 {
		return ErrTooShort
	}
	for i := 1; i < len(ts); i++ {
		if ts[i] <= ts[i-1] {
			return fmt.Errorf("%w: t[%d] = %g, t[%d] = %g",
				ErrNotIncreasing, i-1, ts[i-1], i, ts[i])
		}
	}
	return nil
}

// Vector computes dx/dt at every sample of the sequence (ts, xs). Interior
// points use the second-order centred scheme for non-uniform spacing and the
// two end points use second-order one-sided differences, so the result is
// exact for quadratics. With exactly two samples both entries are the forward
// difference.
//
// ts must contain at least two strictly increasing values and len(xs) must
// equal len(ts). These preconditions are not checked here (see Check); if
// they are violated the output is undefined. An optional output buffer can be
// passed to avoid allocation.
func Vector(ts, xs []float64, out ...[]float64) []float64 {
	n := len(ts)
	var dx []float64
	if len(out) > 0 {
		dx = out[0][:n]
	} else {
		dx = make([]float64, n)
	}

	if n == 2 {
		slope := (xs[1] - xs[0]) / (ts[1] - ts[0])
		dx[0], dx[1] = slope, slope
		return dx
	}

	for i := 1; i < n-1; i++ {
		hs, hd := ts[i]-ts[i-1], ts[i+1]-ts[i]
		dx[i] = (hs*hs*xs[i+1] + (hd*hd-hs*hs)*xs[i] - hd*hd*xs[i-1]) /
			(hs * hd * (hd + hs))
	}

	h1, h2 := ts[1]-ts[0], ts[2]-ts[1]
	dx[0] = -(2*h1+h2)/(h1*(h1+h2))*xs[0] +
		(h1+h2)/(h1*h2)*xs[1] -
		h1/(h2*(h1+h2))*xs[2]

	h1, h2 = ts[n-2]-ts[n-3], ts[n-1]-ts[n-2]
	dx[n-1] = h2/(h1*(h1+h2))*xs[n-3] -
		(h1+h2)/(h1*h2)*xs[n-2] +
		(2*h2+h1)/(h2*(h1+h2))*xs[n-1]

	return dx
}
