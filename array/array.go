/*package array provides bool-mask utilities for float64 slices without the
overhead of Go's interfaces, along with the small amount of sorting needed to
compute percentiles over them.
*/
package array

import (
	"fmt"
	"math"
)

// getOutput is a utility function that gets the output array from an optional
// argument or allocates a new one.
func getOutput(out [][]bool, n int) []bool {
	if len(out) == 0 {
		return make([]bool, n)
	}
	ok := out[0]
	if len(ok) != n {
		panic(fmt.Sprintf(
			"len(xs) = %d, but len(out) = %d", n, len(ok)),
		)
	}
	return ok
}

// Greater returns a bool array representing which elements of xs are greater
// than x0. It takes a output target as an optional argument to avoid excess
// allocations.
func Greater(xs []float64, x0 float64, out ...[]bool) []bool {
	ok := getOutput(out, len(xs))
	for i := range xs {
		ok[i] = xs[i] > x0
	}
	return ok
}

// Less returns a bool array representing which elements of xs are less
// than x0. It takes a output target as an optional argument to avoid excess
// allocations.
func Less(xs []float64, x0 float64, out ...[]bool) []bool {
	ok := getOutput(out, len(xs))
	for i := range xs {
		ok[i] = xs[i] < x0
	}
	return ok
}

// Near returns a bool array representing which elements of xs are within eps
// of the corresponding element of ys, i.e. |xs[i] - ys[i]| < eps. It takes an
// optional output target.
func Near(xs, ys []float64, eps float64, out ...[]bool) []bool {
	if len(xs) != len(ys) {
		panic(fmt.Sprintf("len(xs) = %d, but len(ys) = %d", len(xs), len(ys)))
	}
	ok := getOutput(out, len(xs))
	for i := range xs {
		ok[i] = math.Abs(xs[i]-ys[i]) < eps
	}
	return ok
}

// And returns a bool array corresponding an element-by-element && applied to
// all input arrays. Unlike other functions here it can't take an optional
// output argument because of the variadic input.
func And(xs ...[]bool) []bool {
	if len(xs) == 0 {
		panic("No input given to And.")
	}

	out := make([]bool, len(xs[0]))
	for i := range out {
		out[i] = true
	}

	for j := range xs {
		if len(xs[j]) != len(out) {
			panic(fmt.Sprintf("Argument %d of And() has length %d, not %d.",
				j, len(xs[j]), len(out)))
		}
		for i := range out {
			out[i] = out[i] && xs[j][i]
		}
	}

	return out
}

// Not applies element-by-element ! to an input array. It takes an optional
// output array.
func Not(xs []bool, out ...[]bool) []bool {
	ok := getOutput(out, len(xs))
	for i := range xs {
		ok[i] = !xs[i]
	}
	return ok
}

// Count returns the number of true elements in ok.
func Count(ok []bool) int {
	n := 0
	for i := range ok {
		if ok[i] {
			n++
		}
	}
	return n
}

// Cut returns the elements of xs for which ok is true. xs is not modified.
func Cut(xs []float64, ok []bool) []float64 {
	if len(xs) != len(ok) {
		panic(fmt.Sprintf("len(xs) = %d, but len(ok) = %d", len(xs), len(ok)))
	}
	out := make([]float64, 0, Count(ok))
	for i := range xs {
		if ok[i] {
			out = append(out, xs[i])
		}
	}
	return out
}
