package profile

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/peri-profiles/array"
)

// Percentiles returns the ps percentiles (0 to 100) of values using linear
// interpolation between closest ranks: the q-th quantile sits at index
// q (n - 1) of the sorted values. values is not modified. If values is empty,
// every percentile is NaN.
func Percentiles(values, ps []float64) []float64 {
	out := make([]float64, len(ps))
	if len(values) == 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}

	sorted := array.ShellSort(append([]float64{}, values...))
	n := float64(len(sorted))

	for i, p := range ps {
		if p < 0 {
			p = 0
		} else if p > 100 {
			p = 100
		}

		index := p / 100 * (n - 1)
		lo, hi := int(math.Floor(index)), int(math.Ceil(index))
		if lo == hi {
			out[i] = sorted[lo]
		} else {
			w := index - float64(lo)
			out[i] = sorted[lo]*(1-w) + sorted[hi]*w
		}
	}

	return out
}

// Stack computes per-bin percentiles across a set of profiles that all have
// the same number of bins. The result has one curve per percentile, each
// with one entry per bin. Stack returns nil if there are no profiles.
func Stack(profiles [][]float64, ps []float64) [][]float64 {
	if len(profiles) == 0 {
		return nil
	}

	bins := len(profiles[0])
	curves := make([][]float64, len(ps))
	for j := range curves {
		curves[j] = make([]float64, bins)
	}

	column := make([]float64, len(profiles))
	for b := 0; b < bins; b++ {
		for i := range profiles {
			if len(profiles[i]) != bins {
				panic(fmt.Sprintf("profile %d has %d bins, not %d",
					i, len(profiles[i]), bins))
			}
			column[i] = profiles[i][b]
		}

		vals := Percentiles(column, ps)
		for j := range vals {
			curves[j][b] = vals[j]
		}
	}

	return curves
}
