package profile

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/peri-profiles/array"
)

// Mask returns which subhaloes have a distinguishable interior pericentre:
// |xp - x| >= eps, xp < 1 and d > 0. x and xp are the present-day and
// pericentric distances normalised by the host radius and d is the
// present-day distance.
func Mask(x, xp, d []float64, eps float64) []bool {
	if len(x) != len(xp) || len(x) != len(d) {
		panic(fmt.Sprintf("len(x) = %d, len(xp) = %d, len(d) = %d",
			len(x), len(xp), len(d)))
	}
	return array.And(
		array.Not(array.Near(xp, x, eps)),
		array.Less(xp, 1),
		array.Greater(d, 0),
	)
}

// Edges returns the bins+1 edges of equal-width bins spanning [lo, hi].
func Edges(lo, hi float64, bins int) []float64 {
	edges := floats.Span(make([]float64, bins+1), lo, hi)
	edges[bins] = hi
	return edges
}

// Centers returns the midpoints of the bins described by edges.
func Centers(edges []float64) []float64 {
	out := make([]float64, len(edges)-1)
	for i := range out {
		out[i] = (edges[i] + edges[i+1]) / 2
	}
	return out
}

// Histogram counts the values that fall into each bin of a set of
// equal-width edges. Bins are half-open except for the last, which also
// includes the right edge. Values outside the edges (and NaNs) are dropped.
// An optional output buffer of length len(edges)-1 can be supplied.
func Histogram(xs, edges []float64, out ...[]float64) []float64 {
	bins := len(edges) - 1
	var counts []float64
	if len(out) == 0 {
		counts = make([]float64, bins)
	} else {
		counts = out[0]
		if len(counts) != bins {
			panic(fmt.Sprintf("%d bins, but len(out) = %d", bins, len(counts)))
		}
		for i := range counts {
			counts[i] = 0
		}
	}

	lo, hi := edges[0], edges[bins]
	width := (hi - lo) / float64(bins)

	for _, x := range xs {
		if !(x >= lo && x <= hi) {
			continue
		}

		i := int((x - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		// Rounding in the division can push a value into a neighbouring
		// bin; the edges themselves are authoritative.
		if x < edges[i] {
			i--
		} else if i < bins-1 && x >= edges[i+1] {
			i++
		}
		counts[i]++
	}

	return counts
}

func sphereVolume(r float64) float64 { return 4 * math.Pi / 3 * r * r * r }

// ShellVolumes returns the volume of each spherical shell between adjacent
// edges.
func ShellVolumes(edges []float64) []float64 {
	out := make([]float64, len(edges)-1)
	for i := range out {
		out[i] = sphereVolume(edges[i+1]) - sphereVolume(edges[i])
	}
	return out
}

// Density converts the histogram counts into a number density profile
// normalised by the total number of objects n: counts[i] / vol[i] / n.
func Density(counts, edges []float64, n int) []float64 {
	vols := ShellVolumes(edges)
	if len(vols) != len(counts) {
		panic(fmt.Sprintf("%d bins, but %d counts", len(vols), len(counts)))
	}
	out := make([]float64, len(counts))
	for i := range counts {
		out[i] = counts[i] / vols[i] / float64(n)
	}
	return out
}
