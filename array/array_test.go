package array

import (
	"math/rand"
	"sort"
	"testing"
)

func sliceEq(xs, ys []float64) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if xs[i] != ys[i] {
			return false
		}
	}

	return true
}

func boolSliceEq(xs, ys []bool) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if xs[i] != ys[i] {
			return false
		}
	}

	return true
}

func randSlice(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = rand.Float64()
	}
	return xs
}

func TestComparisons(t *testing.T) {
	xs := []float64{-1, 0, 0.5, 1, 2}

	tests := []struct {
		name string
		got  []bool
		want []bool
	}{
		{"Greater", Greater(xs, 0), []bool{false, false, true, true, true}},
		{"Less", Less(xs, 1), []bool{true, true, true, false, false}},
		{"Not", Not([]bool{true, false}), []bool{false, true}},
		{"And", And([]bool{true, true, false}, []bool{true, false, false}),
			[]bool{true, false, false}},
		{"Near", Near(xs, []float64{-1.005, 0.02, 0.5, 0.99, 3}, 0.01),
			[]bool{true, false, true, false, false}},
	}

	for _, test := range tests {
		if !boolSliceEq(test.got, test.want) {
			t.Errorf("%s gave %v, but should be %v",
				test.name, test.got, test.want)
		}
	}
}

func TestOptionalOutput(t *testing.T) {
	out := make([]bool, 3)
	ok := Greater([]float64{1, 2, 3}, 1.5, out)
	if &ok[0] != &out[0] {
		t.Errorf("Greater did not write into the output buffer.")
	}

	defer func() {
		if recover() == nil {
			t.Errorf("Less did not panic on a short output buffer.")
		}
	}()
	Less([]float64{1, 2, 3}, 1.5, make([]bool, 2))
}

func TestCountCut(t *testing.T) {
	xs := []float64{5, 4, 3, 2, 1}
	ok := []bool{true, false, true, false, true}

	if n := Count(ok); n != 3 {
		t.Errorf("Count(%v) = %d, but should be 3", ok, n)
	}
	if cut := Cut(xs, ok); !sliceEq(cut, []float64{5, 3, 1}) {
		t.Errorf("Cut(%g, %v) = %g", xs, ok, cut)
	}
	if !sliceEq(xs, []float64{5, 4, 3, 2, 1}) {
		t.Errorf("Cut modified its input: %g", xs)
	}
}

func TestShellSort(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 10, 11, 100, 1001} {
		xs := randSlice(n)
		target := append([]float64{}, xs...)
		sort.Float64s(target)

		if ShellSort(xs); !sliceEq(xs, target) {
			t.Errorf("ShellSort failed for n = %d", n)
		}
	}
}

func BenchmarkShellSort1000(b *testing.B) {
	xs := randSlice(1000)
	buf := make([]float64, len(xs))
	b.SetBytes(8000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(buf, xs)
		ShellSort(buf)
	}
}
