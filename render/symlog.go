package render

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// SymLog is a symmetric logarithmic axis: linear for |x| <= Thresh and
// logarithmic beyond it. It can be used as both the Scale and the
// Tick.Marker of a plot.Axis.
type SymLog struct {
	Thresh float64
}

var (
	_ plot.Normalizer = SymLog{}
	_ plot.Ticker     = SymLog{}
)

// transform maps x onto a coordinate where the linear region spans [-1, 1]
// and every decade beyond it has unit width.
func (s SymLog) transform(x float64) float64 {
	ax := math.Abs(x)
	if ax <= s.Thresh {
		return x / s.Thresh
	}
	return math.Copysign(1+math.Log10(ax/s.Thresh), x)
}

// Normalize returns the fractional position of x between min and max.
func (s SymLog) Normalize(min, max, x float64) float64 {
	lo, hi := s.transform(min), s.transform(max)
	return (s.transform(x) - lo) / (hi - lo)
}

// Ticks labels zero and the powers of ten times Thresh that lie in
// [min, max], with unlabelled minor ticks between them.
func (s SymLog) Ticks(min, max float64) []plot.Tick {
	if !(s.Thresh > 0) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return nil
	}

	var ticks []plot.Tick
	if min <= 0 && max >= 0 {
		ticks = append(ticks, plot.Tick{Value: 0, Label: "0"})
	}

	for _, sign := range []float64{-1, 1} {
		for k := 0; ; k++ {
			major := sign * s.Thresh * math.Pow10(k)
			if major < min && sign < 0 || major > max && sign > 0 {
				break
			}
			if major >= min && major <= max {
				ticks = append(ticks, plot.Tick{
					Value: major,
					Label: strconv.FormatFloat(major, 'g', 3, 64),
				})
			}
			for i := 2; i < 10; i++ {
				minor := major * float64(i)
				if minor >= min && minor <= max {
					ticks = append(ticks, plot.Tick{Value: minor})
				}
			}
		}
	}
	return ticks
}
