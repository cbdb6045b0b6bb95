/*package render draws the stacked profiles and per-host diagnostics produced
by package profile and writes them out as text tables.*/
package render

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/phil-mansfield/peri-profiles/halo"
	"github.com/phil-mansfield/peri-profiles/profile"
)

// LinThresh is the half-width of the linear region of the density axis.
const LinThresh = 0.03

var (
	green   = color.NRGBA{R: 0, G: 128, B: 0, A: 255}
	blue    = color.NRGBA{R: 0, G: 0, B: 255, A: 255}
	red     = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	magenta = color.NRGBA{R: 191, G: 0, B: 191, A: 255}
	black   = color.NRGBA{A: 255}

	// Colors gives the colour used for each radius definition.
	Colors = map[halo.Definition]color.NRGBA{
		halo.RSp:   green,
		halo.RMax:  blue,
		halo.R200m: red,
		halo.R200c: magenta,
	}

	// Size of saved figures.
	Width, Height = 6 * vg.Inch, 5 * vg.Inch
)

// Label returns the name of the normalised radius axis for def, e.g.
// "R/R_sp" or "R/(1.2 R_sp)".
func Label(def halo.Definition, scale float64) string {
	if scale == 1 {
		return fmt.Sprintf("R/%s", def)
	}
	return fmt.Sprintf("R/(%g %s)", scale, def)
}

func scaleOf(scales map[halo.Definition]float64, def halo.Definition) float64 {
	if s, ok := scales[def]; ok {
		return s
	}
	return 1
}

func translucent(c color.NRGBA) color.NRGBA {
	c.A = 77
	return c
}

func curveXYs(xs, ys []float64) plotter.XYs {
	out := make(plotter.XYs, len(xs))
	for i := range xs {
		out[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return out
}

// bandXYs returns the ring enclosing the area between two curves.
func bandXYs(xs, lo, hi []float64) plotter.XYs {
	out := make(plotter.XYs, 0, 2*len(xs))
	for i := range xs {
		out = append(out, plotter.XY{X: xs[i], Y: lo[i]})
	}
	for i := len(xs) - 1; i >= 0; i-- {
		out = append(out, plotter.XY{X: xs[i], Y: hi[i]})
	}
	return out
}

// ProfilePlot draws the percentile band of one radius definition. Curves are
// paired from the outside in (first with last, second with second to last)
// into shaded bands and an unpaired middle curve is drawn as the median. It
// returns nil if no host was stacked.
func ProfilePlot(
	res *profile.Result, def halo.Definition, scale float64,
) (*plot.Plot, error) {
	band := res.Bands[def]
	if band == nil || band.N == 0 {
		return nil, nil
	}
	col := Colors[def]

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%d hosts)", Label(def, scale), band.N)
	p.X.Label.Text = Label(def, scale)
	p.Y.Label.Text = "n(r)/(N_tot V)"
	p.X.Scale, p.X.Tick.Marker = plot.LogScale{}, plot.LogTicks{Prec: -1}
	p.Y.Scale, p.Y.Tick.Marker = SymLog{LinThresh}, SymLog{LinThresh}

	curves := band.Curves
	n := len(curves)
	for j := 0; j < n/2; j++ {
		poly, err := plotter.NewPolygon(
			bandXYs(res.Centers, curves[j], curves[n-1-j]))
		if err != nil {
			return nil, err
		}
		poly.Color = translucent(col)
		poly.LineStyle.Width = 0
		p.Add(poly)
	}

	for j := range curves {
		l, err := plotter.NewLine(curveXYs(res.Centers, curves[j]))
		if err != nil {
			return nil, err
		}
		l.Color, l.Width = col, vg.Points(1)
		if n%2 == 1 && j == n/2 {
			l.Width = vg.Points(3)
			p.Legend.Add(fmt.Sprintf("median (%g%%)", res.Percentiles[j]), l)
		}
		p.Add(l)
	}

	lo, hi := p.Y.Min, p.Y.Max
	if !(hi > lo) {
		hi = lo + LinThresh
	}
	p.Y.Min, p.Y.Max = lo, hi

	one, err := plotter.NewLine(plotter.XYs{{X: 1, Y: lo}, {X: 1, Y: hi}})
	if err != nil {
		return nil, err
	}
	one.Color, one.Width = black, vg.Points(1)
	one.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(one)

	return p, nil
}

// Profiles saves one figure per radius definition with a stacked host to
// dir and returns the names of the files written.
func Profiles(
	res *profile.Result, scales map[halo.Definition]float64, dir string,
) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var written []string
	for _, def := range halo.Definitions {
		p, err := ProfilePlot(res, def, scaleOf(scales, def))
		if err != nil {
			return written, fmt.Errorf("plotting %s: %w", def, err)
		} else if p == nil {
			continue
		}

		fname := filepath.Join(dir, fmt.Sprintf("profile_%s.png", def.Key()))
		if err := p.Save(Width, Height, fname); err != nil {
			return written, err
		}
		written = append(written, fname)
	}
	return written, nil
}

func finiteRange(xs []float64) (lo, hi float64) {
	lo, hi = math.Inf(+1), math.Inf(-1)
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	return lo, hi
}
