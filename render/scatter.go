package render

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/phil-mansfield/peri-profiles/profile"
)

// scatterLim is the extent of both axes of the per-host scatter plot.
const scatterLim = 3.0

func verticalLine(x, hi float64, width vg.Length) (*plotter.Line, error) {
	l, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: hi}})
	if err != nil {
		return nil, err
	}
	l.Color, l.Width = red, width
	return l, nil
}

// HostScatter plots the present-day normalised distance of each of a host's
// subhaloes against its normalised pericentric distance, coloured by the
// age at pericentre. The host's splashback radius and shell bounds (in units
// of R200m) are marked.
func HostScatter(s *profile.HostSummary) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Halo %d: log10 M200c = %.2f, Gamma = %.2f",
		s.ID, math.Log10(s.M200c), s.Gamma)
	p.X.Label.Text = "R(z=0)/R_200m(z=0)"
	p.Y.Label.Text = "R(z_peri)/R_200m(z_peri)"

	xys := make(plotter.XYs, len(s.X))
	for i := range s.X {
		xys[i] = plotter.XY{X: s.X[i], Y: s.XP[i]}
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}

	cmap := moreland.BlackBody()
	lo, hi := finiteRange(s.TPeri)
	switch {
	case math.IsInf(lo, 0):
		lo, hi = 0, 1
	case !(hi > lo):
		lo, hi = lo-1, lo+1
	}
	cmap.SetMin(lo)
	cmap.SetMax(hi)

	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		style := draw.GlyphStyle{
			Color: black, Radius: vg.Points(3), Shape: draw.CircleGlyph{},
		}
		if c, err := cmap.At(s.TPeri[i]); err == nil {
			style.Color = c
		}
		return style
	}
	p.Add(sc)

	identity, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: 0}, {X: scatterLim, Y: scatterLim},
	})
	if err != nil {
		return nil, err
	}
	identity.Color = black
	p.Add(identity)

	rsp, err := verticalLine(s.RSpOverR200m, scatterLim, vg.Points(3))
	if err != nil {
		return nil, err
	}
	rmin, err := verticalLine(s.RMinOverR200m, scatterLim, vg.Points(1))
	if err != nil {
		return nil, err
	}
	rmax, err := verticalLine(s.RMaxOverR200m, scatterLim, vg.Points(1))
	if err != nil {
		return nil, err
	}
	one, err := verticalLine(1, scatterLim, vg.Points(3))
	if err != nil {
		return nil, err
	}
	one.Color = black
	one.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}

	p.Add(rsp, rmin, rmax, one)
	p.Legend.Add("R_sp", rsp)
	p.Legend.Add("shell bounds", rmax)
	p.Legend.Add("R_200m", one)
	p.Legend.Top, p.Legend.Left = true, true

	p.X.Min, p.X.Max = 0, scatterLim
	p.Y.Min, p.Y.Max = 0, scatterLim

	return p, nil
}

// HostScatters saves a scatter plot for every host to dir and returns the
// names of the files written.
func HostScatters(hosts []profile.HostSummary, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	written := make([]string, 0, len(hosts))
	for i := range hosts {
		p, err := HostScatter(&hosts[i])
		if err != nil {
			return written, fmt.Errorf("plotting host %d: %w", hosts[i].ID, err)
		}

		fname := filepath.Join(dir, fmt.Sprintf("host_%d.png", hosts[i].ID))
		if err := p.Save(Width, Height, fname); err != nil {
			return written, err
		}
		written = append(written, fname)
	}
	return written, nil
}
