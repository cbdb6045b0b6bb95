package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/phil-mansfield/peri-profiles/array"
	"github.com/phil-mansfield/peri-profiles/halo"
)

// HostSummary describes the subhalo population of a single host. The per-
// subhalo slices cover every subhalo that could be displaced, in the order
// of Host.Subs with rejected subhaloes left out.
type HostSummary struct {
	ID int

	Subs       int // subhaloes assigned to the host
	Rejected   int // subhaloes with degenerate or misaligned trajectories
	Qualifying int // subhaloes passing the pericentre mask
	Stacked    bool

	IDs   []int
	D     []float64 // present-day distance, Mpc/h
	X     []float64 // present-day distance / host radius
	XP    []float64 // pericentric distance / host radius at pericentre
	TPeri []float64 // age at pericentre, Gyr
	Mask  []bool

	RSpOverR200m, RMinOverR200m, RMaxOverR200m float64
	M200c, Gamma                               float64
}

// HostResult is the outcome of analysing a single host. Profiles is only set
// when the host has more than Config.Threshold qualifying subhaloes.
type HostResult struct {
	Summary  HostSummary
	Profiles map[halo.Definition][]float64
}

// Analyze follows every subhalo of h, finds its pericentre and, if enough
// subhaloes qualify, measures the host's density profile under each radius
// definition. Subhaloes with degenerate trajectories or histories that do not
// line up with the host's are skipped and counted. Any other error is
// returned.
func Analyze(h *halo.Host, cfg *Config) (*HostResult, error) {
	log := cfg.logger()
	n := len(h.Subs)

	s := HostSummary{
		ID: h.ID, Subs: n,
		IDs: make([]int, 0, n),
		D:   make([]float64, 0, n), X: make([]float64, 0, n),
		XP: make([]float64, 0, n), TPeri: make([]float64, 0, n),
		M200c: h.Props.M200c, Gamma: h.Props.Gamma,
	}
	if h.Props.R200m > 0 {
		s.RSpOverR200m = h.Props.RSp / h.Props.R200m
		s.RMinOverR200m = h.Props.RMin / h.Props.R200m
		s.RMaxOverR200m = h.Props.RMax / h.Props.R200m
	}

	rHost := h.R[h.Len()-1]
	for _, sub := range h.Subs {
		o, err := halo.Displace(sub, h.Track, cfg.BoxSize)
		if errors.Is(err, halo.ErrDegenerate) ||
			errors.Is(err, halo.ErrMisaligned) {
			s.Rejected++
			log.Warn("rejected subhalo", "host", h.ID, "sub", sub.ID,
				"error", err)
			continue
		} else if err != nil {
			return nil, err
		}

		p := o.Pericenter()
		d := o.Now()
		s.IDs = append(s.IDs, sub.ID)
		s.D = append(s.D, d)
		s.X = append(s.X, d/rHost)
		s.XP = append(s.XP, p.X)
		s.TPeri = append(s.TPeri, p.Age)
	}

	s.Mask = Mask(s.X, s.XP, s.D, cfg.Eps)
	s.Qualifying = array.Count(s.Mask)

	res := &HostResult{Summary: s}
	if s.Qualifying <= cfg.Threshold {
		return res, nil
	}

	res.Summary.Stacked = true
	res.Profiles = make(map[halo.Definition][]float64, len(halo.Definitions))

	edges := Edges(cfg.Lo, cfg.Hi, cfg.Bins)
	ds := array.Cut(s.D, s.Mask)
	xs := make([]float64, len(ds))
	counts := make([]float64, cfg.Bins)

	for _, def := range halo.Definitions {
		r, scale := def.Radius(&h.Props), cfg.Scale(def)
		for i := range ds {
			xs[i] = ds[i] / r * scale
		}
		Histogram(xs, edges, counts)
		res.Profiles[def] = Density(counts, edges, s.Qualifying)
	}

	return res, nil
}

// Band is the set of percentile curves for one radius definition. Curves[j]
// holds the Result.Percentiles[j] percentile in each bin. N is the number
// of stacked hosts; when it is zero Curves is empty.
type Band struct {
	Curves [][]float64
	N      int
}

// Result is the stacked profile of a host population.
type Result struct {
	Edges, Centers []float64
	Percentiles    []float64
	Bands          map[halo.Definition]*Band
	Hosts          []HostSummary
}

// Aggregate analyses every host and stacks the profiles of the hosts that
// qualify. Hosts are analysed by up to cfg.Workers goroutines, but the result
// is independent of the number of workers. The first error cancels the
// remaining work and is returned.
func Aggregate(
	ctx context.Context, hosts []*halo.Host, cfg Config,
) (*Result, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	log := cfg.logger()

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]*HostResult, len(hosts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, h := range hosts {
		i, h := i, h // per-iteration copies; go directive predates Go 1.22 loopvar semantics
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if i%10 == 0 {
				log.Debug("analysing host", "index", i, "of", len(hosts),
					"id", h.ID)
			}

			r, err := Analyze(h, &cfg)
			if err != nil {
				return fmt.Errorf("host %d: %w", h.ID, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	edges := Edges(cfg.Lo, cfg.Hi, cfg.Bins)
	res := &Result{
		Edges:       edges,
		Centers:     Centers(edges),
		Percentiles: append([]float64{}, cfg.Percentiles...),
		Bands:       make(map[halo.Definition]*Band, len(halo.Definitions)),
		Hosts:       make([]HostSummary, len(results)),
	}

	rejected := 0
	for i, r := range results {
		res.Hosts[i] = r.Summary
		rejected += r.Summary.Rejected
	}

	for _, def := range halo.Definitions {
		var profiles [][]float64
		for _, r := range results {
			if r.Summary.Stacked {
				profiles = append(profiles, r.Profiles[def])
			}
		}
		res.Bands[def] = &Band{
			Curves: Stack(profiles, cfg.Percentiles),
			N:      len(profiles),
		}
	}

	log.Info("stacked profiles", slog.Int("hosts", len(hosts)),
		slog.Int("stacked", res.Bands[halo.RSp].N),
		slog.Int("rejected", rejected))

	return res, nil
}
