/*package profile measures the present-day number density profiles of
subhaloes around their hosts and stacks them into percentile bands across a
population of hosts.*/
package profile

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/phil-mansfield/peri-profiles/halo"
)

var ErrConfig = errors.New("profile: invalid configuration")

// Config holds the constants of a profile run.
type Config struct {
	BoxSize float64 // comoving Mpc/h

	// Threshold is the number of qualifying subhaloes a host must exceed
	// before its profile is stacked.
	Threshold int
	// Eps is the tolerance within which a pericentre is considered
	// indistinguishable from the present-day distance.
	Eps float64

	Bins   int
	Lo, Hi float64

	// Scales multiplies the normalised distances for each radius
	// definition. Missing entries default to 1.
	Scales map[halo.Definition]float64
	// Percentiles are in the range [0, 100].
	Percentiles []float64

	Workers int
	Logger  *slog.Logger
}

// DefaultConfig returns the standard run constants for a box of width L.
func DefaultConfig(L float64) Config {
	return Config{
		BoxSize:     L,
		Threshold:   40,
		Eps:         0.01,
		Bins:        25,
		Lo:          0.1,
		Hi:          2,
		Scales:      map[halo.Definition]float64{},
		Percentiles: []float64{2.5, 16, 50, 84, 97.5},
		Workers:     1,
	}
}

// Scale returns the multiplier applied to distances normalised by d.
func (c *Config) Scale(d halo.Definition) float64 {
	if s, ok := c.Scales[d]; ok {
		return s
	}
	return 1
}

func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(discardHandler)
	}
	return c.Logger
}

// Check validates the configuration.
func (c *Config) Check() error {
	switch {
	case c.BoxSize <= 0:
		return fmt.Errorf("%w: box size %g", ErrConfig, c.BoxSize)
	case c.Bins <= 0:
		return fmt.Errorf("%w: %d bins", ErrConfig, c.Bins)
	case !(c.Lo < c.Hi) || c.Lo < 0:
		return fmt.Errorf("%w: range (%g, %g)", ErrConfig, c.Lo, c.Hi)
	case c.Eps < 0:
		return fmt.Errorf("%w: eps = %g", ErrConfig, c.Eps)
	case len(c.Percentiles) == 0:
		return fmt.Errorf("%w: no percentiles", ErrConfig)
	}
	for _, p := range c.Percentiles {
		if !(p >= 0 && p <= 100) {
			return fmt.Errorf("%w: percentile %g", ErrConfig, p)
		}
	}
	for d, s := range c.Scales {
		if !(s > 0) {
			return fmt.Errorf("%w: %s scale = %g", ErrConfig, d.Key(), s)
		}
	}
	return nil
}
