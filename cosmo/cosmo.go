/*package cosmo contains the background cosmology needed to turn scale factors
into cosmic ages and halo masses into spherical overdensity radii.

Units follow the usual halo catalogue conventions: lengths in Mpc/h (or kpc/h
for densities), masses in Msun/h, times in Gyr and H0 in km/s/Mpc.*/
package cosmo

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate/quad"
)

const (
	// RhoCrit0 is the critical density at z = 0 in h^2 Msun/kpc^3.
	RhoCrit0 = 2.77536627e2
	// HubbleTime is 1/H0 in Gyr for H0 = 1 km/s/Mpc.
	HubbleTime = 977.7922216807891

	// Photon density prefactor: Omega_gamma h^2 = ogammaPrefactor * Tcmb0^4.
	ogammaPrefactor = 4.48131e-7
	// Neutrino to photon density ratio per effective species.
	neutrinoRatio = 0.22710731766

	// Points in the Gauss-Legendre age integral.
	ageQuadPoints = 64
)

var ErrUnknownCosmology = errors.New("cosmo: unknown cosmology")

// Cosmology is a named FLRW parameter set. If Flat is true, the dark energy
// density closes the universe, otherwise OmegaDE is used and any remainder is
// curvature.
type Cosmology struct {
	Name   string
	Flat   bool
	H0     float64 // km/s/Mpc
	OmegaM float64 // matter, z = 0
	OmegaB float64 // baryons, z = 0
	Sigma8 float64
	Ns     float64

	OmegaDE    float64 // only read when Flat is false
	Tcmb0      float64 // K
	Neff       float64
	Relspecies bool // include photons and neutrinos in H(z)
}

var presets = map[string]Cosmology{}

func init() {
	register(Cosmology{
		Name: "bolshoi", Flat: true, H0: 70, OmegaM: 0.27, OmegaB: 0.0469,
		Sigma8: 0.82, Ns: 0.95, Tcmb0: 2.7255, Neff: 3.046, Relspecies: true,
	})
}

// register adds a named parameter set which can then be retrieved with
// Lookup. It overwrites any existing set with the same name.
func register(c Cosmology) {
	presets[c.Name] = c
}

// Lookup returns a copy of the named parameter set.
func Lookup(name string) (*Cosmology, error) {
	c, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w '%s' (known: %v)",
			ErrUnknownCosmology, name, Names())
	}
	return &c, nil
}

// Names returns the registered parameter set names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// H100 returns little h.
func (c *Cosmology) H100() float64 { return c.H0 / 100 }

// OmegaR returns the radiation density at z = 0, or zero if relativistic
// species are turned off.
func (c *Cosmology) OmegaR() float64 {
	if !c.Relspecies {
		return 0
	}
	h := c.H100()
	ogamma := ogammaPrefactor * math.Pow(c.Tcmb0, 4) / (h * h)
	return ogamma * (1 + neutrinoRatio*c.Neff)
}

// OmegaL returns the dark energy density at z = 0.
func (c *Cosmology) OmegaL() float64 {
	if c.Flat {
		return 1 - c.OmegaM - c.OmegaR()
	}
	return c.OmegaDE
}

// OmegaK returns the curvature density at z = 0.
func (c *Cosmology) OmegaK() float64 {
	if c.Flat {
		return 0
	}
	return 1 - c.OmegaM - c.OmegaR() - c.OmegaDE
}

// E returns H(z)/H0.
func (c *Cosmology) E(z float64) float64 {
	zp1 := 1 + z
	zp2 := zp1 * zp1
	return math.Sqrt(c.OmegaR()*zp2*zp2 + c.OmegaM*zp2*zp1 +
		c.OmegaK()*zp2 + c.OmegaL())
}

// RhoC returns the critical density at redshift z in h^2 Msun/kpc^3.
func (c *Cosmology) RhoC(z float64) float64 {
	e := c.E(z)
	return RhoCrit0 * e * e
}

// Age returns the age of the universe at redshift z in Gyr.
func (c *Cosmology) Age(z float64) float64 {
	return c.AgeAtScale(1 / (1 + z))
}

// AgeAtScale returns the age of the universe at scale factor a in Gyr. The
// integral of da / (a E(a)) is evaluated with the substitution a = s^2, which
// removes the square-root cusp at a = 0 when there is no radiation.
func (c *Cosmology) AgeAtScale(a float64) float64 {
	if a <= 0 {
		return 0
	}
	or, om, omk, ol := c.OmegaR(), c.OmegaM, c.OmegaK(), c.OmegaL()

	f := func(s float64) float64 {
		s2 := s * s
		s4 := s2 * s2
		return 2 * s * s2 / math.Sqrt(or+om*s2+omk*s4+ol*s4*s4)
	}

	integral := quad.Fixed(f, 0, math.Sqrt(a), ageQuadPoints, quad.Legendre{}, 1)
	return HubbleTime / c.H0 * integral
}

// AgeTable memoises AgeAtScale. Merger trees repeat the same handful of
// snapshot scale factors for every halo, so nearly every lookup is a hit. It
// is not safe for concurrent use.
type AgeTable struct {
	c     *Cosmology
	cache map[float64]float64
}

// NewAgeTable creates an empty table for the given cosmology.
func NewAgeTable(c *Cosmology) *AgeTable {
	return &AgeTable{c: c, cache: map[float64]float64{}}
}

// Age returns the age at scale factor a in Gyr.
func (t *AgeTable) Age(a float64) float64 {
	if age, ok := t.cache[a]; ok {
		return age
	}
	age := t.c.AgeAtScale(a)
	t.cache[a] = age
	return age
}

// Ages converts a series of scale factors into ages. An optional output
// buffer can be supplied.
func (t *AgeTable) Ages(scales []float64, out ...[]float64) []float64 {
	var ages []float64
	if len(out) > 0 {
		ages = out[0][:len(scales)]
	} else {
		ages = make([]float64, len(scales))
	}
	for i, a := range scales {
		ages[i] = t.Age(a)
	}
	return ages
}
