package cosmo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatAge is the closed-form age of a flat matter + Lambda universe.
func flatAge(H0, omegaM, a float64) float64 {
	omegaL := 1 - omegaM
	return HubbleTime / H0 * 2 / (3 * math.Sqrt(omegaL)) *
		math.Asinh(math.Sqrt(omegaL/omegaM)*math.Pow(a, 1.5))
}

func TestAgeMatchesClosedForm(t *testing.T) {
	c, err := Lookup("bolshoi")
	require.NoError(t, err)
	c.Relspecies = false

	for _, a := range []float64{0.01, 0.1, 0.25, 0.5, 0.75, 1} {
		want := flatAge(c.H0, c.OmegaM, a)
		assert.InEpsilon(t, want, c.AgeAtScale(a), 1e-8, "a = %g", a)
	}
	assert.InDelta(t, 13.866, c.Age(0), 0.005)
}

func TestAgeWithRadiation(t *testing.T) {
	c, err := Lookup("bolshoi")
	require.NoError(t, err)

	noRad := *c
	noRad.Relspecies = false

	assert.Greater(t, c.OmegaR(), 5e-5)
	assert.Less(t, c.OmegaR(), 1.5e-4)

	// Radiation speeds up early expansion, so the universe is slightly
	// younger, but only by a tiny amount at late times.
	age, ageNoRad := c.Age(0), noRad.Age(0)
	assert.Less(t, age, ageNoRad)
	assert.InEpsilon(t, ageNoRad, age, 1e-3)

	prev := 0.0
	for _, z := range []float64{20, 10, 5, 2, 1, 0.5, 0} {
		age := c.Age(z)
		assert.Greater(t, age, prev, "z = %g", z)
		prev = age
	}
	assert.Equal(t, 0.0, c.AgeAtScale(0))
}

func TestE(t *testing.T) {
	c, err := Lookup("bolshoi")
	require.NoError(t, err)

	assert.InDelta(t, 1, c.E(0), 1e-12)
	assert.InDelta(t, 0, c.OmegaK(), 1e-15)
	assert.InDelta(t, 1, c.OmegaM+c.OmegaL()+c.OmegaR(), 1e-15)

	open := Cosmology{Name: "open", H0: 70, OmegaM: 0.3, OmegaDE: 0}
	assert.InDelta(t, 0.7, open.OmegaK(), 1e-12)
	assert.InDelta(t, math.Sqrt(0.3*8+0.7*4), open.E(1), 1e-12)
}

func TestRhoC(t *testing.T) {
	c, err := Lookup("bolshoi")
	require.NoError(t, err)

	assert.InDelta(t, RhoCrit0, c.RhoC(0), 1e-9)
	assert.InEpsilon(t, RhoCrit0*c.E(1)*c.E(1), c.RhoC(1), 1e-12)
}

func TestLookup(t *testing.T) {
	_, err := Lookup("no-such-cosmology")
	assert.ErrorIs(t, err, ErrUnknownCosmology)

	register(Cosmology{Name: "eds", Flat: true, H0: 50, OmegaM: 1})
	c, err := Lookup("eds")
	require.NoError(t, err)
	// Einstein-de Sitter: t0 = 2 / (3 H0).
	assert.InEpsilon(t, 2.0/3*HubbleTime/50, c.Age(0), 1e-8)
	assert.Contains(t, Names(), "eds")

	// Lookup hands out copies.
	c.H0 = 1
	again, err := Lookup("eds")
	require.NoError(t, err)
	assert.Equal(t, 50.0, again.H0)
}

func TestAgeTable(t *testing.T) {
	c, err := Lookup("bolshoi")
	require.NoError(t, err)

	table := NewAgeTable(c)
	scales := []float64{0.5, 0.75, 1, 0.5}
	ages := table.Ages(scales)
	require.Len(t, ages, 4)
	assert.Equal(t, ages[0], ages[3])
	assert.Len(t, table.cache, 3)
	for i, a := range scales {
		assert.Equal(t, c.AgeAtScale(a), ages[i])
	}
}
