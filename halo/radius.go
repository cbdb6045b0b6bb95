package halo

import (
	"math"
	"strings"

	"github.com/phil-mansfield/peri-profiles/cosmo"
)

// Definition identifies one of the host radii that subhalo distances are
// normalised by.
type Definition int

const (
	RSp Definition = iota
	RMax
	R200m
	R200c
)

// Definitions lists every Definition in output order.
var Definitions = []Definition{RSp, RMax, R200m, R200c}

// DefinitionFromString parses the names returned by Key.
func DefinitionFromString(s string) (d Definition, ok bool) {
	switch strings.ToLower(s) {
	case "r_sp", "rsp":
		return RSp, true
	case "r_max", "rmax":
		return RMax, true
	case "r200m", "r_200m":
		return R200m, true
	case "r200c", "r_200c":
		return R200c, true
	}
	return -1, false
}

// Key returns a short lower-case name used in configs and file names.
func (d Definition) Key() string {
	switch d {
	case RSp:
		return "r_sp"
	case RMax:
		return "r_max"
	case R200m:
		return "r200m"
	case R200c:
		return "r200c"
	}
	panic(":3")
}

func (d Definition) String() string {
	switch d {
	case RSp:
		return "R_sp"
	case RMax:
		return "R_max"
	case R200m:
		return "R_200m"
	case R200c:
		return "R_200c"
	}
	panic(":3")
}

// Radius returns the host radius corresponding to d.
func (d Definition) Radius(p *HostProps) float64 {
	switch d {
	case RSp:
		return p.RSp
	case RMax:
		return p.RMax
	case R200m:
		return p.R200m
	case R200c:
		return p.R200c
	}
	panic(":3")
}

// R200cFromMass returns the radius (Mpc/h) enclosing 200 times the z = 0
// critical density for a mass m200c in Msun/h.
func R200cFromMass(m200c float64, c *cosmo.Cosmology) float64 {
	rho := 200 * c.RhoC(0) * 1e9 // h^2 Msun/Mpc^3
	factor := rho * 4 * math.Pi / 3
	return math.Pow(m200c/factor, 1.0/3)
}
