package halo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/peri-profiles/box"
	"github.com/phil-mansfield/peri-profiles/deriv"
)

// VelocityFactor converts comoving Mpc/h per Gyr into km/s.
const VelocityFactor = 31.54

// Orbit is a subhalo's history relative to its host. It covers the trailing
// snapshots that the two histories share and is built only by Displace. It
// shares read-only storage with the Tracks it was built from.
type Orbit struct {
	ID, HostID int

	Snaps  []int
	Scales []float64
	Ages   []float64

	Dx    [][3]float64 // periodic displacement from the host, Mpc/h
	D     []float64    // |Dx|
	Phi   []float64    // polar angle, arccos(z/d)
	Theta []float64    // azimuthal angle, atan2(y, x)

	V     [][3]float64 // km/s
	Speed []float64    // |V|
	VR    []float64    // |d(D)/dt|, km/s

	HostR []float64 // host radius on the same snapshots
}

// Len returns the number of snapshots in the orbit.
func (o *Orbit) Len() int { return len(o.D) }

// Now returns the present-day (last snapshot) distance to the host.
func (o *Orbit) Now() float64 { return o.D[len(o.D)-1] }

// Displace follows sub relative to host in a periodic box of width L. The two
// histories are aligned on their most recent snapshot and the orbit spans the
// shorter of the two. It returns ErrMisaligned if the snapshot numbers
// disagree anywhere in that window and ErrDegenerate if the window has fewer
// than two snapshots or non-increasing ages, since velocities can't be
// computed in those cases.
func Displace(sub, host *Track, L float64) (*Orbit, error) {
	n := sub.Len()
	if host.Len() < n {
		n = host.Len()
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: subhalo %d shares %d snapshot(s) with "+
			"host %d", ErrDegenerate, sub.ID, n, host.ID)
	}

	so, ho := sub.Len()-n, host.Len()-n
	for i := 0; i < n; i++ {
		if sub.Snaps[so+i] != host.Snaps[ho+i] {
			return nil, fmt.Errorf("%w: subhalo %d is at snapshot %d where "+
				"host %d is at snapshot %d", ErrMisaligned, sub.ID,
				sub.Snaps[so+i], host.ID, host.Snaps[ho+i])
		}
	}

	ages := sub.Ages[so:]
	if err := deriv.Check(ages); err != nil {
		return nil, fmt.Errorf("%w: subhalo %d: %s", ErrDegenerate, sub.ID, err)
	}

	o := &Orbit{
		ID: sub.ID, HostID: host.ID,
		Snaps: sub.Snaps[so:], Scales: sub.Scales[so:], Ages: ages,
		Dx: make([][3]float64, n), D: make([]float64, n),
		Phi: make([]float64, n), Theta: make([]float64, n),
		V: make([][3]float64, n), Speed: make([]float64, n),
		VR:    make([]float64, n),
		HostR: host.R[ho:],
	}

	for i := 0; i < n; i++ {
		dx := box.Displacement(sub.X[so+i], host.X[ho+i], L)
		d := box.Norm(dx)

		o.Dx[i], o.D[i] = dx, d
		if d > 0 {
			o.Phi[i] = math.Acos(dx[2] / d)
		}
		o.Theta[i] = math.Atan2(dx[1], dx[0])
	}

	o.velocities()
	return o, nil
}

// velocities differentiates the displacement and distance series with
// respect to cosmic age.
func (o *Orbit) velocities() {
	n := o.Len()
	xs, dxdt := make([]float64, n), make([]float64, n)

	for k := 0; k < 3; k++ {
		for i := range xs {
			xs[i] = o.Dx[i][k]
		}
		deriv.Vector(o.Ages, xs, dxdt)
		for i := range dxdt {
			o.V[i][k] = dxdt[i] * o.Scales[i] * VelocityFactor
		}
	}

	for i := range o.V {
		vx, vy, vz := o.V[i][0], o.V[i][1], o.V[i][2]
		o.Speed[i] = math.Sqrt(vx*vx + vy*vy + vz*vz)
	}

	deriv.Vector(o.Ages, o.D, dxdt)
	for i := range dxdt {
		o.VR[i] = math.Abs(dxdt[i] * o.Scales[i] * VelocityFactor)
	}
}

// Pericenter is the point of closest approach along an orbit.
type Pericenter struct {
	Index int     // index into the Orbit's series
	D     float64 // distance to the host, Mpc/h
	X     float64 // D divided by the host radius at the same snapshot
	Phi   float64
	Theta float64
	Age   float64 // Gyr
}

// Pericenter finds the snapshot of closest approach. The distance and host
// radius series are aligned on their last entries. If the minimum is at the
// last snapshot the subhalo hasn't turned around yet and X is just its
// present-day normalised distance.
func (o *Orbit) Pericenter() Pericenter {
	l := len(o.D)
	if len(o.HostR) < l {
		l = len(o.HostR)
	}
	off, hoff := len(o.D)-l, len(o.HostR)-l

	i := floats.MinIdx(o.D[off:])
	j := off + i
	return Pericenter{
		Index: j,
		D:     o.D[j],
		X:     o.D[j] / o.HostR[hoff+i],
		Phi:   o.Phi[j],
		Theta: o.Theta[j],
		Age:   o.Ages[j],
	}
}
