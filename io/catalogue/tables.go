package catalogue

import (
	"io"
)

const (
	membershipColumns = 3
	treeColumns       = 8
	radiusColumns     = 9

	// SentinelID marks the row separating two halo histories in a tree table.
	SentinelID = -1
)

// Membership is one row of a subhalo membership table. A row whose SubID
// equals its HostID describes a host.
type Membership struct {
	SubID, HostID int
}

// IsHost returns true if the row describes a host halo.
func (m Membership) IsHost() bool { return m.SubID == m.HostID }

// TreeRow is one snapshot of one halo in a merger tree table. Rows with
// ID == SentinelID separate halo histories.
type TreeRow struct {
	ID    int
	Snap  int
	Scale float64
	X     [3]float64 // comoving Mpc/h
	R     float64    // halo radius
	M     float64    // halo mass
}

// IsSentinel returns true for rows separating two halo histories.
func (r *TreeRow) IsSentinel() bool { return r.ID == SentinelID }

// RadiusRow is one row of a host radius/mass table.
type RadiusRow struct {
	ID    int
	MSp   float64 // splashback mass
	RSp   float64 // splashback radius
	RMin  float64 // inner edge of the splashback shell
	RMax  float64 // outer edge of the splashback shell
	R200m float64
	M200c float64
	Gamma float64 // accretion rate
}

// ReadMembership reads a membership table with the columns
// (subhalo_id, unused, host_id, ...).
func ReadMembership(
	rd io.Reader, name string, config ...TextConfig,
) ([]Membership, error) {
	t := newTextReader(rd, name, membershipColumns, config...)
	out := []Membership{}

	for {
		ok, err := t.Next()
		if err != nil {
			return nil, err
		} else if !ok {
			break
		}

		m := Membership{}
		if m.SubID, err = t.Int(0); err != nil {
			return nil, err
		}
		if m.HostID, err = t.Int(2); err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, nil
}

// ReadTree reads a merger tree table with the columns
// (halo_id, snapshot, scale_factor, x, y, z, radius, mass). Sentinel rows are
// kept so that the caller can split the table into halo histories.
func ReadTree(
	rd io.Reader, name string, config ...TextConfig,
) ([]TreeRow, error) {
	t := newTextReader(rd, name, treeColumns, config...)
	out := []TreeRow{}

	buf := make([]float64, 6)
	for {
		ok, err := t.Next()
		if err != nil {
			return nil, err
		} else if !ok {
			break
		}

		r := TreeRow{}
		if r.ID, err = t.Int(0); err != nil {
			return nil, err
		}
		if r.Snap, err = t.Int(1); err != nil {
			return nil, err
		}
		if err = t.Float64s(2, buf); err != nil {
			return nil, err
		}
		r.Scale = buf[0]
		r.X = [3]float64{buf[1], buf[2], buf[3]}
		r.R, r.M = buf[4], buf[5]

		out = append(out, r)
	}

	return out, nil
}

// ReadRadii reads a host radius table with the columns
// (halo_id, unused, M_sp, R_sp, R_min, R_max, R200m, M200c, gamma).
func ReadRadii(
	rd io.Reader, name string, config ...TextConfig,
) ([]RadiusRow, error) {
	t := newTextReader(rd, name, radiusColumns, config...)
	out := []RadiusRow{}

	buf := make([]float64, 7)
	for {
		ok, err := t.Next()
		if err != nil {
			return nil, err
		} else if !ok {
			break
		}

		r := RadiusRow{}
		if r.ID, err = t.Int(0); err != nil {
			return nil, err
		}
		if err = t.Float64s(2, buf); err != nil {
			return nil, err
		}
		r.MSp, r.RSp, r.RMin, r.RMax = buf[0], buf[1], buf[2], buf[3]
		r.R200m, r.M200c, r.Gamma = buf[4], buf[5], buf[6]

		out = append(out, r)
	}

	return out, nil
}
