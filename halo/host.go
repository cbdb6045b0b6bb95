package halo

import (
	"fmt"

	"github.com/phil-mansfield/peri-profiles/cosmo"
	"github.com/phil-mansfield/peri-profiles/io/catalogue"
)

// HostProps are the z = 0 summary properties of a host halo.
type HostProps struct {
	MSp, RSp   float64 // splashback mass and radius
	RMin, RMax float64 // inner and outer edges of the splashback shell
	R200m      float64
	M200c      float64
	R200c      float64 // derived from M200c
	Gamma      float64 // accretion rate
}

// Host is a host halo and the subhaloes assigned to it. Subs point into the
// Catalog that owns every Track.
type Host struct {
	*Track
	Props HostProps
	Subs  []*Track
}

// Catalog owns every halo history of one simulation along with the hosts
// resolved from the membership table, in membership table order. Nested
// counts the subhaloes whose parent has a history but is itself a subhalo;
// they are not assigned to any host.
type Catalog struct {
	Tracks map[int]*Track
	Hosts  []*Host
	Nested int
}

// NewCatalog assembles halo histories from the tree table and resolves the
// host/subhalo relationships. Every id referenced by the membership table
// must have a history, and every host must have a row in the radius table.
// Subhaloes of subhaloes are counted in Nested and otherwise ignored.
func NewCatalog(
	tree []catalogue.TreeRow,
	subs []catalogue.Membership,
	radii []catalogue.RadiusRow,
	c *cosmo.Cosmology,
) (*Catalog, error) {
	tracks, err := Tracks(tree, cosmo.NewAgeTable(c))
	if err != nil {
		return nil, err
	}

	props := make(map[int]*catalogue.RadiusRow, len(radii))
	for i := range radii {
		props[radii[i].ID] = &radii[i]
	}

	cat := &Catalog{Tracks: tracks}
	hosts := map[int]*Host{}

	for _, m := range subs {
		if !m.IsHost() {
			continue
		}
		t, ok := tracks[m.SubID]
		if !ok {
			return nil, fmt.Errorf("%w: host %d has no merger tree history",
				ErrMissingID, m.SubID)
		}
		row, ok := props[m.SubID]
		if !ok {
			return nil, fmt.Errorf("%w: host %d is not in the radius table",
				ErrMissingID, m.SubID)
		}

		h := &Host{Track: t, Props: hostProps(row, c)}
		hosts[m.SubID] = h
		cat.Hosts = append(cat.Hosts, h)
	}

	for _, m := range subs {
		if m.IsHost() {
			continue
		}
		t, ok := tracks[m.SubID]
		if !ok {
			return nil, fmt.Errorf(
				"%w: subhalo %d has no merger tree history",
				ErrMissingID, m.SubID)
		}
		h, ok := hosts[m.HostID]
		if !ok {
			if _, ok := tracks[m.HostID]; !ok {
				return nil, fmt.Errorf(
					"%w: host %d of subhalo %d has no merger tree history",
					ErrMissingID, m.HostID, m.SubID)
			}
			cat.Nested++
			continue
		}
		h.Subs = append(h.Subs, t)
	}

	return cat, nil
}

func hostProps(row *catalogue.RadiusRow, c *cosmo.Cosmology) HostProps {
	return HostProps{
		MSp: row.MSp, RSp: row.RSp,
		RMin: row.RMin, RMax: row.RMax,
		R200m: row.R200m, M200c: row.M200c,
		R200c: R200cFromMass(row.M200c, c),
		Gamma: row.Gamma,
	}
}
