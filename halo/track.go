/*package halo reconstructs halo histories from merger tree tables and follows
subhaloes along their orbits around their hosts.*/
package halo

import (
	"errors"
	"fmt"

	"github.com/phil-mansfield/peri-profiles/cosmo"
	"github.com/phil-mansfield/peri-profiles/io/catalogue"
)

var (
	ErrMissingID   = errors.New("halo: id not found")
	ErrDuplicateID = errors.New("halo: duplicate halo id")
	ErrDegenerate  = errors.New("halo: degenerate trajectory")
	ErrMisaligned  = errors.New("halo: histories do not end on the same snapshots")
)

// Track is the history of a single halo, ordered from the earliest snapshot
// to the latest. All series have the same length. Tracks are never modified
// after they are built.
type Track struct {
	ID     int
	Snaps  []int
	Scales []float64
	Ages   []float64    // Gyr
	X      [][3]float64 // comoving Mpc/h
	R      []float64
	M      []float64
}

// Len returns the number of snapshots in the track.
func (t *Track) Len() int { return len(t.Snaps) }

// newTrack builds a Track from a contiguous, sentinel-free slice of tree rows.
// The halo takes the id of the last (latest) row.
func newTrack(rows []catalogue.TreeRow, ages *cosmo.AgeTable) *Track {
	n := len(rows)
	t := &Track{
		ID:     rows[n-1].ID,
		Snaps:  make([]int, n),
		Scales: make([]float64, n),
		X:      make([][3]float64, n),
		R:      make([]float64, n),
		M:      make([]float64, n),
	}

	for i := range rows {
		t.Snaps[i] = rows[i].Snap
		t.Scales[i] = rows[i].Scale
		t.X[i] = rows[i].X
		t.R[i] = rows[i].R
		t.M[i] = rows[i].M
	}
	t.Ages = ages.Ages(t.Scales)

	return t
}

// Tracks splits a tree table into halo histories at sentinel rows and returns
// them keyed by halo id. Empty histories (adjacent sentinels) are skipped.
func Tracks(
	rows []catalogue.TreeRow, ages *cosmo.AgeTable,
) (map[int]*Track, error) {
	tracks := map[int]*Track{}

	add := func(start, end int) error {
		if start == end {
			return nil
		}
		t := newTrack(rows[start:end], ages)
		if _, ok := tracks[t.ID]; ok {
			return fmt.Errorf("%w: %d (tree rows %d-%d)",
				ErrDuplicateID, t.ID, start, end-1)
		}
		tracks[t.ID] = t
		return nil
	}

	start := 0
	for i := range rows {
		if rows[i].IsSentinel() {
			if err := add(start, i); err != nil {
				return nil, err
			}
			start = i + 1
		}
	}
	if err := add(start, len(rows)); err != nil {
		return nil, err
	}

	return tracks, nil
}
