/*package io loads the tables describing a simulation's haloes and assembles
them into a halo.Catalog.*/
package io

import (
	"context"
	"fmt"
	stdio "io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/phil-mansfield/peri-profiles/cosmo"
	"github.com/phil-mansfield/peri-profiles/halo"
	"github.com/phil-mansfield/peri-profiles/io/catalogue"
)

// Files names the three tables of a single simulation.
type Files struct {
	Subs string // host/subhalo membership
	Tree string // merger tree histories
	Rad  string // host radii and masses
}

// Tables holds the parsed contents of Files.
type Tables struct {
	Subs  []catalogue.Membership
	Tree  []catalogue.TreeRow
	Radii []catalogue.RadiusRow
}

func readFile[T any](
	fname string,
	read func(stdio.Reader, string, ...catalogue.TextConfig) ([]T, error),
	config []catalogue.TextConfig,
) ([]T, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return read(f, fname, config...)
}

// ReadTables reads the three tables concurrently and returns the first error
// encountered.
func ReadTables(
	ctx context.Context, files Files, config ...catalogue.TextConfig,
) (*Tables, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t := &Tables{}
	g := &errgroup.Group{}

	g.Go(func() (err error) {
		t.Subs, err = readFile(files.Subs, catalogue.ReadMembership, config)
		return err
	})
	g.Go(func() (err error) {
		t.Tree, err = readFile(files.Tree, catalogue.ReadTree, config)
		return err
	})
	g.Go(func() (err error) {
		t.Radii, err = readFile(files.Rad, catalogue.ReadRadii, config)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reading tables: %w", err)
	}
	return t, nil
}

// Catalog assembles the tables into halo histories and host/subhalo
// relationships.
func (t *Tables) Catalog(c *cosmo.Cosmology) (*halo.Catalog, error) {
	return halo.NewCatalog(t.Tree, t.Subs, t.Radii, c)
}

// Load reads the tables named by files and builds the catalogue. A nil
// logger discards progress messages.
func Load(
	ctx context.Context, files Files, c *cosmo.Cosmology, log *slog.Logger,
) (*halo.Catalog, error) {
	if log == nil {
		log = slog.New(discardHandler)
	}

	t, err := ReadTables(ctx, files)
	if err != nil {
		return nil, err
	}
	log.Info("tables loaded", "subs", len(t.Subs), "tree rows", len(t.Tree),
		"radii", len(t.Radii))

	cat, err := t.Catalog(c)
	if err != nil {
		return nil, err
	}

	n := 0
	for _, h := range cat.Hosts {
		n += len(h.Subs)
	}
	log.Info("created haloes", "histories", len(cat.Tracks),
		"hosts", len(cat.Hosts), "subhaloes", n, "nested", cat.Nested)

	return cat, nil
}
