/*package config reads the YAML run configuration of the profile tools. */
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/phil-mansfield/peri-profiles/cosmo"
	"github.com/phil-mansfield/peri-profiles/halo"
	pio "github.com/phil-mansfield/peri-profiles/io"
	"github.com/phil-mansfield/peri-profiles/logging"
	"github.com/phil-mansfield/peri-profiles/profile"
)

var (
	ErrUnknownBox = errors.New("config: unknown box size")
	ErrInvalid    = errors.New("config: invalid value")
)

// boxPrefixes maps the supported box widths (Mpc/h) to the prefix of their
// table files.
var boxPrefixes = map[float64]string{
	62.5: "h63",
	125:  "h125",
	250:  "h250",
	500:  "h500",
}

// Scales are the multipliers applied to distances normalised by each radius
// definition.
type Scales struct {
	RSp   float64 `yaml:"r_sp"`
	RMax  float64 `yaml:"r_max"`
	R200m float64 `yaml:"r200m"`
	R200c float64 `yaml:"r200c"`
}

// Config is a full run configuration.
type Config struct {
	Dir       string  `yaml:"dir"`
	Box       float64 `yaml:"box"`
	Cosmology string  `yaml:"cosmology"`
	Threshold int     `yaml:"threshold"`
	PlotIndiv bool    `yaml:"plot_indiv"`
	Workers   int     `yaml:"workers"`
	Output    string  `yaml:"output"`

	Log    logging.Config `yaml:"log"`
	Scales Scales         `yaml:"scales"`

	// Explicit table paths. Empty paths are derived from Dir and Box.
	Subs string `yaml:"subs,omitempty"`
	Tree string `yaml:"tree,omitempty"`
	Rad  string `yaml:"rad,omitempty"`
}

// Default returns the standard configuration.
func Default() *Config {
	return &Config{
		Dir:       "multi",
		Box:       250,
		Cosmology: "bolshoi",
		Threshold: 40,
		Workers:   1,
		Output:    "out",
		Log:       logging.DefaultConfig(),
		Scales:    Scales{RSp: 1, RMax: 1, R200m: 1, R200c: 1},
	}
}

// Load reads and validates the configuration file at path. Fields missing
// from the file keep their default values and unknown fields are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read the config file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML configuration on top of Default.
func Parse(data []byte) (*Config, error) {
	c := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse the config: %w", err)
	}
	return c, nil
}

// Write encodes c as YAML.
func (c *Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks that the configuration describes a run that can be
// performed. It doesn't touch the file system.
func (c *Config) Validate() error {
	if _, ok := boxPrefixes[c.Box]; !ok {
		return fmt.Errorf("%w: L = %g (must be 62.5, 125, 250 or 500)",
			ErrUnknownBox, c.Box)
	}
	if _, err := cosmo.Lookup(c.Cosmology); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	switch {
	case c.Threshold < 0:
		return fmt.Errorf("%w: threshold = %d", ErrInvalid, c.Threshold)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers = %d", ErrInvalid, c.Workers)
	case c.Output == "":
		return fmt.Errorf("%w: empty output directory", ErrInvalid)
	}

	for _, def := range halo.Definitions {
		if s := c.Scales.get(def); !(s > 0) {
			return fmt.Errorf("%w: scales.%s = %g", ErrInvalid, def.Key(), s)
		}
	}
	return nil
}

// Set assigns the multiplier of the definition named by key, which may be
// any name accepted by halo.DefinitionFromString.
func (s *Scales) Set(key string, v float64) error {
	def, ok := halo.DefinitionFromString(key)
	if !ok {
		return fmt.Errorf("%w: unknown radius definition '%s'", ErrInvalid, key)
	}
	switch def {
	case halo.RSp:
		s.RSp = v
	case halo.RMax:
		s.RMax = v
	case halo.R200m:
		s.R200m = v
	case halo.R200c:
		s.R200c = v
	}
	return nil
}

func (s *Scales) get(def halo.Definition) float64 {
	switch def {
	case halo.RSp:
		return s.RSp
	case halo.RMax:
		return s.RMax
	case halo.R200m:
		return s.R200m
	case halo.R200c:
		return s.R200c
	}
	panic(":3")
}

// Tables returns the paths of the three tables of the configured box. The
// box size must be valid.
func (c *Config) Tables() pio.Files {
	prefix := filepath.Join(c.Dir, boxPrefixes[c.Box])
	f := pio.Files{
		Subs: prefix + "_subs.dat",
		Tree: prefix + "_tree.dat",
		Rad:  prefix + "_rad.dat",
	}
	if c.Subs != "" {
		f.Subs = c.Subs
	}
	if c.Tree != "" {
		f.Tree = c.Tree
	}
	if c.Rad != "" {
		f.Rad = c.Rad
	}
	return f
}

// Profile returns the profile constants of the run.
func (c *Config) Profile() profile.Config {
	p := profile.DefaultConfig(c.Box)
	p.Threshold = c.Threshold
	p.Workers = c.Workers
	for _, def := range halo.Definitions {
		p.Scales[def] = c.Scales.get(def)
	}
	return p
}
