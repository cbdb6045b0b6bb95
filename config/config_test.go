package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/peri-profiles/halo"
	"github.com/phil-mansfield/peri-profiles/logging"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	files := c.Tables()
	assert.Equal(t, filepath.Join("multi", "h250_subs.dat"), files.Subs)
	assert.Equal(t, filepath.Join("multi", "h250_tree.dat"), files.Tree)
	assert.Equal(t, filepath.Join("multi", "h250_rad.dat"), files.Rad)
}

func TestParse(t *testing.T) {
	text := `
dir: /data/multi
box: 62.5
threshold: 20
plot_indiv: true
workers: 8
log:
  level: debug
  json: true
scales:
  r_sp: 1.2
tree: /elsewhere/tree.dat
`
	c, err := Parse([]byte(text))
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, 62.5, c.Box)
	assert.Equal(t, 20, c.Threshold)
	assert.True(t, c.PlotIndiv)
	assert.Equal(t, logging.LevelDebug, c.Log.Level)
	assert.True(t, c.Log.JSON)
	assert.Equal(t, "bolshoi", c.Cosmology)
	assert.Equal(t, Scales{RSp: 1.2, RMax: 1, R200m: 1, R200c: 1}, c.Scales)

	files := c.Tables()
	assert.Equal(t, "/data/multi/h63_subs.dat", files.Subs)
	assert.Equal(t, "/elsewhere/tree.dat", files.Tree)

	p := c.Profile()
	require.NoError(t, p.Check())
	assert.Equal(t, 62.5, p.BoxSize)
	assert.Equal(t, 20, p.Threshold)
	assert.Equal(t, 8, p.Workers)
	assert.Equal(t, 1.2, p.Scale(halo.RSp))
	assert.Equal(t, 1.0, p.Scale(halo.R200c))
}

func TestParseEmpty(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParseErrors(t *testing.T) {
	for _, text := range []string{
		"bix: 250\n",
		"box: large\n",
		"log: {level: loud}\n",
	} {
		_, err := Parse([]byte(text))
		assert.Error(t, err, text)
	}
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Box = 100
	assert.ErrorIs(t, c.Validate(), ErrUnknownBox)

	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"cosmology", func(c *Config) { c.Cosmology = "planck" }},
		{"threshold", func(c *Config) { c.Threshold = -1 }},
		{"workers", func(c *Config) { c.Workers = 0 }},
		{"output", func(c *Config) { c.Output = "" }},
		{"scale", func(c *Config) { c.Scales.R200m = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalid)
		})
	}
}

func TestScalesSet(t *testing.T) {
	s := Default().Scales
	require.NoError(t, s.Set("r_sp", 1.5))
	require.NoError(t, s.Set("RMAX", 0.5))
	require.NoError(t, s.Set("r_200m", 2))
	require.NoError(t, s.Set("r200c", 3))
	assert.Equal(t, Scales{RSp: 1.5, RMax: 0.5, R200m: 2, R200c: 3}, s)

	assert.ErrorIs(t, s.Set("r500c", 1), ErrInvalid)
}

func TestLoadAndWrite(t *testing.T) {
	c := Default()
	c.Box = 500
	c.Scales.RMax = 0.8

	buf := &bytes.Buffer{}
	require.NoError(t, c.Write(buf))

	path := filepath.Join(t.TempDir(), "peri.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
