package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", LevelDebug, true},
		{"INFO", LevelInfo, true},
		{"", LevelInfo, true},
		{" warning ", LevelWarn, true},
		{"warn", LevelWarn, true},
		{"Error", LevelError, true},
		{"verbose", LevelInfo, false},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.ok {
			assert.NoError(t, err, tt.in)
			assert.Equal(t, tt.want, got, tt.in)
		} else {
			assert.Error(t, err, tt.in)
		}
	}
}

func TestLevelString(t *testing.T) {
	for _, l := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError} {
		parsed, err := ParseLevel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, parsed)
	}
	assert.Equal(t, "unknown", Level(17).String())
}

func TestConfigYAML(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, yaml.Unmarshal([]byte("level: debug\njson: true\n"), &cfg))
	assert.Equal(t, LevelDebug, cfg.Level)
	assert.True(t, cfg.JSON)

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "level: debug")

	assert.Error(t, yaml.Unmarshal([]byte("level: loud\n"), &cfg))
}

func TestNewFiltersLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Config{Level: LevelWarn}, buf)

	log.Info("hidden")
	log.Warn("shown", "host", 7)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "host=7")
}

func TestNewJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Config{Level: LevelDebug, JSON: true, Service: "peri"}, buf)
	log.Debug("tables loaded", "subs", 3)

	rec := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "tables loaded", rec["msg"])
	assert.Equal(t, "peri", rec["service"])
	assert.Equal(t, 3.0, rec["subs"])
}

func TestNewQuiet(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Config{Level: LevelDebug, Quiet: true}, buf)
	log.Error("nothing")
	assert.Zero(t, buf.Len())

	assert.NotNil(t, New(DefaultConfig(), nil))
}
