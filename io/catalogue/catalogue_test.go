package catalogue

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openFixture(t *testing.T, name string) *os.File {
	t.Helper()
	f, err := os.Open(name)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestReadTree(t *testing.T) {
	rows, err := ReadTree(openFixture(t, "test_files/tree_test.txt"), "tree")
	require.NoError(t, err)
	require.Len(t, rows, 6)

	assert.Equal(t, TreeRow{
		ID: 7, Snap: 98, Scale: 0.95, X: [3]float64{10, 20, 30},
		R: 0.5, M: 1e12,
	}, rows[0])
	assert.True(t, rows[3].IsSentinel())
	assert.False(t, rows[2].IsSentinel())

	// Integer columns written in float syntax.
	assert.Equal(t, 3, rows[4].ID)
	assert.Equal(t, 3, rows[5].ID)
	assert.Equal(t, 100, rows[5].Snap)
	assert.Equal(t, [3]float64{0.5, 1, 126}, rows[5].X)
}

func TestReadRadii(t *testing.T) {
	rows, err := ReadRadii(openFixture(t, "test_files/rad_test.txt"), "rad")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, RadiusRow{
		ID: 7, MSp: 1.5e12, RSp: 1.25, RMin: 1.0, RMax: 1.5,
		R200m: 0.9, M200c: 1.1e12, Gamma: 2.5,
	}, rows[0])
}

func TestReadMembership(t *testing.T) {
	rows, err := ReadMembership(openFixture(t, "test_files/subs_test.txt"), "subs")
	require.NoError(t, err)

	assert.Equal(t, []Membership{{7, 7}, {3, 7}}, rows)
	assert.True(t, rows[0].IsHost())
	assert.False(t, rows[1].IsHost())
}

func TestCommentsAndBlankLines(t *testing.T) {
	text := "# header\n\n   \n1 0 2\n  # indented comment\n3 0 4\n"
	rows, err := ReadMembership(strings.NewReader(text), "subs")
	require.NoError(t, err)
	assert.Equal(t, []Membership{{1, 2}, {3, 4}}, rows)

	rows, err = ReadMembership(strings.NewReader(""), "subs")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMalformedTables(t *testing.T) {
	tests := []struct {
		name   string
		read   func(string) error
		text   string
		line   int
		column int
		err    error
	}{
		{
			name: "too few columns",
			read: readMembership, text: "1 0\n",
			line: 1, column: -1, err: ErrColumns,
		},
		{
			name: "ragged rows",
			read: readRadii,
			text: "1 0 1 1 1 1 1 1 1\n2 0 1 1 1 1 1 1\n",
			line: 2, column: -1, err: ErrColumns,
		},
		{
			name: "non-numeric float",
			read: readTree,
			text: "# c\n1 1 0.5 1 2 three 1 1\n",
			line: 2, column: 5, err: strconv.ErrSyntax,
		},
		{
			name: "fractional id",
			read: readTree,
			text: "1.5 1 0.5 1 2 3 1 1\n",
			line: 1, column: 0, err: ErrNotInt,
		},
		{
			name: "non-numeric id",
			read: readMembership, text: "1 0 host\n",
			line: 1, column: 2, err: strconv.ErrSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read(tt.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.line, pe.Line)
			assert.Equal(t, tt.column, pe.Column)
			assert.Contains(t, err.Error(), pe.Table)
		})
	}
}

func TestMaxLineSize(t *testing.T) {
	config := DefaultConfig
	config.MaxLineSize = 8

	_, err := ReadMembership(
		strings.NewReader("1 0 2 3 4 5 6 7 8 9\n"), "subs", config,
	)
	assert.Error(t, err)
}

func readMembership(text string) error {
	_, err := ReadMembership(strings.NewReader(text), "subs")
	return err
}

func readTree(text string) error {
	_, err := ReadTree(strings.NewReader(text), "tree")
	return err
}

func readRadii(text string) error {
	_, err := ReadRadii(strings.NewReader(text), "rad")
	return err
}
