package reference

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/AndyQiu2234/MergeSpec/internal/merge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuiltIn(t *testing.T) {
	tests := []struct {
		material Material
		lo, hi   float64
	}{
		{Au, 10, 40000},
		{Ag, 400, 35000},
	}
	for _, tt := range tests {
		t.Run(string(tt.material), func(t *testing.T) {
			c, err := Load(tt.material, "")
			require.NoError(t, err)
			lo, hi := c.Domain()
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
			assert.Equal(t, string(tt.material), c.Name())

			for _, f := range []float64{lo, (lo + hi) / 2, hi} {
				r := c.Reflectance(f)
				assert.Greater(t, r, 0.5)
				assert.LessOrEqual(t, r, 1.0)
			}
		})
	}

	_, err := Load(Material("Cu"), "")
	assert.Error(t, err)
}

func TestLoadOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "au.txt"), []byte("100\t0.5\n200\t0.7\n"), 0o644))

	c, err := Load(Au, dir)
	require.NoError(t, err)
	lo, hi := c.Domain()
	assert.Equal(t, 100.0, lo)
	assert.Equal(t, 200.0, hi)
	assert.InDelta(t, 0.6, c.Reflectance(150), 1e-12)

	// Ag is not overridden and falls back to the built-in table.
	ag, err := Load(Ag, dir)
	require.NoError(t, err)
	lo, _ = ag.Domain()
	assert.Equal(t, 400.0, lo)
}

func TestNewCurveValidation(t *testing.T) {
	_, err := NewCurve("x", []float64{1}, []float64{1})
	assert.Error(t, err)
	_, err = NewCurve("x", []float64{2, 1}, []float64{1, 1})
	assert.Error(t, err)
}

func TestNormalizeWithGold(t *testing.T) {
	opts, err := Options("")
	require.NoError(t, err)
	m := merge.New(opts...)
	assert.Equal(t, []string{"Ag", "Au"}, m.References())

	freq := []float64{100, 200, 300}
	require.NoError(t, m.LoadBand(merge.FIR, freq, []float64{1, 1, 1}, "fir.txt"))
	require.NoError(t, m.SelectReference("Au"))

	gold, err := Load(Au, "")
	require.NoError(t, err)
	s, err := m.Export()
	require.NoError(t, err)
	for i, f := range s.Frequency {
		assert.InDelta(t, gold.Reflectance(f), s.Reflectance[i], 1e-12)
	}

	// Silver's table starts at 400 cm^-1.
	require.NoError(t, m.SelectReference("ag"))
	_, err = m.Export()
	assert.True(t, errors.Is(err, merge.ErrDomain))
}
