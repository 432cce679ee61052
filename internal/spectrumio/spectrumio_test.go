package spectrumio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AndyQiu2234/MergeSpec/internal/merge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantFreq []float64
		wantRefl []float64
	}{
		{
			name:     "tab separated",
			input:    "10\t0.5\n20\t0.6\n30\t0.7\n",
			wantFreq: []float64{10, 20, 30},
			wantRefl: []float64{0.5, 0.6, 0.7},
		},
		{
			name:     "repeated spaces",
			input:    "10   0.5\n20  0.6\n",
			wantFreq: []float64{10, 20},
			wantRefl: []float64{0.5, 0.6},
		},
		{
			name:     "comma separated",
			input:    "10,0.5\n20,0.6\n",
			wantFreq: []float64{10, 20},
			wantRefl: []float64{0.5, 0.6},
		},
		{
			name:     "comma with spaces",
			input:    "10, 0.5\n20, 0.6\n",
			wantFreq: []float64{10, 20},
			wantRefl: []float64{0.5, 0.6},
		},
		{
			name:     "comments and blank lines",
			input:    "# header\n\n10 0.5\n# mid\n20 0.6\n\n",
			wantFreq: []float64{10, 20},
			wantRefl: []float64{0.5, 0.6},
		},
		{
			name:     "descending is reversed",
			input:    "30 0.7\n20 0.6\n10 0.5\n",
			wantFreq: []float64{10, 20, 30},
			wantRefl: []float64{0.5, 0.6, 0.7},
		},
		{
			name:     "extra columns ignored",
			input:    "10 0.5 1\n20 0.6 2\n",
			wantFreq: []float64{10, 20},
			wantRefl: []float64{0.5, 0.6},
		},
		{
			name:     "scientific notation",
			input:    "1e1\t5e-1\n2e1\t6e-1\n",
			wantFreq: []float64{10, 20},
			wantRefl: []float64{0.5, 0.6},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			freq, refl, err := ReadBand(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.wantFreq, freq)
			assert.Equal(t, tt.wantRefl, refl)
		})
	}
}

func TestReadBandErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"comments only", "# nothing\n"},
		{"one column", "10\n20\n"},
		{"non numeric", "freq refl\n10 0.5\n"},
		{"ragged rows", "10 0.5\n20 0.6 7\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadBand(strings.NewReader(tt.input))
			assert.True(t, errors.Is(err, merge.ErrLoad), "got %v", err)
		})
	}
}

func TestReadBandFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fir.csv")
	require.NoError(t, os.WriteFile(path, []byte("100,0.2\n200,0.3\n"), 0o644))

	freq, refl, err := ReadBandFile(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 200}, freq)
	assert.Equal(t, []float64{0.2, 0.3}, refl)

	_, _, err = ReadBandFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, errors.Is(err, merge.ErrLoad))
}

func TestWriteSpectrum(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSpectrum(&buf, merge.Spectrum{
		Frequency:   []float64{10, 20.5},
		Reflectance: []float64{0.5, 1.1},
	})
	require.NoError(t, err)
	assert.Equal(t, "10\t0.5\n20.5\t1.1\n", buf.String())
}

func TestWriteParams(t *testing.T) {
	p := merge.DefaultParams()
	p.Breakpoints[0] = 95
	p.Offsets[merge.FIR] = -0.2
	p.Multipliers[merge.FIR] = 1.5

	var buf bytes.Buffer
	require.NoError(t, WriteParams(&buf, p))
	want := "Breakpoint1, 95\n" +
		"Breakpoint2, 10\n" +
		"Breakpoint3, 500\n" +
		"Breakpoint4, 7000\n" +
		"THz, 0, 1\n" +
		"FIR, -0.2, 1.5\n" +
		"MIR, 0, 1\n" +
		"NIR, 0, 1\n" +
		"VIS, 0, 1\n"
	assert.Equal(t, want, buf.String())
}

func TestParamsRoundTrip(t *testing.T) {
	p := merge.DefaultParams()
	p.Breakpoints = merge.Breakpoints{95.25, 495.125, 5000, 11000.5}
	for i := range p.Offsets {
		p.Offsets[i] = 0.1 * float64(i)
		p.Multipliers[i] = 1 + 0.05*float64(i)
	}

	var buf bytes.Buffer
	require.NoError(t, WriteParams(&buf, p))
	got, err := ParseParams(&buf, merge.DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestParseParamsTolerantSeparators(t *testing.T) {
	input := "Breakpoint1;80\n" +
		"EEIR\t0.1\t1.2\n" +
		"MIR  0.2   0.9\n" +
		"Comment, ignored, line\n" +
		"breakpoint2, 300\n"
	got, err := ParseParams(strings.NewReader(input), merge.DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, 80.0, got.Breakpoints.Get(1))
	assert.Equal(t, 10.0, got.Breakpoints.Get(2), "field names are case-sensitive")
	assert.Equal(t, 0.1, got.Offsets[merge.THz])
	assert.Equal(t, 1.2, got.Multipliers[merge.THz])
	assert.Equal(t, 0.2, got.Offsets[merge.MIR])
	assert.Equal(t, 0.9, got.Multipliers[merge.MIR])
}

func TestParseParamsIsAtomic(t *testing.T) {
	base := merge.DefaultParams()
	tests := []struct {
		name  string
		input string
	}{
		{"bad breakpoint", "Breakpoint1, 50\nBreakpoint2, abc\n"},
		{"missing multiplier", "Breakpoint1, 50\nFIR, 0.1\n"},
		{"bad offset", "THz, x, 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseParams(strings.NewReader(tt.input), base)
			assert.True(t, errors.Is(err, merge.ErrParamImport), "got %v", err)
			assert.Equal(t, base, got)
		})
	}
}
