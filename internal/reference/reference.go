// Package reference provides the tabulated reflectance of the reference
// mirrors (gold and silver) used to normalise merged spectra.
package reference

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/interp"

	"github.com/AndyQiu2234/MergeSpec/internal/merge"
	"github.com/AndyQiu2234/MergeSpec/internal/spectrumio"
)

//go:embed data/*.txt
var tables embed.FS

// Material names a reference mirror.
type Material string

const (
	None Material = "none"
	Au   Material = "Au"
	Ag   Material = "Ag"
)

// Materials lists the available reference mirrors.
func Materials() []Material {
	return []Material{Au, Ag}
}

func (m Material) file() string {
	switch m {
	case Au:
		return "au.txt"
	case Ag:
		return "ag.txt"
	default:
		return ""
	}
}

// Curve is a linear interpolant over a tabulated reflectance. It satisfies
// merge.ReferenceCurve.
type Curve struct {
	name string
	lo   float64
	hi   float64
	fn   interp.PiecewiseLinear
}

// NewCurve fits a curve through (freq, refl). freq must be strictly
// increasing with at least two points.
func NewCurve(name string, freq, refl []float64) (*Curve, error) {
	if len(freq) < 2 || len(freq) != len(refl) {
		return nil, fmt.Errorf("reference %s needs at least two aligned samples", name)
	}
	for i := 1; i < len(freq); i++ {
		if !(freq[i] > freq[i-1]) {
			return nil, fmt.Errorf("reference %s frequency not strictly increasing at index %d", name, i)
		}
	}
	c := &Curve{name: name, lo: freq[0], hi: freq[len(freq)-1]}
	if err := c.fn.Fit(freq, refl); err != nil {
		return nil, fmt.Errorf("failed to fit reference %s: %w", name, err)
	}
	return c, nil
}

// Name returns the material name.
func (c *Curve) Name() string { return c.name }

// Domain returns the tabulated frequency range.
func (c *Curve) Domain() (lo, hi float64) { return c.lo, c.hi }

// Reflectance evaluates the curve at freq.
func (c *Curve) Reflectance(freq float64) float64 { return c.fn.Predict(freq) }

// Load returns the curve for material m. When dir is non-empty and holds a
// table with the material's file name, that table is used instead of the
// built-in one.
func Load(m Material, dir string) (*Curve, error) {
	name := m.file()
	if name == "" {
		return nil, fmt.Errorf("unknown reference material %q", m)
	}

	if dir != "" {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			freq, refl, err := spectrumio.ReadBandFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read reference %s: %w", m, err)
			}
			return NewCurve(string(m), freq, refl)
		}
	}

	f, err := tables.Open("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to open built-in reference %s: %w", m, err)
	}
	defer f.Close()
	freq, refl, err := spectrumio.ReadBand(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read built-in reference %s: %w", m, err)
	}
	return NewCurve(string(m), freq, refl)
}

// Options loads every material and returns merge options registering them.
func Options(dir string) ([]merge.Option, error) {
	var opts []merge.Option
	for _, m := range Materials() {
		c, err := Load(m, dir)
		if err != nil {
			return nil, err
		}
		opts = append(opts, merge.WithReference(string(m), c))
	}
	return opts, nil
}
