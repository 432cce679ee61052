package merge

import "fmt"

// ReferenceCurve is a tabulated reference-material reflectance.
type ReferenceCurve interface {
	// Domain returns the tabulated frequency range.
	Domain() (lo, hi float64)
	// Reflectance evaluates the curve at freq. Callers check Domain first.
	Reflectance(freq float64) float64
}

// Spectrum is a two-column frequency/reflectance series.
type Spectrum struct {
	Frequency   []float64
	Reflectance []float64
}

// Len returns the number of samples.
func (s Spectrum) Len() int { return len(s.Frequency) }

// Normalize multiplies every reflectance value by the reference curve at the
// same frequency. Any frequency outside the curve's domain is ErrDomain and
// nothing is returned.
func Normalize(s Spectrum, curve ReferenceCurve) (Spectrum, error) {
	lo, hi := curve.Domain()
	out := Spectrum{
		Frequency:   append([]float64(nil), s.Frequency...),
		Reflectance: make([]float64, len(s.Reflectance)),
	}
	for i, f := range s.Frequency {
		if f < lo || f > hi {
			return Spectrum{}, fmt.Errorf("%w: frequency %g outside reference range [%g, %g]", ErrDomain, f, lo, hi)
		}
		out.Reflectance[i] = s.Reflectance[i] * curve.Reflectance(f)
	}
	return out, nil
}
