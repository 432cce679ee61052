// Package interp builds one-dimensional interpolants over ascending sample
// points. Linear and not-a-knot cubic fits come from gonum; the quadratic
// spline is implemented here because gonum has none.
package interp

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// Kind selects the interpolant family.
type Kind int

const (
	Linear Kind = iota
	Quadratic
	Cubic
)

func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Quadratic:
		return "quadratic"
	case Cubic:
		return "cubic"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MinPoints returns the fewest sample points a fit of kind k accepts.
func (k Kind) MinPoints() int {
	switch k {
	case Quadratic:
		return 3
	case Cubic:
		return 4
	default:
		return 2
	}
}

// Fit fits an interpolant of kind k through (xs, ys). xs must be strictly
// increasing and the same length as ys.
func Fit(k Kind, xs, ys []float64) (interp.Predictor, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("interpolate x/y length mismatch: %d != %d", len(xs), len(ys))
	}
	if len(xs) < k.MinPoints() {
		return nil, fmt.Errorf("%s interpolation needs at least %d points, got %d", k, k.MinPoints(), len(xs))
	}
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return nil, fmt.Errorf("interpolate x must be strictly increasing at index %d", i)
		}
	}

	var fp interp.FittablePredictor
	switch k {
	case Linear:
		fp = &interp.PiecewiseLinear{}
	case Quadratic:
		fp = &QuadraticSpline{}
	case Cubic:
		fp = &interp.NotAKnotCubic{}
	default:
		return nil, fmt.Errorf("unknown interpolation kind %d", int(k))
	}
	if err := fp.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("failed to fit %s interpolant: %w", k, err)
	}
	return fp, nil
}

// MaxSamples bounds the number of points Resample will produce.
const MaxSamples = 1_000_000

// Resample evaluates p at start, start+step, ... for every point strictly
// below stop. It returns empty slices when step is not positive or the
// interval is empty, and an error when the grid would exceed MaxSamples.
func Resample(p interp.Predictor, start, stop, step float64) (xs, ys []float64, err error) {
	if !(step > 0) || !(stop > start) {
		return nil, nil, nil
	}
	count := (stop - start) / step
	if !(count <= MaxSamples) {
		return nil, nil, fmt.Errorf("resample grid [%g, %g) with step %g exceeds %d samples", start, stop, step, MaxSamples)
	}
	n := int(count)
	// Floating-point division can land one short or one over.
	for start+float64(n)*step < stop {
		n++
	}
	for n > 0 && start+float64(n-1)*step >= stop {
		n--
	}
	xs = make([]float64, n)
	ys = make([]float64, n)
	for i := range xs {
		x := start + float64(i)*step
		xs[i] = x
		ys[i] = p.Predict(x)
	}
	return xs, ys, nil
}
