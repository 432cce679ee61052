package interp

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// quadraticDegree is the polynomial degree of QuadraticSpline's pieces.
const quadraticDegree = 2

// QuadraticSpline is the interpolating quadratic B-spline through all
// points. The knot vector repeats each end point three times and places the
// interior knots at the midpoints between samples, skipping the first and
// last midpoint. The coefficients come from one collocation solve, so every
// point influences the whole curve.
// Queries outside the fitted range return the nearest end value.
type QuadraticSpline struct {
	xs    []float64
	ys    []float64
	knots []float64
	coef  []float64
}

// Fit implements gonum's interp.Fitter.
func (q *QuadraticSpline) Fit(xs, ys []float64) error {
	n := len(xs)
	if n != len(ys) {
		return errors.New("interp: input slices have different lengths")
	}
	if n < quadraticDegree+1 {
		return errors.New("interp: too few points for quadratic spline")
	}
	for i := 1; i < n; i++ {
		if !(xs[i] > xs[i-1]) {
			return errors.New("interp: xs values not strictly increasing")
		}
	}

	knots := make([]float64, 0, n+quadraticDegree+1)
	for i := 0; i <= quadraticDegree; i++ {
		knots = append(knots, xs[0])
	}
	for j := 1; j < n-2; j++ {
		knots = append(knots, (xs[j]+xs[j+1])/2)
	}
	for i := 0; i <= quadraticDegree; i++ {
		knots = append(knots, xs[n-1])
	}

	a := mat.NewDense(n, n, nil)
	var basis [quadraticDegree + 1]float64
	for i, x := range xs {
		l := span(knots, n, x)
		basisFuncs(knots, l, x, &basis)
		for r, v := range basis {
			a.Set(i, l-quadraticDegree+r, v)
		}
	}

	var c mat.VecDense
	if err := c.SolveVec(a, mat.NewVecDense(n, append([]float64(nil), ys...))); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return fmt.Errorf("interp: quadratic spline collocation: %w", err)
		}
	}

	q.xs = append(q.xs[:0], xs...)
	q.ys = append(q.ys[:0], ys...)
	q.knots = knots
	q.coef = make([]float64, n)
	for i := range q.coef {
		q.coef[i] = c.AtVec(i)
	}
	return nil
}

// Predict implements gonum's interp.Predictor.
func (q *QuadraticSpline) Predict(x float64) float64 {
	n := len(q.xs)
	if n == 0 {
		return 0
	}
	if x <= q.xs[0] {
		return q.ys[0]
	}
	if x >= q.xs[n-1] {
		return q.ys[n-1]
	}
	l := span(q.knots, n, x)
	var basis [quadraticDegree + 1]float64
	basisFuncs(q.knots, l, x, &basis)
	var y float64
	for r, v := range basis {
		y += q.coef[l-quadraticDegree+r] * v
	}
	return y
}

// span returns the knot interval l with knots[l] <= x < knots[l+1], limited
// to the intervals that carry n basis functions.
func span(knots []float64, n int, x float64) int {
	l := sort.Search(len(knots), func(i int) bool { return knots[i] > x }) - 1
	if l < quadraticDegree {
		l = quadraticDegree
	}
	if l > n-1 {
		l = n - 1
	}
	return l
}

// basisFuncs fills out with the non-zero basis functions N[l-2..l] at x
// using the Cox-de Boor recurrence.
func basisFuncs(knots []float64, l int, x float64, out *[quadraticDegree + 1]float64) {
	var left, right [quadraticDegree + 1]float64
	out[0] = 1
	for j := 1; j <= quadraticDegree; j++ {
		left[j] = x - knots[l+1-j]
		right[j] = knots[l+j] - x
		saved := 0.0
		for r := 0; r < j; r++ {
			tmp := out[r] / (right[r+1] + left[j-r])
			out[r] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		out[j] = saved
	}
}
