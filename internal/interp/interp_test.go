package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitLinear(t *testing.T) {
	p, err := Fit(Linear, []float64{0, 10}, []float64{0.5, 0.7})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p.Predict(0), 1e-12)
	assert.InDelta(t, 0.6, p.Predict(5), 1e-12)
	assert.InDelta(t, 0.7, p.Predict(10), 1e-12)
}

func TestQuadraticSplineReproducesParabola(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 5}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = x * x
	}
	p, err := Fit(Quadratic, xs, ys)
	require.NoError(t, err)

	for _, x := range []float64{0.5, 1.5, 2.25, 4, 4.9} {
		assert.InDelta(t, x*x, p.Predict(x), 1e-9, "x=%g", x)
	}
	assert.InDelta(t, 4.0, p.Predict(2), 1e-9)
	assert.Equal(t, 0.0, p.Predict(-1))
	assert.Equal(t, 25.0, p.Predict(10))
}

func TestQuadraticSplineIsGlobal(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		ys   []float64
		at   map[float64]float64
	}{
		{
			name: "alternating",
			xs:   []float64{0, 1, 2, 3, 4},
			ys:   []float64{0, 1, 0, 1, 0},
			at:   map[float64]float64{0.5: 0.85, 1: 1, 1.5: 0.45, 2.5: 0.45, 3.5: 0.85},
		},
		{
			name: "uneven spacing",
			xs:   []float64{0, 1, 3, 4, 7, 8},
			ys:   []float64{1, 2, 0, 5, 3, 3},
			at: map[float64]float64{
				0.5: 1.8624786871270247,
				2:   0.10017050298380221,
				5.5: 5.799712276214834,
				7.5: 2.813352514919011,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Fit(Quadratic, tt.xs, tt.ys)
			require.NoError(t, err)
			for x, want := range tt.at {
				assert.InDelta(t, want, p.Predict(x), 1e-9, "x=%g", x)
			}
		})
	}
}

func TestQuadraticSplineStaysBounded(t *testing.T) {
	xs := make([]float64, 200)
	ys := make([]float64, len(xs))
	for i := range xs {
		xs[i] = float64(i)
		ys[i] = 0.5
		if i%2 == 1 {
			ys[i] = 0.51
		}
	}
	p, err := Fit(Quadratic, xs, ys)
	require.NoError(t, err)
	for x := 0.25; x < 199; x += 0.5 {
		assert.InDelta(t, 0.505, p.Predict(x), 0.02, "x=%g", x)
	}
}

func TestCubicReproducesCubic(t *testing.T) {
	f := func(x float64) float64 { return x*x*x - 2*x + 1 }
	xs := []float64{0, 1, 2, 3, 4, 6}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = f(x)
	}
	p, err := Fit(Cubic, xs, ys)
	require.NoError(t, err)
	for _, x := range []float64{0.5, 2.5, 5} {
		assert.InDelta(t, f(x), p.Predict(x), 1e-6, "x=%g", x)
	}
}

func TestFitErrors(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		xs   []float64
		ys   []float64
	}{
		{"length mismatch", Linear, []float64{0, 1}, []float64{0}},
		{"too few for linear", Linear, []float64{0}, []float64{0}},
		{"too few for quadratic", Quadratic, []float64{0, 1}, []float64{0, 1}},
		{"too few for cubic", Cubic, []float64{0, 1, 2}, []float64{0, 1, 2}},
		{"not increasing", Linear, []float64{0, 1, 1}, []float64{0, 1, 2}},
		{"unknown kind", Kind(9), []float64{0, 1}, []float64{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fit(tt.kind, tt.xs, tt.ys)
			assert.Error(t, err)
		})
	}
}

func TestResample(t *testing.T) {
	p, err := Fit(Linear, []float64{0, 1}, []float64{0, 2})
	require.NoError(t, err)

	xs, ys, err := Resample(p, 0, 1, 0.25)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75}, xs)
	assert.InDeltaSlice(t, []float64{0, 0.5, 1, 1.5}, ys, 1e-12)

	xs, _, err = Resample(p, 0, 1, 0.1)
	require.NoError(t, err)
	assert.Len(t, xs, 10)
	assert.Less(t, xs[len(xs)-1], 1.0)

	xs, ys, err = Resample(p, 0, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, xs)
	assert.Empty(t, ys)

	xs, _, err = Resample(p, 1, 0, 0.1)
	require.NoError(t, err)
	assert.Empty(t, xs)
}

func TestResampleRejectsHugeGrid(t *testing.T) {
	p, err := Fit(Linear, []float64{0, 1}, []float64{0, 2})
	require.NoError(t, err)

	tests := []struct {
		name        string
		start, stop float64
		step        float64
	}{
		{"just over the cap", 0, MaxSamples + 1, 1},
		{"tiny step", 1e-12, 1000, 1e-12},
		{"step underflows the ratio", 0, 1e300, 1e-300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xs, ys, err := Resample(p, tt.start, tt.stop, tt.step)
			assert.Error(t, err)
			assert.Nil(t, xs)
			assert.Nil(t, ys)
		})
	}

	xs, _, err := Resample(p, 0, MaxSamples, 1)
	require.NoError(t, err)
	assert.Len(t, xs, MaxSamples)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "linear", Linear.String())
	assert.Equal(t, "quadratic", Quadratic.String())
	assert.Equal(t, "cubic", Cubic.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}
