package merge

import (
	"fmt"

	"github.com/AndyQiu2234/MergeSpec/internal/interp"
)

// Order is the auto-fill order selected by the operator.
//
// The order-to-interpolant mapping is inherited from the instrument
// workflow this tool replaces: 1 is quadratic, 2 is cubic and 3 (or any
// other value) is linear. Keep it; stored parameter sets depend on it.
type Order int

const (
	OrderQuadratic Order = 1
	OrderCubic     Order = 2
	OrderLinear    Order = 3
)

// Kind returns the interpolant family used for o.
func (o Order) Kind() interp.Kind {
	switch o {
	case OrderQuadratic:
		return interp.Quadratic
	case OrderCubic:
		return interp.Cubic
	default:
		return interp.Linear
	}
}

// AutoFill is the auto-fill setting of an interior band.
type AutoFill struct {
	Enabled bool
	Order   Order
}

// fillWindow is the number of samples taken from each neighbour.
const fillWindow = 100

type window struct {
	freq []float64
	refl []float64
}

func (w window) empty() bool { return len(w.freq) == 0 }

// tail returns the last n samples of (freq, refl) scaled by offset/multiplier.
func tail(freq, refl []float64, n int, offset, multiplier float64) window {
	start := len(freq) - n
	if start < 0 {
		start = 0
	}
	return window{
		freq: freq[start:],
		refl: scaleSamples(refl[start:], offset, multiplier),
	}
}

// head returns the first n samples of (freq, refl) scaled by offset/multiplier.
func head(freq, refl []float64, n int, offset, multiplier float64) window {
	if n > len(freq) {
		n = len(freq)
	}
	return window{
		freq: freq[:n],
		refl: scaleSamples(refl[:n], offset, multiplier),
	}
}

// bridge fits an interpolant through both windows and samples it with the
// given step from the last frequency of left up to, but excluding, the first
// frequency of right.
func bridge(left, right window, step float64, order Order) ([]float64, []float64, error) {
	if left.empty() || right.empty() {
		return nil, nil, fmt.Errorf("auto-fill window is empty")
	}
	xs := make([]float64, 0, len(left.freq)+len(right.freq))
	xs = append(append(xs, left.freq...), right.freq...)
	ys := make([]float64, 0, len(xs))
	ys = append(append(ys, left.refl...), right.refl...)

	p, err := interp.Fit(order.Kind(), xs, ys)
	if err != nil {
		return nil, nil, err
	}
	freq, refl, err := interp.Resample(p, left.freq[len(left.freq)-1], right.freq[0], step)
	if err != nil {
		return nil, nil, fmt.Errorf("auto-fill: %w", err)
	}
	if len(freq) == 0 {
		return nil, nil, fmt.Errorf("auto-fill produced no samples (step %g)", step)
	}
	return freq, refl, nil
}

// measured reports whether band id holds loaded (not auto-filled) data.
func (m *Merger) measured(id BandID) bool {
	if !id.Valid() {
		return false
	}
	b := m.store.get(id)
	return b.measured && b.hasData()
}

// fillPossible reports whether an enabled fill on band c has the two
// measured neighbours it needs.
func (m *Merger) fillPossible(c BandID) bool {
	return c.Interior() && m.store.get(c).fill.Enabled && m.measured(c-1) && m.measured(c+1)
}

// fillStep is the spacing of the lower neighbour's last two raw samples.
func (m *Merger) fillStep(c BandID) (float64, error) {
	lower := m.store.get(c - 1)
	n := len(lower.frequency)
	if n < 2 {
		return 0, fmt.Errorf("%s needs at least two samples to set the auto-fill step", c-1)
	}
	return lower.frequency[n-1] - lower.frequency[n-2], nil
}

// provisionalBridge builds band c's bridge from the neighbours' full raw
// extent. It is used to place breakpoints before active ranges exist.
func (m *Merger) provisionalBridge(c BandID) ([]float64, []float64, error) {
	lower, upper := m.store.get(c-1), m.store.get(c+1)
	step, err := m.fillStep(c)
	if err != nil {
		return nil, nil, err
	}
	left := tail(lower.frequency, lower.reflectance, fillWindow, lower.offset, lower.multiplier)
	right := head(upper.frequency, upper.reflectance, fillWindow, upper.offset, upper.multiplier)
	return bridge(left, right, step, m.store.get(c).fill.Order)
}

// activeBridge builds band c's bridge from the neighbours' active, scaled
// samples, so it follows breakpoint and scale edits.
func (m *Merger) activeBridge(c BandID) ([]float64, []float64, error) {
	lower, upper := m.store.get(c-1), m.store.get(c+1)
	step, err := m.fillStep(c)
	if err != nil {
		return nil, nil, err
	}
	lf := lower.frequency[lower.active.Start:lower.active.End]
	lr := lower.reflectance[lower.active.Start:lower.active.End]
	uf := upper.frequency[upper.active.Start:upper.active.End]
	ur := upper.reflectance[upper.active.Start:upper.active.End]
	left := tail(lf, lr, fillWindow, lower.offset, lower.multiplier)
	right := head(uf, ur, fillWindow, upper.offset, upper.multiplier)
	return bridge(left, right, step, m.store.get(c).fill.Order)
}

// seedFills gives every enabled, possible fill a provisional bridge and
// clears the ones that cannot be built. Bands that already hold a bridge are
// left alone unless force is set.
func (m *Merger) seedFills(force bool) []BandID {
	var seeded []BandID
	for _, c := range []BandID{FIR, MIR, NIR} {
		b := m.store.get(c)
		if !b.fill.Enabled {
			continue
		}
		if !m.fillPossible(c) {
			b.clearData()
			continue
		}
		if b.hasData() && !force {
			continue
		}
		freq, refl, err := m.provisionalBridge(c)
		if err != nil {
			b.clearData()
			continue
		}
		b.frequency, b.reflectance = freq, refl
		seeded = append(seeded, c)
	}
	return seeded
}

// rebuildFills replaces every seeded bridge with one built from the current
// active windows. It reports whether any band lost its data, in which case
// the neighbours' active ranges must be recomputed.
func (m *Merger) rebuildFills() bool {
	dropped := false
	for _, c := range []BandID{FIR, MIR, NIR} {
		b := m.store.get(c)
		if !b.fill.Enabled || !b.hasData() {
			continue
		}
		freq, refl, err := m.activeBridge(c)
		if err != nil {
			b.clearData()
			dropped = true
			continue
		}
		b.frequency, b.reflectance = freq, refl
	}
	return dropped
}
