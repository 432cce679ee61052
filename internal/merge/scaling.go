package merge

import "gonum.org/v1/gonum/floats"

// scaleSamples returns refl*multiplier + offset in a new slice.
func scaleSamples(refl []float64, offset, multiplier float64) []float64 {
	out := make([]float64, len(refl))
	floats.ScaleTo(out, multiplier, refl)
	floats.AddConst(offset, out)
	return out
}

// applyScale recomputes the scaled active samples of band id. Auto-filled
// bands are already expressed in their neighbours' scaled units and pass
// through unchanged.
func (m *Merger) applyScale(id BandID) {
	b := m.store.get(id)
	if !b.hasData() || b.active.Len() == 0 {
		b.scaled = nil
		return
	}
	active := b.reflectance[b.active.Start:b.active.End]
	if b.fill.Enabled {
		b.scaled = scaleSamples(active, 0, 1)
		return
	}
	b.scaled = scaleSamples(active, b.offset, b.multiplier)
}
