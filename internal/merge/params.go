package merge

// Params is the flat parameter record: breakpoints plus every band's
// offset and multiplier.
type Params struct {
	Breakpoints Breakpoints
	Offsets     [NumBands]float64
	Multipliers [NumBands]float64
}

// DefaultParams returns default breakpoints and identity scaling.
func DefaultParams() Params {
	p := Params{Breakpoints: DefaultBreakpoints()}
	for i := range p.Multipliers {
		p.Multipliers[i] = 1
	}
	return p
}

// Params returns the current parameter record.
func (m *Merger) Params() Params {
	p := Params{Breakpoints: m.breakpoints}
	for _, id := range Bands() {
		b := m.store.get(id)
		p.Offsets[id] = b.offset
		p.Multipliers[id] = b.multiplier
	}
	return p
}

// ApplyParams replaces breakpoints and scales in one step. Values are
// clamped as if set individually; auto-filled bands keep identity scale.
func (m *Merger) ApplyParams(p Params) error {
	prev := m.save()
	m.breakpoints = p.Breakpoints
	m.breakpoints.normalize(m.breakpointInUse)
	for _, id := range Bands() {
		if m.store.get(id).fill.Enabled {
			m.store.setScale(id, 0, 1)
			continue
		}
		m.store.setScale(id, p.Offsets[id], p.Multipliers[id])
	}
	return m.commit("apply_params", prev)
}
