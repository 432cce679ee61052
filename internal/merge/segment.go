package merge

import "sort"

// activeRange computes the contiguous index range of freq that band id
// contributes, given the breakpoints and which neighbours hold data.
//
// The left seam excludes its breakpoint (freq > bp) and the right seam
// includes it (freq <= bp), so a sample that sits exactly on a breakpoint is
// owned by the lower-frequency band only.
func activeRange(id BandID, freq []float64, bp Breakpoints, hasData func(BandID) bool) Range {
	r := Range{Start: 0, End: len(freq)}
	if len(freq) == 0 {
		return r
	}
	if id > THz && hasData(id-1) {
		left := bp[id-1]
		r.Start = sort.Search(len(freq), func(i int) bool { return freq[i] > left })
	}
	if id < VIS && hasData(id+1) {
		right := bp[id]
		r.End = sort.Search(len(freq), func(i int) bool { return freq[i] > right })
	}
	if r.End < r.Start {
		r.End = r.Start
	}
	return r
}

// extractSegments recomputes the active range of every band.
func (m *Merger) extractSegments() {
	for _, id := range Bands() {
		b := m.store.get(id)
		if !b.hasData() {
			b.active = Range{}
			continue
		}
		b.active = activeRange(id, b.frequency, m.breakpoints, m.hasData)
	}
}
