package merge

import "fmt"

// NumBreakpoints is the number of seams between the five bands.
const NumBreakpoints = NumBands - 1

// BreakpointRanges holds the fixed allowed range of each breakpoint, in
// cm^-1. Index 0 is breakpoint 1 (THz/FIR seam).
var BreakpointRanges = [NumBreakpoints][2]float64{
	{0, 100},
	{10, 900},
	{500, 9000},
	{7000, 12000},
}

// Breakpoints are the four seam frequencies. Breakpoint k (1-based) sits
// between band k-1 and band k. The zero-based array index is k-1.
type Breakpoints [NumBreakpoints]float64

// DefaultBreakpoints places every breakpoint at the lower bound of its range.
func DefaultBreakpoints() Breakpoints {
	var bp Breakpoints
	for i := range bp {
		bp[i] = BreakpointRanges[i][0]
	}
	return bp
}

// Get returns breakpoint k (1-based).
func (bp Breakpoints) Get(k int) float64 {
	return bp[k-1]
}

// set clamps v into breakpoint k's fixed range and then against its ordering
// neighbours, and stores the result. It returns the applied value.
func (bp *Breakpoints) set(k int, v float64) (float64, error) {
	if k < 1 || k > NumBreakpoints {
		return 0, fmt.Errorf("breakpoint index %d out of range 1..%d", k, NumBreakpoints)
	}
	i := k - 1
	v = clamp(v, BreakpointRanges[i][0], BreakpointRanges[i][1])
	if i > 0 && v < bp[i-1] {
		v = bp[i-1]
	}
	if i < NumBreakpoints-1 && v > bp[i+1] {
		v = bp[i+1]
	}
	bp[i] = v
	return v, nil
}

// normalize clamps every breakpoint into its range and then restores
// ordering. On a conflict the breakpoint that is not in use yields: an
// unused upper value is raised to its lower neighbour, an unused lower value
// is pulled down to its upper neighbour. Both range bounds grow with k, so
// neither move leaves a value outside its range.
func (bp *Breakpoints) normalize(inUse func(k int) bool) {
	for i := range bp {
		bp[i] = clamp(bp[i], BreakpointRanges[i][0], BreakpointRanges[i][1])
	}
	for i := 1; i < NumBreakpoints; i++ {
		if bp[i] >= bp[i-1] {
			continue
		}
		if inUse != nil && inUse(i+1) && !inUse(i) {
			for j := i - 1; j >= 0 && bp[j] > bp[j+1]; j-- {
				bp[j] = bp[j+1]
			}
			continue
		}
		bp[i] = bp[i-1]
	}
}

// Ordered reports whether bp1 <= bp2 <= bp3 <= bp4 and each value lies in
// its fixed range.
func (bp Breakpoints) Ordered() bool {
	for i := range bp {
		if bp[i] < BreakpointRanges[i][0] || bp[i] > BreakpointRanges[i][1] {
			return false
		}
		if i > 0 && bp[i] < bp[i-1] {
			return false
		}
	}
	return true
}

// Marker is a breakpoint that is currently meaningful: both bands it
// separates hold data.
type Marker struct {
	Index     int // 1-based breakpoint number
	Frequency float64
}

// breakpointInUse reports whether breakpoint k separates two bands that both
// hold data.
func (m *Merger) breakpointInUse(k int) bool {
	return m.hasData(BandID(k-1)) && m.hasData(BandID(k))
}

// placeBreakpoint moves breakpoint k to the midpoint between the last
// frequency of band k-1 and the first frequency of band k, clamped to its
// fixed range.
func (m *Merger) placeBreakpoint(k int) {
	lower := m.store.get(BandID(k - 1))
	upper := m.store.get(BandID(k))
	if !lower.hasData() || !upper.hasData() {
		return
	}
	mid := (lower.frequency[len(lower.frequency)-1] + upper.frequency[0]) / 2
	i := k - 1
	m.breakpoints[i] = clamp(mid, BreakpointRanges[i][0], BreakpointRanges[i][1])
}

// placeAround re-places the breakpoints on both sides of band id and then
// restores ordering.
func (m *Merger) placeAround(id BandID) {
	if id > THz {
		m.placeBreakpoint(int(id))
	}
	if id < VIS {
		m.placeBreakpoint(int(id) + 1)
	}
	m.breakpoints.normalize(m.breakpointInUse)
}
