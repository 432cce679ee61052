package merge

import (
	"fmt"
	"strings"
)

// BandID identifies one of the five measurement bands, ordered by ascending
// frequency.
type BandID int

const (
	THz BandID = iota
	FIR
	MIR
	NIR
	VIS
)

// NumBands is the fixed number of bands a Merger holds.
const NumBands = 5

var bandNames = [NumBands]string{"THz", "FIR", "MIR", "NIR", "VIS"}

// Scale limits. Values outside are clamped, never rejected.
const (
	MinOffset     = -0.5
	MaxOffset     = 0.5
	MinMultiplier = 0.0
	MaxMultiplier = 2.0
)

func (b BandID) String() string {
	if b.Valid() {
		return bandNames[b]
	}
	return fmt.Sprintf("BandID(%d)", int(b))
}

// Valid reports whether b names one of the five bands.
func (b BandID) Valid() bool {
	return b >= 0 && b < NumBands
}

// Interior reports whether b has neighbours on both sides and so may be
// auto-filled.
func (b BandID) Interior() bool {
	return b > THz && b < VIS
}

// ParseBand resolves a band name. Matching is case-insensitive and accepts
// the legacy "EEIR" spelling for THz.
func ParseBand(name string) (BandID, error) {
	n := strings.TrimSpace(name)
	if strings.EqualFold(n, "EEIR") {
		return THz, nil
	}
	for i, bn := range bandNames {
		if strings.EqualFold(n, bn) {
			return BandID(i), nil
		}
	}
	return 0, fmt.Errorf("unknown band %q", name)
}

// Bands returns all band identities in ascending frequency order.
func Bands() []BandID {
	return []BandID{THz, FIR, MIR, NIR, VIS}
}

// Range is a half-open index range [Start, End) into a band's raw samples.
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices covered by r.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

type band struct {
	frequency   []float64
	reflectance []float64
	source      string

	offset     float64
	multiplier float64

	// measured is true when the data came from LoadBand rather than an
	// auto-fill bridge.
	measured bool
	fill     AutoFill

	active Range
	scaled []float64
}

func (b *band) hasData() bool {
	return len(b.frequency) > 0
}

func (b *band) clearData() {
	b.frequency = nil
	b.reflectance = nil
	b.source = ""
	b.measured = false
	b.active = Range{}
	b.scaled = nil
}

// bandStore owns the raw and derived data of all five bands.
type bandStore struct {
	bands [NumBands]band
}

func newBandStore() *bandStore {
	s := &bandStore{}
	for i := range s.bands {
		s.bands[i].multiplier = 1
		s.bands[i].fill.Order = OrderLinear
	}
	return s
}

func (s *bandStore) get(id BandID) *band {
	return &s.bands[id]
}

func (s *bandStore) hasData(id BandID) bool {
	if !id.Valid() {
		return false
	}
	return s.bands[id].hasData()
}

// load replaces the band's raw data after validating it. On error the band
// is left unchanged.
func (s *bandStore) load(id BandID, freq, refl []float64, source string) error {
	if err := validateSeries(freq, refl); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLoad, id, err)
	}
	b := s.get(id)
	b.frequency = append([]float64(nil), freq...)
	b.reflectance = append([]float64(nil), refl...)
	b.source = source
	b.measured = true
	b.active = Range{}
	b.scaled = nil
	return nil
}

func (s *bandStore) setScale(id BandID, offset, multiplier float64) {
	b := s.get(id)
	b.offset = clamp(offset, MinOffset, MaxOffset)
	b.multiplier = clamp(multiplier, MinMultiplier, MaxMultiplier)
}

func validateSeries(freq, refl []float64) error {
	if len(freq) == 0 {
		return fmt.Errorf("no samples")
	}
	if len(freq) != len(refl) {
		return fmt.Errorf("frequency/reflectance length mismatch: %d != %d", len(freq), len(refl))
	}
	for i := 1; i < len(freq); i++ {
		if !(freq[i] > freq[i-1]) {
			return fmt.Errorf("frequency must be strictly increasing at index %d", i)
		}
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
