package merge

import (
	"fmt"
	"sort"

	"github.com/AndyQiu2234/MergeSpec/internal/interp"
)

// Artifact window bounds in cm^-1. The reference laser line shows up here in
// the visible band.
const (
	ArtifactLow  = 15785.0
	ArtifactHigh = 15815.0
)

// removeArtifact overwrites every value whose frequency lies in the artifact
// window with the straight line between the samples just outside it. vals is
// modified in place. A window that reaches the first or last sample has no
// boundary on one side and is reported as ErrDomain with vals untouched.
func removeArtifact(freq, vals []float64) error {
	lo := sort.Search(len(freq), func(i int) bool { return freq[i] >= ArtifactLow })
	hi := sort.Search(len(freq), func(i int) bool { return freq[i] > ArtifactHigh })
	if lo == hi {
		return nil
	}
	if lo == 0 || hi == len(freq) {
		return fmt.Errorf("%w: artifact window [%g, %g] reaches the edge of the visible band", ErrDomain, ArtifactLow, ArtifactHigh)
	}
	line, err := interp.Fit(interp.Linear,
		[]float64{freq[lo-1], freq[hi]},
		[]float64{vals[lo-1], vals[hi]})
	if err != nil {
		return fmt.Errorf("failed to fit artifact bridge: %w", err)
	}
	for i := lo; i < hi; i++ {
		vals[i] = line.Predict(freq[i])
	}
	return nil
}

// filterArtifact runs removeArtifact over the visible band's active scaled
// samples when removal is switched on.
func (m *Merger) filterArtifact() error {
	if !m.removeArtifact {
		return nil
	}
	b := m.store.get(VIS)
	if len(b.scaled) == 0 {
		return nil
	}
	freq := b.frequency[b.active.Start:b.active.End]
	return removeArtifact(freq, b.scaled)
}
