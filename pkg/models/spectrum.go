package models

// SpectrumPoint is a single reflectance sample
type SpectrumPoint struct {
	Frequency   float64 `json:"frequency" doc:"Frequency in cm^-1"`
	Reflectance float64 `json:"reflectance" doc:"Reflectance, nominally 0 to 1"`
}

// Points zips parallel frequency and reflectance slices
func Points(freq, refl []float64) []SpectrumPoint {
	out := make([]SpectrumPoint, len(freq))
	for i := range freq {
		out[i] = SpectrumPoint{Frequency: freq[i], Reflectance: refl[i]}
	}
	return out
}
