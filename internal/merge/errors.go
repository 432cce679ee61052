package merge

import "errors"

var (
	// ErrLoad reports band data that could not be read or is not a valid
	// ascending two-column series. The band keeps its previous contents.
	ErrLoad = errors.New("band load failed")

	// ErrDomain reports a frequency outside the range an operation is defined
	// on: a reference curve's tabulated domain, or an artifact window that
	// touches the edge of the band.
	ErrDomain = errors.New("frequency outside domain")

	// ErrParamImport reports a malformed parameter record. Nothing is applied.
	ErrParamImport = errors.New("parameter import failed")
)
