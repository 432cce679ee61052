// Package merge stitches up to five overlapping reflectance bands into one
// continuous spectrum.
//
// A Merger owns the band data and the four breakpoints that decide where
// each band hands off to its higher-frequency neighbour. Every mutating
// method runs the full recompute chain before it returns:
//
//	segment extraction -> auto-fill bridges -> scaling -> artifact removal
//
// and then notifies subscribers. The Merger is not safe for concurrent use;
// callers that share one across goroutines must serialise access.
package merge
