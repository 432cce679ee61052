package spectrumio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AndyQiu2234/MergeSpec/internal/merge"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteSpectrum writes one "frequency\treflectance" line per sample.
func WriteSpectrum(w io.Writer, s merge.Spectrum) error {
	bw := bufio.NewWriter(w)
	for i := range s.Frequency {
		if _, err := fmt.Fprintf(bw, "%s\t%s\n", formatFloat(s.Frequency[i]), formatFloat(s.Reflectance[i])); err != nil {
			return fmt.Errorf("failed to write spectrum: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write spectrum: %w", err)
	}
	return nil
}

// WriteParams writes the parameter record: four breakpoint lines followed by
// one "band, offset, multiplier" line per band.
func WriteParams(w io.Writer, p merge.Params) error {
	bw := bufio.NewWriter(w)
	for k := 1; k <= merge.NumBreakpoints; k++ {
		fmt.Fprintf(bw, "Breakpoint%d, %s\n", k, formatFloat(p.Breakpoints.Get(k)))
	}
	for _, id := range merge.Bands() {
		fmt.Fprintf(bw, "%s, %s, %s\n", id, formatFloat(p.Offsets[id]), formatFloat(p.Multipliers[id]))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write params: %w", err)
	}
	return nil
}

var paramSeparators = strings.NewReplacer(",", " ", "\t", " ", ";", " ")

// ParseParams reads a parameter record on top of base and returns the
// result. Commas, tabs and semicolons all act as separators. Field names are
// case-sensitive; "EEIR" is accepted for THz and unknown names are ignored.
// Any malformed value fails the whole import with ErrParamImport and base is
// returned unchanged.
func ParseParams(r io.Reader, base merge.Params) (merge.Params, error) {
	p := base
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		tokens := strings.Fields(paramSeparators.Replace(sc.Text()))
		if len(tokens) == 0 {
			continue
		}
		if k, ok := breakpointField(tokens[0]); ok {
			vals, err := parseValues(tokens, 1, lineNo)
			if err != nil {
				return base, err
			}
			p.Breakpoints[k-1] = vals[0]
			continue
		}
		if id, ok := bandField(tokens[0]); ok {
			vals, err := parseValues(tokens, 2, lineNo)
			if err != nil {
				return base, err
			}
			p.Offsets[id] = vals[0]
			p.Multipliers[id] = vals[1]
		}
	}
	if err := sc.Err(); err != nil {
		return base, fmt.Errorf("%w: %v", merge.ErrParamImport, err)
	}
	return p, nil
}

func breakpointField(name string) (int, bool) {
	for k := 1; k <= merge.NumBreakpoints; k++ {
		if name == "Breakpoint"+strconv.Itoa(k) {
			return k, true
		}
	}
	return 0, false
}

func bandField(name string) (merge.BandID, bool) {
	if name == "EEIR" {
		return merge.THz, true
	}
	for _, id := range merge.Bands() {
		if name == id.String() {
			return id, true
		}
	}
	return 0, false
}

func parseValues(tokens []string, n, lineNo int) ([]float64, error) {
	if len(tokens) < n+1 {
		return nil, fmt.Errorf("%w: line %d: %s needs %d value(s)", merge.ErrParamImport, lineNo, tokens[0], n)
	}
	vals := make([]float64, n)
	for i := range vals {
		v, err := strconv.ParseFloat(tokens[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: invalid %s value %q", merge.ErrParamImport, lineNo, tokens[0], tokens[i+1])
		}
		vals[i] = v
	}
	return vals, nil
}
