// Package spectrumio reads band measurement files and writes the merged
// spectrum and parameter text layouts.
package spectrumio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AndyQiu2234/MergeSpec/internal/merge"
)

// splitter breaks one line into fields.
type splitter struct {
	name  string
	split func(string) []string
}

// Delimiter strategies, tried in order.
var splitters = []splitter{
	{"whitespace", strings.Fields},
	{"comma", func(s string) []string { return strings.Split(s, ",") }},
	{"single space", func(s string) []string { return strings.Split(s, " ") }},
}

// ReadBandFile opens path and reads it with ReadBand.
func ReadBandFile(path string) (freq, refl []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to open %s: %v", merge.ErrLoad, path, err)
	}
	defer f.Close()

	freq, refl, err = ReadBand(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return freq, refl, nil
}

// ReadBand parses a two-column (frequency, reflectance) text table. Lines
// starting with '#' and blank lines are skipped. Whitespace, comma and single
// space delimiters are tried in that order; the first one that yields at
// least two numeric columns on every row wins and extra columns are ignored.
// Descending data is reversed so the result is always ascending.
func ReadBand(r io.Reader) (freq, refl []float64, err error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: failed to read: %v", merge.ErrLoad, err)
	}
	if len(lines) == 0 {
		return nil, nil, fmt.Errorf("%w: no data rows", merge.ErrLoad)
	}

	for _, sp := range splitters {
		freq, refl, ok := parseColumns(lines, sp.split)
		if !ok {
			continue
		}
		if descending(freq) {
			reverse(freq)
			reverse(refl)
		}
		return freq, refl, nil
	}
	return nil, nil, fmt.Errorf("%w: no delimiter yields two numeric columns", merge.ErrLoad)
}

func parseColumns(lines []string, split func(string) []string) (freq, refl []float64, ok bool) {
	cols := -1
	freq = make([]float64, 0, len(lines))
	refl = make([]float64, 0, len(lines))
	for _, line := range lines {
		fields := split(line)
		if cols < 0 {
			cols = len(fields)
		}
		if len(fields) != cols || cols < 2 {
			return nil, nil, false
		}
		vals := make([]float64, cols)
		for i, field := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, nil, false
			}
			vals[i] = v
		}
		freq = append(freq, vals[0])
		refl = append(refl, vals[1])
	}
	return freq, refl, true
}

func descending(xs []float64) bool {
	if len(xs) < 2 {
		return false
	}
	for i := 1; i < len(xs); i++ {
		if !(xs[i] < xs[i-1]) {
			return false
		}
	}
	return true
}

func reverse(xs []float64) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}
