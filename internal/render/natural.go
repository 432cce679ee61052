package render

import (
	"sort"
	"strconv"
)

// chunk splits s into alternating non-digit and digit runs.
func chunk(s string) []string {
	var out []string
	start := 0
	for i := 1; i <= len(s); i++ {
		if i == len(s) || isDigit(s[i]) != isDigit(s[start]) {
			out = append(out, s[start:i])
			start = i
		}
	}
	return out
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// NaturalLess orders strings the way people expect file names to sort:
// digit runs compare by numeric value, so "scan2" precedes "scan10".
func NaturalLess(a, b string) bool {
	ca, cb := chunk(a), chunk(b)
	for i := 0; i < len(ca) && i < len(cb); i++ {
		x, y := ca[i], cb[i]
		if x == y {
			continue
		}
		if isDigit(x[0]) && isDigit(y[0]) {
			nx, errx := strconv.ParseUint(x, 10, 64)
			ny, erry := strconv.ParseUint(y, 10, 64)
			if errx == nil && erry == nil && nx != ny {
				return nx < ny
			}
		}
		return x < y
	}
	return len(ca) < len(cb)
}

// NaturalSort sorts names in place with NaturalLess.
func NaturalSort(names []string) {
	sort.SliceStable(names, func(i, j int) bool { return NaturalLess(names[i], names[j]) })
}
