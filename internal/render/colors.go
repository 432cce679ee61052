package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/AndyQiu2234/MergeSpec/internal/merge"
)

// BandColors are the default segment colours, indexed by band.
var BandColors = [merge.NumBands]string{"#FF0000", "#FFA500", "#228B22", "#0000FF", "#8A2BE2"}

// BreakpointColors are the default marker colours, indexed by breakpoint
// number minus one.
var BreakpointColors = [merge.NumBreakpoints]string{"#FF0000", "#FFA500", "#228B22", "#0000FF"}

// overlayCycle is handed out to overlays in order of arrival.
var overlayCycle = []string{
	"#1F77B4", "#FF7F0E", "#2CA02C", "#D62728", "#9467BD",
	"#8C564B", "#E377C2", "#7F7F7F", "#BCBD22", "#17BECF",
}

// ParseHex parses "#RRGGBB" (the leading '#' is optional).
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: want #RRGGBB", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

func mustHex(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return c
}
