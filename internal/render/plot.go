// Package render draws merged spectra with gonum/plot and keeps the overlay
// curve list shown beside them.
package render

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/AndyQiu2234/MergeSpec/internal/merge"
)

// Default canvas size.
const (
	DefaultWidth  = 10 * vg.Inch
	DefaultHeight = 6 * vg.Inch
)

// Scene is everything drawn in one figure.
type Scene struct {
	Title    string
	Segments []merge.Segment
	Markers  []merge.Marker
	Overlays []Curve
}

// SceneFor collects the merger's segments and markers together with the
// visible overlays of curves. curves may be nil.
func SceneFor(m *merge.Merger, curves *CurveList) Scene {
	s := Scene{
		Title:    "Merged reflectance",
		Segments: m.Segments(),
		Markers:  m.Markers(),
	}
	if curves != nil {
		s.Overlays = curves.Visible()
	}
	return s
}

func xys(freq, refl []float64) plotter.XYs {
	pts := make(plotter.XYs, len(freq))
	for i := range freq {
		pts[i].X = freq[i]
		pts[i].Y = refl[i]
	}
	return pts
}

// Plot builds the figure for s.
func Plot(s Scene) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = "Frequency (cm^-1)"
	p.Y.Label.Text = "Reflectance"
	p.Legend.Top = true

	ymin, ymax := math.Inf(1), math.Inf(-1)
	track := func(refl []float64) {
		for _, v := range refl {
			ymin = math.Min(ymin, v)
			ymax = math.Max(ymax, v)
		}
	}

	for _, c := range s.Overlays {
		if c.Spectrum.Len() == 0 {
			continue
		}
		line, err := plotter.NewLine(xys(c.Spectrum.Frequency, c.Spectrum.Reflectance))
		if err != nil {
			return nil, fmt.Errorf("failed to plot overlay %s: %w", c.Label, err)
		}
		line.LineStyle.Color = mustHex(c.Color)
		line.LineStyle.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(c.Label, line)
		track(c.Spectrum.Reflectance)
	}

	for _, seg := range s.Segments {
		if len(seg.Frequency) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys(seg.Frequency, seg.Reflectance))
		if err != nil {
			return nil, fmt.Errorf("failed to plot %s segment: %w", seg.Band, err)
		}
		line.LineStyle.Color = mustHex(BandColors[seg.Band])
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(seg.Band.String(), line)
		track(seg.Reflectance)
	}

	if ymin > ymax {
		return p, nil
	}
	for _, mk := range s.Markers {
		line, err := plotter.NewLine(plotter.XYs{{X: mk.Frequency, Y: ymin}, {X: mk.Frequency, Y: ymax}})
		if err != nil {
			return nil, fmt.Errorf("failed to plot breakpoint %d: %w", mk.Index, err)
		}
		line.LineStyle.Color = mustHex(BreakpointColors[mk.Index-1])
		line.LineStyle.Width = vg.Points(1)
		line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		p.Add(line)
	}
	return p, nil
}

// WritePNG renders s as a PNG of the given size.
func WritePNG(w io.Writer, s Scene, width, height vg.Length) error {
	p, err := Plot(s)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("failed to render plot: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}

// SavePNG renders s to a PNG file at path.
func SavePNG(path string, s Scene) error {
	p, err := Plot(s)
	if err != nil {
		return err
	}
	if err := p.Save(DefaultWidth, DefaultHeight, path); err != nil {
		return fmt.Errorf("failed to save plot %s: %w", path, err)
	}
	return nil
}
