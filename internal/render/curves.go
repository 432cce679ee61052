package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/AndyQiu2234/MergeSpec/internal/merge"
	"github.com/AndyQiu2234/MergeSpec/internal/spectrumio"
)

// ErrNotFound is returned for an unknown overlay ID.
var ErrNotFound = errors.New("overlay not found")

// Curve is one overlay spectrum shown next to the merged result.
type Curve struct {
	ID       string
	Color    string
	Label    string
	Visible  bool
	Source   string
	Spectrum merge.Spectrum
}

// CurveList holds overlay curves in load order.
type CurveList struct {
	curves []Curve
	added  int
}

// NewCurveList returns an empty list.
func NewCurveList() *CurveList {
	return &CurveList{}
}

// Add appends a visible curve labelled label and returns it. The colour is
// taken from the overlay cycle.
func (l *CurveList) Add(label, source string, s merge.Spectrum) Curve {
	c := Curve{
		ID:       uuid.New().String(),
		Color:    overlayCycle[l.added%len(overlayCycle)],
		Label:    label,
		Visible:  true,
		Source:   source,
		Spectrum: s,
	}
	l.added++
	l.curves = append(l.curves, c)
	return c
}

// overlayExt reports whether name has an extension the overlay loader reads.
func overlayExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".csv", ".dat":
		return true
	}
	return false
}

// LoadFile reads a merged spectrum from path and adds it, labelled with the
// file's base name.
func (l *CurveList) LoadFile(path string) (Curve, error) {
	freq, refl, err := spectrumio.ReadBandFile(path)
	if err != nil {
		return Curve{}, err
	}
	return l.Add(filepath.Base(path), path, merge.Spectrum{Frequency: freq, Reflectance: refl}), nil
}

// LoadFolder adds every .txt, .csv and .dat file in dir in natural name
// order. It stops at the first file that cannot be read; curves added
// before that are kept.
func (l *CurveList) LoadFolder(dir string) ([]Curve, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && overlayExt(e.Name()) {
			names = append(names, e.Name())
		}
	}
	NaturalSort(names)

	var added []Curve
	for _, name := range names {
		c, err := l.LoadFile(filepath.Join(dir, name))
		if err != nil {
			return added, err
		}
		added = append(added, c)
	}
	return added, nil
}

func (l *CurveList) find(id string) (*Curve, error) {
	for i := range l.curves {
		if l.curves[i].ID == id {
			return &l.curves[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Get returns the curve with the given id.
func (l *CurveList) Get(id string) (Curve, error) {
	c, err := l.find(id)
	if err != nil {
		return Curve{}, err
	}
	return *c, nil
}

// Rename changes a curve's legend label.
func (l *CurveList) Rename(id, label string) error {
	c, err := l.find(id)
	if err != nil {
		return err
	}
	c.Label = label
	return nil
}

// Recolor sets a curve's colour. color must be #RRGGBB.
func (l *CurveList) Recolor(id, color string) error {
	c, err := l.find(id)
	if err != nil {
		return err
	}
	if _, err := ParseHex(color); err != nil {
		return err
	}
	c.Color = color
	return nil
}

// SetVisible shows or hides a curve.
func (l *CurveList) SetVisible(id string, visible bool) error {
	c, err := l.find(id)
	if err != nil {
		return err
	}
	c.Visible = visible
	return nil
}

// Remove unloads a curve.
func (l *CurveList) Remove(id string) error {
	for i := range l.curves {
		if l.curves[i].ID == id {
			l.curves = append(l.curves[:i], l.curves[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// All returns every curve in load order.
func (l *CurveList) All() []Curve {
	return append([]Curve(nil), l.curves...)
}

// Visible returns the curves currently shown.
func (l *CurveList) Visible() []Curve {
	var out []Curve
	for _, c := range l.curves {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}
