package datagrid

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font/basicfont"
)

// Measurer sizes text for auto-sizing.
type Measurer interface {
	MeasureText(s string) Size
}

// FixedMeasurer measures text in the 7x13 fixed font also used by the GL
// backend's glyph atlas.
type FixedMeasurer struct {
	Scale int // Multiplier; 0 means 1
}

// GlyphSize returns the cell of one glyph.
func (m FixedMeasurer) GlyphSize() Size {
	s := max(m.Scale, 1)
	f := basicfont.Face7x13
	return Size{W: f.Advance * s, H: f.Height * s}
}

// MeasureText implements Measurer. Lines are split on '\n'.
func (m FixedMeasurer) MeasureText(s string) Size {
	g := m.GlyphSize()
	if s == "" {
		return Size{H: g.H}
	}
	lines := strings.Split(s, "\n")
	w := 0
	for _, l := range lines {
		w = max(w, utf8.RuneCountInString(l))
	}
	return Size{W: w * g.W, H: len(lines) * g.H}
}
