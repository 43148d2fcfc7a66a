package text

import (
	"image"
	"math"
)

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// Hinting specifies font hinting mode.
type Hinting int

const (
	// HintingNone disables hinting. Advances and outlines keep their
	// fractional positions.
	HintingNone Hinting = iota
	// HintingVertical applies vertical hinting only.
	HintingVertical
	// HintingFull applies full hinting.
	HintingFull
)

// String returns the string representation of the hinting.
func (h Hinting) String() string {
	switch h {
	case HintingNone:
		return "None"
	case HintingVertical:
		return "Vertical"
	case HintingFull:
		return "Full"
	default:
		return unknownStr
	}
}

// Kerning selects how pair adjustments between consecutive glyphs are found.
type Kerning int

const (
	// KerningTable reads the legacy 'kern' table of the font.
	KerningTable Kerning = iota
	// KerningShaping measures pair adjustments with a HarfBuzz shaper,
	// which also sees GPOS kerning.
	KerningShaping
	// KerningNone disables kerning.
	KerningNone
)

// String returns the string representation of the kerning mode.
func (k Kerning) String() string {
	switch k {
	case KerningTable:
		return "table"
	case KerningShaping:
		return "shaping"
	case KerningNone:
		return "none"
	default:
		return unknownStr
	}
}

// Rect represents a rectangle for glyph bounds.
// Y grows downwards; a glyph above the baseline has a negative MinY.
type Rect struct {
	// Min is the top-left corner
	MinX, MinY float64
	// Max is the bottom-right corner
	MaxX, MaxY float64
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Empty reports whether the rectangle is empty.
func (r Rect) Empty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Pixels returns the smallest integer rectangle containing r translated
// by (x, y). An empty r yields an empty rectangle.
func (r Rect) Pixels(x, y float64) image.Rectangle {
	if r.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(r.MinX+x)),
		int(math.Floor(r.MinY+y)),
		int(math.Ceil(r.MaxX+x)),
		int(math.Ceil(r.MaxY+y)),
	)
}
