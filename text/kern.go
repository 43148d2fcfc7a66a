package text

// Kerner finds the horizontal adjustment between two consecutive glyphs.
// The source is always the font that rendered the left glyph.
type Kerner interface {
	Kern(src *FontSource, left, right PositionedGlyph, size float64) float64
}

// tableKerner reads the legacy 'kern' table through ParsedFont.Kern.
//
// The right glyph ID may come from a different fallback font; the lookup is
// still made in the left glyph's font, which then usually finds no pair.
type tableKerner struct{}

func (tableKerner) Kern(src *FontSource, left, right PositionedGlyph, size float64) float64 {
	parsed := src.Parsed()
	if parsed == nil {
		return 0
	}
	return parsed.Kern(uint16(left.GID), uint16(right.GID), size)
}

// noKerner disables kerning.
type noKerner struct{}

func (noKerner) Kern(*FontSource, PositionedGlyph, PositionedGlyph, float64) float64 { return 0 }

// newKerner returns the Kerner for mode k.
func newKerner(k Kerning, pairCache int) Kerner {
	switch k {
	case KerningShaping:
		return newShapingKerner(pairCache)
	case KerningNone:
		return noKerner{}
	default:
		return tableKerner{}
	}
}
