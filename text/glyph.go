package text

import "image"

// GlyphID is a unique identifier for a glyph within a font.
// The glyph ID is assigned by the font file and is font-specific.
type GlyphID uint16

// PositionedGlyph is one glyph placed by Layout.
type PositionedGlyph struct {
	// Source is the font that renders this glyph.
	Source *FontSource

	// GID is the glyph index in Source.
	GID GlyphID

	// Rune is the character this glyph represents.
	Rune rune

	// Size is the point size the glyph was laid out at.
	Size float64

	// X is the caret position and Y the baseline, in layout space where
	// the top of the line is 0.
	X, Y float64

	// Advance is the horizontal advance width of the glyph.
	Advance float64

	// Bounds is the exact ink box relative to (X, Y).
	// Empty for glyphs without ink, such as a space.
	Bounds Rect

	// Missing reports that no font of the set had a glyph for Rune and the
	// primary font's replacement glyph is used instead.
	Missing bool
}

// PixelBounds returns the glyph's ink box in whole pixels of layout space.
// The rectangle is empty for glyphs without ink.
func (g PositionedGlyph) PixelBounds() image.Rectangle {
	return g.Bounds.Pixels(g.X, g.Y)
}
