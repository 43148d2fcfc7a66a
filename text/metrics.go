package text

// FontMetrics holds font-level metrics at a specific size.
type FontMetrics struct {
	// Ascent is the distance from the baseline to the top of the font (positive).
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the font (positive, below baseline).
	Descent float64

	// LineGap is the recommended line gap between lines.
	LineGap float64

	// XHeight is the height of lowercase letters (like 'x').
	XHeight float64

	// CapHeight is the height of uppercase letters.
	CapHeight float64
}

// LineHeight returns the total line height (ascent + descent + line gap).
func (m FontMetrics) LineHeight() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

// TextMetrics describes the ink of a laid-out string in whole pixels.
type TextMetrics struct {
	// Width is the width of the union of all glyph pixel boxes.
	Width int

	// Height runs from the top of the line (layout y 0) to the bottom of
	// the lowest glyph pixel box, or from the highest box if it pokes
	// above the line.
	Height int

	// OffsetX is the leftmost ink column relative to the layout origin.
	// Drawing code subtracts it so the visible left edge, not the caret
	// origin, lands on the requested x.
	OffsetX int
}

// Empty reports whether the metrics describe no ink at all.
func (m TextMetrics) Empty() bool {
	return m.Width == 0 || m.Height == 0
}
