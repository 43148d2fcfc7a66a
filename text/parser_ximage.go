package text

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// collectionTag is the leading tag of TrueType/OpenType collection files.
var collectionTag = []byte("ttcf")

// ximageParser implements FontParser using golang.org/x/image/font/opentype.
type ximageParser struct{}

// Parse implements FontParser.Parse.
func (p *ximageParser) Parse(data []byte, opts ParseOptions) (ParsedFont, error) {
	var (
		f   *opentype.Font
		err error
	)
	if bytes.HasPrefix(data, collectionTag) {
		f, err = parseCollectionFace(data, opts.Index)
	} else {
		f, err = opentype.Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return &ximageParsedFont{font: f, hinting: mapHinting(opts.Hinting)}, nil
}

// parseCollectionFace returns face index of a TTC/OTC collection.
func parseCollectionFace(data []byte, index int) (*opentype.Font, error) {
	c, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= c.NumFonts() {
		return nil, fmt.Errorf("%w: %d of %d", ErrCollectionIndex, index, c.NumFonts())
	}
	return c.Font(index)
}

// ximageParsedFont implements ParsedFont using sfnt.Font.
//
// sfnt.Font is safe for concurrent use as long as every call gets its own
// sfnt.Buffer; buffers are recycled through bufPool.
type ximageParsedFont struct {
	font    *opentype.Font
	hinting font.Hinting
}

var bufPool = sync.Pool{
	New: func() any { return new(sfnt.Buffer) },
}

func getBuffer() *sfnt.Buffer  { return bufPool.Get().(*sfnt.Buffer) }
func putBuffer(b *sfnt.Buffer) { bufPool.Put(b) }

// Name implements ParsedFont.Name.
func (f *ximageParsedFont) Name() string {
	buf := getBuffer()
	defer putBuffer(buf)
	if name, err := f.font.Name(buf, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	return ""
}

// FullName implements ParsedFont.FullName.
func (f *ximageParsedFont) FullName() string {
	buf := getBuffer()
	defer putBuffer(buf)
	if name, err := f.font.Name(buf, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return ""
}

// NumGlyphs implements ParsedFont.NumGlyphs.
func (f *ximageParsedFont) NumGlyphs() int {
	return f.font.NumGlyphs()
}

// UnitsPerEm implements ParsedFont.UnitsPerEm.
func (f *ximageParsedFont) UnitsPerEm() int {
	return int(f.font.UnitsPerEm())
}

// GlyphIndex implements ParsedFont.GlyphIndex.
func (f *ximageParsedFont) GlyphIndex(r rune) uint16 {
	buf := getBuffer()
	defer putBuffer(buf)
	idx, err := f.font.GlyphIndex(buf, r)
	if err != nil {
		return 0
	}
	return uint16(idx)
}

// GlyphAdvance implements ParsedFont.GlyphAdvance.
func (f *ximageParsedFont) GlyphAdvance(glyphIndex uint16, ppem float64) float64 {
	buf := getBuffer()
	defer putBuffer(buf)

	advance, err := f.font.GlyphAdvance(buf, sfnt.GlyphIndex(glyphIndex), floatToFixed(ppem), f.hinting)
	if err != nil {
		return 0
	}
	return fixedToFloat(advance)
}

// GlyphBounds implements ParsedFont.GlyphBounds.
func (f *ximageParsedFont) GlyphBounds(glyphIndex uint16, ppem float64) Rect {
	buf := getBuffer()
	defer putBuffer(buf)

	bounds, _, err := f.font.GlyphBounds(buf, sfnt.GlyphIndex(glyphIndex), floatToFixed(ppem), f.hinting)
	if err != nil {
		return Rect{}
	}

	return Rect{
		MinX: fixedToFloat(bounds.Min.X),
		MinY: fixedToFloat(bounds.Min.Y),
		MaxX: fixedToFloat(bounds.Max.X),
		MaxY: fixedToFloat(bounds.Max.Y),
	}
}

// GlyphOutline implements ParsedFont.GlyphOutline.
func (f *ximageParsedFont) GlyphOutline(glyphIndex uint16, ppem float64) *GlyphOutline {
	buf := getBuffer()
	defer putBuffer(buf)

	segments, err := f.font.LoadGlyph(buf, sfnt.GlyphIndex(glyphIndex), floatToFixed(ppem), nil)
	if err != nil {
		return nil
	}

	// segments alias buf, so they are converted before buf goes back to the pool.
	outline := &GlyphOutline{Segments: make([]OutlineSegment, 0, len(segments))}
	for _, seg := range segments {
		s := OutlineSegment{}
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			s.Op = OutlineOpMoveTo
		case sfnt.SegmentOpLineTo:
			s.Op = OutlineOpLineTo
		case sfnt.SegmentOpQuadTo:
			s.Op = OutlineOpQuadTo
		case sfnt.SegmentOpCubeTo:
			s.Op = OutlineOpCubicTo
		default:
			continue
		}
		for i, pt := range seg.Args {
			s.Points[i] = OutlinePoint{X: float32(fixedToFloat(pt.X)), Y: float32(fixedToFloat(pt.Y))}
		}
		outline.Segments = append(outline.Segments, s)
	}
	return outline
}

// Kern implements ParsedFont.Kern.
func (f *ximageParsedFont) Kern(left, right uint16, ppem float64) float64 {
	buf := getBuffer()
	defer putBuffer(buf)

	k, err := f.font.Kern(buf, sfnt.GlyphIndex(left), sfnt.GlyphIndex(right), floatToFixed(ppem), f.hinting)
	if err != nil {
		return 0
	}
	return fixedToFloat(k)
}

// Metrics implements ParsedFont.Metrics.
func (f *ximageParsedFont) Metrics(ppem float64) FontMetrics {
	buf := getBuffer()
	defer putBuffer(buf)

	metrics, err := f.font.Metrics(buf, floatToFixed(ppem), f.hinting)
	if err != nil {
		return FontMetrics{}
	}

	ascent := fixedToFloat(metrics.Ascent)
	descent := math.Abs(fixedToFloat(metrics.Descent))
	return FontMetrics{
		Ascent:    ascent,
		Descent:   descent,
		LineGap:   math.Max(0, fixedToFloat(metrics.Height)-ascent-descent),
		XHeight:   fixedToFloat(metrics.XHeight),
		CapHeight: fixedToFloat(metrics.CapHeight),
	}
}

// mapHinting converts text.Hinting to font.Hinting.
func mapHinting(h Hinting) font.Hinting {
	switch h {
	case HintingNone:
		return font.HintingNone
	case HintingVertical:
		return font.HintingVertical
	case HintingFull:
		return font.HintingFull
	default:
		return font.HintingNone
	}
}

// floatToFixed converts a float64 size to fixed.Int26_6.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

// fixedToFloat converts fixed.Int26_6 to float64.
func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
