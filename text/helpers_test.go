package text

import (
	"encoding/binary"
	"errors"
	"testing"
	"unicode"

	"golang.org/x/image/font/gofont/goregular"
)

// goRegular returns a FontSource for Go Regular.
func goRegular(t testing.TB, opts ...SourceOption) *FontSource {
	t.Helper()
	src, err := NewFontSource(goregular.TTF, opts...)
	if err != nil {
		t.Fatalf("NewFontSource(goregular) error: %v", err)
	}
	return src
}

// boxParser builds synthetic fonts whose every glyph is a solid box.
// The font data names the covered repertoire: "latin", "han", "cjk" or
// "replacement".
// Layout math on these fonts is exact, which keeps assertions simple.
type boxParser struct{}

func (boxParser) Parse(data []byte, _ ParseOptions) (ParsedFont, error) {
	switch string(data) {
	case "latin":
		return &boxFont{name: "Box Latin", covers: func(r rune) bool { return r >= 0x20 && r < 0x250 }}, nil
	case "han":
		return &boxFont{name: "Box Han", covers: func(r rune) bool { return unicode.Is(unicode.Han, r) }}, nil
	case "cjk":
		return &boxFont{name: "Box CJK", covers: func(r rune) bool {
			return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana)
		}}, nil
	case "replacement":
		return &boxFont{name: "Box Replacement", covers: func(r rune) bool { return r == 'x' || r == 0xFFFD }}, nil
	}
	return nil, errors.New("box: unknown repertoire")
}

func init() {
	RegisterParser("box", boxParser{})
}

// boxFont maps covered runes to glyph 1 (space to glyph 2, which has no
// ink) and U+FFFD to glyph 3. Glyphs advance 0.6 em; the box spans
// x 0.1..0.5 em and y -0.7..0 em around the origin.
type boxFont struct {
	name   string
	covers func(rune) bool
}

func (f *boxFont) Name() string     { return f.name }
func (f *boxFont) FullName() string { return f.name }
func (f *boxFont) NumGlyphs() int   { return 4 }
func (f *boxFont) UnitsPerEm() int  { return 1000 }

func (f *boxFont) GlyphIndex(r rune) uint16 {
	switch {
	case !f.covers(r):
		return 0
	case r == ' ':
		return 2
	case r == 0xFFFD:
		return 3
	default:
		return 1
	}
}

func (f *boxFont) GlyphAdvance(_ uint16, ppem float64) float64 { return 0.6 * ppem }

func (f *boxFont) GlyphBounds(gid uint16, ppem float64) Rect {
	if gid == 2 {
		return Rect{}
	}
	return Rect{MinX: 0.1 * ppem, MinY: -0.7 * ppem, MaxX: 0.5 * ppem, MaxY: 0}
}

func (f *boxFont) GlyphOutline(gid uint16, ppem float64) *GlyphOutline {
	b := f.GlyphBounds(gid, ppem)
	if b.Empty() {
		return nil
	}
	pt := func(x, y float64) [3]OutlinePoint {
		return [3]OutlinePoint{{X: float32(x), Y: float32(y)}}
	}
	return &GlyphOutline{Segments: []OutlineSegment{
		{Op: OutlineOpMoveTo, Points: pt(b.MinX, b.MinY)},
		{Op: OutlineOpLineTo, Points: pt(b.MaxX, b.MinY)},
		{Op: OutlineOpLineTo, Points: pt(b.MaxX, b.MaxY)},
		{Op: OutlineOpLineTo, Points: pt(b.MinX, b.MaxY)},
	}}
}

func (f *boxFont) Kern(uint16, uint16, float64) float64 { return 0 }

func (f *boxFont) Metrics(ppem float64) FontMetrics {
	return FontMetrics{Ascent: 0.8 * ppem, Descent: 0.2 * ppem}
}

// boxSource returns a synthetic FontSource for repertoire.
func boxSource(t testing.TB, repertoire string) *FontSource {
	t.Helper()
	src, err := NewFontSource([]byte(repertoire), WithParser("box"))
	if err != nil {
		t.Fatalf("NewFontSource(%q) error: %v", repertoire, err)
	}
	return src
}

// collectionOf wraps a single TrueType font into a one-face TTC.
// Table offsets are absolute in a collection, so they move by the size of
// the collection header.
func collectionOf(ttf []byte) []byte {
	const header = 16
	out := make([]byte, header+len(ttf))
	copy(out, "ttcf")
	binary.BigEndian.PutUint32(out[4:], 0x00010000)
	binary.BigEndian.PutUint32(out[8:], 1)
	binary.BigEndian.PutUint32(out[12:], header)
	copy(out[header:], ttf)

	numTables := int(binary.BigEndian.Uint16(ttf[4:]))
	for i := range numTables {
		rec := header + 12 + i*16
		off := binary.BigEndian.Uint32(out[rec+8:])
		binary.BigEndian.PutUint32(out[rec+8:], off+header)
	}
	return out
}
