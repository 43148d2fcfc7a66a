package imagekit

import (
	"errors"
	"image"
	"image/color"
	"os"
	"testing"
	"unicode"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/imagekit/text"
)

// goRegular returns a font set with Go Regular as its only font.
func goRegular(t testing.TB) *text.FontSet {
	t.Helper()
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatalf("NewFontSource(goregular) error: %v", err)
	}
	return text.NewFontSet([]*text.FontSource{src})
}

// cjkFontPaths are common locations of a font covering Han ideographs.
var cjkFontPaths = []string{
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/google-noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
	"/usr/share/fonts/wenquanyi/wqy-microhei/wqy-microhei.ttc",
	"/System/Library/Fonts/PingFang.ttc",
	"/System/Library/Fonts/STHeiti Light.ttc",
	"C:\\Windows\\Fonts\\msyh.ttc",
}

// systemCJKFont loads the first CJK font found, or skips the test.
func systemCJKFont(t testing.TB) *text.FontSource {
	t.Helper()
	for _, path := range cjkFontPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		src, err := text.NewFontSourceFromFile(path)
		if err != nil {
			t.Logf("skipping %s: %v", path, err)
			continue
		}
		return src
	}
	t.Skip("no CJK font installed")
	return nil
}

// solid returns an opaque image filled with c.
func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// changedPixels returns the points where a and b differ.
func changedPixels(a, b *image.NRGBA) []image.Point {
	var pts []image.Point
	for y := a.Rect.Min.Y; y < a.Rect.Max.Y; y++ {
		for x := a.Rect.Min.X; x < a.Rect.Max.X; x++ {
			if a.NRGBAAt(x, y) != b.NRGBAAt(x, y) {
				pts = append(pts, image.Pt(x, y))
			}
		}
	}
	return pts
}

// blockParser builds synthetic fonts whose glyphs are solid blocks.
// The font data names the repertoire: "latin" or "cjk".
type blockParser struct{}

func (blockParser) Parse(data []byte, _ text.ParseOptions) (text.ParsedFont, error) {
	switch string(data) {
	case "latin":
		return &blockFont{name: "Block Latin", covers: func(r rune) bool { return r >= 0x20 && r < 0x250 }}, nil
	case "cjk":
		return &blockFont{name: "Block CJK", covers: func(r rune) bool {
			return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana)
		}}, nil
	}
	return nil, errors.New("block: unknown repertoire")
}

func init() {
	text.RegisterParser("block", blockParser{})
}

// blockFont maps covered runes to glyph 1 and space to glyph 2, which has
// no ink. Glyphs advance 0.6 em and fill x 0.1..0.5 em, y -0.7..0 em.
type blockFont struct {
	name   string
	covers func(rune) bool
}

func (f *blockFont) Name() string     { return f.name }
func (f *blockFont) FullName() string { return f.name }
func (f *blockFont) NumGlyphs() int   { return 3 }
func (f *blockFont) UnitsPerEm() int  { return 1000 }

func (f *blockFont) GlyphIndex(r rune) uint16 {
	switch {
	case !f.covers(r):
		return 0
	case r == ' ':
		return 2
	default:
		return 1
	}
}

func (f *blockFont) GlyphAdvance(_ uint16, ppem float64) float64 { return 0.6 * ppem }

func (f *blockFont) GlyphBounds(gid uint16, ppem float64) text.Rect {
	if gid == 2 {
		return text.Rect{}
	}
	return text.Rect{MinX: 0.1 * ppem, MinY: -0.7 * ppem, MaxX: 0.5 * ppem, MaxY: 0}
}

func (f *blockFont) GlyphOutline(gid uint16, ppem float64) *text.GlyphOutline {
	b := f.GlyphBounds(gid, ppem)
	if b.Empty() {
		return nil
	}
	pt := func(x, y float64) [3]text.OutlinePoint {
		return [3]text.OutlinePoint{{X: float32(x), Y: float32(y)}}
	}
	return &text.GlyphOutline{Segments: []text.OutlineSegment{
		{Op: text.OutlineOpMoveTo, Points: pt(b.MinX, b.MinY)},
		{Op: text.OutlineOpLineTo, Points: pt(b.MaxX, b.MinY)},
		{Op: text.OutlineOpLineTo, Points: pt(b.MaxX, b.MaxY)},
		{Op: text.OutlineOpLineTo, Points: pt(b.MinX, b.MaxY)},
	}}
}

func (f *blockFont) Kern(uint16, uint16, float64) float64 { return 0 }

func (f *blockFont) Metrics(ppem float64) text.FontMetrics {
	return text.FontMetrics{Ascent: 0.8 * ppem, Descent: 0.2 * ppem}
}

// blockFonts returns a font set of synthetic block fonts, in order.
func blockFonts(t testing.TB, repertoires ...string) *text.FontSet {
	t.Helper()
	var srcs []*text.FontSource
	for _, r := range repertoires {
		src, err := text.NewFontSource([]byte(r), text.WithParser("block"))
		if err != nil {
			t.Fatalf("NewFontSource(%q) error: %v", r, err)
		}
		srcs = append(srcs, src)
	}
	return text.NewFontSet(srcs)
}
