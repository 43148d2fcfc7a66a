package text

import (
	"fmt"
	"image"
	"iter"
	"unicode"

	"github.com/go-text/typesetting/language"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/imagekit/internal/cache"
)

// FontSet is an ordered fallback chain of fonts.
// When laying out text it uses, per rune, the first font that has a glyph.
//
// A FontSet is built once and never modified; it is safe for concurrent use
// and meant to be shared by pointer across all workers of a run. The glyph
// mask and kerning caches it owns are internally synchronized.
type FontSet struct {
	sources []*FontSource
	kerner  Kerner
	masks   *cache.ShardedCache[maskKey, *image.Alpha]
	config  setConfig
}

// NewFontSet creates a FontSet. The first source is the primary font: it
// defines the baseline and provides the replacement glyph.
// Nil sources are skipped. An empty set is valid and lays out nothing.
func NewFontSet(sources []*FontSource, opts ...SetOption) *FontSet {
	config := defaultSetConfig()
	for _, opt := range opts {
		opt(&config)
	}

	kept := make([]*FontSource, 0, len(sources))
	for _, src := range sources {
		if src != nil {
			kept = append(kept, src)
		}
	}

	return &FontSet{
		sources: kept,
		kerner:  newKerner(config.kerning, config.pairCache),
		masks:   cache.NewSharded[maskKey, *image.Alpha](config.maskCache),
		config:  config,
	}
}

// Len returns the number of fonts in the set.
func (s *FontSet) Len() int {
	return len(s.sources)
}

// Primary returns the primary font, or nil for an empty set.
func (s *FontSet) Primary() *FontSource {
	if len(s.sources) == 0 {
		return nil
	}
	return s.sources[0]
}

// Sources returns a copy of the fallback chain in priority order.
func (s *FontSet) Sources() []*FontSource {
	out := make([]*FontSource, len(s.sources))
	copy(out, s.sources)
	return out
}

// Kerning returns the kerning mode of the set.
func (s *FontSet) Kerning() Kerning {
	return s.config.kerning
}

// Resolve returns the font and glyph that render r.
// missing is true when no font has a glyph and the primary font's
// replacement glyph is returned. An empty set returns (nil, 0, true).
func (s *FontSet) Resolve(r rune) (src *FontSource, gid uint16, missing bool) {
	for _, src := range s.sources {
		if src.HasGlyph(r) {
			return src, src.GlyphIndex(r), false
		}
	}
	if len(s.sources) == 0 {
		return nil, 0, true
	}
	primary := s.sources[0]
	return primary, primary.ReplacementGlyph(), true
}

// Layout holds the glyphs and ink metrics of one string at one size.
type Layout struct {
	// Text is the laid-out string after normalization.
	Text string

	// Size is the point size of the layout.
	Size float64

	// Glyphs are the positioned glyphs in logical order.
	Glyphs []PositionedGlyph

	// Metrics is the union ink box of all glyphs.
	Metrics TextMetrics

	// Advance is the final caret position.
	Advance float64

	// Missing lists runes rendered with the replacement glyph.
	Missing []rune

	set *FontSet
}

// Layout positions str at the given point size.
//
// The caret starts at 0 and the baseline sits at the primary font's ascent.
// Kerning between two glyphs is looked up in the font of the left glyph.
// An empty string, a string of control characters only, a non-positive
// size or an empty set yield a Layout with zero metrics.
func (s *FontSet) Layout(str string, size float64) *Layout {
	l := &Layout{Text: str, Size: size, set: s}
	if len(s.sources) == 0 || str == "" || size <= 0 {
		return l
	}
	if s.config.normalize {
		str = norm.NFC.String(str)
		l.Text = str
	}

	primary := s.sources[0].Parsed()
	if primary == nil {
		return l
	}
	baseline := primary.Metrics(size).Ascent

	var (
		caret float64
		ink   image.Rectangle
	)
	for _, r := range str {
		if unicode.IsControl(r) {
			continue
		}

		src, gid, missing := s.Resolve(r)
		parsed := src.Parsed()
		if parsed == nil {
			continue
		}

		g := PositionedGlyph{
			Source:  src,
			GID:     GlyphID(gid),
			Rune:    r,
			Size:    size,
			Missing: missing,
		}
		if n := len(l.Glyphs); n > 0 {
			prev := l.Glyphs[n-1]
			caret += s.kerner.Kern(prev.Source, prev, g, size)
		}

		g.X, g.Y = caret, baseline
		g.Advance = parsed.GlyphAdvance(gid, size)
		g.Bounds = parsed.GlyphBounds(gid, size)
		caret += g.Advance

		if missing {
			l.Missing = append(l.Missing, r)
			slogger().Debug("no glyph in font set",
				"rune", fmt.Sprintf("U+%04X", r),
				"script", language.LookupScript(r),
				"fonts", len(s.sources))
		}

		ink = ink.Union(g.PixelBounds())
		l.Glyphs = append(l.Glyphs, g)
	}

	l.Advance = caret
	if !ink.Empty() {
		// Text is drawn with the top of the line at the anchor y, so the
		// height runs from that edge down to the lowest ink row.
		l.Metrics = TextMetrics{
			Width:   ink.Dx(),
			Height:  ink.Max.Y - min(ink.Min.Y, 0),
			OffsetX: ink.Min.X,
		}
	}
	return l
}

// Coverage iterates over the ink of every glyph in layout space, glyph by
// glyph in logical order. Pixels where glyphs overlap are yielded once per
// glyph.
func (l *Layout) Coverage() iter.Seq2[image.Point, float64] {
	return func(yield func(image.Point, float64) bool) {
		if l == nil || l.set == nil || l.Metrics.Empty() {
			return
		}
		for _, g := range l.Glyphs {
			for p, c := range l.set.Mask(g).Coverage() {
				if !yield(p, c) {
					return
				}
			}
		}
	}
}
