package text

import (
	"bytes"
	"errors"
	"math"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/imagekit/internal/cache"
)

// errShapingCollection reports font collections, which the shaping
// kerner does not parse.
var errShapingCollection = errors.New("text: shaping kerner does not support font collections")

// pairKey identifies a shaped kerning pair.
type pairKey struct {
	font        uint64
	left, right rune
	size        float64
}

// shapingKerner measures pair kerning with go-text/typesetting's HarfBuzz
// shaper. The adjustment is the difference between the advance of the left
// glyph shaped together with its neighbour and shaped alone, which picks up
// GPOS pair positioning that the 'kern' table path cannot see.
//
// shapingKerner is safe for concurrent use. It caches parsed font.Font
// objects (which are thread-safe) per FontSource and creates a font.Face per
// shaping call (font.Face is NOT safe for concurrent use). HarfbuzzShaper
// instances are pooled since they are not concurrent-safe either.
type shapingKerner struct {
	shaperPool sync.Pool

	mu        sync.RWMutex
	fontCache map[uint64]*font.Font

	pairs *cache.ShardedCache[pairKey, float64]
}

func newShapingKerner(capacity int) *shapingKerner {
	return &shapingKerner{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		fontCache: make(map[uint64]*font.Font),
		pairs:     cache.NewSharded[pairKey, float64](capacity),
	}
}

// Kern implements Kerner.
func (k *shapingKerner) Kern(src *FontSource, left, right PositionedGlyph, size float64) float64 {
	key := pairKey{font: src.ID(), left: left.Rune, right: right.Rune, size: size}
	return k.pairs.GetOrCreate(key, func() float64 {
		return k.measure(src, left.Rune, right.Rune, size)
	})
}

// measure shapes "left right" and "left" and compares the left advances.
func (k *shapingKerner) measure(src *FontSource, left, right rune, size float64) float64 {
	f, err := k.font(src)
	if err != nil {
		slogger().Debug("shaping kerner: falling back to kern table", "font", src.Name(), "err", err)
		parsed := src.Parsed()
		if parsed == nil {
			return 0
		}
		return parsed.Kern(parsed.GlyphIndex(left), parsed.GlyphIndex(right), size)
	}

	pair := k.shape(f, []rune{left, right}, size)
	if len(pair) != 2 {
		// Ligature or decomposition: there is no pair to adjust.
		return 0
	}
	single := k.shape(f, []rune{left}, size)
	if len(single) != 1 {
		return 0
	}

	return fixedToFloat(pair[0].Advance - single[0].Advance)
}

func (k *shapingKerner) shape(f *font.Font, runes []rune, size float64) []shaping.Glyph {
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(f),
		Size:      fixed.Int26_6(math.Round(size * 64)),
		Script:    language.LookupScript(runes[0]),
		Language:  language.NewLanguage("en"),
	}

	hb := k.shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	k.shaperPool.Put(hb)
	return out.Glyphs
}

// font returns a cached go-text font.Font for src, parsing it on first use.
func (k *shapingKerner) font(src *FontSource) (*font.Font, error) {
	id := src.ID()

	k.mu.RLock()
	f, ok := k.fontCache[id]
	k.mu.RUnlock()
	if ok {
		return f, nil
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if f, ok := k.fontCache[id]; ok {
		return f, nil
	}

	data := src.Data()
	if bytes.HasPrefix(data, collectionTag) {
		return nil, errShapingCollection
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	k.fontCache[id] = face.Font
	return face.Font, nil
}
