package text

import (
	"image"
	"iter"
	"math"

	"golang.org/x/image/vector"
)

// maskKey identifies a rasterized glyph. Only the fractional part of the
// glyph origin changes the coverage, so whole-pixel moves share a mask.
type maskKey struct {
	font   uint64
	gid    GlyphID
	size   float64
	fx, fy float64
}

// GlyphMask is the antialiased coverage of one positioned glyph.
// Alpha.Rect is expressed in layout space. Alpha is shared with the mask
// cache and must not be modified.
type GlyphMask struct {
	Alpha *image.Alpha
}

// Bounds returns the pixel rectangle covered by the mask.
func (m GlyphMask) Bounds() image.Rectangle {
	if m.Alpha == nil {
		return image.Rectangle{}
	}
	return m.Alpha.Rect
}

// Coverage iterates over every pixel with non-zero coverage, yielding its
// layout-space position and ink density in (0, 1].
func (m GlyphMask) Coverage() iter.Seq2[image.Point, float64] {
	return func(yield func(image.Point, float64) bool) {
		if m.Alpha == nil {
			return
		}
		b := m.Alpha.Rect
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := m.Alpha.Pix[(y-b.Min.Y)*m.Alpha.Stride:]
			for x := range b.Dx() {
				a := row[x]
				if a == 0 {
					continue
				}
				if !yield(image.Pt(b.Min.X+x, y), float64(a)/255) {
					return
				}
			}
		}
	}
}

// Mask returns the coverage mask of g. Glyphs without ink yield an empty
// mask. Masks are cached by font, glyph, size and sub-pixel offset.
func (s *FontSet) Mask(g PositionedGlyph) GlyphMask {
	if g.Source == nil || g.Bounds.Empty() {
		return GlyphMask{}
	}

	ix, iy := math.Floor(g.X), math.Floor(g.Y)
	key := maskKey{
		font: g.Source.ID(),
		gid:  g.GID,
		size: g.Size,
		fx:   g.X - ix,
		fy:   g.Y - iy,
	}

	local := s.masks.GetOrCreate(key, func() *image.Alpha {
		parsed := g.Source.Parsed()
		if parsed == nil {
			return nil
		}
		box := g.Bounds.Pixels(key.fx, key.fy)
		return rasterize(parsed.GlyphOutline(uint16(g.GID), g.Size), box, float32(key.fx), float32(key.fy))
	})
	if local == nil {
		return GlyphMask{}
	}

	// Shift the shared pixels into layout space without copying them.
	return GlyphMask{Alpha: &image.Alpha{
		Pix:    local.Pix,
		Stride: local.Stride,
		Rect:   local.Rect.Add(image.Pt(int(ix), int(iy))),
	}}
}

// CacheStats reports glyph mask cache usage.
func (s *FontSet) CacheStats() (hits, misses uint64, entries int) {
	st := s.masks.Stats()
	return st.Hits, st.Misses, st.Len
}

// rasterize fills box with the coverage of o drawn at origin (dx, dy).
func rasterize(o *GlyphOutline, box image.Rectangle, dx, dy float32) *image.Alpha {
	mask := image.NewAlpha(box)
	if o.IsEmpty() || box.Empty() {
		return mask
	}

	z := vector.NewRasterizer(box.Dx(), box.Dy())
	ox := dx - float32(box.Min.X)
	oy := dy - float32(box.Min.Y)

	open := false
	for _, seg := range o.Segments {
		p := seg.Points
		switch seg.Op {
		case OutlineOpMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(p[0].X+ox, p[0].Y+oy)
			open = true
		case OutlineOpLineTo:
			z.LineTo(p[0].X+ox, p[0].Y+oy)
		case OutlineOpQuadTo:
			z.QuadTo(p[0].X+ox, p[0].Y+oy, p[1].X+ox, p[1].Y+oy)
		case OutlineOpCubicTo:
			z.CubeTo(p[0].X+ox, p[0].Y+oy, p[1].X+ox, p[1].Y+oy, p[2].X+ox, p[2].Y+oy)
		}
	}
	if open {
		z.ClosePath()
	}

	z.Draw(mask, box, image.Opaque, image.Point{})
	return mask
}
