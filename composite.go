package imagekit

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gogpu/imagekit/text"
)

// Composite blends the ink of l onto dst in color c and returns the
// number of pixels written.
//
// The layout is shifted by (origin.X - l.Metrics.OffsetX, origin.Y) so the
// leftmost ink column lands on origin.X. Every covered pixel inside
// dst.Bounds() receives c with alpha c.A*coverage composited source-over;
// pixels outside are skipped. On an opaque destination this is exactly
// dst = c*a + dst*(1-a) per channel.
//
// An empty layout or a fully transparent color leaves dst untouched.
func Composite(dst draw.Image, l *text.Layout, origin image.Point, c color.NRGBA) int {
	if l == nil || l.Metrics.Empty() || c.A == 0 {
		return 0
	}

	off := image.Pt(origin.X-l.Metrics.OffsetX, origin.Y)
	alpha := float64(c.A) / 255
	bounds := dst.Bounds()

	var plot func(x, y int, a float64)
	switch d := dst.(type) {
	case *image.NRGBA:
		plot = func(x, y int, a float64) {
			i := d.PixOffset(x, y)
			blendStraight(d.Pix[i:i+4:i+4], c, a)
		}
	case *image.RGBA:
		plot = func(x, y int, a float64) {
			i := d.PixOffset(x, y)
			blendPremul(d.Pix[i:i+4:i+4], c, a)
		}
	default:
		plot = func(x, y int, a float64) {
			n := color.NRGBAModel.Convert(dst.At(x, y)).(color.NRGBA)
			px := [4]uint8{n.R, n.G, n.B, n.A}
			blendStraight(px[:], c, a)
			dst.Set(x, y, color.NRGBA{R: px[0], G: px[1], B: px[2], A: px[3]})
		}
	}

	written := 0
	for p, cov := range l.Coverage() {
		p = p.Add(off)
		if !p.In(bounds) {
			continue
		}
		plot(p.X, p.Y, alpha*cov)
		written++
	}
	return written
}

// blendStraight composites c at alpha a over the non-premultiplied
// pixel px.
func blendStraight(px []uint8, c color.NRGBA, a float64) {
	da := float64(px[3]) / 255
	if da == 1 {
		px[0] = mix(c.R, px[0], a)
		px[1] = mix(c.G, px[1], a)
		px[2] = mix(c.B, px[2], a)
		return
	}

	oa := a + da*(1-a)
	if oa <= 0 {
		return
	}
	dw := da * (1 - a)
	px[0] = unit8((float64(c.R)*a + float64(px[0])*dw) / oa)
	px[1] = unit8((float64(c.G)*a + float64(px[1])*dw) / oa)
	px[2] = unit8((float64(c.B)*a + float64(px[2])*dw) / oa)
	px[3] = unit8(oa * 255)
}

// blendPremul composites c at alpha a over the premultiplied pixel px.
func blendPremul(px []uint8, c color.NRGBA, a float64) {
	px[0] = unit8(float64(c.R)*a + float64(px[0])*(1-a))
	px[1] = unit8(float64(c.G)*a + float64(px[1])*(1-a))
	px[2] = unit8(float64(c.B)*a + float64(px[2])*(1-a))
	px[3] = unit8(255*a + float64(px[3])*(1-a))
}

// mix returns src*a + dst*(1-a), rounded.
func mix(src, dst uint8, a float64) uint8 {
	return unit8(float64(src)*a + float64(dst)*(1-a))
}

// unit8 rounds v into 0..255.
func unit8(v float64) uint8 {
	return uint8(min(max(math.Round(v), 0), 255))
}
