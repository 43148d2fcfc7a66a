package imagekit

import (
	"image"
	"math"

	"github.com/gogpu/imagekit/text"
)

// MinFontSize is the smallest size FitScale returns.
const MinFontSize = 1.0

// DrawableArea is the image size minus padding on every side, never
// negative.
func DrawableArea(img image.Point, padding int) image.Point {
	p := max(padding, 0)
	return image.Pt(satSub(max(img.X, 0), 2*p), satSub(max(img.Y, 0), 2*p))
}

// FitScale lays s out at size and, if the text overflows area, shrinks
// the size once by the tighter of the two axis ratios, floored to a whole
// point and clamped to MinFontSize. It returns the final size and its
// layout.
//
// There is a single shrink pass: kerning and fallback fonts do not scale
// exactly linearly, so the result may sit a pixel or two off the bound.
func FitScale(fonts *text.FontSet, s string, size float64, area image.Point) (float64, *text.Layout) {
	l := fonts.Layout(s, size)
	m := l.Metrics

	aw, ah := max(area.X, 0), max(area.Y, 0)
	if m.Width <= aw && m.Height <= ah {
		return size, l
	}

	ratio := min(axisRatio(aw, m.Width), axisRatio(ah, m.Height))
	scaled := max(math.Floor(size*ratio), MinFontSize)
	if scaled >= size {
		// Only when size is already below MinFontSize.
		return size, l
	}

	Logger().Debug("watermark shrunk to fit",
		"from", size, "to", scaled,
		"width", m.Width, "height", m.Height,
		"area", area)
	return scaled, fonts.Layout(s, scaled)
}

// axisRatio returns bound/measured, or 1 when nothing was measured.
func axisRatio(bound, measured int) float64 {
	if measured <= 0 {
		return 1
	}
	return float64(bound) / float64(measured)
}
