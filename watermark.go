package imagekit

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/imagekit/text"
)

// Watermark defaults.
const (
	DefaultFontSize = 24.0
	DefaultPadding  = 10
	DefaultAnchor   = SouthEast
)

// DefaultColor is half-transparent white.
var DefaultColor = color.NRGBA{R: 255, G: 255, B: 255, A: DefaultAlpha}

// Watermark describes a line of text stamped onto images.
type Watermark struct {
	// Text is the watermark string. Empty disables the watermark.
	Text string

	// Anchor is where the text sits on the image.
	Anchor Anchor

	// Size is the requested point size. It shrinks when the text does not
	// fit the image.
	Size float64

	// Color is the text color; its alpha is the overall opacity.
	Color color.NRGBA

	// Padding is the clearance from the image edges, in pixels.
	Padding int
}

// DefaultWatermark returns a watermark with the default position, size,
// color and padding, and the given text.
func DefaultWatermark(s string) Watermark {
	return Watermark{
		Text:    s,
		Anchor:  DefaultAnchor,
		Size:    DefaultFontSize,
		Color:   DefaultColor,
		Padding: DefaultPadding,
	}
}

// Placement reports where and how a watermark was drawn.
type Placement struct {
	// Size is the point size after auto-fit.
	Size float64

	// Origin is the top-left corner of the text box.
	Origin image.Point

	// Metrics is the ink box of the text at Size.
	Metrics text.TextMetrics

	// Written is the number of pixels blended.
	Written int

	// Missing lists runes no font could render.
	Missing []rune
}

// Apply draws the watermark onto dst in place: the text is laid out with
// fonts, shrunk to fit inside the padded area, anchored and blended.
// Empty text, an empty font set or an empty image leave dst untouched.
func (w Watermark) Apply(dst draw.Image, fonts *text.FontSet) Placement {
	if w.Text == "" || fonts == nil || fonts.Len() == 0 {
		return Placement{}
	}
	size := dst.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return Placement{}
	}

	scale, l := FitScale(fonts, w.Text, w.Size, DrawableArea(size, w.Padding))
	box := image.Pt(l.Metrics.Width, l.Metrics.Height)
	origin := w.Anchor.Resolve(size, box, w.Padding).Add(dst.Bounds().Min)

	written := Composite(dst, l, origin, w.Color)

	Logger().Debug("watermark applied",
		"anchor", w.Anchor,
		"size", scale,
		"origin", origin,
		"pixels", written)
	return Placement{
		Size:    scale,
		Origin:  origin,
		Metrics: l.Metrics,
		Written: written,
		Missing: l.Missing,
	}
}
