package imagekit

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// TargetSize returns the size an image of size src is resized to.
//
// A positive width alone scales the height to keep the aspect ratio, a
// positive height alone scales the width, both set the exact size and
// neither keeps src. Computed sides are rounded and never below 1.
func TargetSize(src image.Point, width, height int) image.Point {
	w, h := max(width, 0), max(height, 0)
	switch {
	case src.X <= 0 || src.Y <= 0:
		return src
	case w > 0 && h > 0:
		return image.Pt(w, h)
	case w > 0:
		return image.Pt(w, scaleSide(src.Y, w, src.X))
	case h > 0:
		return image.Pt(scaleSide(src.X, h, src.Y), h)
	default:
		return src
	}
}

// scaleSide returns round(side*num/den), at least 1.
func scaleSide(side, num, den int) int {
	return max(int(math.Round(float64(side)*float64(num)/float64(den))), 1)
}

// Resize scales img to TargetSize(img size, width, height) with a
// Catmull-Rom filter. The input is returned unchanged when the size does
// not change.
func Resize(img *image.NRGBA, width, height int) *image.NRGBA {
	b := img.Bounds()
	size := TargetSize(b.Size(), width, height)
	if size == b.Size() {
		return img
	}

	dst := image.NewNRGBA(image.Rectangle{Max: size})
	draw.CatmullRom.Scale(dst, dst.Rect, img, b, draw.Src, nil)
	return dst
}
