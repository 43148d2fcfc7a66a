package imagekit

import (
	"image"
	"testing"

	"github.com/gogpu/imagekit/text"
)

func TestDrawableArea(t *testing.T) {
	tests := []struct {
		img     image.Point
		padding int
		want    image.Point
	}{
		{image.Pt(100, 50), 10, image.Pt(80, 30)},
		{image.Pt(100, 50), 0, image.Pt(100, 50)},
		{image.Pt(15, 15), 10, image.Pt(0, 0)},
		{image.Pt(100, 50), -4, image.Pt(100, 50)},
	}
	for _, tt := range tests {
		if got := DrawableArea(tt.img, tt.padding); got != tt.want {
			t.Errorf("DrawableArea(%v, %d) = %v, want %v", tt.img, tt.padding, got, tt.want)
		}
	}
}

func TestFitScaleKeepsFittingSize(t *testing.T) {
	fonts := goRegular(t)

	size, l := FitScale(fonts, "ok", 24, image.Pt(1000, 1000))
	if size != 24 {
		t.Errorf("FitScale() size = %v, want 24", size)
	}
	if l.Size != 24 || l.Metrics.Empty() {
		t.Errorf("layout = size %v metrics %+v", l.Size, l.Metrics)
	}
}

func TestFitScaleShrinks(t *testing.T) {
	fonts := goRegular(t)
	const s = "This text is definitely too long"

	size, l := FitScale(fonts, s, 40, image.Pt(80, 30))
	if size >= 40 || size < MinFontSize {
		t.Fatalf("FitScale() size = %v, want in [1, 40)", size)
	}
	if size != float64(int(size)) {
		t.Errorf("FitScale() size = %v, want a whole number", size)
	}
	if l.Size != size {
		t.Errorf("layout size = %v, want %v", l.Size, size)
	}
	// A single pass may miss by a pixel or two.
	if l.Metrics.Width > 82 || l.Metrics.Height > 32 {
		t.Errorf("shrunk text is %dx%d, area 80x30", l.Metrics.Width, l.Metrics.Height)
	}
}

func TestFitScaleBounds(t *testing.T) {
	fonts := goRegular(t)
	texts := []string{"", " ", "W", "imagekit", "wide wide wide wide wide wide"}
	areas := []image.Point{{0, 0}, {-5, 10}, {1, 1}, {10, 200}, {200, 10}, {4000, 4000}}
	sizes := []float64{1, 7, 24, 96}

	for _, s := range texts {
		for _, area := range areas {
			for _, req := range sizes {
				got, l := FitScale(fonts, s, req, area)
				if got > req || got < 1 {
					t.Errorf("FitScale(%q, %v, %v) = %v, want in [1, %v]", s, req, area, got, req)
				}
				if l == nil {
					t.Fatalf("FitScale(%q) returned nil layout", s)
				}
			}
		}
	}
}

func TestFitScaleEmptySet(t *testing.T) {
	size, l := FitScale(text.NewFontSet(nil), "anything", 30, image.Pt(1, 1))
	if size != 30 || !l.Metrics.Empty() {
		t.Errorf("FitScale(empty set) = %v, %+v", size, l.Metrics)
	}
}
