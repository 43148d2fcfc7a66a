package imagekit

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// testPattern returns an opaque image with enough detail for lossy codecs
// to have something to throw away.
func testPattern(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / max(w-1, 1)),
				G: uint8(y * 255 / max(h-1, 1)),
				B: uint8((x*7 + y*13) % 256),
				A: 255,
			})
		}
	}
	return img
}

func TestPNGCompression(t *testing.T) {
	tests := []struct {
		q    Quality
		want png.CompressionLevel
	}{
		{1, png.BestSpeed},
		{50, png.BestSpeed},
		{51, png.DefaultCompression},
		{99, png.DefaultCompression},
		{100, png.BestCompression},
	}
	for _, tt := range tests {
		if got := PNGCompression(tt.q); got != tt.want {
			t.Errorf("PNGCompression(%d) = %v, want %v", tt.q, got, tt.want)
		}
	}
}

func TestEncodeLosslessRoundTrip(t *testing.T) {
	src := testPattern(37, 23)

	for _, f := range []Format{FormatPNG, FormatBMP, FormatTIFF} {
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, src, f, MaxQuality); err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			got, _, err := Decode(&buf)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if got.Rect != src.Rect {
				t.Fatalf("bounds = %v, want %v", got.Rect, src.Rect)
			}
			if !bytes.Equal(got.Pix, src.Pix) {
				t.Error("decoded pixels differ from the source")
			}
		})
	}
}

func TestEncodeJPEGSizeDecreasesWithQuality(t *testing.T) {
	src := testPattern(128, 96)

	prev := -1
	for q := 100; q >= 6; q /= 2 {
		var buf bytes.Buffer
		if err := Encode(&buf, src, FormatJPEG, Quality(q)); err != nil {
			t.Fatalf("Encode(q=%d) error: %v", q, err)
		}
		if prev >= 0 && buf.Len() > prev {
			t.Errorf("quality %d produced %d bytes, more than %d at twice the quality", q, buf.Len(), prev)
		}
		prev = buf.Len()
	}
}

func TestEncodeRejectsInvalidQuality(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, testPattern(2, 2), FormatJPEG, 0)
	if !errors.Is(err, ErrInvalidQuality) {
		t.Errorf("Encode(q=0) error = %v, want ErrInvalidQuality", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes before rejecting quality", buf.Len())
	}
}

func TestEncodeAutoFails(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testPattern(2, 2), FormatAuto, DefaultQuality); err == nil {
		t.Error("Encode(FormatAuto) succeeded")
	}
}

func TestSaveCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "out.jpg")

	got, err := Save(path, testPattern(8, 8), FormatPNG, DefaultQuality)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	want := filepath.Join(dir, "a", "b", "out.png")
	if got != want {
		t.Errorf("Save() path = %q, want %q", got, want)
	}

	f, err := os.Open(got)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("written file is not a PNG: %v", err)
	}
}

func TestSaveUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.webp")

	_, err := Save(path, testPattern(4, 4), FormatAuto, DefaultQuality)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("Save() error = %v, want ErrUnknownFormat", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file was created for an unknown format: %v", err)
	}
}
