package imagekit

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// encodeFunc writes img to w in one format. q is always valid.
type encodeFunc func(w io.Writer, img image.Image, f Format, q Quality) error

// encoders holds the formats whose codec takes a quality parameter.
// Every other format goes through encodeGeneric.
var encoders = map[Format]encodeFunc{
	FormatJPEG: encodeJPEG,
	FormatPNG:  encodePNG,
}

// Encode writes img to w in format f. FormatAuto is not accepted here;
// resolve it first with ResolveDestination.
func Encode(w io.Writer, img image.Image, f Format, q Quality) error {
	if !q.Valid() {
		return fmt.Errorf("%w, got %d", ErrInvalidQuality, int(q))
	}
	enc, ok := encoders[f]
	if !ok {
		enc = encodeGeneric
	}
	if err := enc(w, img, f, q); err != nil {
		return fmt.Errorf("imagekit: encode %v: %w", f, err)
	}
	return nil
}

// Save resolves the destination of path for format f, creates any
// missing parent directories and writes img there through a buffered
// writer. It returns the path actually written.
//
// A partially written file is removed when encoding fails.
func Save(path string, img image.Image, f Format, q Quality) (string, error) {
	dst, format, err := ResolveDestination(path, f)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("imagekit: create directory: %w", err)
	}

	file, err := os.Create(filepath.Clean(dst))
	if err != nil {
		return "", fmt.Errorf("imagekit: create file: %w", err)
	}

	bw := bufio.NewWriterSize(file, 64<<10)
	err = Encode(bw, img, format, q)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		return "", err
	}

	Logger().Debug("image encoded", "path", dst, "format", format, "quality", int(q))
	return dst, nil
}

func encodeJPEG(w io.Writer, img image.Image, _ Format, q Quality) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: int(q)})
}

// PNGCompression maps a quality onto a PNG compression effort:
// 100 compresses hardest, 1..50 fastest and anything between uses the
// zlib default.
func PNGCompression(q Quality) png.CompressionLevel {
	switch {
	case q >= MaxQuality:
		return png.BestCompression
	case q <= 50:
		return png.BestSpeed
	default:
		return png.DefaultCompression
	}
}

// pngBuffers reuses PNG encoder scratch buffers across images.
var pngBuffers = &pngBufferPool{}

type pngBufferPool struct {
	pool sync.Pool
}

func (p *pngBufferPool) Get() *png.EncoderBuffer {
	b, _ := p.pool.Get().(*png.EncoderBuffer)
	return b
}

func (p *pngBufferPool) Put(b *png.EncoderBuffer) {
	p.pool.Put(b)
}

func encodePNG(w io.Writer, img image.Image, _ Format, q Quality) error {
	enc := png.Encoder{
		CompressionLevel: PNGCompression(q),
		BufferPool:       pngBuffers,
	}
	return enc.Encode(w, img)
}

// encodeGeneric handles formats without a quality axis.
func encodeGeneric(w io.Writer, img image.Image, f Format, _ Quality) error {
	switch f {
	case FormatGIF:
		return gif.Encode(w, img, &gif.Options{NumColors: 256})
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case FormatAuto:
		return errors.New("format must be resolved before encoding")
	default:
		return ErrUnknownFormat
	}
}
