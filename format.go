package imagekit

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an output image format.
type Format int

// Supported output formats. FormatAuto infers the format from the
// destination file extension.
const (
	FormatAuto Format = iota
	FormatJPEG
	FormatPNG
	FormatGIF
	FormatBMP
	FormatTIFF
)

// String returns the lower-case name of the format.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	case FormatGIF:
		return "gif"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Extension returns the canonical file extension, with the leading dot,
// written for an explicitly requested format. FormatAuto has none.
func (f Format) Extension() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatPNG:
		return ".png"
	case FormatGIF:
		return ".gif"
	case FormatBMP:
		return ".bmp"
	case FormatTIFF:
		return ".tif"
	default:
		return ""
	}
}

// formatByExt maps lower-case extensions without the dot to formats.
var formatByExt = map[string]Format{
	"jpg":  FormatJPEG,
	"jpeg": FormatJPEG,
	"png":  FormatPNG,
	"gif":  FormatGIF,
	"bmp":  FormatBMP,
	"tif":  FormatTIFF,
	"tiff": FormatTIFF,
}

// ParseFormat parses a format name or extension such as "jpg", "PNG" or
// "tiff". The empty string and "auto" yield FormatAuto.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	if name == "" || name == "auto" {
		return FormatAuto, nil
	}
	if f, ok := formatByExt[name]; ok {
		return f, nil
	}
	return FormatAuto, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(b []byte) error {
	v, err := ParseFormat(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// FormatFromPath infers the format from the extension of path.
func FormatFromPath(path string) (Format, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	f, ok := formatByExt[ext]
	return f, ok
}

// ResolveDestination decides the final path and format of an output file.
//
// An explicit format rewrites the extension of path to match it, unless
// path already carries an extension of that format. FormatAuto infers the
// format from the extension and fails with ErrUnknownFormat when it is
// not recognized. Only one of the two paths is ever taken.
func ResolveDestination(path string, format Format) (string, Format, error) {
	if format == FormatAuto {
		f, ok := FormatFromPath(path)
		if !ok {
			return "", FormatAuto, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
		}
		return path, f, nil
	}

	ext := format.Extension()
	if ext == "" {
		return "", FormatAuto, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if f, ok := FormatFromPath(path); ok && f == format {
		return path, format, nil
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext, format, nil
}
