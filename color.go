package imagekit

import (
	"fmt"
	"image/color"
	"strings"
)

// DefaultAlpha is the watermark opacity used when a hex color has no
// alpha component.
const DefaultAlpha = 128

// ParseHexColor parses "RRGGBB" or "RRGGBBAA", with an optional leading '#'.
// When alpha is omitted it defaults to DefaultAlpha (half-transparent).
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w %q: want 6 or 8 hex digits, got %d", ErrInvalidColor, s, len(hex))
	}

	var v [4]uint8
	v[3] = DefaultAlpha
	for i := 0; i < len(hex); i += 2 {
		hi, ok1 := hexDigit(hex[i])
		lo, ok2 := hexDigit(hex[i+1])
		if !ok1 || !ok2 {
			return color.NRGBA{}, fmt.Errorf("%w %q: non-hex digit in %q", ErrInvalidColor, s, hex[i:i+2])
		}
		v[i/2] = hi<<4 | lo
	}
	return color.NRGBA{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
}

// FormatHexColor returns c as "RRGGBBAA" in upper case.
func FormatHexColor(c color.NRGBA) string {
	return fmt.Sprintf("%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
