package imagekit

import (
	"fmt"
	"image"
	"strings"
)

// Anchor is one of the nine positions a watermark can be placed at.
type Anchor int

// Anchor positions. The zero value is NorthWest.
const (
	NorthWest Anchor = iota
	North
	NorthEast
	West
	Center
	East
	SouthWest
	South
	SouthEast
)

var anchorNames = [...]string{
	NorthWest: "nw",
	North:     "north",
	NorthEast: "ne",
	West:      "west",
	Center:    "center",
	East:      "east",
	SouthWest: "sw",
	South:     "south",
	SouthEast: "se",
}

// anchorAliases are accepted by ParseAnchor in addition to the names.
var anchorAliases = map[string]Anchor{
	"n": North,
	"w": West,
	"c": Center,
	"e": East,
	"s": South,
}

// String returns the canonical lower-case name of the anchor.
func (a Anchor) String() string {
	if a < 0 || int(a) >= len(anchorNames) {
		return fmt.Sprintf("Anchor(%d)", int(a))
	}
	return anchorNames[a]
}

// ParseAnchor parses nw, north, ne, west, center, east, sw, south or se,
// case-insensitively. Single-letter aliases n, w, c, e and s are accepted.
func ParseAnchor(s string) (Anchor, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range anchorNames {
		if n == name {
			return Anchor(i), nil
		}
	}
	if a, ok := anchorAliases[name]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("%w: %q (valid options are: %s)", ErrInvalidAnchor, s, strings.Join(anchorNames[:], ", "))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Anchor) UnmarshalText(b []byte) error {
	v, err := ParseAnchor(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (a Anchor) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Resolve returns the top-left corner at which a box of size box is drawn
// on an image of size img so that it sits at the anchor with padding
// clearance from the adjacent edges.
//
// All subtractions saturate at zero: a box larger than the image is
// placed at 0 on that axis instead of going negative. The result always
// lies within the image rectangle, even when padding exceeds the image.
func (a Anchor) Resolve(img, box image.Point, padding int) image.Point {
	iw, ih := max(img.X, 0), max(img.Y, 0)
	tw, th := max(box.X, 0), max(box.Y, 0)
	p := max(padding, 0)

	left := min(p, iw)
	hmid := satSub(iw, tw) / 2
	right := satSub(satSub(iw, tw), p)
	top := min(p, ih)
	vmid := satSub(ih, th) / 2
	bottom := satSub(satSub(ih, th), p)

	switch a {
	case NorthWest:
		return image.Pt(left, top)
	case North:
		return image.Pt(hmid, top)
	case NorthEast:
		return image.Pt(right, top)
	case West:
		return image.Pt(left, vmid)
	case Center:
		return image.Pt(hmid, vmid)
	case East:
		return image.Pt(right, vmid)
	case SouthWest:
		return image.Pt(left, bottom)
	case South:
		return image.Pt(hmid, bottom)
	default:
		return image.Pt(right, bottom)
	}
}

// satSub returns a-b, or 0 when b > a.
func satSub(a, b int) int {
	if b > a {
		return 0
	}
	return a - b
}
