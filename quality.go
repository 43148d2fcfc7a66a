package imagekit

import (
	"fmt"
	"strconv"
	"strings"
)

// Quality is an encoder quality setting in 1..100.
// A Quality obtained from NewQuality or ParseQuality is always in range,
// so encoders never need to clamp it.
type Quality int

// Quality bounds.
const (
	MinQuality     Quality = 1
	MaxQuality     Quality = 100
	DefaultQuality Quality = 85
)

// NewQuality validates q.
func NewQuality(q int) (Quality, error) {
	if q < int(MinQuality) || q > int(MaxQuality) {
		return 0, fmt.Errorf("%w, got %d", ErrInvalidQuality, q)
	}
	return Quality(q), nil
}

// ParseQuality parses a decimal quality value.
func ParseQuality(s string) (Quality, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidQuality, s)
	}
	return NewQuality(n)
}

// Valid reports whether q is in 1..100.
func (q Quality) Valid() bool {
	return q >= MinQuality && q <= MaxQuality
}
