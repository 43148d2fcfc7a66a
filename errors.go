package imagekit

import (
	"errors"
	"fmt"
)

// Sentinel errors for imagekit.
var (
	// ErrUnknownFormat is returned when no output format was requested and
	// the destination extension matches no known codec.
	ErrUnknownFormat = errors.New("imagekit: unknown output format")

	// ErrInvalidQuality is returned for a quality outside 1..100.
	ErrInvalidQuality = errors.New("imagekit: quality must be between 1 and 100")

	// ErrInvalidColor is returned for a malformed hex color.
	ErrInvalidColor = errors.New("imagekit: invalid hex color")

	// ErrDuplicateDestination is returned for an image whose output path
	// is already claimed by another image of the same run.
	ErrDuplicateDestination = errors.New("imagekit: duplicate output path")

	// ErrInvalidAnchor is returned for an unknown watermark position name.
	ErrInvalidAnchor = errors.New("imagekit: invalid watermark position")
)

// ImageError records a failure while processing a single image.
// The batch keeps going after an ImageError; only the named file is lost.
type ImageError struct {
	// Path is the file the operation failed on.
	Path string

	// Op is the pipeline stage: "decode", "resize", "watermark", "encode".
	Op string

	Err error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("imagekit: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}
