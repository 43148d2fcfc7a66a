package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrCollectionIndex is returned when a font collection has no face at
	// the requested index.
	ErrCollectionIndex = errors.New("text: collection index out of range")
)
