package text

import "sync"

// FontParser is an interface for font parsing backends.
// This abstraction allows swapping the font parsing library
// (e.g., golang.org/x/image/font/opentype vs a pure Go implementation).
//
// The default implementation uses golang.org/x/image/font/opentype.
type FontParser interface {
	// Parse parses font data (TTF, OTF, or a TTC/OTC collection) and
	// returns a ParsedFont.
	Parse(data []byte, opts ParseOptions) (ParsedFont, error)
}

// ParseOptions configures a single Parse call.
type ParseOptions struct {
	// Index selects the face inside a font collection.
	// Ignored for single-face fonts.
	Index int

	// Hinting is applied to metrics, advances, kerning and outlines.
	Hinting Hinting
}

// ParsedFont represents a parsed font file.
// This interface abstracts the underlying font representation.
//
// Implementations must be safe for concurrent use: a single ParsedFont is
// shared by every worker of a batch run.
type ParsedFont interface {
	// Name returns the font family name.
	// Returns empty string if not available.
	Name() string

	// FullName returns the full font name.
	// Returns empty string if not available.
	FullName() string

	// NumGlyphs returns the number of glyphs in the font.
	NumGlyphs() int

	// UnitsPerEm returns the units per em for the font.
	UnitsPerEm() int

	// GlyphIndex returns the glyph index for a rune.
	// Returns 0 if the glyph is not found.
	GlyphIndex(r rune) uint16

	// GlyphAdvance returns the advance width for a glyph at the given size.
	GlyphAdvance(glyphIndex uint16, ppem float64) float64

	// GlyphBounds returns the bounding box for a glyph at the given size,
	// relative to the glyph origin on the baseline.
	GlyphBounds(glyphIndex uint16, ppem float64) Rect

	// GlyphOutline returns the glyph outline scaled to ppem, in pixels
	// relative to the glyph origin with Y growing downwards.
	GlyphOutline(glyphIndex uint16, ppem float64) *GlyphOutline

	// Kern returns the horizontal adjustment between two glyphs.
	Kern(left, right uint16, ppem float64) float64

	// Metrics returns the font metrics at the given size.
	Metrics(ppem float64) FontMetrics
}

// parserRegistry holds registered font parsers.
// The default parser is "ximage" (golang.org/x/image).
var (
	parserMu       sync.RWMutex
	parserRegistry = map[string]FontParser{
		"ximage": &ximageParser{},
	}
)

// defaultParserName is the name of the default parser.
const defaultParserName = "ximage"

// RegisterParser registers a custom font parser.
// This allows users to provide their own parsing implementation.
func RegisterParser(name string, parser FontParser) {
	parserMu.Lock()
	defer parserMu.Unlock()
	parserRegistry[name] = parser
}

// getParser returns the parser by name, or the default if not found.
func getParser(name string) FontParser {
	parserMu.RLock()
	defer parserMu.RUnlock()
	if p, ok := parserRegistry[name]; ok {
		return p
	}
	return parserRegistry[defaultParserName]
}
