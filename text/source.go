package text

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
)

// replacementChar is the Unicode replacement character, preferred over
// .notdef when a rune has no glyph in any font of a set.
const replacementChar = '\uFFFD'

// sourceIDs hands out process-unique FontSource identifiers.
var sourceIDs atomic.Uint64

// FontSource represents a loaded font file.
// FontSource is heavyweight and should be shared across the application:
// create it once and hand the same pointer to every worker.
//
// FontSource is safe for concurrent use.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection (Ebitengine pattern).
	// It must point to the FontSource itself.
	addr *FontSource

	// Font data
	data   []byte
	parsed ParsedFont // Abstracted font interface (pluggable backend)

	// Metadata
	id          uint64
	name        string
	replacement uint16

	// Mutex protects Close against concurrent readers.
	mu sync.RWMutex

	// coverage memoizes HasGlyph lookups.
	coverage *RuneToBoolMap

	// Configuration
	config sourceConfig
}

// NewFontSource creates a FontSource from font data (TTF, OTF, TTC or OTC).
// The data slice is copied internally and can be reused after this call.
//
// Options can be used to configure the parser backend, collection index
// and hinting.
func NewFontSource(data []byte, opts ...SourceOption) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	// Apply options first to get parser name
	config := defaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Copy the data
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	// Get parser and parse the font
	parser := getParser(config.parserName)
	parsed, err := parser.Parse(dataCopy, ParseOptions{
		Index:   config.collectionIndex,
		Hinting: config.hinting,
	})
	if err != nil {
		return nil, err
	}

	s := &FontSource{
		data:     dataCopy,
		parsed:   parsed,
		id:       sourceIDs.Add(1),
		coverage: NewRuneToBoolMap(),
		config:   config,
	}
	s.addr = s // Self-reference for copy detection

	s.name = extractFontName(parsed)
	s.replacement = parsed.GlyphIndex(replacementChar)

	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string, opts ...SourceOption) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}

	s, err := NewFontSource(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ID returns a process-unique identifier of the source.
func (s *FontSource) ID() uint64 {
	s.copyCheck()
	return s.id
}

// Name returns the font name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// Parsed returns the parsed font for advanced operations.
func (s *FontSource) Parsed() ParsedFont {
	s.copyCheck()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.parsed
}

// Data returns the raw font bytes. The slice must not be modified.
func (s *FontSource) Data() []byte {
	s.copyCheck()
	return s.data
}

// HasGlyph reports whether the font maps r to a real glyph.
func (s *FontSource) HasGlyph(r rune) bool {
	s.copyCheck()
	if has, checked := s.coverage.Get(r); checked {
		return has
	}
	has := s.GlyphIndex(r) != 0
	s.coverage.Set(r, has)
	return has
}

// GlyphIndex returns the glyph index for r, or 0 if the font has none.
func (s *FontSource) GlyphIndex(r rune) uint16 {
	parsed := s.Parsed()
	if parsed == nil {
		return 0
	}
	return parsed.GlyphIndex(r)
}

// ReplacementGlyph returns the glyph drawn for runes no font can render:
// the font's U+FFFD glyph when present, otherwise .notdef (0).
func (s *FontSource) ReplacementGlyph() uint16 {
	s.copyCheck()
	return s.replacement
}

// Close releases resources associated with the FontSource.
// Layouts produced after Close are empty.
func (s *FontSource) Close() error {
	s.copyCheck()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = nil
	s.parsed = nil
	s.coverage.Clear()

	return nil
}

// copyCheck panics if FontSource was copied by value.
// This is the Ebitengine pattern for preventing accidental copies.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}

// extractFontName extracts the font family name from the parsed font.
func extractFontName(parsed ParsedFont) string {
	if name := parsed.Name(); name != "" {
		return name
	}

	if fullName := parsed.FullName(); fullName != "" {
		return fullName
	}

	return "Unknown Font"
}
