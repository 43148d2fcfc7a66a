package text

// SourceOption configures FontSource creation.
type SourceOption func(*sourceConfig)

// sourceConfig holds configuration for FontSource.
type sourceConfig struct {
	parserName      string
	collectionIndex int
	hinting         Hinting
}

// defaultSourceConfig returns the default source configuration.
func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		parserName: defaultParserName,
		hinting:    HintingNone,
	}
}

// WithParser specifies the font parser backend.
// The default is "ximage" which uses golang.org/x/image/font/opentype.
//
// Custom parsers can be registered with RegisterParser.
func WithParser(name string) SourceOption {
	return func(c *sourceConfig) {
		c.parserName = name
	}
}

// WithCollectionIndex selects a face of a TTC/OTC font collection.
// The default is the first face.
func WithCollectionIndex(i int) SourceOption {
	return func(c *sourceConfig) {
		c.collectionIndex = i
	}
}

// WithHinting sets the hinting mode used for metrics, advances and kerning.
// The default is HintingNone, which keeps sub-pixel glyph positions.
func WithHinting(h Hinting) SourceOption {
	return func(c *sourceConfig) {
		c.hinting = h
	}
}

// SetOption configures FontSet creation.
type SetOption func(*setConfig)

// setConfig holds configuration for FontSet.
type setConfig struct {
	kerning   Kerning
	maskCache int
	pairCache int
	normalize bool
}

// defaultSetConfig returns the default set configuration.
func defaultSetConfig() setConfig {
	return setConfig{
		kerning:   KerningTable,
		maskCache: 256,
		pairCache: 256,
		normalize: true,
	}
}

// WithKerning selects the kerning backend. The default is KerningTable.
func WithKerning(k Kerning) SetOption {
	return func(c *setConfig) {
		c.kerning = k
	}
}

// WithMaskCacheSize sets the per-shard capacity of the glyph coverage
// cache. A value <= 0 selects the cache default.
func WithMaskCacheSize(n int) SetOption {
	return func(c *setConfig) {
		c.maskCache = n
	}
}

// WithNormalization toggles NFC normalization of laid-out strings.
// Enabled by default so decomposed accents map to precomposed glyphs.
func WithNormalization(on bool) SetOption {
	return func(c *setConfig) {
		c.normalize = on
	}
}
