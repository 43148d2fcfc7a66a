// Package text provides font loading, glyph layout and glyph rasterization
// for imagekit watermarks.
//
// The pipeline follows a separation of concerns:
//
//   - FontSource: Heavyweight, shared font resource (parses TTF/OTF/TTC data)
//   - FontSet: Ordered fallback chain of sources, immutable after creation
//   - Layout: Positioned glyphs and ink metrics for one string at one size
//   - FontParser: Pluggable font parsing backend (default: golang.org/x/image)
//
// # Example usage
//
//	// Load fonts (do once, share across all workers)
//	latin, err := text.NewFontSource(goregular.TTF)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cjk, err := text.NewFontSourceFromFile("NotoSansCJK-Regular.ttc")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fonts := text.NewFontSet([]*text.FontSource{latin, cjk})
//
//	// Lay out a mixed-script string at 24pt
//	l := fonts.Layout("Hello 世界", 24)
//	fmt.Println(l.Metrics.Width, l.Metrics.Height)
//
//	// Walk the antialiased coverage of every glyph
//	for _, g := range l.Glyphs {
//	    for pt, cov := range fonts.Mask(g).Coverage() {
//	        _ = pt
//	        _ = cov
//	    }
//	}
//
// # Fallback
//
// For every rune the fonts of a FontSet are consulted in order and the first
// font that maps the rune to a real glyph renders it. When no font maps it,
// the primary font's replacement glyph is used (U+FFFD when the primary font
// has one, otherwise .notdef). The baseline always comes from the primary
// font so mixed-script lines stay vertically aligned.
//
// # Pluggable Parser Backend
//
// Font parsing is abstracted through the FontParser interface. By default
// golang.org/x/image/font/opentype is used. Custom parsers can be registered:
//
//	text.RegisterParser("myparser", myCustomParser)
//	source, err := text.NewFontSource(data, text.WithParser("myparser"))
package text
