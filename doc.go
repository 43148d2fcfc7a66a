// Package imagekit batch-processes raster images: it resizes them,
// stamps a text watermark and re-encodes them at a chosen quality.
//
// # Quick Start
//
//	src, err := text.NewFontSource(goregular.TTF)
//	if err != nil {
//	    return err
//	}
//	fonts := text.NewFontSet([]*text.FontSource{src})
//
//	p := imagekit.NewProcessor(fonts,
//	    imagekit.WithResize(1200, 0),
//	    imagekit.WithWatermark(imagekit.DefaultWatermark("© 2026 ACME")),
//	    imagekit.WithQuality(85))
//
//	report, err := p.Run("photos", "out")
//
// # Watermarks
//
// A watermark is laid out with a [text.FontSet], a fallback chain of fonts
// consulted per character, so one line may mix scripts. When the text is
// wider or taller than the image minus padding, its size shrinks once to
// fit ([FitScale]). It is then placed at one of nine anchors
// ([Anchor.Resolve]) and blended into the pixels by glyph coverage
// ([Composite]).
//
// # Encoding
//
// The output format is either forced ([WithFormat]), in which case the
// file extension is rewritten, or taken from the extension. JPEG receives
// the quality directly. PNG maps it to a compression effort. GIF, BMP and
// TIFF ignore it.
//
// # Concurrency
//
// Images are processed in parallel, one per worker. The font set is
// shared read-only; each image owns its pixel buffer. A failure in one
// image is recorded in its [Result] and does not stop the batch.
package imagekit

// Version is the current version of imagekit.
const Version = "0.1.0"
