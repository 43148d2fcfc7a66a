package imagekit

// ProcessorOption configures a Processor during creation.
//
// Example:
//
//	p := imagekit.NewProcessor(fonts,
//	    imagekit.WithResize(800, 0),
//	    imagekit.WithWatermark(imagekit.DefaultWatermark("© ACME")),
//	    imagekit.WithQuality(90))
type ProcessorOption func(*processorOptions)

// processorOptions holds optional configuration for Processor creation.
type processorOptions struct {
	width, height int
	watermark     Watermark
	format        Format
	quality       Quality
	workers       int
}

// defaultOptions returns the default processor options: no resize, no
// watermark text, format from extension, DefaultQuality, GOMAXPROCS workers.
func defaultOptions() processorOptions {
	return processorOptions{
		watermark: DefaultWatermark(""),
		format:    FormatAuto,
		quality:   DefaultQuality,
	}
}

// WithResize sets the target size. Zero on one side keeps the aspect
// ratio; zero on both disables resizing.
func WithResize(width, height int) ProcessorOption {
	return func(o *processorOptions) {
		o.width, o.height = max(width, 0), max(height, 0)
	}
}

// WithWatermark sets the watermark stamped on every image.
func WithWatermark(w Watermark) ProcessorOption {
	return func(o *processorOptions) {
		o.watermark = w
	}
}

// WithFormat forces the output format. FormatAuto keeps the format of
// each input file's extension.
func WithFormat(f Format) ProcessorOption {
	return func(o *processorOptions) {
		o.format = f
	}
}

// WithQuality sets the encoder quality. Values outside 1..100 are ignored.
func WithQuality(q Quality) ProcessorOption {
	return func(o *processorOptions) {
		if q.Valid() {
			o.quality = q
		}
	}
}

// WithWorkers sets the number of images processed at once.
// Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) ProcessorOption {
	return func(o *processorOptions) {
		o.workers = n
	}
}
