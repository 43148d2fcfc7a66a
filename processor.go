package imagekit

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gogpu/imagekit/internal/parallel"
	"github.com/gogpu/imagekit/text"
)

// inputExts are the file extensions Discover picks up.
var inputExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// Discover returns the image files under root, matched by extension
// case-insensitively, in lexical order. Symbolic links to regular files
// are included; links to directories are not followed.
func Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !inputExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if isRegularFile(path, d) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("imagekit: scan %s: %w", root, err)
	}
	slices.Sort(files)
	return files, nil
}

func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.Type().IsRegular()
	}
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}

// Result is the outcome of processing one image.
type Result struct {
	// Source is the input path.
	Source string

	// Destination is the path written, after extension rewriting.
	// Empty when the image failed.
	Destination string

	// Format is the format written.
	Format Format

	// Size is the final image size.
	Size image.Point

	// Watermark describes the drawn watermark; zero when none was drawn.
	Watermark Placement

	// Elapsed is the wall time spent on the image.
	Elapsed time.Duration

	// Err is non-nil when the image failed; it is an *ImageError.
	Err error
}

// Report summarizes a batch run.
type Report struct {
	// Results holds one entry per discovered image that was not skipped,
	// in input order.
	Results []Result

	// Failed is the number of results with an error.
	Failed int

	// Skipped lists inputs that were not processed because no output
	// format was forced and their own format cannot be encoded.
	Skipped []string
}

// Err joins the errors of all failed images, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}

// Processor resizes, watermarks and re-encodes images.
//
// A Processor is safe for concurrent use. Its font set is shared
// read-only by all images.
type Processor struct {
	fonts *text.FontSet
	opts  processorOptions
}

// NewProcessor creates a Processor drawing watermarks with fonts.
// fonts may be nil when no watermark text is configured.
func NewProcessor(fonts *text.FontSet, opts ...ProcessorOption) *Processor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Processor{fonts: fonts, opts: o}
}

// ProcessFile runs the whole pipeline for one image: decode, resize,
// watermark and encode to dst. The extension of dst is rewritten when an
// output format is forced. The destination is resolved before the image
// is decoded, so an unwritable format fails without decoding.
func (p *Processor) ProcessFile(src, dst string) Result {
	out, format, err := ResolveDestination(dst, p.opts.format)
	if err != nil {
		return Result{Source: src, Err: &ImageError{Path: src, Op: "encode", Err: err}}
	}
	return p.process(src, out, format)
}

// process runs the pipeline for a destination already resolved.
func (p *Processor) process(src, out string, format Format) Result {
	start := time.Now()
	res := Result{Source: src}
	fail := func(op string, err error) Result {
		res.Err = &ImageError{Path: src, Op: op, Err: err}
		res.Elapsed = time.Since(start)
		return res
	}

	img, _, err := Load(src)
	if err != nil {
		return fail("decode", err)
	}

	img = Resize(img, p.opts.width, p.opts.height)
	res.Size = img.Bounds().Size()

	if p.opts.watermark.Text != "" {
		if p.fonts == nil || p.fonts.Len() == 0 {
			return fail("watermark", errors.New("no fonts loaded"))
		}
		res.Watermark = p.opts.watermark.Apply(img, p.fonts)
	}

	out, err = Save(out, img, format, p.opts.quality)
	if err != nil {
		return fail("encode", err)
	}

	res.Destination = out
	res.Format = format
	res.Elapsed = time.Since(start)
	return res
}

// Run processes every image under inputDir and writes the results to the
// same relative paths under outputDir. A failed image is recorded in the
// report and does not stop the others; the returned error is reserved for
// failures before any image is touched.
//
// Destinations are resolved before any work starts. Without a forced
// format, inputs whose format has no encoder (WebP) are skipped. When two
// inputs map to the same output file, the first in lexical order is
// written and the others fail with ErrDuplicateDestination.
func (p *Processor) Run(inputDir, outputDir string) (*Report, error) {
	files, err := Discover(inputDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("imagekit: create output directory: %w", err)
	}

	log := Logger()
	report := &Report{Results: make([]Result, len(files))}
	if len(files) == 0 {
		log.Info("no images found", "dir", inputDir)
		return report, nil
	}

	if p.opts.format == FormatAuto {
		files = slices.DeleteFunc(files, func(src string) bool {
			if _, ok := FormatFromPath(src); ok {
				return false
			}
			report.Skipped = append(report.Skipped, src)
			log.Warn("image skipped, no encoder for its format; set an output format", "path", src)
			return true
		})
		report.Results = report.Results[:len(files)]
	}

	claimed := make(map[string]string, len(files))
	jobs := make([]func(), len(files))
	for i, src := range files {
		rel, err := filepath.Rel(inputDir, src)
		if err != nil {
			rel = filepath.Base(src)
		}
		out, format, err := ResolveDestination(filepath.Join(outputDir, rel), p.opts.format)
		if err != nil {
			report.Results[i] = Result{Source: src, Err: &ImageError{Path: src, Op: "encode", Err: err}}
			continue
		}
		if first, ok := claimed[out]; ok {
			report.Results[i] = Result{Source: src, Err: &ImageError{
				Path: src,
				Op:   "encode",
				Err:  fmt.Errorf("%w: %s is already written from %s", ErrDuplicateDestination, out, first),
			}}
			continue
		}
		claimed[out] = src
		jobs[i] = func() {
			report.Results[i] = p.process(src, out, format)
		}
	}

	pool := parallel.NewWorkerPool(p.opts.workers)
	start := time.Now()
	panics := pool.ExecuteAll(jobs)
	pool.Close()

	for _, pe := range panics {
		report.Results[pe.Index] = Result{
			Source: files[pe.Index],
			Err:    &ImageError{Path: files[pe.Index], Op: "process", Err: pe},
		}
	}

	for _, res := range report.Results {
		if res.Err != nil {
			report.Failed++
			log.Warn("image failed", "path", res.Source, "err", res.Err)
			continue
		}
		log.Info("image saved",
			"src", res.Source,
			"dst", res.Destination,
			"size", fmt.Sprintf("%dx%d", res.Size.X, res.Size.Y),
			"elapsed", res.Elapsed)
	}

	attrs := []any{
		"images", len(files),
		"skipped", len(report.Skipped),
		"failed", report.Failed,
		"workers", pool.Workers(),
		"elapsed", time.Since(start),
	}
	if p.fonts != nil {
		hits, misses, entries := p.fonts.CacheStats()
		log.Debug("glyph cache", "hits", hits, "misses", misses, "entries", entries)
	}
	log.Info("batch complete", attrs...)
	return report, nil
}
