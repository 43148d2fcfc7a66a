// Command imagekit resizes and watermarks every image in a directory.
//
// Usage:
//
//	imagekit -input-dir photos -output-dir public -width 800 \
//	    -watermark-text "© ACME" -watermark-position se -quality 85
//
// Settings may also come from a YAML file given with -config; flags that
// are set explicitly override the file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/term"

	"github.com/gogpu/imagekit"
	"github.com/gogpu/imagekit/config"
	"github.com/gogpu/imagekit/text"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "imagekit:", err)
		}
		os.Exit(1)
	}
}

// fontList collects repeated -font flags.
type fontList []string

func (f *fontList) String() string { return strings.Join(*f, ",") }

func (f *fontList) Set(s string) error {
	*f = append(*f, s)
	return nil
}

type flags struct {
	configPath string
	version    bool

	inputDir, outputDir string
	width, height       int
	quality             int
	format              string
	workers             int
	fonts               fontList
	logLevel            string

	text, position, color, kerning string
	fontSize                       float64
	padding                        int
}

func parseFlags(args []string, stderr io.Writer) (*flags, *flag.FlagSet, error) {
	d := config.Default()
	f := &flags{}
	fs := flag.NewFlagSet("imagekit", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&f.configPath, "config", "", "YAML configuration file")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.StringVar(&f.inputDir, "input-dir", "", "directory scanned for images")
	fs.StringVar(&f.outputDir, "output-dir", "", "directory receiving processed images")
	fs.IntVar(&f.width, "width", 0, "target width, 0 keeps aspect ratio")
	fs.IntVar(&f.height, "height", 0, "target height, 0 keeps aspect ratio")
	fs.IntVar(&f.quality, "quality", d.Quality, "encoder quality 1-100")
	fs.StringVar(&f.format, "format", "", "force output format: jpg, png, gif, bmp, tiff")
	fs.IntVar(&f.workers, "workers", 0, "images processed at once, 0 uses all CPUs")
	fs.Var(&f.fonts, "font", "fallback font file, may be repeated")
	fs.StringVar(&f.logLevel, "log-level", d.LogLevel, "debug, info, warn or error")
	fs.StringVar(&f.text, "watermark-text", "", "watermark text, empty disables it")
	fs.StringVar(&f.position, "watermark-position", d.Watermark.Position, "nw, north, ne, west, center, east, sw, south, se")
	fs.StringVar(&f.color, "watermark-color", d.Watermark.Color, "watermark color RRGGBB or RRGGBBAA")
	fs.StringVar(&f.kerning, "kerning", d.Watermark.Kerning, "table, shaping or none")
	fs.Float64Var(&f.fontSize, "font-size", d.Watermark.FontSize, "watermark font size in pixels")
	fs.IntVar(&f.padding, "padding", d.Watermark.Padding, "watermark distance from the edges")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() > 0 {
		return nil, nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return f, fs, nil
}

// loadConfig reads the config file, if any, and applies the flags that
// were set on the command line.
func loadConfig(f *flags, fs *flag.FlagSet) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return nil, err
		}
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "input-dir":
			cfg.InputDir = f.inputDir
		case "output-dir":
			cfg.OutputDir = f.outputDir
		case "width":
			cfg.Width = f.width
		case "height":
			cfg.Height = f.height
		case "quality":
			cfg.Quality = f.quality
		case "format":
			cfg.Format = f.format
		case "workers":
			cfg.Workers = f.workers
		case "font":
			cfg.Fonts = append(cfg.Fonts, f.fonts...)
		case "log-level":
			cfg.LogLevel = f.logLevel
		case "watermark-text":
			cfg.Watermark.Text = f.text
		case "watermark-position":
			cfg.Watermark.Position = f.position
		case "watermark-color":
			cfg.Watermark.Color = f.color
		case "kerning":
			cfg.Watermark.Kerning = f.kerning
		case "font-size":
			cfg.Watermark.FontSize = f.fontSize
		case "padding":
			cfg.Watermark.Padding = f.padding
		}
	})
	return cfg, cfg.Validate()
}

// newLogger writes text to a terminal and JSON to anything else.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// loadFonts builds the font set: Go Regular first, then each fallback
// file in order.
func loadFonts(paths []string, k text.Kerning) (*text.FontSet, error) {
	primary, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load built-in font: %w", err)
	}
	sources := []*text.FontSource{primary}
	for _, p := range paths {
		src, err := text.NewFontSourceFromFile(p)
		if err != nil {
			return nil, fmt.Errorf("load font %s: %w", p, err)
		}
		sources = append(sources, src)
	}
	return text.NewFontSet(sources, text.WithKerning(k)), nil
}

func run(args []string, stdout, stderr io.Writer) error {
	f, fs, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if f.version {
		fmt.Fprintln(stdout, "imagekit", imagekit.Version)
		return nil
	}

	cfg, err := loadConfig(f, fs)
	if err != nil {
		return err
	}
	level, _ := cfg.Level()
	logger := newLogger(stderr, level)
	imagekit.SetLogger(logger)

	opts, err := cfg.ProcessorOptions()
	if err != nil {
		return err
	}

	var fonts *text.FontSet
	if cfg.Watermark.Text != "" {
		kerning, _ := config.ParseKerning(cfg.Watermark.Kerning)
		if fonts, err = loadFonts(cfg.Fonts, kerning); err != nil {
			return err
		}
		logger.Debug("fonts loaded", "count", fonts.Len(), "primary", fonts.Primary().Name())
	}

	report, err := imagekit.NewProcessor(fonts, opts...).Run(cfg.InputDir, cfg.OutputDir)
	if err != nil {
		return err
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d of %d images failed", report.Failed, len(report.Results))
	}
	return nil
}
