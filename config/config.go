// Package config loads and validates imagekit run configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/imagekit"
	"github.com/gogpu/imagekit/text"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// ConfigError represents a configuration error with context.
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// Config is a complete run configuration.
type Config struct {
	// InputDir is scanned recursively for images.
	InputDir string `yaml:"input-dir"`

	// OutputDir receives the processed images under their relative paths.
	OutputDir string `yaml:"output-dir"`

	// Width and Height are the resize target; 0 keeps the aspect ratio.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Quality is the encoder quality, 1..100.
	Quality int `yaml:"quality"`

	// Format forces an output format (jpg, png, gif, bmp, tiff).
	// Empty keeps each input's format.
	Format string `yaml:"format"`

	// Workers is the number of images processed at once; 0 uses all CPUs.
	Workers int `yaml:"workers"`

	Watermark WatermarkConfig `yaml:"watermark"`

	// Fonts are fallback font files consulted after the built-in font,
	// in order.
	Fonts []string `yaml:"fonts"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log-level"`
}

// WatermarkConfig configures the text watermark.
type WatermarkConfig struct {
	// Text is the watermark; empty disables it.
	Text string `yaml:"text"`

	// Position is one of nw, north, ne, west, center, east, sw, south, se.
	Position string `yaml:"position"`

	FontSize float64 `yaml:"font-size"`

	// Color is RRGGBB or RRGGBBAA.
	Color string `yaml:"color"`

	Padding int `yaml:"padding"`

	// Kerning is table, shaping or none.
	Kerning string `yaml:"kerning"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Quality: int(imagekit.DefaultQuality),
		Watermark: WatermarkConfig{
			Position: imagekit.DefaultAnchor.String(),
			FontSize: imagekit.DefaultFontSize,
			Color:    imagekit.FormatHexColor(imagekit.DefaultColor),
			Padding:  imagekit.DefaultPadding,
			Kerning:  text.KerningTable.String(),
		},
		LogLevel: "info",
	}
}

// Load reads a YAML configuration file on top of Default.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML data on top of Default. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks every field and returns the first problem as a
// *ConfigError.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return NewConfigError("input-dir", "required field is missing")
	}
	if c.OutputDir == "" {
		return NewConfigError("output-dir", "required field is missing")
	}
	if c.Width < 0 {
		return NewConfigError("width", fmt.Sprintf("must not be negative, got %d", c.Width))
	}
	if c.Height < 0 {
		return NewConfigError("height", fmt.Sprintf("must not be negative, got %d", c.Height))
	}
	if _, err := imagekit.NewQuality(c.Quality); err != nil {
		return &ConfigError{Field: "quality", Message: err.Error(), Err: err}
	}
	if _, err := imagekit.ParseFormat(c.Format); err != nil {
		return &ConfigError{Field: "format", Message: fmt.Sprintf("unknown format %q", c.Format), Err: err}
	}
	if c.Workers < 0 {
		return NewConfigError("workers", fmt.Sprintf("must not be negative, got %d", c.Workers))
	}
	if _, err := c.Level(); err != nil {
		return &ConfigError{Field: "log-level", Message: err.Error(), Err: err}
	}
	return c.Watermark.Validate()
}

// Validate checks the watermark settings.
func (w *WatermarkConfig) Validate() error {
	if _, err := imagekit.ParseAnchor(w.Position); err != nil {
		return &ConfigError{Field: "watermark.position", Message: err.Error(), Err: err}
	}
	if w.FontSize < 1 {
		return NewConfigError("watermark.font-size", fmt.Sprintf("must be at least 1, got %v", w.FontSize))
	}
	if _, err := imagekit.ParseHexColor(w.Color); err != nil {
		return &ConfigError{Field: "watermark.color", Message: err.Error(), Err: err}
	}
	if w.Padding < 0 {
		return NewConfigError("watermark.padding", fmt.Sprintf("must not be negative, got %d", w.Padding))
	}
	if _, err := ParseKerning(w.Kerning); err != nil {
		return &ConfigError{Field: "watermark.kerning", Message: err.Error(), Err: err}
	}
	return nil
}

// ParseKerning parses table, shaping or none. Empty selects table.
func ParseKerning(s string) (text.Kerning, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return text.KerningTable, nil
	case "shaping":
		return text.KerningShaping, nil
	case "none":
		return text.KerningNone, nil
	}
	return 0, fmt.Errorf("unknown kerning %q (valid options are: table, shaping, none)", s)
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, err
	}
	return l, nil
}

// BuildWatermark converts the watermark settings. Call Validate first.
func (c *Config) BuildWatermark() (imagekit.Watermark, error) {
	anchor, err := imagekit.ParseAnchor(c.Watermark.Position)
	if err != nil {
		return imagekit.Watermark{}, err
	}
	col, err := imagekit.ParseHexColor(c.Watermark.Color)
	if err != nil {
		return imagekit.Watermark{}, err
	}
	return imagekit.Watermark{
		Text:    c.Watermark.Text,
		Anchor:  anchor,
		Size:    c.Watermark.FontSize,
		Color:   col,
		Padding: c.Watermark.Padding,
	}, nil
}

// ProcessorOptions converts the configuration into processor options.
func (c *Config) ProcessorOptions() ([]imagekit.ProcessorOption, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	wm, err := c.BuildWatermark()
	if err != nil {
		return nil, err
	}
	format, _ := imagekit.ParseFormat(c.Format)
	return []imagekit.ProcessorOption{
		imagekit.WithResize(c.Width, c.Height),
		imagekit.WithWatermark(wm),
		imagekit.WithFormat(format),
		imagekit.WithQuality(imagekit.Quality(c.Quality)),
		imagekit.WithWorkers(c.Workers),
	}, nil
}
