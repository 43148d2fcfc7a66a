package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/imagekit"
	"github.com/gogpu/imagekit/config"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 40, A: 255})
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func decodedSize(t *testing.T, path string) image.Point {
	t.Helper()
	img, _, err := imagekit.Load(path)
	if err != nil {
		t.Fatalf("Load(%s) error = %v", path, err)
	}
	return img.Bounds().Size()
}

func TestRunResizeAndWatermark(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writePNG(t, filepath.Join(in, "a.png"), 200, 400)
	writePNG(t, filepath.Join(in, "sub", "b.png"), 300, 150)

	var stderr bytes.Buffer
	err := run([]string{
		"-input-dir", in,
		"-output-dir", out,
		"-width", "100",
		"-watermark-text", "Hello",
		"-watermark-position", "center",
		"-format", "jpg",
		"-quality", "90",
	}, &bytes.Buffer{}, &stderr)
	if err != nil {
		t.Fatalf("run() error = %v\n%s", err, stderr.String())
	}

	if got := decodedSize(t, filepath.Join(out, "a.jpg")); got != image.Pt(100, 200) {
		t.Errorf("a.jpg size = %v, want 100x200", got)
	}
	if got := decodedSize(t, filepath.Join(out, "sub", "b.jpg")); got != image.Pt(100, 50) {
		t.Errorf("sub/b.jpg size = %v, want 100x50", got)
	}
	if !strings.Contains(stderr.String(), "batch complete") {
		t.Errorf("log output missing summary:\n%s", stderr.String())
	}
}

func TestRunConfigFileWithOverride(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writePNG(t, filepath.Join(in, "a.png"), 80, 40)

	cfgPath := filepath.Join(t.TempDir(), "imagekit.yaml")
	data := "input-dir: " + in + "\noutput-dir: " + out + "\nwidth: 40\nlog-level: warn\n"
	if err := os.WriteFile(cfgPath, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	err := run([]string{"-config", cfgPath, "-height", "10", "-width", "0"}, &bytes.Buffer{}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if got := decodedSize(t, filepath.Join(out, "a.png")); got != image.Pt(20, 10) {
		t.Errorf("a.png size = %v, want 20x10", got)
	}
}

func TestRunReportsFailedImages(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writePNG(t, filepath.Join(in, "good.png"), 10, 10)
	if err := os.WriteFile(filepath.Join(in, "bad.jpg"), []byte("not a jpeg"), 0o600); err != nil {
		t.Fatal(err)
	}

	err := run([]string{"-input-dir", in, "-output-dir", out}, &bytes.Buffer{}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "1 of 2 images failed") {
		t.Fatalf("run() error = %v, want 1 of 2 failed", err)
	}
	if _, err := os.Stat(filepath.Join(out, "good.png")); err != nil {
		t.Errorf("good.png not written: %v", err)
	}
}

func TestRunSetupErrors(t *testing.T) {
	in := t.TempDir()
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing dirs", nil, "input-dir"},
		{"bad quality", []string{"-input-dir", in, "-output-dir", in, "-quality", "0"}, "quality"},
		{"bad position", []string{"-input-dir", in, "-output-dir", in, "-watermark-position", "top"}, "watermark.position"},
		{"bad color", []string{"-input-dir", in, "-output-dir", in, "-watermark-color", "xyz"}, "watermark.color"},
		{"missing font", []string{"-input-dir", in, "-output-dir", in, "-watermark-text", "x", "-font", filepath.Join(in, "none.ttf")}, "load font"},
		{"extra args", []string{"-input-dir", in, "stray"}, "unexpected arguments"},
		{"missing config", []string{"-config", filepath.Join(in, "none.yaml")}, "failed to read config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args, &bytes.Buffer{}, &bytes.Buffer{})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("run(%q) error = %v, want mention of %q", tt.args, err, tt.want)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	var stdout bytes.Buffer
	if err := run([]string{"-version"}, &stdout, &bytes.Buffer{}); err != nil {
		t.Fatalf("run(-version) error = %v", err)
	}
	if got := strings.TrimSpace(stdout.String()); got != "imagekit "+imagekit.Version {
		t.Errorf("version output = %q", got)
	}
}

func TestFlagsAppendFonts(t *testing.T) {
	f, fs, err := parseFlags([]string{"-font", "a.ttf", "-font", "b.ttc", "-input-dir", "x", "-output-dir", "y"}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(f, fs)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if got := strings.Join(cfg.Fonts, ","); got != "a.ttf,b.ttc" {
		t.Errorf("Fonts = %q", got)
	}
	if cfg.Watermark.FontSize != config.Default().Watermark.FontSize {
		t.Errorf("FontSize = %v, want default", cfg.Watermark.FontSize)
	}
}
