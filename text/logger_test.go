package text

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultSilent(t *testing.T) {
	if slogger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}

func TestMissingGlyphIsLogged(t *testing.T) {
	orig := slogger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	NewFontSet([]*FontSource{boxSource(t, "latin")}).Layout("a世", 10)

	out := buf.String()
	if !strings.Contains(out, "no glyph in font set") || !strings.Contains(out, "U+4E16") {
		t.Errorf("log output = %q", out)
	}
}
