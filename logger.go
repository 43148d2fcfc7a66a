package imagekit

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/imagekit/text"
)

// nopHandler discards every record. Enabled reports false, so attributes
// are never built while logging is off.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the active logger; workers read it while SetLogger
// may replace it.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger installs l for imagekit and its text package. Nothing is
// logged until it is called; nil switches logging off again.
//
// Log levels used by imagekit:
//   - [slog.LevelDebug]: glyph fallback misses, cache statistics
//   - [slog.LevelInfo]: images written, run summary
//   - [slog.LevelWarn]: per-image failures (the batch continues)
//
// Example:
//
//	imagekit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	text.SetLogger(l)
}

// Logger returns the logger installed by SetLogger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
