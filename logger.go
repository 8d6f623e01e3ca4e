package retouch

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely, making
// disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that SetLogger
// can be called concurrently with logging from the render goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for retouch and all its sub-packages.
// By default the package produces no log output. Pass nil to restore the
// silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: internal diagnostics (stamp counts, dirty regions)
//   - [slog.LevelInfo]: lifecycle events (backend selected, session teardown)
//   - [slog.LevelWarn]: non-fatal issues (GPU unavailable, dropped events)
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	// Propagate to the surface backend if it accepts a logger.
	backendMu.RLock()
	b := backend
	backendMu.RUnlock()
	if b != nil {
		propagateLogger(b, l)
	}
}

// Logger returns the current logger. Sub-packages (internal/gpu, gpu/) call
// this to share the same logger configuration without import cycles.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by backends that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the logger to a backend if it implements
// loggerSetter. Called from both SetLogger and RegisterBackend so the
// backend always sees the current logger.
func propagateLogger(b SurfaceBackend, l *slog.Logger) {
	if ls, ok := b.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}
