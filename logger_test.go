package retouch

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

func TestNopHandlerDisabled(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("nopHandler.Handle() = %v, want nil", err)
	}
	if _, ok := h.WithAttrs(nil).(nopHandler); !ok {
		t.Error("nopHandler.WithAttrs() did not return a nopHandler")
	}
	if _, ok := h.WithGroup("g").(nopHandler); !ok {
		t.Error("nopHandler.WithGroup() did not return a nopHandler")
	}
}

func TestSetLoggerAndDefault(t *testing.T) {
	defer SetLogger(nil)

	if Logger() == nil {
		t.Fatal("default Logger() is nil")
	}

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	Logger().Info("hello")
	if buf.Len() == 0 {
		t.Error("configured logger received no output")
	}

	// nil restores the silent default.
	SetLogger(nil)
	before := buf.Len()
	Logger().Info("silent")
	if buf.Len() != before {
		t.Error("SetLogger(nil) did not restore the silent default")
	}
}

type loggerRecordingBackend struct {
	fakeBackend
	logger *slog.Logger
}

func (b *loggerRecordingBackend) SetLogger(l *slog.Logger) { b.logger = l }

func TestSetLoggerPropagatesToBackend(t *testing.T) {
	defer SetLogger(nil)

	b := &loggerRecordingBackend{}
	if err := RegisterBackend(b); err != nil {
		t.Fatalf("RegisterBackend: %v", err)
	}
	if b.logger == nil {
		t.Error("registration did not propagate the logger")
	}

	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(l)
	if b.logger != l {
		t.Error("SetLogger did not propagate to the registered backend")
	}
}
