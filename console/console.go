// Package console is the framework's logger. In the browser records go to the
// JavaScript console; in native builds and tests they go to stderr.
package console

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
)

// Level mirrors the browser console levels plus TRACE and SILENT.
type Level = slog.Level

const (
	LevelTrace  Level = slog.LevelDebug - 4
	LevelDebug  Level = slog.LevelDebug
	LevelInfo   Level = slog.LevelInfo
	LevelWarn   Level = slog.LevelWarn
	LevelError  Level = slog.LevelError
	LevelSilent Level = slog.LevelError + 4
)

// ParseLevel converts a level name ("trace", "debug", "info", "warn",
// "error", "silent") or its numeric index 0-5 into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "0":
		return LevelTrace, nil
	case "debug", "1":
		return LevelDebug, nil
	case "info", "2", "":
		return LevelInfo, nil
	case "warn", "warning", "3":
		return LevelWarn, nil
	case "error", "4":
		return LevelError, nil
	case "silent", "5":
		return LevelSilent, nil
	}
	return LevelInfo, fmt.Errorf("invalid log level %q", s)
}

// Logger is a leveled logger whose level can be changed at run time.
type Logger struct {
	level  *slog.LevelVar
	logger *slog.Logger
}

// New creates a Logger on the platform handler (stderr natively, the
// JavaScript console under wasm).
func New(level Level) *Logger {
	lv := new(slog.LevelVar)
	lv.Set(level)
	return &Logger{level: lv, logger: slog.New(newPlatformHandler(lv))}
}

// NewWithHandler creates a Logger on top of an arbitrary slog handler.
// The handler should consult the returned logger's level via Enabled.
func NewWithHandler(h slog.Handler, level Level) *Logger {
	lv := new(slog.LevelVar)
	lv.Set(level)
	return &Logger{level: lv, logger: slog.New(&levelHandler{level: lv, next: h})}
}

// SetLevel changes the minimum level that is emitted.
func (l *Logger) SetLevel(level Level) { l.level.Set(level) }

// Level returns the current minimum level.
func (l *Logger) Level() Level { return l.level.Level() }

// With returns a logger that adds attrs to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{level: l.level, logger: l.logger.With(args...)}
}

func (l *Logger) Trace(msg string, args ...any) { l.log(LevelTrace, msg, args...) }
func (l *Logger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(LevelError, msg, args...) }

func (l *Logger) log(level Level, msg string, args ...any) {
	if l == nil || level < l.level.Level() || l.level.Level() >= LevelSilent {
		return
	}
	l.logger.Log(context.Background(), level, msg, args...)
}

// levelHandler gates an external handler with the logger's LevelVar.
type levelHandler struct {
	level *slog.LevelVar
	next  slog.Handler
}

func (h *levelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level() && h.next.Enabled(ctx, level)
}

func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.next.Handle(ctx, r)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{level: h.level, next: h.next.WithAttrs(attrs)}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{level: h.level, next: h.next.WithGroup(name)}
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(New(LevelInfo))
}

// Default returns the process logger used by the package-level functions.
func Default() *Logger { return defaultLogger.Load() }

// SetDefault replaces the process logger. Passing nil is ignored.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger.Store(l)
	}
}

// Log writes an info record on the default logger.
func Log(msg string, args ...any) { Default().Info(msg, args...) }

// Debug writes a debug record on the default logger.
func Debug(msg string, args ...any) { Default().Debug(msg, args...) }

// Warn writes a warning on the default logger.
func Warn(msg string, args ...any) { Default().Warn(msg, args...) }

// Error writes an error record on the default logger.
func Error(msg string, args ...any) { Default().Error(msg, args...) }
