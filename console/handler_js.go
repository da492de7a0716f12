//go:build js || wasm

package console

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"syscall/js"
)

// jsHandler forwards records to the browser console object.
type jsHandler struct {
	level slog.Leveler
	attrs []slog.Attr
	group string
}

func newPlatformHandler(level slog.Leveler) slog.Handler {
	return &jsHandler{level: level}
}

func (h *jsHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *jsHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(levelName(r.Level))
	b.WriteString(": ")
	b.WriteString(r.Message)
	write := func(a slog.Attr) bool {
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		fmt.Fprintf(&b, " %s=%v", key, a.Value.Any())
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)

	method := "log"
	switch {
	case r.Level >= LevelError:
		method = "error"
	case r.Level >= LevelWarn:
		method = "warn"
	case r.Level < LevelInfo:
		method = "debug"
	}
	js.Global().Get("console").Call(method, b.String())
	return nil
}

func (h *jsHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

func (h *jsHandler) WithGroup(name string) slog.Handler {
	next := *h
	if next.group != "" {
		name = next.group + "." + name
	}
	next.group = name
	return &next
}

func levelName(l slog.Level) string {
	if l == LevelTrace {
		return "TRACE"
	}
	return l.String()
}
