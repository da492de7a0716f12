//go:build !js && !wasm

package console

import (
	"log/slog"
	"os"
)

func newPlatformHandler(level slog.Leveler) slog.Handler {
	return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level, ReplaceAttr: renameLevels})
}

// renameLevels prints TRACE instead of slog's "DEBUG-4".
func renameLevels(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey && len(groups) == 0 {
		if lv, ok := a.Value.Any().(slog.Level); ok && lv == LevelTrace {
			a.Value = slog.StringValue("TRACE")
		}
	}
	return a
}
