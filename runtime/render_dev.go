//go:build dev

package runtime

import (
	"fmt"

	"github.com/vcrobe/nojs-html/console"
)

// callLifecycle invokes a component method in development mode.
// Panics propagate to aid debugging and fast failure.
func callLifecycle(log *console.Logger, c Component, phase string, fn func()) {
	log.Trace("component "+phase, "component", componentName(c))
	fn()
}

func componentName(c Component) string { return fmt.Sprintf("%T", c) }
