//go:build !dev

package runtime

import (
	"fmt"

	"github.com/vcrobe/nojs-html/console"
)

// callLifecycle invokes a component method in production mode.
// Panics are recovered and logged to keep the application running.
func callLifecycle(log *console.Logger, c Component, phase string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error(fmt.Sprintf("%s panic", phase), "component", componentName(c), "panic", rec)
		}
	}()
	fn()
}

func componentName(c Component) string { return fmt.Sprintf("%T", c) }
