package markup

import (
	"fmt"
	"strings"

	"github.com/vcrobe/nojs-html/events"
)

// HTML compiles segments and values into markup. It never fails: a value
// count mismatch or an event directive whose value cannot handle events is
// reported and compilation continues.
func (e *Engine) HTML(segments []string, values ...any) string {
	id := e.ids.NewID()
	if len(segments) > 0 && len(values) != len(segments)-1 {
		e.report(&Error{
			Op:      "compile",
			Kind:    KindConfig,
			Subject: id,
			Err:     fmt.Errorf("%w: %d segments, %d values", ErrValueCount, len(segments), len(values)),
		})
	}

	var b strings.Builder
	b.WriteString(e.marker(id))

	var bindings []binding
	for i, seg := range segments {
		if i == len(segments)-1 || i >= len(values) {
			b.WriteString(seg)
			continue
		}
		value := values[i]
		d, ok := parseDirective(seg)
		if !ok {
			b.WriteString(seg)
			b.WriteString(stringify(value))
			continue
		}

		b.WriteString(d.prefix)
		switch d.indicator {
		case '?':
			if truthy(value) {
				b.WriteString(d.name)
			}
		case '@':
			handler, opts, ok := events.AsHandler(value)
			if !ok {
				e.report(&Error{
					Op:      "compile",
					Kind:    KindDirective,
					Subject: "@" + d.name,
					Err:     fmt.Errorf("%w: got %T", ErrInvalidHandler, value),
				}, "segment", seg)
				continue
			}
			selector := "data-el-" + e.ids.NewID()
			if !strings.HasSuffix(d.prefix, " ") {
				b.WriteByte(' ')
			}
			b.WriteString(selector)
			bindings = append(bindings, binding{
				selector:  selector,
				eventType: d.name,
				handler:   handler,
				options:   opts,
			})
		}
	}

	if len(bindings) > 0 {
		e.registry.put(id, bindings)
	}
	return b.String()
}
