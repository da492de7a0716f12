package markup

import (
	"strings"

	"github.com/vcrobe/nojs-html/dom"
)

// Render replaces the content of target with compiled markup and attaches
// the event bindings recorded for every template marker it contains. It
// returns the number of listeners attached.
//
// Failures are reported, not returned: a nil target or a missing marker
// attaches nothing, and a binding whose element is missing is skipped
// without affecting the others. The bindings of every template in content
// are released in all cases.
func (e *Engine) Render(target dom.Element, content string) int {
	defer e.Discard(content)

	if dom.IsNil(target) {
		e.report(&Error{Op: "render", Kind: KindConfig, Err: ErrNilTarget}, "content", content)
		return 0
	}
	if err := target.SetInnerHTML(content); err != nil {
		e.report(&Error{Op: "render", Kind: KindConfig, Err: err})
		return 0
	}

	var ids []string
	prefix := "tmpl-" + e.tag + "-"
	for _, c := range target.Comments() {
		if id, ok := strings.CutPrefix(c, prefix); ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		e.report(&Error{Op: "render", Kind: KindMarker, Subject: e.tag, Err: ErrMarkerNotFound}, "content", content)
		return 0
	}

	attached := 0
	for _, id := range ids {
		for _, b := range e.registry.take(id) {
			el, ok := target.QuerySelectorAttr(b.selector)
			if !ok {
				e.report(&Error{Op: "render", Kind: KindBinding, Subject: b.selector, Err: ErrElementNotFound},
					"event", b.eventType)
				continue
			}
			el.AddEventListener(b.eventType, b.handler, b.options)
			attached++
		}
	}
	return attached
}
