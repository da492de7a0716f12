//go:build js || wasm

package dom

import (
	"strings"
	"syscall/js"

	"github.com/vcrobe/nojs-html/events"
)

// showComment is NodeFilter.SHOW_COMMENT.
const showComment = 0x80

// JSElement wraps a browser element. Elements found below a root share the
// root's callback table so replacing the root's content releases them.
type JSElement struct {
	v     js.Value
	funcs *funcTable
}

type funcTable struct {
	funcs []js.Func
}

func (t *funcTable) release() {
	for _, fn := range t.funcs {
		fn.Release()
	}
	t.funcs = nil
}

var _ Element = (*JSElement)(nil)

// Wrap adapts a js.Value to Element.
func Wrap(v js.Value) *JSElement {
	return &JSElement{v: v, funcs: &funcTable{}}
}

// QuerySelector returns the first document element matching selector, or nil.
func QuerySelector(selector string) *JSElement {
	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return nil
	}
	el := doc.Call("querySelector", selector)
	if !el.Truthy() {
		return nil
	}
	return Wrap(el)
}

// GetElementByID returns the element with the given id, or nil.
func GetElementByID(id string) *JSElement {
	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return nil
	}
	el := doc.Call("getElementById", id)
	if !el.Truthy() {
		return nil
	}
	return Wrap(el)
}

// Value returns the wrapped js.Value.
func (e *JSElement) Value() js.Value { return e.v }

// IsNull reports whether the wrapped value is null or undefined.
func (e *JSElement) IsNull() bool {
	return e == nil || e.v.IsNull() || e.v.IsUndefined()
}

// SetInnerHTML releases callbacks bound below e and replaces its content.
func (e *JSElement) SetInnerHTML(markup string) error {
	if e.IsNull() {
		return ErrNilNode
	}
	e.funcs.release()
	e.v.Set("innerHTML", markup)
	return nil
}

// Comments walks comment nodes with a TreeWalker.
func (e *JSElement) Comments() []string {
	if e.IsNull() {
		return nil
	}
	walker := js.Global().Get("document").Call("createTreeWalker", e.v, showComment)
	var out []string
	for n := walker.Call("nextNode"); n.Truthy(); n = walker.Call("nextNode") {
		out = append(out, strings.TrimSpace(n.Get("nodeValue").String()))
	}
	return out
}

// QuerySelectorAttr implements Element.
func (e *JSElement) QuerySelectorAttr(attr string) (Element, bool) {
	if e.IsNull() {
		return nil, false
	}
	found := e.v.Call("querySelector", "["+attr+"]")
	if !found.Truthy() {
		return nil, false
	}
	return &JSElement{v: found, funcs: e.funcs}, true
}

// AddEventListener implements Element.
func (e *JSElement) AddEventListener(eventType string, h events.Handler, opts events.Options) {
	if e.IsNull() || h == nil {
		return
	}
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			h.HandleEvent(events.New(eventType, nil))
			return nil
		}
		h.HandleEvent(events.FromJS(args[0], e))
		return nil
	})
	e.funcs.funcs = append(e.funcs.funcs, fn)
	e.v.Call("addEventListener", eventType, fn, opts.JS())
}

// Release frees every callback registered through e.
func (e *JSElement) Release() {
	if e != nil {
		e.funcs.release()
	}
}
