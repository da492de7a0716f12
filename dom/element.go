// Package dom provides render targets for compiled templates.
//
// Element is the only thing the binder needs from a live node. Node is a pure
// Go implementation on top of golang.org/x/net/html used natively and in
// tests; JSElement (js/wasm builds) wraps a browser node through syscall/js.
package dom

import (
	"errors"
	"reflect"

	"github.com/vcrobe/nojs-html/events"
)

// ErrNilNode is returned by operations on an absent render target.
var ErrNilNode = errors.New("dom: nil node")

// Element is a live node whose content can be replaced and wired.
type Element interface {
	// SetInnerHTML replaces all children with the parsed markup.
	SetInnerHTML(markup string) error
	// Comments returns the text of every comment below the element, in
	// document order, with surrounding whitespace trimmed.
	Comments() []string
	// QuerySelectorAttr returns the first descendant carrying attr.
	QuerySelectorAttr(attr string) (Element, bool)
	// AddEventListener attaches h for eventType.
	AddEventListener(eventType string, h events.Handler, opts events.Options)
}

// IsNil reports whether el is absent: a nil interface, a typed nil pointer,
// or a platform null value.
func IsNil(el Element) bool {
	if el == nil {
		return true
	}
	if n, ok := el.(interface{ IsNull() bool }); ok {
		return n.IsNull()
	}
	v := reflect.ValueOf(el)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
