//go:build js || wasm

package events

import "syscall/js"

type jsEvent struct{ v js.Value }

func (e jsEvent) preventDefault()  { e.v.Call("preventDefault") }
func (e jsEvent) stopPropagation() { e.v.Call("stopPropagation") }

// FromJS wraps a DOM event. Detail holds the original js.Value.
func FromJS(v js.Value, target any) *Event {
	return &Event{
		Type:   v.Get("type").String(),
		Target: target,
		Detail: v,
		native: jsEvent{v},
	}
}

// JS converts options to the object accepted by addEventListener.
func (o Options) JS() js.Value {
	return js.ValueOf(map[string]any{
		"capture": o.Capture,
		"once":    o.Once,
		"passive": o.Passive,
	})
}
