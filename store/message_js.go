//go:build js || wasm

package store

import (
	"encoding/json"
	"syscall/js"
)

// ListenWindowMessages forwards window "message" events whose data is an
// object to HandleMessage. The returned func removes the listener.
func (s *Store) ListenWindowMessages() (release func()) {
	window := js.Global()
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		data := args[0].Get("data")
		if data.Type() != js.TypeObject {
			return nil
		}
		raw := js.Global().Get("JSON").Call("stringify", data).String()
		var msg map[string]any
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			s.log.Warn("ignoring undecodable message", "store", s.name, "error", err)
			return nil
		}
		s.HandleMessage(msg)
		return nil
	})
	window.Call("addEventListener", "message", fn)
	return func() {
		window.Call("removeEventListener", "message", fn)
		fn.Release()
	}
}
