//go:build !js && !wasm

package runtime

func newDefaultQueue() *Queue { return NewQueue() }
