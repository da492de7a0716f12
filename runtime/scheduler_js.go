//go:build js || wasm

package runtime

import "syscall/js"

func newDefaultQueue() *Queue { return NewBrowserQueue() }

// NewBrowserQueue returns a queue that flushes on a zero-delay timer after
// tasks are first scheduled, so renders run after the current event.
func NewBrowserQueue(opts ...QueueOption) *Queue {
	var q *Queue
	wake := func() {
		var fn js.Func
		fn = js.FuncOf(func(this js.Value, args []js.Value) any {
			fn.Release()
			q.Flush()
			return nil
		})
		js.Global().Call("setTimeout", fn, 0)
	}
	q = NewQueue(append(opts, WithWakeup(wake))...)
	return q
}
