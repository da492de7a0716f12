// Package events defines the event model shared by templates and render
// targets. It has no build tags so handlers can be written and tested without
// a browser.
package events

import "reflect"

// Event is delivered to handlers bound with an @event= directive.
type Event struct {
	// Type is the event name, e.g. "click".
	Type string
	// Target is the element the listener was attached to.
	Target any
	// Detail carries synthetic payloads (native dispatch, custom events).
	Detail any

	native           native
	stopped          bool
	defaultPrevented bool
}

// native is implemented by platform events (see events_js.go).
type native interface {
	preventDefault()
	stopPropagation()
}

// New creates a synthetic event.
func New(eventType string, detail any) *Event {
	return &Event{Type: eventType, Detail: detail}
}

// PreventDefault marks the event as handled.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
	if e.native != nil {
		e.native.preventDefault()
	}
}

// StopPropagation stops delivery to ancestor elements.
func (e *Event) StopPropagation() {
	e.stopped = true
	if e.native != nil {
		e.native.stopPropagation()
	}
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// Stopped reports whether StopPropagation was called.
func (e *Event) Stopped() bool { return e.stopped }

// Handler is the single entry point an event directive value must provide.
type Handler interface {
	HandleEvent(e *Event)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(e *Event)

// HandleEvent calls f(e).
func (f HandlerFunc) HandleEvent(e *Event) { f(e) }

// Options mirror addEventListener options.
type Options struct {
	Capture bool
	Once    bool
	Passive bool
}

// Listener pairs a handler with its listener options.
type Listener struct {
	Handler Handler
	Options Options
}

// HandleEvent forwards to the wrapped handler.
func (l Listener) HandleEvent(e *Event) {
	if l.Handler != nil {
		l.Handler.HandleEvent(e)
	}
}

// On builds a Listener from a function and options.
func On(fn func(*Event), opts Options) Listener {
	return Listener{Handler: HandlerFunc(fn), Options: opts}
}

// AdaptNoArgEvent wraps a handler that ignores the event.
func AdaptNoArgEvent(handler func()) Handler {
	return HandlerFunc(func(*Event) { handler() })
}

// AsHandler reports whether v can handle events and returns the handler
// with its options. Accepted: Listener, *Listener, Handler, func(*Event)
// and func().
func AsHandler(v any) (Handler, Options, bool) {
	switch h := v.(type) {
	case Listener:
		if isNil(h.Handler) {
			return nil, Options{}, false
		}
		return h.Handler, h.Options, true
	case *Listener:
		if h == nil || isNil(h.Handler) {
			return nil, Options{}, false
		}
		return h.Handler, h.Options, true
	case HandlerFunc:
		if h == nil {
			return nil, Options{}, false
		}
		return h, Options{}, true
	case func(*Event):
		if h == nil {
			return nil, Options{}, false
		}
		return HandlerFunc(h), Options{}, true
	case func():
		if h == nil {
			return nil, Options{}, false
		}
		return AdaptNoArgEvent(h), Options{}, true
	case Handler:
		if isNil(h) {
			return nil, Options{}, false
		}
		return h, Options{}, true
	}
	return nil, Options{}, false
}

// isNil also catches typed nils such as a (*T)(nil) stored in a Handler.
func isNil(h Handler) bool {
	if h == nil {
		return true
	}
	v := reflect.ValueOf(h)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
