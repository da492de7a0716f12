// Package markup compiles string templates into HTML and binds the event
// directives they declare once the HTML is inserted into a render target.
//
// A template is a list of literal segments and one fewer interpolated values:
//
//	eng.HTML([]string{`<button ?disabled=`, ` @click=`, `>Save</button>`},
//		saving, events.HandlerFunc(save))
//
// A segment ending in ?name= emits the bare attribute name when its value is
// truthy. A segment ending in @name= binds its value as an event handler for
// the element being opened. Every compiled string starts with a comment
// marker carrying the engine tag and a compilation id, which Render uses to
// find the bindings recorded for it.
package markup

import (
	"regexp"

	"github.com/vcrobe/nojs-html/console"
)

// Engine compiles templates and binds them. It owns the registry of pending
// event bindings, so a template must be rendered by the engine that
// compiled it.
type Engine struct {
	tag      string
	ids      IDGenerator
	log      *console.Logger
	onError  func(error)
	registry *registry
	markerRe *regexp.Regexp
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDGenerator replaces the random id source.
func WithIDGenerator(g IDGenerator) Option {
	return func(e *Engine) {
		if g != nil {
			e.ids = g
		}
	}
}

// WithLogger sets the logger errors are written to.
func WithLogger(l *console.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithErrorHandler registers fn to receive every *Error the engine reports,
// in addition to logging it.
func WithErrorHandler(fn func(error)) Option {
	return func(e *Engine) { e.onError = fn }
}

// NewEngine creates an engine with a fresh random tag.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		ids:      UUIDGenerator{},
		log:      console.Default(),
		registry: newRegistry(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.tag = e.ids.NewID()
	e.markerRe = regexp.MustCompile(`tmpl-` + regexp.QuoteMeta(e.tag) + `-([^\s>]+)`)
	return e
}

// Tag returns the engine tag embedded in every marker.
func (e *Engine) Tag() string { return e.tag }

// Pending returns the number of compilations whose bindings have not been
// consumed by Render or Discard.
func (e *Engine) Pending() int { return e.registry.len() }

// Discard drops the bindings of every template compiled into content. Call
// it when compiled output will not be rendered.
func (e *Engine) Discard(content string) {
	for _, id := range e.idsIn(content) {
		e.registry.take(id)
	}
}

func (e *Engine) marker(id string) string {
	return "<!-- tmpl-" + e.tag + "-" + id + " -->"
}

// idsIn scans raw markup for this engine's compilation ids.
func (e *Engine) idsIn(content string) []string {
	var ids []string
	for _, m := range e.markerRe.FindAllStringSubmatch(content, -1) {
		ids = append(ids, m[1])
	}
	return ids
}

func (e *Engine) report(err *Error, args ...any) {
	e.log.Error(err.Error(), args...)
	if e.onError != nil {
		e.onError(err)
	}
}
