package runtime

import (
	"maps"
	"sync"

	"github.com/vcrobe/nojs-html/console"
	"github.com/vcrobe/nojs-html/dom"
	"github.com/vcrobe/nojs-html/markup"
	"github.com/vcrobe/nojs-html/store"
)

// Params configures a component in ComponentBase.Init.
type Params struct {
	// Element is the node the component renders into.
	Element dom.Element
	// Props are read-only inputs. Nil means empty.
	Props map[string]any
	// Store is the shared application store, if any.
	Store *store.Store
	// RenderTriggers are store events that schedule a render.
	RenderTriggers []string
	// Scheduler runs renders. Nil means DefaultQueue().
	Scheduler Scheduler
	// Engine compiles and binds markup. Nil means a new engine.
	Engine *markup.Engine
	// Logger defaults to console.Default().
	Logger *console.Logger
}

// ComponentBase is a struct that components embed to get local state,
// store access and scheduled re-renders.
//
//	type Counter struct {
//	    runtime.ComponentBase
//	}
//
//	c := &Counter{}
//	c.Init(c, runtime.Params{Element: el, Store: st, RenderTriggers: []string{"count"}})
//
// This type has no build tags and works in both WASM and test environments.
type ComponentBase struct {
	self    Component
	element dom.Element
	props   map[string]any
	store   *store.Store
	engine  *markup.Engine
	sched   Scheduler
	log     *console.Logger

	mu        sync.Mutex
	state     map[string]any
	unsubs    []func()
	destroyed bool
}

// Init wires the component. self must be the component embedding this
// base; renders call self.Render. Each render trigger subscribes to the
// store and schedules a render when it fires. Renders never run
// synchronously from Init or from a store notification.
func (b *ComponentBase) Init(self Component, p Params) {
	b.self = self
	b.element = p.Element
	b.props = p.Props
	if b.props == nil {
		b.props = map[string]any{}
	}
	b.store = p.Store
	b.sched = p.Scheduler
	if b.sched == nil {
		b.sched = DefaultQueue()
	}
	b.log = p.Logger
	if b.log == nil {
		b.log = console.Default()
	}
	b.engine = p.Engine
	if b.engine == nil {
		b.engine = markup.NewEngine(markup.WithLogger(b.log))
	}

	b.mu.Lock()
	if b.state == nil {
		b.state = map[string]any{}
	}
	b.destroyed = false
	b.mu.Unlock()

	if self == nil {
		b.log.Error("component initialized without itself, renders are disabled")
	}
	if dom.IsNil(b.element) {
		b.log.Warn("component has no element", "component", componentName(self))
	}

	if len(p.RenderTriggers) > 0 {
		if b.store == nil {
			b.log.Warn("render triggers ignored, component has no store",
				"component", componentName(self), "triggers", p.RenderTriggers)
		} else {
			for _, event := range p.RenderTriggers {
				unsub := b.store.Subscribe(event, func(any) { b.StateHasChanged() })
				b.mu.Lock()
				b.unsubs = append(b.unsubs, unsub)
				b.mu.Unlock()
			}
		}
	}

	if initializer, ok := self.(Initializer); ok {
		callLifecycle(b.log, self, "OnInit", initializer.OnInit)
	}
}

// SetState shallow-merges partial into the local state and schedules a
// render.
func (b *ComponentBase) SetState(partial map[string]any) {
	b.mu.Lock()
	if b.state == nil {
		b.state = map[string]any{}
	}
	maps.Copy(b.state, partial)
	b.mu.Unlock()
	b.StateHasChanged()
}

// StateHasChanged schedules a render without changing state. Repeated calls
// before the scheduler flushes produce a single render.
func (b *ComponentBase) StateHasChanged() {
	if b.self == nil || b.sched == nil {
		console.Error("StateHasChanged called, but component is not initialized")
		return
	}
	b.sched.Schedule(b, b.render)
}

func (b *ComponentBase) render() {
	b.mu.Lock()
	destroyed := b.destroyed
	b.mu.Unlock()
	if destroyed {
		return
	}
	callLifecycle(b.log, b.self, "Render", b.self.Render)
}

// RenderHTML injects compiled markup into the component's element and binds
// its event directives. It returns the number of listeners attached.
func (b *ComponentBase) RenderHTML(content string) int {
	if b.engine == nil {
		console.Error("RenderHTML called, but component is not initialized")
		return 0
	}
	return b.engine.Render(b.element, content)
}

// HTML compiles a template with the component's engine.
func (b *ComponentBase) HTML(segments []string, values ...any) string {
	if b.engine == nil {
		console.Error("HTML called, but component is not initialized")
		return ""
	}
	return b.engine.HTML(segments, values...)
}

// Destroy removes the store subscriptions, drops any pending render and
// calls OnDestroy when the component implements Cleaner.
func (b *ComponentBase) Destroy() {
	b.mu.Lock()
	if b.destroyed {
		b.mu.Unlock()
		return
	}
	b.destroyed = true
	unsubs := b.unsubs
	b.unsubs = nil
	b.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
	if cleaner, ok := b.self.(Cleaner); ok {
		callLifecycle(b.log, b.self, "OnDestroy", cleaner.OnDestroy)
	}
}

// Element returns the node the component renders into.
func (b *ComponentBase) Element() dom.Element { return b.element }

// Props returns the component's props.
func (b *ComponentBase) Props() map[string]any { return b.props }

// State returns the local state. Use SetState to change it.
func (b *ComponentBase) State() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Store returns the shared store, or nil.
func (b *ComponentBase) Store() *store.Store { return b.store }

// Engine returns the markup engine.
func (b *ComponentBase) Engine() *markup.Engine { return b.engine }

// Logger returns the component's logger.
func (b *ComponentBase) Logger() *console.Logger { return b.log }
