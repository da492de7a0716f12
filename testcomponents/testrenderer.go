package testcomponents

import (
	"github.com/vcrobe/nojs-html/console"
	"github.com/vcrobe/nojs-html/dom"
	"github.com/vcrobe/nojs-html/events"
	"github.com/vcrobe/nojs-html/markup"
	"github.com/vcrobe/nojs-html/runtime"
	"github.com/vcrobe/nojs-html/store"
)

// TestRenderer is a minimal test harness that mounts components on an
// in-memory document, without browser or WASM dependencies.
//
// It lets tests:
// - Wire components to a store, engine and queue with Params
// - Flush scheduled renders on demand
// - Dispatch events and inspect the resulting markup
type TestRenderer struct {
	Doc    *dom.Document
	Root   *dom.Node
	Queue  *runtime.Queue
	Engine *markup.Engine
	Store  *store.Store
	Log    *console.Logger
}

// NewTestRenderer creates a harness with a store seeded from initial. Ids
// are deterministic and logging is silent.
func NewTestRenderer(initial map[string]any) *TestRenderer {
	log := console.New(console.LevelSilent)
	doc := dom.NewDocument()
	root := doc.CreateElement("div")
	root.SetAttr("id", "app")
	doc.Body().AppendChild(root)

	return &TestRenderer{
		Doc:    doc,
		Root:   root,
		Queue:  runtime.NewQueue(runtime.WithQueueLogger(log)),
		Engine: markup.NewEngine(markup.WithLogger(log), markup.WithIDGenerator(markup.NewSequenceGenerator("x"))),
		Store:  store.New(initial, store.WithLogger(log)),
		Log:    log,
	}
}

// Params returns Params that mount a component on Root.
func (r *TestRenderer) Params(props map[string]any, triggers ...string) runtime.Params {
	return runtime.Params{
		Element:        r.Root,
		Props:          props,
		Store:          r.Store,
		RenderTriggers: triggers,
		Scheduler:      r.Queue,
		Engine:         r.Engine,
		Logger:         r.Log,
	}
}

// RenderRoot performs the initial render of c synchronously.
func (r *TestRenderer) RenderRoot(c runtime.Component) *dom.Node {
	c.Render()
	return r.Root
}

// Flush runs the scheduled renders and returns how many ran.
func (r *TestRenderer) Flush() int {
	return r.Queue.Flush()
}

// Click dispatches a click on the first element with tag whose text is
// text and returns the number of handlers that ran.
func (r *TestRenderer) Click(tag, text string) int {
	for _, n := range r.Root.QueryAll(tag) {
		if n.TextContent() == text {
			return n.Dispatch(events.New("click", nil))
		}
	}
	return 0
}

// Texts returns the text of every element with tag, in document order.
func (r *TestRenderer) Texts(tag string) []string {
	var out []string
	for _, n := range r.Root.QueryAll(tag) {
		out = append(out, n.TextContent())
	}
	return out
}
