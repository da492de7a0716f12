package databinding

import (
	"github.com/vcrobe/nojs-html/runtime"
)

// Counter keeps its count in local state and takes its label from props.
type Counter struct {
	runtime.ComponentBase
}

func (c *Counter) OnInit() {
	c.State()["count"] = c.Props()["start"]
	if c.State()["count"] == nil {
		c.State()["count"] = 0
	}
	c.State()["label"] = c.Props()["label"]
}

func (c *Counter) Render() {
	s := c.State()
	c.RenderHTML(c.HTML([]string{
		`<div><p>Count: `, `</p><p>Label: `, `</p><button @click=`, `>+</button></div>`,
	}, s["count"], s["label"], c.Increment))
}

// Increment adds one to the count and schedules a render.
func (c *Counter) Increment() {
	c.SetState(map[string]any{"count": asInt(c.State()["count"]) + 1})
}

// SetLabel replaces the label and schedules a render.
func (c *Counter) SetLabel(label string) {
	c.SetState(map[string]any{"label": label})
}

// StoreCounter renders the store's "count" and is re-rendered by the store.
type StoreCounter struct {
	runtime.ComponentBase
}

func (c *StoreCounter) Render() {
	v, _ := c.Store().Get("count")
	count := asInt(v)
	c.RenderHTML(c.HTML([]string{
		`<p>`, `</p><button @click=`, `>+</button><button ?disabled=`, ` @click=`, `>reset</button>`,
	}, count, c.increment, count == 0, c.reset))
}

func (c *StoreCounter) increment() {
	n, _ := c.Store().Get("count")
	c.Store().Set("count", asInt(n)+1)
}

func (c *StoreCounter) reset() {
	c.Store().Set("count", 0)
}

// asInt reads a count. Values restored from a JSON snapshot are float64.
func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	}
	return 0
}
