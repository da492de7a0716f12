package markup

import (
	"sync"

	"github.com/vcrobe/nojs-html/events"
)

// binding is an event directive waiting for its element to be rendered.
type binding struct {
	selector  string
	eventType string
	handler   events.Handler
	options   events.Options
}

// registry maps a compilation id to the bindings it recorded. An entry is
// owned by its compilation until Render (or Discard) takes it.
type registry struct {
	mu      sync.Mutex
	entries map[string][]binding
}

func newRegistry() *registry {
	return &registry{entries: make(map[string][]binding)}
}

func (r *registry) put(id string, bs []binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = bs
}

// take removes and returns the entry for id.
func (r *registry) take(id string) []binding {
	r.mu.Lock()
	defer r.mu.Unlock()
	bs := r.entries[id]
	delete(r.entries, id)
	return bs
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
