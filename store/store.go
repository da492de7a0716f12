// Package store is a path-addressable reactive state container.
//
// A Store holds a JSON-like tree (map[string]any, []any and scalars). Set
// writes into the tree at a lodash-style path and publishes two events: the
// path itself, then "state" with the whole tree. Components subscribe to the
// events they render from.
package store

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/vcrobe/nojs-html/console"
)

const (
	// StateEvent is published after every Set with the whole tree.
	StateEvent = "state"
	// ResetEvent is published by ResetState when no event is given.
	ResetEvent = "reset"
	// DefaultName prefixes event names in log output.
	DefaultName = "appstate"
)

// Subscriber receives the data passed to Publish.
type Subscriber func(data any)

// Accessor is the part of a Store that routers and other collaborators use.
type Accessor interface {
	Set(path string, value any) error
	Get(path string) (any, bool)
	State() map[string]any
}

var _ Accessor = (*Store)(nil)

// Store is safe for concurrent use. Subscribers are invoked without holding
// the store lock, so they may call back into the store.
type Store struct {
	name    string
	storage Storage
	log     *console.Logger
	ctx     context.Context

	mu      sync.Mutex
	initial map[string]any
	state   map[string]any
	subs    map[string][]subscription
	nextID  uint64
}

type subscription struct {
	id uint64
	fn Subscriber
}

// Option configures a Store.
type Option func(*Store)

// WithStorage enables persistence. The persisted snapshot, if any, is
// merged over the initial state at construction.
func WithStorage(s Storage) Option {
	return func(st *Store) { st.storage = s }
}

// WithLogger sets the logger. The default is console.Default().
func WithLogger(l *console.Logger) Option {
	return func(st *Store) { st.log = l }
}

// WithName sets the prefix used for event names in logs.
func WithName(name string) Option {
	return func(st *Store) {
		if name != "" {
			st.name = name
		}
	}
}

// WithContext sets the context passed to storage calls.
func WithContext(ctx context.Context) Option {
	return func(st *Store) {
		if ctx != nil {
			st.ctx = ctx
		}
	}
}

// New creates a store seeded with initial. The initial tree is copied, so
// later changes to the caller's map are not observed, and ResetState
// returns to exactly this content.
func New(initial map[string]any, opts ...Option) *Store {
	s := &Store{
		name: DefaultName,
		ctx:  context.Background(),
		subs: make(map[string][]subscription),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = console.Default()
	}

	s.initial = copyTree(initial)
	s.state = copyTree(initial)

	if s.storage != nil {
		snap, ok, err := s.storage.Load(s.ctx)
		switch {
		case err != nil:
			s.log.Error("ignoring persisted state", "store", s.name, "error", err)
		case ok:
			for k, v := range snap {
				s.state[k] = normalize(v)
			}
			s.log.Debug("restored persisted state", "store", s.name, "keys", len(snap))
		}
	}
	return s
}

// Set writes value at path, persists the tree when storage is configured,
// then publishes path with value and "state" with the tree. Syntax and
// shape errors are returned and nothing is published.
func (s *Store) Set(path string, value any) error {
	p, err := ParsePath(path)
	if err != nil {
		s.log.Error("invalid state path", "store", s.name, "path", path, "error", err)
		return err
	}
	return s.apply(path, p, value)
}

func (s *Store) apply(event string, p Path, value any) error {
	s.log.Debug("setting state", "store", s.name, "path", event, "value", value)

	s.mu.Lock()
	root, err := assign(s.state, p, normalize(value))
	if err != nil {
		s.mu.Unlock()
		err = fmt.Errorf("set %s: %w", event, err)
		s.log.Error("state not updated", "store", s.name, "error", err)
		return err
	}
	s.state = root.(map[string]any)
	state := s.state
	var snap map[string]any
	if s.storage != nil {
		snap = copyTree(state)
	}
	s.mu.Unlock()

	if snap != nil {
		if err := s.storage.Save(s.ctx, snap); err != nil {
			s.log.Error("persisting state failed", "store", s.name, "error", err)
		}
	}

	s.Publish(event, value)
	if event != StateEvent {
		s.Publish(StateEvent, state)
	}
	return nil
}

// Get returns the value at path.
func (s *Store) Get(path string) (any, bool) {
	p, err := ParsePath(path)
	if err != nil {
		s.log.Warn("invalid state path", "store", s.name, "path", path, "error", err)
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return lookup(s.state, p)
}

// State returns the live tree. Callers must not modify it; use Set.
func (s *Store) State() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Name returns the store name used in logs.
func (s *Store) Name() string { return s.name }

// Subscribe registers fn for event. Subscribers run in registration order.
// The returned func removes the subscription; calling it again is a no-op.
func (s *Store) Subscribe(event string, fn Subscriber) (unsubscribe func()) {
	if fn == nil {
		s.log.Warn("ignoring nil subscriber", "event", s.name+":"+event)
		return func() {}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs[event] = append(s.subs[event], subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subs[event] = slices.DeleteFunc(s.subs[event], func(sub subscription) bool {
			return sub.id == id
		})
		if len(s.subs[event]) == 0 {
			delete(s.subs, event)
		}
	}
}

// Publish invokes the subscribers registered for event when Publish was
// called. A panicking subscriber is logged and does not stop the others.
func (s *Store) Publish(event string, data any) {
	s.mu.Lock()
	subs := slices.Clone(s.subs[event])
	s.mu.Unlock()

	s.log.Trace("store fired event", "event", s.name+":"+event, "subscribers", len(subs))
	for _, sub := range subs {
		s.invoke(event, sub.fn, data)
	}
}

func (s *Store) invoke(event string, fn Subscriber, data any) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("subscriber panicked", "event", s.name+":"+event, "panic", r)
		}
	}()
	fn(data)
}

// ResetState restores the construction snapshot, clears persisted state and
// publishes event once with the restored tree. An empty event means
// ResetEvent.
func (s *Store) ResetState(event string) {
	if event == "" {
		event = ResetEvent
	}
	s.mu.Lock()
	s.state = copyTree(s.initial)
	state := s.state
	s.mu.Unlock()

	if s.storage != nil {
		if err := s.storage.Clear(s.ctx); err != nil {
			s.log.Error("clearing persisted state failed", "store", s.name, "error", err)
		}
	}
	s.log.Debug("state reset", "store", s.name, "event", event)
	s.Publish(event, state)
}

// MaxListGrowth bounds how far past the end of a list Set may write. The gap
// is padded with nils.
const MaxListGrowth = 1 << 16

// assign writes value at p below node and returns the possibly replaced
// node. Missing and scalar intermediates are replaced by a container of the
// kind the next token needs. On error node is left unchanged.
func assign(node any, p Path, value any) (any, error) {
	if len(p) == 0 {
		return value, nil
	}
	tok, rest := p[0], p[1:]

	switch n := node.(type) {
	case map[string]any:
		key := tok.key()
		child, err := assign(n[key], rest, value)
		if err != nil {
			return nil, err
		}
		n[key] = child
		return n, nil

	case []any:
		i, ok := tok.index()
		if !ok {
			return nil, fmt.Errorf("%w: property %s on a list", ErrPathShape, tok)
		}
		if i-len(n) >= MaxListGrowth {
			return nil, fmt.Errorf("%w: index %d is %d past the end of a list", ErrPathShape, i, i-len(n))
		}
		var cur any
		if i < len(n) {
			cur = n[i]
		}
		child, err := assign(cur, rest, value)
		if err != nil {
			return nil, err
		}
		if i >= len(n) {
			n = append(n, make([]any, i-len(n)+1)...)
		}
		n[i] = child
		return n, nil
	}

	if tok.Kind == IndexToken {
		return assign([]any{}, p, value)
	}
	return assign(map[string]any{}, p, value)
}

func lookup(node any, p Path) (any, bool) {
	for _, tok := range p {
		switch n := node.(type) {
		case map[string]any:
			v, ok := n[tok.key()]
			if !ok {
				return nil, false
			}
			node = v
		case []any:
			i, ok := tok.index()
			if !ok || i >= len(n) {
				return nil, false
			}
			node = n[i]
		default:
			return nil, false
		}
	}
	return node, true
}

func copyTree(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return normalize(m).(map[string]any)
}

// normalize deep-copies v, converting string-keyed maps to map[string]any
// and slices and arrays to []any so paths can walk into them. Byte slices
// and other values are kept as they are.
func normalize(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case []byte:
		return t
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = normalize(iter.Value().Interface())
		}
		return out
	case reflect.Slice:
		if rv.IsNil() || rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		fallthrough
	case reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	}
	return v
}
