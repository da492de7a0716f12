package runtime

import (
	"context"
	"sync"

	"github.com/vcrobe/nojs-html/console"
)

// Scheduler defers tasks to a later turn.
type Scheduler interface {
	// Schedule queues task under key. Keys must be comparable. A key that
	// is already pending keeps its position and runs the latest task once.
	Schedule(key any, task func())
}

var _ Scheduler = (*Queue)(nil)

// anonKey gives nil-keyed tasks their own slot.
type anonKey uint64

// Queue is a Scheduler that runs pending tasks when flushed. Tasks run in
// the order their keys were first scheduled. Tasks scheduled while a flush
// is running are left for the next flush.
type Queue struct {
	log  *console.Logger
	wake func()

	mu      sync.Mutex
	pending map[any]func()
	order   []any
	anon    uint64
	signal  chan struct{}
}

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithQueueLogger sets the queue's logger.
func WithQueueLogger(l *console.Logger) QueueOption {
	return func(q *Queue) { q.log = l }
}

// WithWakeup registers fn to be called whenever the queue goes from empty
// to non-empty. fn must not flush synchronously.
func WithWakeup(fn func()) QueueOption {
	return func(q *Queue) { q.wake = fn }
}

// NewQueue returns an empty queue.
func NewQueue(opts ...QueueOption) *Queue {
	q := &Queue{
		pending: make(map[any]func()),
		signal:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(q)
	}
	if q.log == nil {
		q.log = console.Default()
	}
	return q
}

func (q *Queue) Schedule(key any, task func()) {
	if task == nil {
		return
	}
	q.mu.Lock()
	if key == nil {
		q.anon++
		key = anonKey(q.anon)
	}
	if _, ok := q.pending[key]; ok {
		q.pending[key] = task
		q.mu.Unlock()
		q.log.Trace("coalesced scheduled task", "pending", len(q.order))
		return
	}
	q.pending[key] = task
	q.order = append(q.order, key)
	first := len(q.order) == 1
	q.mu.Unlock()

	if first {
		select {
		case q.signal <- struct{}{}:
		default:
		}
		if q.wake != nil {
			q.wake()
		}
	}
}

// Pending returns the number of queued tasks.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.order)
}

// Flush runs the tasks pending when it was called and returns how many ran.
func (q *Queue) Flush() int {
	q.mu.Lock()
	order, pending := q.order, q.pending
	q.order = nil
	q.pending = make(map[any]func())
	q.mu.Unlock()

	if len(order) > 0 {
		q.log.Trace("flushing scheduled tasks", "count", len(order))
	}
	for _, key := range order {
		pending[key]()
	}
	return len(order)
}

// Run flushes the queue each time tasks arrive until ctx is done.
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.signal:
			q.Flush()
		}
	}
}

var defaultQueue = sync.OnceValue(newDefaultQueue)

// DefaultQueue returns the process-wide queue used when Params.Scheduler is
// nil. In the browser it flushes itself on a zero-delay timer; elsewhere
// the caller flushes it, usually with Run.
func DefaultQueue() *Queue { return defaultQueue() }
