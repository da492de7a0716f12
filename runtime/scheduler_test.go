package runtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/nojs-html/console"
)

func newTestQueue(opts ...QueueOption) *Queue {
	return NewQueue(append([]QueueOption{WithQueueLogger(console.New(console.LevelSilent))}, opts...)...)
}

func TestQueue_CoalescesByKey(t *testing.T) {
	q := newTestQueue()
	var ran []string

	q.Schedule("a", func() { ran = append(ran, "a1") })
	q.Schedule("b", func() { ran = append(ran, "b") })
	q.Schedule("a", func() { ran = append(ran, "a2") })
	q.Schedule(nil, func() { ran = append(ran, "anon1") })
	q.Schedule(nil, func() { ran = append(ran, "anon2") })
	q.Schedule("c", nil)

	assert.Empty(t, ran, "nothing runs before a flush")
	assert.Equal(t, 4, q.Pending())

	assert.Equal(t, 4, q.Flush())
	assert.Equal(t, []string{"a2", "b", "anon1", "anon2"}, ran)
	assert.Equal(t, 0, q.Pending())
}

func TestQueue_TasksScheduledDuringFlushWaitForNextFlush(t *testing.T) {
	q := newTestQueue()
	var ran []string

	q.Schedule("a", func() {
		ran = append(ran, "a")
		q.Schedule("a", func() { ran = append(ran, "a again") })
	})

	assert.Equal(t, 1, q.Flush())
	assert.Equal(t, []string{"a"}, ran)
	assert.Equal(t, 1, q.Pending())

	assert.Equal(t, 1, q.Flush())
	assert.Equal(t, []string{"a", "a again"}, ran)
}

func TestQueue_WakeupOnFirstTask(t *testing.T) {
	wakes := 0
	q := newTestQueue(WithWakeup(func() { wakes++ }))

	q.Schedule("a", func() {})
	q.Schedule("b", func() {})
	assert.Equal(t, 1, wakes)

	q.Flush()
	q.Schedule("a", func() {})
	assert.Equal(t, 2, wakes)
}

func TestQueue_Run(t *testing.T) {
	q := newTestQueue()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- q.Run(ctx) }()

	ran := make(chan string, 2)
	q.Schedule("a", func() { ran <- "a" })

	select {
	case got := <-ran:
		assert.Equal(t, "a", got)
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}
