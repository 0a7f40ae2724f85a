// Package animate paces painted steps out one at a time.
//
// Generation is instant; drawing is not. Producers push whole paths into a
// [Queue] and a single consumer [Drain]s it on a ticker, so a viewer sees
// each snake crawl across the grid.
package animate

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/snaker/pkg/render"
)

// DefaultInterval is the delay between two drawn steps.
const DefaultInterval = 20 * time.Millisecond

// Queue is a FIFO of steps waiting to be drawn. It is safe for concurrent
// use.
type Queue struct {
	mu     sync.Mutex
	steps  []render.SceneStep
	closed bool
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends steps. It returns false if the queue is closed.
func (q *Queue) Push(steps ...render.SceneStep) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.steps = append(q.steps, steps...)
	return true
}

// Pop removes and returns the oldest step.
func (q *Queue) Pop() (render.SceneStep, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.steps) == 0 {
		return render.SceneStep{}, false
	}
	s := q.steps[0]
	q.steps[0] = render.SceneStep{}
	q.steps = q.steps[1:]
	return s, true
}

// Clear drops every pending step and returns how many were dropped.
func (q *Queue) Clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.steps)
	q.steps = nil
	return n
}

// Len returns the number of pending steps.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.steps)
}

// Close marks the end of input. Pending steps can still be popped.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}

// Closed reports whether Close has been called.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// done reports whether the queue is closed and empty.
func (q *Queue) done() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed && len(q.steps) == 0
}

// Drain pops one step per tick of interval and hands it to fn. Ticks that
// find the queue empty are skipped. Drain returns nil once the queue is
// closed and empty, ctx's error when ctx is done, or the first error fn
// returns.
func Drain(ctx context.Context, q *Queue, interval time.Duration, fn func(render.SceneStep) error) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if q.done() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			step, ok := q.Pop()
			if !ok {
				continue
			}
			if err := fn(step); err != nil {
				return err
			}
		}
	}
}
