// Package effects provides the FIFO queue that defers document edits to the
// goroutine that owns the UI.
package effects

import (
	"context"
	"sync"
)

// Queue is an unbounded multi-producer, single-consumer FIFO. Items are
// delivered in submission order and never dropped.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	notify chan struct{}
}

// NewQueue returns an empty queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{notify: make(chan struct{}, 1)}
}

// Push appends items to the tail of the queue. It never blocks.
func (q *Queue[T]) Push(items ...T) {
	if len(items) == 0 {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, items...)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Drain removes every queued item and calls fn for each in order. It returns
// the number of items applied. Items pushed by fn are applied in the same
// call.
func (q *Queue[T]) Drain(fn func(T)) int {
	n := 0
	for {
		batch := q.take()
		if len(batch) == 0 {
			return n
		}
		for _, item := range batch {
			fn(item)
		}
		n += len(batch)
	}
}

// Run applies items as they arrive until ctx is done. Items still queued
// when ctx is cancelled are applied before Run returns.
func (q *Queue[T]) Run(ctx context.Context, fn func(T)) {
	for {
		q.Drain(fn)
		select {
		case <-ctx.Done():
			q.Drain(fn)
			return
		case <-q.notify:
		}
	}
}

func (q *Queue[T]) take() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	batch := q.items
	q.items = nil
	return batch
}
