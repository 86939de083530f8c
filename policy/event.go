package policy

import (
	"context"
	"sync"
)

// Event is a counting signal: every Post is remembered until a Wait consumes it.
type Event struct {
	mu     sync.Mutex
	count  int
	signal chan struct{}
}

// NewEvent creates an event with no pending posts.
func NewEvent() *Event {
	return &Event{signal: make(chan struct{})}
}

// Post adds one pending post and wakes current waiters.
func (e *Event) Post() {
	e.mu.Lock()
	e.count++
	close(e.signal)
	e.signal = make(chan struct{})
	e.mu.Unlock()
}

// Wait consumes one post, blocking until one is available or ctx is done.
func (e *Event) Wait(ctx context.Context) error {
	for {
		e.mu.Lock()
		if e.count > 0 {
			e.count--
			e.mu.Unlock()
			return nil
		}
		signal := e.signal
		e.mu.Unlock()

		select {
		case <-signal:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Pending returns the number of posts not yet consumed.
func (e *Event) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.count
}
