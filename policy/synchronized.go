package policy

import (
	"context"
	"sync"
	"time"
)

// Synchronized guards every field group with its own mutex and parks idle
// graders on a counting exam-ready event.
type Synchronized struct {
	locks        [lockCount]sync.Mutex
	examReady    *Event
	pollInterval time.Duration
}

func newSynchronized(o *options) *Synchronized {
	return &Synchronized{
		examReady:    NewEvent(),
		pollInterval: o.pollInterval,
	}
}

// Mode returns ModeSynchronized.
func (s *Synchronized) Mode() Mode { return ModeSynchronized }

// Lock acquires the mutex guarding l.
func (s *Synchronized) Lock(l Lock) { s.locks[l].Lock() }

// Unlock releases the mutex guarding l.
func (s *Synchronized) Unlock(l Lock) { s.locks[l].Unlock() }

// Interleave is a no-op: the read and the write share one critical section.
func (s *Synchronized) Interleave() {}

// Backoff sleeps for the poll interval.
func (s *Synchronized) Backoff() { time.Sleep(s.pollInterval) }

// AwaitExam consumes one exam-ready post, blocking until one is available.
func (s *Synchronized) AwaitExam(ctx context.Context, _ func() bool) error {
	return s.examReady.Wait(ctx)
}

// ExamReady posts the exam-ready event n times.
func (s *Synchronized) ExamReady(n int) {
	for i := 0; i < n; i++ {
		s.examReady.Post()
	}
}

// Pending returns the number of unconsumed exam-ready posts.
func (s *Synchronized) Pending() int {
	return s.examReady.Pending()
}
