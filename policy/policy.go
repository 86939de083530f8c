package policy

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Mode names a synchronisation discipline.
type Mode string

// Disciplines recognised by the engine.
const (
	ModeSynchronized   Mode = "synchronized"
	ModeUnsynchronized Mode = "unsynchronized"
)

// DefaultPollInterval is the back-off used by graders between claim scans
// and, in the unsynchronized discipline, between exam-ready polls.
const DefaultPollInterval = 100 * time.Millisecond

// ParseMode resolves a discipline name; short aliases "sync" and "unsync" are accepted.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sync", "synchronized", "b":
		return ModeSynchronized, nil
	case "unsync", "unsynchronized", "none", "a":
		return ModeUnsynchronized, nil
	}
	return "", fmt.Errorf("unsupported discipline: %q", name)
}

// Lock identifies one of the guarded field groups of the shared region.
type Lock int

const (
	// RubricLock guards the rubric letters and the dirty flag.
	RubricLock Lock = iota
	// QuestionsLock guards question states and the exam-done flag.
	QuestionsLock
	// LogLock guards the log sequence and serialises line emission.
	LogLock

	lockCount
)

func (l Lock) String() string {
	switch l {
	case RubricLock:
		return "rubric"
	case QuestionsLock:
		return "questions"
	case LogLock:
		return "log"
	}
	return fmt.Sprintf("lock(%d)", int(l))
}

// Discipline brackets access to shared state and controls how idle graders
// wait for the next exam.
type Discipline interface {
	// Mode returns the discipline name.
	Mode() Mode

	// Lock enters the critical section guarded by l.
	Lock(l Lock)

	// Unlock leaves the critical section guarded by l.
	Unlock(l Lock)

	// Interleave is invoked between a read and the dependent write of a
	// read-modify-write sequence.
	Interleave()

	// Backoff suspends the caller for one poll interval.
	Backoff()

	// AwaitExam blocks an idle grader until the next exam is ready or the
	// run is terminating.  released reports whether waiting can stop; it is
	// consulted only by polling disciplines.
	AwaitExam(ctx context.Context, released func() bool) error

	// ExamReady wakes n idle graders.
	ExamReady(n int)
}

type options struct {
	pollInterval time.Duration
	interleave   func()
}

// Option customises a discipline.
type Option func(o *options)

// WithPollInterval sets the back-off/poll interval.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		o.pollInterval = d
	}
}

// WithInterleave installs a hook run by the unsynchronized discipline between
// a read and its dependent write (ignored by the synchronized discipline).
func WithInterleave(fn func()) Option {
	return func(o *options) {
		o.interleave = fn
	}
}

// New creates a discipline for the supplied mode.
func New(mode Mode, opts ...Option) (Discipline, error) {
	o := &options{pollInterval: DefaultPollInterval}
	for _, opt := range opts {
		opt(o)
	}
	if o.pollInterval <= 0 {
		return nil, fmt.Errorf("invalid poll interval: %v", o.pollInterval)
	}
	switch mode {
	case ModeSynchronized:
		return newSynchronized(o), nil
	case ModeUnsynchronized:
		return newUnsynchronized(o), nil
	}
	return nil, fmt.Errorf("unsupported discipline: %q", mode)
}
