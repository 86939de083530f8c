package progress

import (
	"context"
	"fmt"
	"github.com/viant/marker/internal/clock"
	"sort"
	"sync"
	"time"
)

// Delta represents an incremental counter change emitted by the coordinator
// or a grader.
type Delta struct {
	ExamsLoaded    int
	ExamsCompleted int
	Graded         int
	RubricEdits    int
	RubricSaves    int
	SaveFailures   int
}

// Progress keeps aggregated counters for one run.  It is safe for concurrent
// use.
type Progress struct {
	// Identification – informative only.
	RunID      string
	Discipline string
	StartedAt  time.Time

	// Counters – modified via Update() and RecordClaim().
	ExamsLoaded     int
	ExamsCompleted  int
	Claims          int
	DuplicateClaims int
	Graded          int
	RubricEdits     int
	RubricSaves     int
	SaveFailures    int

	mu       sync.Mutex
	ledger   map[slot][]int
	onChange func(Progress)
}

type slot struct {
	exam     int
	question int
}

// New creates a tracker.
func New(runID, discipline string, onChange func(Progress)) *Progress {
	return &Progress{
		RunID:      runID,
		Discipline: discipline,
		StartedAt:  clock.Now(),
		ledger:     map[slot][]int{},
		onChange:   onChange,
	}
}

// Update applies the supplied delta to the tracker.  If an onChange callback
// has been registered it is invoked with a copy of the counters outside the
// critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.ExamsLoaded += d.ExamsLoaded
	p.ExamsCompleted += d.ExamsCompleted
	p.Graded += d.Graded
	p.RubricEdits += d.RubricEdits
	p.RubricSaves += d.RubricSaves
	p.SaveFailures += d.SaveFailures
	snapshot := p.copyLocked()
	cb := p.onChange
	p.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// RecordClaim registers that worker claimed question of exam.  It reports
// whether the question had already been claimed for that exam.
func (p *Progress) RecordClaim(exam, question, worker int) bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	if p.ledger == nil {
		p.ledger = map[slot][]int{}
	}
	key := slot{exam: exam, question: question}
	duplicate := len(p.ledger[key]) > 0
	p.ledger[key] = append(p.ledger[key], worker)
	p.Claims++
	if duplicate {
		p.DuplicateClaims++
	}
	snapshot := p.copyLocked()
	cb := p.onChange
	p.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
	return duplicate
}

// Claimants returns the workers that claimed question of exam, in claim order.
func (p *Progress) Claimants(exam, question int) []int {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	workers := p.ledger[slot{exam: exam, question: question}]
	result := make([]int, len(workers))
	copy(result, workers)
	return result
}

// Skipped returns the questions in [1,questions] that were never claimed for exam.
func (p *Progress) Skipped(exam, questions int) []int {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	var result []int
	for q := 1; q <= questions; q++ {
		if len(p.ledger[slot{exam: exam, question: q}]) == 0 {
			result = append(result, q)
		}
	}
	return result
}

// Duplicates returns "exam/question" keys of every slot claimed more than once.
func (p *Progress) Duplicates() []string {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	var result []string
	for key, workers := range p.ledger {
		if len(workers) > 1 {
			result = append(result, fmt.Sprintf("%02d/Q%d", key.exam, key.question))
		}
	}
	sort.Strings(result)
	return result
}

// Snapshot returns a copy of the counters suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.copyLocked()
}

// OnChange registers a callback invoked after every counter change.  Passing
// nil disables the callback.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.onChange = cb
	p.mu.Unlock()
}

func (p *Progress) copyLocked() Progress {
	return Progress{
		RunID:           p.RunID,
		Discipline:      p.Discipline,
		StartedAt:       p.StartedAt,
		ExamsLoaded:     p.ExamsLoaded,
		ExamsCompleted:  p.ExamsCompleted,
		Claims:          p.Claims,
		DuplicateClaims: p.DuplicateClaims,
		Graded:          p.Graded,
		RubricEdits:     p.RubricEdits,
		RubricSaves:     p.RubricSaves,
		SaveFailures:    p.SaveFailures,
	}
}

// Summary renders the counters as a single line.
func (p *Progress) Summary() string {
	s := p.Snapshot()
	return fmt.Sprintf("exams=%d completed=%d claims=%d duplicates=%d graded=%d edits=%d saves=%d saveFailures=%d elapsed=%s",
		s.ExamsLoaded, s.ExamsCompleted, s.Claims, s.DuplicateClaims, s.Graded,
		s.RubricEdits, s.RubricSaves, s.SaveFailures, clock.Since(s.StartedAt).Round(time.Millisecond))
}

// ----------------------------------------------------------------------------
// Context helpers
// ----------------------------------------------------------------------------

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a new tracker, embeds it in a derived context and
// returns both.
func WithNewTracker(ctx context.Context, runID, discipline string, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := New(runID, discipline, onChange)
	return WithTracker(ctx, tr), tr
}

// WithTracker embeds an existing tracker in a derived context.
func WithTracker(ctx context.Context, tr *Progress) context.Context {
	return context.WithValue(ctx, trackerKey, tr)
}

// FromContext extracts the tracker from ctx.  The second return value is
// false when the context carries no tracker.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx looks up the tracker in ctx (if any) and applies the delta.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}

// RecordClaimCtx looks up the tracker in ctx (if any) and records a claim.
func RecordClaimCtx(ctx context.Context, exam, question, worker int) bool {
	if tr, ok := FromContext(ctx); ok {
		return tr.RecordClaim(exam, question, worker)
	}
	return false
}
