package shared

import (
	"fmt"
	"github.com/viant/marker/internal/clock"
	"github.com/viant/marker/journal"
	"github.com/viant/marker/model"
	"github.com/viant/marker/policy"
	"sync/atomic"
)

// Outcome is the result of a claim attempt.
type Outcome int

const (
	// Claimed means the caller now holds Claim.Question.
	Claimed Outcome = iota
	// Busy means nothing is claimable but some question is still in progress.
	Busy
	// AllDone means every question of the current exam is graded.
	AllDone
)

func (o Outcome) String() string {
	switch o {
	case Claimed:
		return "claimed"
	case Busy:
		return "busy"
	case AllDone:
		return "allDone"
	}
	return "unknown"
}

// Claim describes the outcome of ClaimNext.
type Claim struct {
	Outcome  Outcome
	Question int // 1-based, set when Outcome is Claimed
	Exam     model.Exam
}

// Region holds the state shared by the coordinator and the graders.
type Region struct {
	discipline policy.Discipline
	sink       journal.Sink

	// RubricLock
	rubric         [model.NumQuestions]atomic.Uint32
	rubricDirty    atomic.Bool
	rubricRevision atomic.Uint64

	// QuestionsLock
	status   [model.NumQuestions]atomic.Int32
	claimant [model.NumQuestions]atomic.Int32
	examDone atomic.Bool

	// written by the coordinator between exams
	exam atomic.Pointer[model.Exam]

	terminate atomic.Bool

	// LogLock
	logSequence atomic.Int64
}

// New creates a region governed by discipline; log lines are appended to sink.
func New(discipline policy.Discipline, sink journal.Sink) *Region {
	if sink == nil {
		sink = journal.Discard
	}
	r := &Region{discipline: discipline, sink: sink}
	r.exam.Store(&model.Exam{})
	return r
}

// Discipline returns the discipline governing the region.
func (r *Region) Discipline() policy.Discipline {
	return r.discipline
}

// ----------------------------------------------------------------------------
// Rubric
// ----------------------------------------------------------------------------

// SeedRubric installs the initial rubric; called before any grader starts.
func (r *Region) SeedRubric(rubric model.Rubric) {
	r.discipline.Lock(policy.RubricLock)
	defer r.discipline.Unlock(policy.RubricLock)
	for i, grade := range rubric {
		r.rubric[i].Store(uint32(grade))
	}
	r.rubricDirty.Store(false)
}

// Grade returns the rubric letter of question q (1-based).
func (r *Region) Grade(q int) model.Grade {
	idx := questionIndex(q)
	r.discipline.Lock(policy.RubricLock)
	defer r.discipline.Unlock(policy.RubricLock)
	return model.Grade(r.rubric[idx].Load())
}

// ReviseGrade advances the rubric letter of question q and marks the rubric
// dirty.  It returns the letter before and after the edit.
func (r *Region) ReviseGrade(q int) (model.Grade, model.Grade) {
	idx := questionIndex(q)
	r.discipline.Lock(policy.RubricLock)
	defer r.discipline.Unlock(policy.RubricLock)
	old := model.Grade(r.rubric[idx].Load())
	r.discipline.Interleave()
	updated := old.Next()
	r.rubric[idx].Store(uint32(updated))
	r.rubricRevision.Add(1)
	r.rubricDirty.Store(true)
	return old, updated
}

// PendingRubric returns a snapshot of a dirty rubric together with its
// revision.  The last value is false when there is nothing to persist.
func (r *Region) PendingRubric() (model.Rubric, uint64, bool) {
	r.discipline.Lock(policy.RubricLock)
	defer r.discipline.Unlock(policy.RubricLock)
	if !r.rubricDirty.Load() {
		return model.Rubric{}, 0, false
	}
	return r.rubricLocked(), r.rubricRevision.Load(), true
}

// MarkPersisted clears the dirty flag if the rubric has not been edited since
// the snapshot of revision rev was taken.
func (r *Region) MarkPersisted(rev uint64) bool {
	r.discipline.Lock(policy.RubricLock)
	defer r.discipline.Unlock(policy.RubricLock)
	if r.rubricRevision.Load() != rev {
		return false
	}
	r.rubricDirty.Store(false)
	return true
}

func (r *Region) rubricLocked() model.Rubric {
	var result model.Rubric
	for i := range r.rubric {
		result[i] = model.Grade(r.rubric[i].Load())
	}
	return result
}

// ----------------------------------------------------------------------------
// Exam and questions
// ----------------------------------------------------------------------------

// LoadExam makes exam current and resets every question to NotStarted.
func (r *Region) LoadExam(exam model.Exam) {
	r.discipline.Lock(policy.QuestionsLock)
	defer r.discipline.Unlock(policy.QuestionsLock)
	r.exam.Store(&exam)
	for i := range r.status {
		r.status[i].Store(int32(model.QuestionNotStarted))
		r.claimant[i].Store(0)
	}
	r.examDone.Store(false)
}

// Exam returns the current exam.
func (r *Region) Exam() model.Exam {
	return *r.exam.Load()
}

// ClaimNext scans the questions in order and claims the first one not yet
// started, recording worker as its claimant.  When none is left it reports Busy, or AllDone after setting the
// exam-done flag.
func (r *Region) ClaimNext(worker int) Claim {
	r.discipline.Lock(policy.QuestionsLock)
	defer r.discipline.Unlock(policy.QuestionsLock)
	exam := *r.exam.Load()
	busy := false
	for i := range r.status {
		switch model.QuestionState(r.status[i].Load()) {
		case model.QuestionNotStarted:
			r.discipline.Interleave()
			if r.startQuestion(i) {
				r.claimant[i].Store(int32(worker))
				return Claim{Outcome: Claimed, Question: i + 1, Exam: exam}
			}
		case model.QuestionInProgress:
			busy = true
		}
	}
	if busy {
		return Claim{Outcome: Busy, Exam: exam}
	}
	r.examDone.Store(true)
	return Claim{Outcome: AllDone, Exam: exam}
}

// startQuestion moves slot i to InProgress unless it is already Done.  A slot
// that is already InProgress is claimed again, which only happens when the
// discipline lets two scans interleave.
func (r *Region) startQuestion(i int) bool {
	for {
		current := r.status[i].Load()
		if model.QuestionState(current).IsDone() {
			return false
		}
		if r.status[i].CompareAndSwap(current, int32(model.QuestionInProgress)) {
			return true
		}
	}
}

// Finish marks question q (1-based) as graded.
func (r *Region) Finish(q int) {
	idx := questionIndex(q)
	r.discipline.Lock(policy.QuestionsLock)
	defer r.discipline.Unlock(policy.QuestionsLock)
	r.status[idx].Store(int32(model.QuestionDone))
}

// ExamDone reports whether every question of the current exam was graded.
func (r *Region) ExamDone() bool {
	r.discipline.Lock(policy.QuestionsLock)
	defer r.discipline.Unlock(policy.QuestionsLock)
	return r.examDone.Load()
}

// ----------------------------------------------------------------------------
// Termination
// ----------------------------------------------------------------------------

// Terminate latches the terminate flag.
func (r *Region) Terminate() {
	r.terminate.Store(true)
}

// Terminated reports whether the run is shutting down.
func (r *Region) Terminated() bool {
	return r.terminate.Load()
}

// ----------------------------------------------------------------------------
// Log
// ----------------------------------------------------------------------------

// Log allocates the next sequence number and appends the formatted line to
// the sink as one unit.
func (r *Region) Log(role string, format string, args ...interface{}) journal.Entry {
	message := format
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	}
	r.discipline.Lock(policy.LogLock)
	defer r.discipline.Unlock(policy.LogLock)
	seq := r.logSequence.Load() + 1
	r.discipline.Interleave()
	r.logSequence.Store(seq)
	entry := journal.Entry{Seq: seq, Role: role, Message: message, Time: clock.Now()}
	r.sink.Append(entry)
	return entry
}

// ----------------------------------------------------------------------------
// Diagnostics
// ----------------------------------------------------------------------------

// State is a point-in-time copy of the region.
type State struct {
	Rubric         model.Rubric
	RubricDirty    bool
	RubricRevision uint64
	Questions      [model.NumQuestions]model.QuestionState
	Claimants      [model.NumQuestions]int // last worker to claim each question, 0 if none
	ExamDone       bool
	Exam           model.Exam
	Terminate      bool
	LogSequence    int64
}

// Snapshot copies every field; it takes no locks and is meant for
// diagnostics and tests.
func (r *Region) Snapshot() State {
	state := State{
		Rubric:         r.rubricLocked(),
		RubricDirty:    r.rubricDirty.Load(),
		RubricRevision: r.rubricRevision.Load(),
		ExamDone:       r.examDone.Load(),
		Exam:           *r.exam.Load(),
		Terminate:      r.terminate.Load(),
		LogSequence:    r.logSequence.Load(),
	}
	for i := range r.status {
		state.Questions[i] = model.QuestionState(r.status[i].Load())
		state.Claimants[i] = int(r.claimant[i].Load())
	}
	return state
}

func questionIndex(q int) int {
	if q < 1 || q > model.NumQuestions {
		panic(fmt.Sprintf("question %d out of range [1,%d]", q, model.NumQuestions))
	}
	return q - 1
}
