package grader

import (
	"context"
	"github.com/viant/marker/internal/clock"
	"github.com/viant/marker/journal"
	"github.com/viant/marker/model"
	"github.com/viant/marker/progress"
	"github.com/viant/marker/runtime/shared"
	"math/rand"
)

type worker struct {
	id      int
	role    string
	service *Service
	region  *shared.Region
	rnd     *rand.Rand
}

func newWorker(id int, service *Service, rnd *rand.Rand) *worker {
	return &worker{
		id:      id,
		role:    journal.GraderRole(id),
		service: service,
		region:  service.region,
		rnd:     rnd,
	}
}

func (w *worker) log(format string, args ...interface{}) {
	w.region.Log(w.role, format, args...)
}

// run loops over exams until the terminate flag is observed.
func (w *worker) run(ctx context.Context) {
	defer w.service.workerWg.Done()
	for {
		if w.region.Terminated() {
			w.log("terminate flag set before work, exiting.")
			return
		}
		w.log("Starting work on student %s", w.region.Exam().StudentID)

		w.reviewRubric(ctx)
		if w.region.Terminated() {
			w.log("terminate flag set after rubric, exiting.")
			return
		}

		if !w.markQuestions(ctx) {
			return
		}

		w.log("Waiting for next exam...")
		released := func() bool { return w.region.Terminated() || !w.region.ExamDone() }
		if err := w.region.Discipline().AwaitExam(ctx, released); err != nil {
			w.service.logger.Debug("grader wait interrupted", "grader", w.id, "error", err)
			return
		}
		if w.region.Terminated() {
			w.log("woken up but terminate flag set, exiting.")
			return
		}
	}
}

// reviewRubric inspects every rubric entry and randomly corrects some.
func (w *worker) reviewRubric(ctx context.Context) {
	for q := 1; q <= model.NumQuestions; q++ {
		current := w.region.Grade(q)
		w.log("Checking rubric for Q%d (current '%c')", q, byte(current))
		clock.Sleep(w.service.config.ReviewDelay.Draw(w.rnd))

		if w.rnd.Float64() < w.service.config.RevisionProbability {
			old, updated := w.region.ReviseGrade(q)
			progress.UpdateCtx(ctx, progress.Delta{RubricEdits: 1})
			w.log("Correcting rubric Q%d: %c -> %c (in shared memory)", q, byte(old), byte(updated))
			continue
		}
		w.log("Rubric for Q%d unchanged (still '%c')", q, byte(w.region.Grade(q)))
	}
}

// markQuestions claims and marks questions until none is left.  It returns
// false when the grader must exit.
func (w *worker) markQuestions(ctx context.Context) bool {
	for {
		if w.region.Terminated() {
			w.log("terminate flag set while marking, exiting.")
			return false
		}
		claim := w.region.ClaimNext(w.id)
		switch claim.Outcome {
		case shared.Busy:
			w.region.Discipline().Backoff()
			continue
		case shared.AllDone:
			w.log("All questions for student %s appear done.", claim.Exam.StudentID)
			return true
		}

		if progress.RecordClaimCtx(ctx, claim.Exam.Index, claim.Question, w.id) {
			tracker, _ := progress.FromContext(ctx)
			w.service.logger.Warn("question claimed twice", "grader", w.id, "exam", claim.Exam.Index,
				"question", claim.Question, "claimants", tracker.Claimants(claim.Exam.Index, claim.Question))
		}
		grade := w.region.Grade(claim.Question)
		w.log("Marking Q%d for student %s (rubric '%c')", claim.Question, claim.Exam.StudentID, byte(grade))
		clock.Sleep(w.service.config.GradeDelay.Draw(w.rnd))
		w.region.Finish(claim.Question)
		progress.UpdateCtx(ctx, progress.Delta{Graded: 1})
		w.log("Finished Q%d for student %s", claim.Question, claim.Exam.StudentID)
	}
}
