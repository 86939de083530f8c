package coordinator

import (
	"context"
	"errors"
	"fmt"
	"github.com/viant/marker/journal"
	"github.com/viant/marker/model"
	"github.com/viant/marker/progress"
	"github.com/viant/marker/runtime/shared"
	"github.com/viant/marker/service/dao"
	"github.com/viant/marker/service/dao/exam"
	"github.com/viant/marker/service/dao/rubric"
	"github.com/viant/marker/tracing"
	"log/slog"
	"strconv"
	"time"
)

// Config represents coordinator configuration
type Config struct {
	// PollingInterval is how often the coordinator checks for a completed
	// exam and a dirty rubric
	PollingInterval time.Duration

	// Workers is the number of graders woken when an exam is loaded
	Workers int
}

// DefaultConfig returns the default coordinator configuration
func DefaultConfig() Config {
	return Config{
		PollingInterval: 200 * time.Millisecond,
		Workers:         2,
	}
}

// Waiter blocks until every grader has exited.
type Waiter interface {
	Wait()
}

// Service coordinates a grading run
type Service struct {
	config  Config
	region  *shared.Region
	rubrics rubric.Service
	exams   exam.Service
	logger  *slog.Logger

	examIndex int
}

// New creates a coordinator
func New(options ...Option) (*Service, error) {
	s := &Service{config: DefaultConfig()}
	for _, opt := range options {
		opt(s)
	}
	if s.region == nil {
		return nil, fmt.Errorf("shared region is required")
	}
	if s.rubrics == nil {
		return nil, fmt.Errorf("rubric service is required")
	}
	if s.exams == nil {
		return nil, fmt.Errorf("exam service is required")
	}
	if s.config.PollingInterval <= 0 {
		return nil, fmt.Errorf("invalid polling interval: %v", s.config.PollingInterval)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

// ExamIndex returns the index of the last exam loaded.
func (s *Service) ExamIndex() int {
	return s.examIndex
}

// Bootstrap loads the rubric into the region and makes the first exam
// current.  A rubric that cannot be loaded is fatal; a missing first exam
// only latches terminate.
func (s *Service) Bootstrap(ctx context.Context) (err error) {
	ctx, span := tracing.StartSpan(ctx, "coordinator.bootstrap", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()

	value, err := s.rubrics.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rubric: %w", err)
	}
	s.region.SeedRubric(value)
	s.logger.Debug("rubric loaded", "rubric", value.String())

	_ = s.loadExam(ctx, 1)
	return nil
}

// Run polls until the terminate flag is latched, advancing to the next exam
// when the current one is done and persisting rubric edits.  Cancelling ctx
// latches terminate.
func (s *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.config.PollingInterval)
	defer ticker.Stop()

	for !s.region.Terminated() {
		select {
		case <-ctx.Done():
			s.logger.Info("run cancelled, latching terminate", "reason", ctx.Err())
			s.region.Terminate()
			return nil
		case <-ticker.C:
			if s.region.ExamDone() {
				s.advance(ctx)
			}
			_ = s.persist(ctx)
		}
	}
	return nil
}

// Shutdown releases idle graders, waits for all of them, flushes outstanding
// rubric edits and writes the closing lines.
func (s *Service) Shutdown(ctx context.Context, graders Waiter) {
	s.region.Terminate()
	s.region.Log(journal.CoordinatorRole, "Termination condition reached. Waiting for TAs...")
	s.region.Discipline().ExamReady(s.config.Workers)
	if graders != nil {
		graders.Wait()
	}
	_ = s.persist(ctx)
	if tracker, ok := progress.FromContext(ctx); ok {
		s.region.Log(journal.CoordinatorRole, "Summary: %s", tracker.Summary())
		if duplicates := tracker.Duplicates(); len(duplicates) > 0 {
			s.logger.Warn("questions claimed more than once", "slots", duplicates)
		}
	}
	s.region.Log(journal.CoordinatorRole, "All done.")
}

func (s *Service) advance(ctx context.Context) {
	progress.UpdateCtx(ctx, progress.Delta{ExamsCompleted: 1})
	if err := s.loadExam(ctx, s.examIndex+1); err != nil {
		return
	}
	s.region.Discipline().ExamReady(s.config.Workers)
}

// loadExam makes exam index current.  Any failure to produce the record ends
// the batch.
func (s *Service) loadExam(ctx context.Context, index int) (err error) {
	ctx, span := tracing.StartSpan(ctx, "coordinator.loadExam", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"exam.index": strconv.Itoa(index)})

	record, err := s.exams.Load(ctx, index)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			s.region.Log(journal.CoordinatorRole, "No more exams (exam %02d not found). Setting terminate flag.", index)
			s.logger.Info("end of exam batch", "index", index)
		} else {
			s.region.Log(journal.CoordinatorRole, "Could not read exam %02d. Setting terminate flag.", index)
			s.logger.Warn("exam record unusable", "index", index, "error", err)
		}
		s.region.Terminate()
		return err
	}

	s.examIndex = index
	s.region.LoadExam(*record)
	s.region.Log(journal.CoordinatorRole, "Loaded exam %02d from %s, student %s", index, record.URL, record.StudentID)
	progress.UpdateCtx(ctx, progress.Delta{ExamsLoaded: 1})
	span.WithAttributes(map[string]string{"exam.student": record.StudentID})

	if record.IsSentinel() {
		s.region.Log(journal.CoordinatorRole, "Student %s reached. Setting terminate flag.", model.SentinelStudentID)
		s.region.Terminate()
	}
	return nil
}

// persist saves a dirty rubric outside any lock.  The dirty flag is cleared
// only when no edit landed during the save; a failed save keeps it set so the
// next tick retries.
func (s *Service) persist(ctx context.Context) (err error) {
	snapshot, revision, pending := s.region.PendingRubric()
	if !pending {
		return nil
	}
	ctx, span := tracing.StartSpan(ctx, "coordinator.persistRubric", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"rubric": snapshot.String(), "rubric.revision": strconv.FormatUint(revision, 10)})

	s.region.Log(journal.CoordinatorRole, "Detected rubric change. Saving rubric to file...")
	change, err := s.rubrics.Save(ctx, snapshot)
	if err != nil {
		s.region.Log(journal.CoordinatorRole, "Failed to save rubric file")
		s.logger.Warn("rubric persist failed", "revision", revision, "error", err)
		progress.UpdateCtx(ctx, progress.Delta{SaveFailures: 1})
		return err
	}
	if !s.region.MarkPersisted(revision) {
		s.logger.Debug("rubric edited during save", "revision", revision)
	}
	s.region.Log(journal.CoordinatorRole, "Saved rubric %s: %s", snapshot.String(), change.Summary())
	if !change.IsEmpty() {
		s.logger.Debug("rubric diff", "diff", change.Diff)
	}
	progress.UpdateCtx(ctx, progress.Delta{RubricSaves: 1})
	return nil
}
