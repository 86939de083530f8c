package marker

import (
	"context"
	"fmt"
	"github.com/viant/marker/internal/idgen"
	"github.com/viant/marker/journal"
	"github.com/viant/marker/policy"
	"github.com/viant/marker/progress"
	"github.com/viant/marker/runtime/shared"
	"github.com/viant/marker/service/coordinator"
	"github.com/viant/marker/service/dao/exam"
	efs "github.com/viant/marker/service/dao/exam/fs"
	"github.com/viant/marker/service/dao/rubric"
	rfs "github.com/viant/marker/service/dao/rubric/fs"
	"github.com/viant/marker/service/grader"
	"log/slog"
	"os"
	"time"
)

// Version is reported in traces.
const Version = "0.1.0"

// Service is the grading engine façade.
type Service struct {
	config        *Config
	rubrics       rubric.Service
	exams         exam.Service
	sink          journal.Sink
	logger        *slog.Logger
	discipline    policy.Discipline
	policyOptions []policy.Option
	tracker       *progress.Progress
	listener      func(progress.Progress)
	tracingErr    error

	region      *shared.Region
	coordinator *coordinator.Service
	graders     *grader.Service
}

// New creates an engine.  Every configuration and initialisation error is
// reported here, before any grader runs.
func New(options ...Option) (*Service, error) {
	s := &Service{}
	for _, option := range options {
		option(s)
	}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) init() (err error) {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err = s.config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if s.tracingErr != nil {
		return fmt.Errorf("failed to initialise tracing: %w", s.tracingErr)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.sink == nil {
		s.sink = journal.NewTextSink(os.Stdout)
	}
	if s.rubrics == nil {
		if s.rubrics, err = rfs.New(s.config.RubricURL); err != nil {
			return err
		}
	}
	if s.exams == nil {
		if s.exams, err = efs.New(s.config.ExamURL, s.config.ExamPattern); err != nil {
			return err
		}
	}
	if s.discipline == nil {
		opts := append([]policy.Option{policy.WithPollInterval(time.Duration(s.config.Grader.Backoff))}, s.policyOptions...)
		if s.discipline, err = policy.New(s.config.Mode(), opts...); err != nil {
			return fmt.Errorf("failed to initialise %v discipline: %w", s.config.Mode(), err)
		}
	}
	switch {
	case s.tracker == nil:
		listener := s.listener
		if listener == nil {
			listener = s.logProgress
		}
		s.tracker = progress.New(idgen.New(), string(s.discipline.Mode()), listener)
	case s.listener != nil:
		s.tracker.OnChange(s.listener)
	}

	s.region = shared.New(s.discipline, s.sink)
	if s.coordinator, err = coordinator.New(
		coordinator.WithConfig(s.config.coordinatorConfig()),
		coordinator.WithRegion(s.region),
		coordinator.WithRubricService(s.rubrics),
		coordinator.WithExamService(s.exams),
		coordinator.WithLogger(s.logger),
	); err != nil {
		return err
	}
	s.graders, err = grader.New(
		grader.WithConfig(s.config.graderConfig()),
		grader.WithRegion(s.region),
		grader.WithLogger(s.logger),
	)
	return err
}

// Run grades the batch: bootstrap, spawn the graders, coordinate until the
// terminate flag is latched, then shut down.  Cancelling ctx latches
// terminate; outstanding rubric edits are still flushed.
func (s *Service) Run(ctx context.Context) error {
	ctx = progress.WithTracker(ctx, s.tracker)
	s.logger.Info("grading run started",
		"run", s.tracker.RunID,
		"discipline", s.discipline.Mode(),
		"workers", s.config.Workers)

	if err := s.coordinator.Bootstrap(ctx); err != nil {
		return err
	}
	if err := s.graders.Start(ctx); err != nil {
		s.region.Terminate()
		return err
	}
	_ = s.coordinator.Run(ctx)
	s.coordinator.Shutdown(context.WithoutCancel(ctx), s.graders)

	s.logger.Info("grading run finished", "run", s.tracker.RunID, "summary", s.tracker.Summary())
	return nil
}

func (s *Service) logProgress(p progress.Progress) {
	s.logger.Debug("progress",
		"run", p.RunID,
		"exams", p.ExamsLoaded,
		"claims", p.Claims,
		"duplicates", p.DuplicateClaims,
		"graded", p.Graded,
		"edits", p.RubricEdits,
		"saves", p.RubricSaves)
}

// Terminate latches the terminate flag; the run winds down at the next
// loop boundary of every participant.
func (s *Service) Terminate() {
	s.region.Terminate()
}

// Region returns the shared region of the run.
func (s *Service) Region() *shared.Region {
	return s.region
}

// Progress returns a snapshot of the run counters.
func (s *Service) Progress() progress.Progress {
	return s.tracker.Snapshot()
}

// Tracker returns the run counters tracker.
func (s *Service) Tracker() *progress.Progress {
	return s.tracker
}
