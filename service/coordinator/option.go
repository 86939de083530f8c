package coordinator

import (
	"github.com/viant/marker/runtime/shared"
	"github.com/viant/marker/service/dao/exam"
	"github.com/viant/marker/service/dao/rubric"
	"log/slog"
)

// Option customises the coordinator.
type Option func(*Service)

// WithConfig sets the configuration for the service
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithRegion sets the shared region
func WithRegion(region *shared.Region) Option {
	return func(s *Service) {
		s.region = region
	}
}

// WithRubricService sets the rubric store implementation
func WithRubricService(rubrics rubric.Service) Option {
	return func(s *Service) {
		s.rubrics = rubrics
	}
}

// WithExamService sets the exam source implementation
func WithExamService(exams exam.Service) Option {
	return func(s *Service) {
		s.exams = exams
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}
