package grader

import (
	"github.com/viant/marker/runtime/shared"
	"log/slog"
)

// Option customises the grader pool.
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


// WithLogger sets the diagnostic logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}
