package grader

import (
	"context"
	"fmt"
	"github.com/viant/marker/runtime/shared"
	"log/slog"
	"math/rand"
	"sync"
	"time"
)

// Delay is a uniform random duration range.
type Delay struct {
	Min time.Duration
	Max time.Duration
}

// Draw returns a duration in [Min, Max].
func (d Delay) Draw(rnd *rand.Rand) time.Duration {
	if d.Max <= d.Min {
		return d.Min
	}
	return d.Min + time.Duration(rnd.Int63n(int64(d.Max-d.Min)+1))
}

// Config represents grader pool configuration
type Config struct {
	// WorkerCount is the number of graders
	WorkerCount int

	// ReviewDelay is spent on every rubric entry during review
	ReviewDelay Delay

	// GradeDelay is spent marking one question
	GradeDelay Delay

	// RevisionProbability is the chance a reviewed rubric entry is corrected
	RevisionProbability float64

	// Seed seeds per-grader random sources; zero selects a time based seed
	Seed int64
}

// DefaultConfig returns the default grader configuration
func DefaultConfig() Config {
	return Config{
		WorkerCount:         2,
		ReviewDelay:         Delay{Min: 500 * time.Millisecond, Max: time.Second},
		GradeDelay:          Delay{Min: time.Second, Max: 2 * time.Second},
		RevisionProbability: 0.5,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.WorkerCount < 1 {
		return fmt.Errorf("invalid worker count: %d", c.WorkerCount)
	}
	if c.ReviewDelay.Min < 0 || c.ReviewDelay.Max < c.ReviewDelay.Min {
		return fmt.Errorf("invalid review delay: %v-%v", c.ReviewDelay.Min, c.ReviewDelay.Max)
	}
	if c.GradeDelay.Min < 0 || c.GradeDelay.Max < c.GradeDelay.Min {
		return fmt.Errorf("invalid grade delay: %v-%v", c.GradeDelay.Min, c.GradeDelay.Max)
	}
	if c.RevisionProbability < 0 || c.RevisionProbability > 1 {
		return fmt.Errorf("invalid revision probability: %v", c.RevisionProbability)
	}
	return nil
}

// Service runs the grader pool
type Service struct {
	config Config
	region *shared.Region
	logger *slog.Logger

	workers  []*worker
	workerWg sync.WaitGroup
}

// New creates a grader pool
func New(options ...Option) (*Service, error) {
	s := &Service{
		config: DefaultConfig(),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.region == nil {
		return nil, fmt.Errorf("shared region is required")
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

// Start spawns the graders; ids are 1-based.
func (s *Service) Start(ctx context.Context) error {
	seed := s.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	for i := 1; i <= s.config.WorkerCount; i++ {
		w := newWorker(i, s, rand.New(rand.NewSource(seed+int64(i)*7919)))
		s.workers = append(s.workers, w)
		s.workerWg.Add(1)
		go w.run(ctx)
	}
	s.logger.Debug("graders started", "count", s.config.WorkerCount, "seed", seed)
	return nil
}

// Wait blocks until every grader has exited.
func (s *Service) Wait() {
	s.workerWg.Wait()
}
