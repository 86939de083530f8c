package memory

import (
	"context"
	"fmt"
	"github.com/viant/marker/model"
	"github.com/viant/marker/service/dao"
	"github.com/viant/marker/service/dao/rubric"
	"sync"
)

// Service keeps the rubric content in memory.  Save failures can be injected
// to exercise persist retries.
type Service struct {
	content []byte
	saves   int
	failN   int
	failErr error
	mux     sync.Mutex
}

var _ rubric.Service = (*Service)(nil)

// Load parses the stored content.
func (s *Service) Load(_ context.Context) (model.Rubric, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.content == nil {
		return model.Rubric{}, dao.ErrNotFound
	}
	return rubric.Parse(s.content)
}

// Save replaces the stored content unless it is identical.
func (s *Service) Save(_ context.Context, value model.Rubric) (*rubric.Change, error) {
	if err := value.Validate(); err != nil {
		return nil, err
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.failN > 0 {
		s.failN--
		return nil, s.failErr
	}
	change, err := rubric.Compare("mem://rubric", s.content, value)
	if err != nil {
		return nil, err
	}
	if change.IsEmpty() {
		return change, nil
	}
	s.content = []byte(value.Lines())
	s.saves++
	return change, nil
}

// Content returns the stored rubric text.
func (s *Service) Content() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return string(s.content)
}

// Saves returns the number of writes that changed the stored content.
func (s *Service) Saves() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.saves
}

// FailNext makes the next n saves return err.
func (s *Service) FailNext(n int, err error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if err == nil {
		err = fmt.Errorf("rubric storage unavailable")
	}
	s.failN, s.failErr = n, err
}

// New creates a store holding content (nil means no rubric).
func New(content []byte) *Service {
	return &Service{content: content}
}
