package memory

import (
	"context"
	"fmt"
	"github.com/viant/marker/model"
	"github.com/viant/marker/service/dao"
	"github.com/viant/marker/service/dao/exam"
	"sync"
)

// Service serves exam records held in memory, record i+1 at position i.
type Service struct {
	records [][]byte
	loads   []int
	mux     sync.Mutex
}

var _ exam.Service = (*Service)(nil)

func (s *Service) Load(_ context.Context, index int) (*model.Exam, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.loads = append(s.loads, index)
	if index < 1 {
		return nil, dao.ErrInvalidID
	}
	if index > len(s.records) {
		return nil, fmt.Errorf("%w: exam %d", dao.ErrNotFound, index)
	}
	studentID, err := exam.ParseStudentID(s.records[index-1])
	if err != nil {
		return nil, err
	}
	return &model.Exam{Index: index, StudentID: studentID, URL: fmt.Sprintf("mem://exam/%02d", index)}, nil
}

// Loads returns the requested indexes in call order.
func (s *Service) Loads() []int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return append([]int(nil), s.loads...)
}

// New creates a source with the supplied records.
func New(records ...string) *Service {
	result := &Service{}
	for _, record := range records {
		result.records = append(result.records, []byte(record))
	}
	return result
}
