package fs

import (
	"context"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/marker/model"
	"github.com/viant/marker/service/dao"
	"github.com/viant/marker/service/dao/exam"
)

// Service reads exam records named after a pattern from an afs location.
type Service struct {
	baseURL string
	pattern string
	fs      afs.Service
}

var _ exam.Service = (*Service)(nil)

// Load reads and parses exam index.
func (s *Service) Load(ctx context.Context, index int) (*model.Exam, error) {
	if index < 1 {
		return nil, fmt.Errorf("%w: exam index %d", dao.ErrInvalidID, index)
	}
	URL := s.URL(index)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check exam %s: %w", URL, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: exam %s", dao.ErrNotFound, URL)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read exam %s: %w", URL, err)
	}
	studentID, err := exam.ParseStudentID(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse exam %s: %w", URL, err)
	}
	return &model.Exam{Index: index, StudentID: studentID, URL: URL}, nil
}

// URL returns the location of exam index.
func (s *Service) URL(index int) string {
	return url.Join(s.baseURL, fmt.Sprintf(s.pattern, index))
}

// New creates an exam source rooted at location; an empty pattern selects
// exam.DefaultPattern.
func New(location, pattern string) (*Service, error) {
	if location == "" {
		return nil, fmt.Errorf("exam location cannot be empty")
	}
	if pattern == "" {
		pattern = exam.DefaultPattern
	}
	return &Service{
		baseURL: url.Normalize(location, file.Scheme),
		pattern: pattern,
		fs:      afs.New(),
	}, nil
}
