package fs

import (
	"context"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/marker/model"
	"github.com/viant/marker/service/dao"
	"github.com/viant/marker/service/dao/rubric"
	"strings"
	"sync"
)

// Service implements an afs-backed rubric store; any afs scheme (file, mem,
// cloud storage) can hold the rubric file.
type Service struct {
	URL string
	fs  afs.Service
	mu  sync.Mutex
}

// Ensure Service implements rubric.Service
var _ rubric.Service = (*Service)(nil)

// Load reads and parses the rubric file.
func (s *Service) Load(ctx context.Context) (model.Rubric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.fs.Exists(ctx, s.URL)
	if err != nil {
		return model.Rubric{}, fmt.Errorf("failed to check rubric %s: %w", s.URL, err)
	}
	if !exists {
		return model.Rubric{}, fmt.Errorf("%w: rubric %s", dao.ErrNotFound, s.URL)
	}
	data, err := s.fs.DownloadWithURL(ctx, s.URL)
	if err != nil {
		return model.Rubric{}, fmt.Errorf("failed to read rubric %s: %w", s.URL, err)
	}
	result, err := rubric.Parse(data)
	if err != nil {
		return model.Rubric{}, fmt.Errorf("failed to parse rubric %s: %w", s.URL, err)
	}
	return result, nil
}

// Save rewrites the rubric file unless its content already matches.
func (s *Service) Save(ctx context.Context, value model.Rubric) (*rubric.Change, error) {
	if err := value.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var previous []byte
	if exists, _ := s.fs.Exists(ctx, s.URL); exists {
		data, err := s.fs.DownloadWithURL(ctx, s.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to read rubric %s: %w", s.URL, err)
		}
		previous = data
	}
	change, err := rubric.Compare(s.URL, previous, value)
	if err != nil {
		return nil, err
	}
	if change.IsEmpty() {
		return change, nil
	}
	if err = s.fs.Upload(ctx, s.URL, file.DefaultFileOsMode, strings.NewReader(value.Lines())); err != nil {
		return nil, fmt.Errorf("failed to save rubric to %s: %w", s.URL, err)
	}
	return change, nil
}

// New creates a rubric store for the supplied location.
func New(location string) (*Service, error) {
	if location == "" {
		return nil, fmt.Errorf("rubric location cannot be empty")
	}
	return &Service{
		URL: url.Normalize(location, file.Scheme),
		fs:  afs.New(),
	}, nil
}
