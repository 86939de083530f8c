package exam

import (
	"context"
	"github.com/viant/marker/model"
)

// DefaultPattern names exam records within the exam location.
const DefaultPattern = "exam%02d.txt"

// Service reads exam records in batch order.
type Service interface {
	// Load returns exam index (1-based).  It fails with dao.ErrNotFound when
	// the record does not exist and dao.ErrMalformed when it cannot be parsed.
	Load(ctx context.Context, index int) (*model.Exam, error)
}
