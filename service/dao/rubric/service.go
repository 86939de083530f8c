package rubric

import (
	"context"
	"github.com/viant/marker/model"
)

// Service loads and persists the grading rubric.
type Service interface {
	// Load reads and validates the rubric.
	Load(ctx context.Context) (model.Rubric, error)

	// Save writes the rubric in full and reports what changed.  Saving a
	// rubric identical to the stored one leaves storage untouched and
	// returns an empty change.
	Save(ctx context.Context, rubric model.Rubric) (*Change, error)
}
