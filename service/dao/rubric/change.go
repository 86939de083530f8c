package rubric

import (
	"fmt"
	"github.com/pmezard/go-difflib/difflib"
	sgdiff "github.com/sourcegraph/go-diff/diff"
	"github.com/viant/marker/model"
	"strings"
)

// Change describes the effect of a rubric save.
type Change struct {
	URL       string
	Diff      string // unified diff of the stored content, empty when unchanged
	Added     int
	Changed   int
	Deleted   int
	Questions []int // questions whose letter differs from the stored rubric
}

// IsEmpty reports whether the save left storage untouched.
func (c *Change) IsEmpty() bool {
	return c == nil || c.Diff == ""
}

// Summary renders a short description used in log lines.
func (c *Change) Summary() string {
	if c.IsEmpty() {
		return "no change"
	}
	if len(c.Questions) == 0 {
		return fmt.Sprintf("+%d ~%d -%d lines", c.Added, c.Changed, c.Deleted)
	}
	var questions []string
	for _, q := range c.Questions {
		questions = append(questions, fmt.Sprintf("Q%d", q))
	}
	return fmt.Sprintf("%s (+%d ~%d -%d lines)", strings.Join(questions, ","), c.Added, c.Changed, c.Deleted)
}

// Compare computes the change between stored content and the rubric about to
// replace it.
func Compare(URL string, previous []byte, current model.Rubric) (*Change, error) {
	next := current.Lines()
	change := &Change{URL: URL}
	if string(previous) == next {
		return change, nil
	}

	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(previous)),
		B:        difflib.SplitLines(next),
		FromFile: URL + " (previous)",
		ToFile:   URL,
		Context:  1,
	}
	patch, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return nil, fmt.Errorf("failed to diff rubric: %w", err)
	}
	change.Diff = patch

	if patch != "" {
		fileDiff, err := sgdiff.ParseFileDiff([]byte(patch))
		if err != nil {
			return nil, fmt.Errorf("failed to parse rubric diff: %w", err)
		}
		stat := fileDiff.Stat()
		change.Added, change.Changed, change.Deleted = int(stat.Added), int(stat.Changed), int(stat.Deleted)
	}

	if stored, err := Parse(previous); err == nil {
		for i := range stored {
			if stored[i] != current[i] {
				change.Questions = append(change.Questions, i+1)
			}
		}
	}
	return change, nil
}
