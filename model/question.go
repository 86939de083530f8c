package model

// QuestionState represents grading progress of a single question of the
// current exam.
type QuestionState int32

const (
	QuestionNotStarted QuestionState = iota
	QuestionInProgress
	QuestionDone
)

func (s QuestionState) String() string {
	switch s {
	case QuestionNotStarted:
		return "notStarted"
	case QuestionInProgress:
		return "inProgress"
	case QuestionDone:
		return "done"
	}
	return "unknown"
}

// IsDone reports whether the question has been graded.
func (s QuestionState) IsDone() bool {
	return s == QuestionDone
}
