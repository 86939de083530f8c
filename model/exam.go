package model

// SentinelStudentID marks the end of the exam batch.
const SentinelStudentID = "9999"

// StudentIDLength is the number of digits in a student identifier.
const StudentIDLength = 4

// Exam identifies the unit of work currently loaded for grading.
type Exam struct {
	// Index is the 1-based position of the exam in the batch.
	Index int `json:"index" yaml:"index"`
	// StudentID is the 4-digit identifier read from the exam record.
	StudentID string `json:"studentId" yaml:"studentId"`
	// URL is the storage location the exam was read from (informative).
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// IsSentinel reports whether the exam carries the end-of-batch identifier.
func (e *Exam) IsSentinel() bool {
	return e != nil && e.StudentID == SentinelStudentID
}
