package model

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestGrade_Next(t *testing.T) {
	assert.Equal(t, Grade('B'), Grade('A').Next())
	assert.Equal(t, Grade('A'), Grade('Z').Next())
	assert.Equal(t, Grade('A'), Grade('?').Next())

	g := Grade('A')
	for i := 0; i < 26; i++ {
		g = g.Next()
		assert.True(t, g.IsValid())
	}
	assert.Equal(t, Grade('A'), g)
}

func TestRubric(t *testing.T) {
	r := Rubric{'A', 'B', 'C', 'D', 'Z'}
	assert.NoError(t, r.Validate())
	assert.Equal(t, "ABCDZ", r.String())
	assert.Equal(t, "1, A\n2, B\n3, C\n4, D\n5, Z\n", r.Lines())

	r[2] = 'c'
	assert.Error(t, r.Validate())
}

func TestExam_IsSentinel(t *testing.T) {
	assert.True(t, (&Exam{StudentID: SentinelStudentID}).IsSentinel())
	assert.False(t, (&Exam{StudentID: "1234"}).IsSentinel())
	var e *Exam
	assert.False(t, e.IsSentinel())
	assert.Equal(t, "done", QuestionDone.String())
	assert.True(t, QuestionDone.IsDone())
	assert.False(t, QuestionInProgress.IsDone())
}
