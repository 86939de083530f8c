package exam

import (
	"fmt"
	"github.com/viant/marker/model"
	"github.com/viant/marker/service/dao"
	"github.com/viant/parsly"
)

const studentIDCode = iota

var studentIDToken = parsly.NewToken(studentIDCode, "StudentID", &studentIDMatcher{})

// studentIDMatcher matches exactly model.StudentIDLength digits
type studentIDMatcher struct{}

func (m *studentIDMatcher) Match(cursor *parsly.Cursor) int {
	if cursor.Pos+model.StudentIDLength > cursor.InputSize {
		return 0
	}
	for i := cursor.Pos; i < cursor.Pos+model.StudentIDLength; i++ {
		if c := cursor.Input[i]; c < '0' || c > '9' {
			return 0
		}
	}
	return model.StudentIDLength
}

// ParseStudentID extracts the student id that begins the first line of an
// exam record.
func ParseStudentID(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty exam record", dao.ErrMalformed)
	}
	cursor := parsly.NewCursor("", data, 0)
	matched := cursor.MatchOne(studentIDToken)
	if matched.Code != studentIDToken.Code {
		return "", fmt.Errorf("%w: %v", dao.ErrMalformed, cursor.NewError(studentIDToken))
	}
	return matched.Text(cursor), nil
}
