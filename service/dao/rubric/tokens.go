package rubric

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes
const (
	whitespaceCode = iota
	numberCode
	commaCode
	gradeCode
)

// Token definitions
var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	numberToken     = parsly.NewToken(numberCode, "Number", &numberMatcher{})
	commaToken      = parsly.NewToken(commaCode, ",", matcher.NewByte(','))
	gradeToken      = parsly.NewToken(gradeCode, "Grade", &gradeMatcher{})
)

// numberMatcher matches a run of decimal digits
type numberMatcher struct{}

func (m *numberMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if !isDigit(input[i]) {
			break
		}
		matched++
	}
	return matched
}

// gradeMatcher matches a single uppercase letter
type gradeMatcher struct{}

func (m *gradeMatcher) Match(cursor *parsly.Cursor) int {
	if cursor.Pos >= cursor.InputSize {
		return 0
	}
	if c := cursor.Input[cursor.Pos]; c >= 'A' && c <= 'Z' {
		return 1
	}
	return 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
