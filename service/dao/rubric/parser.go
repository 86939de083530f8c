package rubric

import (
	"bytes"
	"fmt"
	"github.com/viant/marker/model"
	"github.com/viant/marker/service/dao"
	"github.com/viant/parsly"
	"strconv"
)

// Parse decodes rubric content: one "<n>, <letter>" line per question (the
// space after the comma is optional).  Blank lines are skipped and anything
// after the letter is ignored.  Every question in [1,NumQuestions] must be
// listed exactly once.
func Parse(data []byte) (model.Rubric, error) {
	var rubric model.Rubric
	var seen [model.NumQuestions]bool
	count := 0
	for i, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		question, grade, err := parseLine(line)
		if err != nil {
			return rubric, fmt.Errorf("%w: rubric line %d %q: %v", dao.ErrMalformed, i+1, line, err)
		}
		if question < 1 || question > model.NumQuestions {
			return rubric, fmt.Errorf("%w: rubric line %d: invalid question number %d", dao.ErrMalformed, i+1, question)
		}
		if seen[question-1] {
			return rubric, fmt.Errorf("%w: rubric line %d: duplicate question %d", dao.ErrMalformed, i+1, question)
		}
		seen[question-1] = true
		rubric[question-1] = grade
		count++
	}
	if count < model.NumQuestions {
		return rubric, fmt.Errorf("%w: rubric has %d of %d questions", dao.ErrMalformed, count, model.NumQuestions)
	}
	return rubric, nil
}

func parseLine(line []byte) (int, model.Grade, error) {
	cursor := parsly.NewCursor("", line, 0)

	matched := cursor.MatchOne(numberToken)
	if matched.Code != numberToken.Code {
		return 0, 0, cursor.NewError(numberToken)
	}
	question, err := strconv.Atoi(matched.Text(cursor))
	if err != nil {
		return 0, 0, err
	}

	matched = cursor.MatchAfterOptional(whitespaceToken, commaToken)
	if matched.Code != commaToken.Code {
		return 0, 0, cursor.NewError(commaToken)
	}

	matched = cursor.MatchAfterOptional(whitespaceToken, gradeToken)
	if matched.Code != gradeToken.Code {
		return 0, 0, cursor.NewError(gradeToken)
	}
	return question, model.Grade(matched.Text(cursor)[0]), nil
}
