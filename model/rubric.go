package model

import (
	"fmt"
	"strings"
)

// NumQuestions is the fixed number of questions per exam (and rubric entries).
const NumQuestions = 5

// Grade represents a single rubric letter.
type Grade byte

// Next advances the grade by one position in the alphabet, wrapping 'Z' to 'A'.
func (g Grade) Next() Grade {
	if g >= 'Z' || g < 'A' {
		return 'A'
	}
	return g + 1
}

// IsValid reports whether g is an uppercase ASCII letter.
func (g Grade) IsValid() bool {
	return g >= 'A' && g <= 'Z'
}

func (g Grade) String() string {
	return string(rune(g))
}

// Rubric holds one grade per question, question 1 at index 0.
type Rubric [NumQuestions]Grade

// Validate returns an error if any entry is not a grade letter.
func (r Rubric) Validate() error {
	for i, g := range r {
		if !g.IsValid() {
			return fmt.Errorf("rubric Q%d: invalid grade %q", i+1, byte(g))
		}
	}
	return nil
}

// Lines renders the rubric in its file representation: "<n>, <letter>" per line.
func (r Rubric) Lines() string {
	var b strings.Builder
	for i, g := range r {
		fmt.Fprintf(&b, "%d, %c\n", i+1, byte(g))
	}
	return b.String()
}

func (r Rubric) String() string {
	var b strings.Builder
	for _, g := range r {
		b.WriteByte(byte(g))
	}
	return b.String()
}
