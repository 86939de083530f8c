// Package coordinator drives a grading run: it seeds the shared region with
// the rubric, feeds exams one at a time, persists rubric edits and performs
// the orderly shutdown once the terminate flag is latched.
package coordinator
