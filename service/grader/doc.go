// Package grader runs the pool of graders (TAs).  Each grader repeatedly
// reviews the shared rubric, claims and marks questions of the current exam,
// and then waits for the coordinator to load the next exam.
package grader
