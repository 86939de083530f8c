// Package progress provides a lightweight tracker that keeps aggregated
// counters (exams loaded, questions graded, rubric edits, ...) for a single
// grading run, together with a claim ledger that audits the claim protocol:
// a question claimed more than once for the same exam is counted as a
// duplicate, a question never claimed before the exam completed as skipped.
package progress
