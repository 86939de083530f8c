// Package journal defines the ordered, append-only sink that receives the
// sequenced domain log of a grading run.
//
// Every line carries a global sequence number and a role tag and renders as
//
//	[G00042][TA 3] Marking Q2 for student 1234 (rubric 'B')
//
// Sinks are safe for concurrent use; ordering between lines is decided by the
// caller (the shared region allocates sequence numbers).
package journal
