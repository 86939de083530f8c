// Package shared implements the region of state shared by the coordinator and
// every grader of a run.
//
// All access goes through Region methods; each method brackets its field
// accesses with the lock of the owning field group as defined by the
// policy.Discipline the region was created with.  Fields are stored in atomic
// cells, so the unsynchronized discipline yields protocol-level races (lost
// rubric edits, duplicate claims, duplicate log sequence numbers) rather than
// memory-level data races.
package shared
