// Package policy provides the synchronisation disciplines that govern access
// to the shared grading region.
//
// Two disciplines implement the same Discipline interface so that the
// coordination protocol is written once:
//
//   - Synchronized - one mutex per guarded field group (rubric, questions,
//     log) and a counting exam-ready Event on which idle graders block.
//   - Unsynchronized - no-op locks and fixed-interval polling.  Read-modify-write
//     sequences are not atomic, so lost updates, duplicate claims and duplicate
//     log sequence numbers are observable.  This mode is intentional and is used
//     to reproduce those races.
//
// A discipline is selected by Mode:
//
//	d, err := policy.New(policy.ModeSynchronized, policy.WithPollInterval(100*time.Millisecond))
package policy
