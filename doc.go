// Package marker provides a batch grading engine in which one coordinator and
// a pool of graders cooperate through a shared region of state.
//
// The coordinator feeds exams one at a time and persists rubric edits; the
// graders review the shared rubric, claim questions of the current exam and
// mark them.  The same coordination logic runs under two synchronisation
// disciplines (see package policy): a synchronized one built on mutexes and a
// counting event, and an unsynchronized one that exposes the races the locks
// prevent.
//
//	cfg := marker.DefaultConfig()
//	cfg.Workers = 3
//	cfg.RubricURL = "rubric.txt"
//	cfg.ExamURL = "exams"
//	srv, err := marker.New(marker.WithConfig(cfg))
//	if err != nil {
//		return err
//	}
//	err = srv.Run(ctx)
package marker
