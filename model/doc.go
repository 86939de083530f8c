// Package model contains the in-memory representation of the grading domain:
// the rubric (one grade letter per question), exam identity and the per
// question progress marker shared by the coordinator and the graders.
//
// The types are plain values.  Synchronisation is the concern of the
// runtime/shared package, which is the only place where these values are
// mutated concurrently.
package model
