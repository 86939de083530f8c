// Package tracing integrates OpenTelemetry with the grading engine.  Spans
// are recorded around coordinator actions (bootstrap, exam loading, rubric
// persistence); when tracing is not initialised the helpers are no-ops.
package tracing
