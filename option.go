package marker

import (
	"github.com/viant/marker/journal"
	"github.com/viant/marker/policy"
	"github.com/viant/marker/progress"
	"github.com/viant/marker/service/dao/exam"
	"github.com/viant/marker/service/dao/rubric"
	"github.com/viant/marker/tracing"
	"log/slog"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises the engine.
type Option func(s *Service)

// WithConfig sets the engine configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithRubricService sets the rubric store; by default an afs store at Config.RubricURL is used
func WithRubricService(svc rubric.Service) Option {
	return func(s *Service) {
		s.rubrics = svc
	}
}

// WithExamService sets the exam source; by default an afs source at Config.ExamURL is used
func WithExamService(svc exam.Service) Option {
	return func(s *Service) {
		s.exams = svc
	}
}

// WithSink sets the sink receiving the sequenced log
func WithSink(sink journal.Sink) Option {
	return func(s *Service) {
		s.sink = sink
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithDiscipline overrides the discipline selected by Config.Discipline
func WithDiscipline(discipline policy.Discipline) Option {
	return func(s *Service) {
		s.discipline = discipline
	}
}

// WithPolicyOptions passes additional options to policy.New, for example an
// interleave hook.
func WithPolicyOptions(opts ...policy.Option) Option {
	return func(s *Service) {
		s.policyOptions = append(s.policyOptions, opts...)
	}
}

// WithTracker sets the run counters tracker
func WithTracker(tracker *progress.Progress) Option {
	return func(s *Service) {
		s.tracker = tracker
	}
}

// WithProgressListener sets a callback invoked with a copy of the run counters
// after every change; by default changes are logged at debug level
func WithProgressListener(listener func(progress.Progress)) Option {
	return func(s *Service) {
		s.listener = listener
	}
}

// WithTracing configures OpenTelemetry tracing.  If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied file.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		s.tracingErr = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.tracingErr = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
