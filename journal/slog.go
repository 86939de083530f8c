package journal

import (
	"context"
	"log/slog"
)

// SlogSink forwards entries to a structured logger at Info level.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a sink backed by logger (slog.Default when nil).
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Append(entry Entry) {
	s.logger.LogAttrs(context.Background(), slog.LevelInfo, entry.Message,
		slog.Int64("seq", entry.Seq),
		slog.String("role", entry.Role),
	)
}
