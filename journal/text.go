package journal

import (
	"io"
	"sync"
)

// TextSink writes one rendered line per entry.
type TextSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTextSink creates a sink writing to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// Append writes the entry followed by a newline; write errors are dropped.
func (s *TextSink) Append(entry Entry) {
	line := entry.String() + "\n"
	s.mu.Lock()
	_, _ = io.WriteString(s.w, line)
	s.mu.Unlock()
}
