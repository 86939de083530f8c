package journal

import (
	"strings"
	"sync"
)

// MemorySink keeps every entry in memory; used by tests and summaries.
type MemorySink struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Append(entry Entry) {
	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()
}

// Entries returns a copy of the recorded entries in append order.
func (s *MemorySink) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]Entry, len(s.entries))
	copy(result, s.entries)
	return result
}

// Matching returns entries whose message contains fragment.
func (s *MemorySink) Matching(fragment string) []Entry {
	var result []Entry
	for _, entry := range s.Entries() {
		if strings.Contains(entry.Message, fragment) {
			result = append(result, entry)
		}
	}
	return result
}
