package journal

import (
	"fmt"
	"time"
)

// CoordinatorRole tags lines emitted by the coordinator.
const CoordinatorRole = "COORDINATOR"

// GraderRole returns the role tag of a grader.
func GraderRole(id int) string {
	return fmt.Sprintf("TA %d", id)
}

// Entry is one sequenced log line.
type Entry struct {
	Seq     int64     `json:"seq"`
	Role    string    `json:"role"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

func (e Entry) String() string {
	return fmt.Sprintf("[G%05d][%s] %s", e.Seq, e.Role, e.Message)
}

// Sink receives log entries in the order they are appended.
type Sink interface {
	Append(entry Entry)
}

// Discard drops every entry.
var Discard Sink = discard{}

type discard struct{}

func (discard) Append(Entry) {}

// Multi fans entries out to every sink in order.
func Multi(sinks ...Sink) Sink {
	var result multi
	for _, sink := range sinks {
		if sink != nil {
			result = append(result, sink)
		}
	}
	return result
}

type multi []Sink

func (m multi) Append(entry Entry) {
	for _, sink := range m {
		sink.Append(entry)
	}
}
