package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestTracingFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "span_test.txt")

	if err := Init("marker", "0.0.1", fname); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	ctx, span := StartSpan(context.Background(), "coordinator.loadExam", "INTERNAL")
	span.WithAttributes(map[string]string{"exam.index": "1"})
	_, child := StartSpan(ctx, "coordinator.persistRubric", "")
	EndSpan(child, errors.New("storage unavailable"))
	EndSpan(span, nil)

	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("no data written to trace file")
	}
}

func TestNilSpan(t *testing.T) {
	var span *Span
	span.WithAttributes(map[string]string{"k": "v"})
	span.SetStatus(nil)
	EndSpan(span, nil)
}
