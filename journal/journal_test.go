package journal

import (
	"bytes"
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestEntry_String(t *testing.T) {
	assert.Equal(t, "[G00042][TA 3] Marking Q2", Entry{Seq: 42, Role: GraderRole(3), Message: "Marking Q2"}.String())
	assert.Equal(t, "[G00001][COORDINATOR] All done.", Entry{Seq: 1, Role: CoordinatorRole, Message: "All done."}.String())
}

func TestTextSink(t *testing.T) {
	buf := &bytes.Buffer{}
	sink := NewTextSink(buf)
	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(seq int64) {
			defer wg.Done()
			sink.Append(Entry{Seq: seq, Role: CoordinatorRole, Message: "tick"})
		}(int64(i))
	}
	wg.Wait()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 20)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "[G000"), line)
		assert.True(t, strings.HasSuffix(line, "[COORDINATOR] tick"), line)
	}
}

func TestSlogSink(t *testing.T) {
	buf := &bytes.Buffer{}
	sink := NewSlogSink(slog.New(slog.NewJSONHandler(buf, nil)))
	sink.Append(Entry{Seq: 7, Role: GraderRole(1), Message: "Waiting for next exam..."})

	record := map[string]interface{}{}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Waiting for next exam...", record["msg"])
	assert.EqualValues(t, 7, record["seq"])
	assert.Equal(t, "TA 1", record["role"])
}

func TestMulti(t *testing.T) {
	first, second := NewMemorySink(), NewMemorySink()
	sink := Multi(first, nil, second)
	sink.Append(Entry{Seq: 1, Message: "Loaded exam 01"})
	sink.Append(Entry{Seq: 2, Message: "All done."})
	assert.Len(t, first.Entries(), 2)
	assert.Equal(t, first.Entries(), second.Entries())
	assert.Len(t, first.Matching("Loaded exam"), 1)
}
