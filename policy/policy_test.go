package policy

import (
	"context"
	"github.com/stretchr/testify/assert"
	"sync/atomic"
	"testing"
	"time"
)

func TestParseMode(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      Mode
		expectErr   bool
	}{
		{description: "full sync", input: "synchronized", expect: ModeSynchronized},
		{description: "short sync", input: "sync", expect: ModeSynchronized},
		{description: "full unsync", input: "Unsynchronized", expect: ModeUnsynchronized},
		{description: "short unsync", input: " unsync ", expect: ModeUnsynchronized},
		{description: "unknown", input: "semaphore", expectErr: true},
	}
	for _, testCase := range testCases {
		actual, err := ParseMode(testCase.input)
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		assert.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestNew(t *testing.T) {
	d, err := New(ModeSynchronized)
	assert.NoError(t, err)
	assert.Equal(t, ModeSynchronized, d.Mode())

	d, err = New(ModeUnsynchronized, WithPollInterval(time.Millisecond))
	assert.NoError(t, err)
	assert.Equal(t, ModeUnsynchronized, d.Mode())

	_, err = New("other")
	assert.Error(t, err)

	_, err = New(ModeSynchronized, WithPollInterval(0))
	assert.Error(t, err)
}

func TestSynchronized_AwaitExam(t *testing.T) {
	d, err := New(ModeSynchronized)
	assert.NoError(t, err)
	d.ExamReady(2)
	assert.Equal(t, 2, d.(*Synchronized).Pending())

	ctx := context.Background()
	assert.NoError(t, d.AwaitExam(ctx, nil))
	assert.NoError(t, d.AwaitExam(ctx, nil))

	ctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	assert.Error(t, d.AwaitExam(ctx, nil))
}

func TestSynchronized_LockExclusion(t *testing.T) {
	d, err := New(ModeSynchronized)
	assert.NoError(t, err)
	d.Lock(RubricLock)
	acquired := make(chan struct{})
	go func() {
		d.Lock(RubricLock)
		close(acquired)
		d.Unlock(RubricLock)
	}()
	// a different group is independent
	d.Lock(LogLock)
	d.Unlock(LogLock)
	select {
	case <-acquired:
		t.Fatal("rubric lock acquired twice")
	case <-time.After(20 * time.Millisecond):
	}
	d.Unlock(RubricLock)
	<-acquired
}

func TestUnsynchronized_AwaitExamPolls(t *testing.T) {
	d, err := New(ModeUnsynchronized, WithPollInterval(time.Millisecond))
	assert.NoError(t, err)
	var released int32
	go func() {
		time.Sleep(10 * time.Millisecond)
		atomic.StoreInt32(&released, 1)
	}()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, d.AwaitExam(ctx, func() bool { return atomic.LoadInt32(&released) == 1 }))

	ctx, cancel2 := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel2()
	assert.Error(t, d.AwaitExam(ctx, func() bool { return false }))
}

func TestUnsynchronized_Interleave(t *testing.T) {
	calls := 0
	d, err := New(ModeUnsynchronized, WithInterleave(func() { calls++ }))
	assert.NoError(t, err)
	d.Lock(QuestionsLock)
	d.Interleave()
	d.Unlock(QuestionsLock)
	assert.Equal(t, 1, calls)
}
