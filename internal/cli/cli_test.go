package cli

import (
	"bytes"
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/marker/policy"
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	ctx := context.Background()

	t.Run("positional arguments", func(t *testing.T) {
		opts, exit, err := Parse(ctx, []string{"-discipline", "unsync", "-seed", "5", "3", "rubric.txt", "exams"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.False(t, exit)
		assert.Equal(t, 3, opts.Config.Workers)
		assert.Equal(t, "rubric.txt", opts.Config.RubricURL)
		assert.Equal(t, "exams", opts.Config.ExamURL)
		assert.Equal(t, policy.ModeUnsynchronized, opts.Config.Mode())
		assert.Equal(t, int64(5), opts.Config.Grader.Seed)
		assert.Equal(t, "text", opts.Journal)
	})

	t.Run("both journals", func(t *testing.T) {
		opts, _, err := Parse(ctx, []string{"-journal", "BOTH", "2", "rubric.txt", "exams"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "both", opts.Journal)
	})

	t.Run("help", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, exit, err := Parse(ctx, []string{"-h"}, out)
		assert.NoError(t, err)
		assert.True(t, exit)
		assert.Contains(t, out.String(), "Usage:")
	})

	usageCases := []struct {
		description string
		args        []string
	}{
		{description: "no arguments", args: nil},
		{description: "two arguments", args: []string{"2", "rubric.txt"}},
		{description: "non numeric workers", args: []string{"two", "rubric.txt", "exams"}},
		{description: "single worker", args: []string{"1", "rubric.txt", "exams"}},
		{description: "unknown discipline", args: []string{"-discipline", "rw", "2", "rubric.txt", "exams"}},
		{description: "log format", args: []string{"-log-format", "xml", "2", "rubric.txt", "exams"}},
		{description: "log level", args: []string{"-log-level", "trace", "2", "rubric.txt", "exams"}},
		{description: "journal", args: []string{"-journal", "csv", "2", "rubric.txt", "exams"}},
		{description: "unknown flag", args: []string{"-x", "2", "rubric.txt", "exams"}},
		{description: "missing config file", args: []string{"-config", "/nonexistent/marker.yaml"}},
	}
	for _, testCase := range usageCases {
		t.Run(testCase.description, func(t *testing.T) {
			_, _, err := Parse(ctx, testCase.args, &bytes.Buffer{})
			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr), "expected ExitError, got %v", err)
			assert.Equal(t, ExitUsage, exitErr.Code)
		})
	}
}

func TestParse_ConfigFile(t *testing.T) {
	location := filepath.Join(t.TempDir(), "marker.yaml")
	require.NoError(t, os.WriteFile(location, []byte("workers: 5\nrubric: r.txt\nexams: e\ndiscipline: unsync\n"), 0644))

	opts, _, err := Parse(context.Background(), []string{"-config", location}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 5, opts.Config.Workers)
	assert.Equal(t, "r.txt", opts.Config.RubricURL)

	opts, _, err = Parse(context.Background(), []string{"-config", location, "-discipline", "sync", "2", "other.txt", "dir"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 2, opts.Config.Workers)
	assert.Equal(t, "other.txt", opts.Config.RubricURL)
	assert.Equal(t, policy.ModeSynchronized, opts.Config.Mode())
}

func TestNewLogger(t *testing.T) {
	out := &bytes.Buffer{}
	logger := NewLogger("warn", "json", out)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), `"msg":"shown"`)
}
