package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/marker/internal/cli"
)

func writeBatch(t *testing.T, rubric string, students ...string) (string, string) {
	dir := t.TempDir()
	rubricPath := filepath.Join(dir, "rubric.txt")
	require.NoError(t, os.WriteFile(rubricPath, []byte(rubric), 0600))
	examDir := filepath.Join(dir, "exams")
	require.NoError(t, os.MkdirAll(examDir, 0700))
	for i, student := range students {
		name := filepath.Join(examDir, fmt.Sprintf("exam%02d.txt", i+1))
		require.NoError(t, os.WriteFile(name, []byte(student+"\n"), 0600))
	}
	return rubricPath, examDir
}

func exitCode(t *testing.T, err error) int {
	if err == nil {
		return cli.ExitOK
	}
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr), "unexpected error type: %v", err)
	return exitErr.Code
}

func TestRun_ShouldExit(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	err := run(context.Background(), out, errOut, []string{"-h"})
	require.NoError(t, err)
	assert.Contains(t, errOut.String(), "Usage:")
}

func TestRun_ExitCodes(t *testing.T) {
	rubricPath, examDir := writeBatch(t, "1, A\n2, B\n3, C\n4, D\n5, E\n", "9999")

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"1", rubricPath, examDir})
	assert.Equal(t, cli.ExitUsage, exitCode(t, err))

	err = run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"2", filepath.Join(t.TempDir(), "none.txt"), examDir})
	assert.Equal(t, cli.ExitFailure, exitCode(t, err))

	badRubric, _ := writeBatch(t, "1, A\n")
	err = run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"2", badRubric, examDir})
	assert.Equal(t, cli.ExitFailure, exitCode(t, err))
}

func TestRun_SentinelBatch(t *testing.T) {
	rubricPath, examDir := writeBatch(t, "1, A\n2, B\n3, C\n4, D\n5, E\n", "9999")
	out := &bytes.Buffer{}
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-discipline", "sync", "2", rubricPath, examDir})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "[G00001][COORDINATOR] Loaded exam 01 from "), lines[0])
	assert.Contains(t, out.String(), "[COORDINATOR] Student 9999 reached. Setting terminate flag.")
	assert.Contains(t, out.String(), "[TA 1] terminate flag set before work, exiting.")
	assert.Contains(t, out.String(), "[TA 2] terminate flag set before work, exiting.")
	assert.True(t, strings.HasSuffix(lines[len(lines)-1], "[COORDINATOR] All done."), lines[len(lines)-1])
}

func TestRun_StructuredJournal(t *testing.T) {
	rubricPath, examDir := writeBatch(t, "1, A\n2, B\n3, C\n4, D\n5, E\n", "9999")
	out := &bytes.Buffer{}
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-journal", "slog", "-log-format", "json", "2", rubricPath, examDir})
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"role":"COORDINATOR"`)
	assert.Contains(t, out.String(), `"seq":1`)
}

func TestRun_BothJournals(t *testing.T) {
	rubricPath, examDir := writeBatch(t, "1, A\n2, B\n3, C\n4, D\n5, E\n", "9999")
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	err := run(context.Background(), out, errOut, []string{"-journal", "both", "-log-format", "json", "2", rubricPath, examDir})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[G00001][COORDINATOR] Loaded exam 01 from ")
	assert.Contains(t, errOut.String(), `"role":"COORDINATOR"`)
	assert.Contains(t, errOut.String(), `"seq":1`)
	assert.NotContains(t, out.String(), `"seq":`)
}
