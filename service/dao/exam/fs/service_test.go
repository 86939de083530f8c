package fs

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/marker/service/dao"
	"os"
	"path/filepath"
	"testing"
)

func TestService_Load(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exam01.txt"), []byte("1234\nanswers\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exam02.txt"), []byte("9999\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exam03.txt"), []byte("abc\n"), 0644))

	srv, err := New(dir, "")
	require.NoError(t, err)

	exam, err := srv.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, exam.Index)
	assert.Equal(t, "1234", exam.StudentID)
	assert.Contains(t, exam.URL, "exam01.txt")
	assert.False(t, exam.IsSentinel())

	exam, err = srv.Load(ctx, 2)
	require.NoError(t, err)
	assert.True(t, exam.IsSentinel())

	_, err = srv.Load(ctx, 3)
	assert.ErrorIs(t, err, dao.ErrMalformed)

	_, err = srv.Load(ctx, 4)
	assert.ErrorIs(t, err, dao.ErrNotFound)

	_, err = srv.Load(ctx, 0)
	assert.ErrorIs(t, err, dao.ErrInvalidID)
}

func TestService_Pattern(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "student-7.exam"), []byte("0007\n"), 0644))

	srv, err := New(dir, "student-%d.exam")
	require.NoError(t, err)
	exam, err := srv.Load(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "0007", exam.StudentID)
}
