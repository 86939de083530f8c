package marker

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/marker/policy"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, policy.ModeSynchronized, cfg.Mode())
	assert.Equal(t, 200*time.Millisecond, time.Duration(cfg.Coordinator.PollingInterval))
	assert.Equal(t, 500*time.Millisecond, time.Duration(cfg.Grader.ReviewDelay.Min))
	assert.Equal(t, 2*time.Second, time.Duration(cfg.Grader.GradeDelay.Max))
	assert.Equal(t, 0.5, cfg.Grader.RevisionProbability)
	assert.Equal(t, "exam%02d.txt", cfg.ExamPattern)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		description string
		mutate      func(c *Config)
	}{
		{description: "single worker", mutate: func(c *Config) { c.Workers = 1 }},
		{description: "unknown discipline", mutate: func(c *Config) { c.Discipline = "spinlock" }},
		{description: "zero polling", mutate: func(c *Config) { c.Coordinator.PollingInterval = 0 }},
		{description: "zero backoff", mutate: func(c *Config) { c.Grader.Backoff = 0 }},
		{description: "inverted delay", mutate: func(c *Config) { c.Grader.GradeDelay.Min = Duration(time.Hour) }},
		{description: "probability", mutate: func(c *Config) { c.Grader.RevisionProbability = -0.1 }},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			cfg := DefaultConfig()
			testCase.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	var cfg *Config
	assert.Error(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	location := filepath.Join(t.TempDir(), "marker.yaml")
	require.NoError(t, os.WriteFile(location, []byte(`workers: 4
rubric: /tmp/rubric.txt
exams: /tmp/exams
discipline: unsync
coordinator:
  pollingInterval: 50ms
grader:
  reviewDelay:
    min: 1ms
    max: 2ms
  backoff: 1000000
  seed: 7
`), 0644))

	cfg, err := LoadConfig(context.Background(), location)
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "/tmp/rubric.txt", cfg.RubricURL)
	assert.Equal(t, policy.ModeUnsynchronized, cfg.Mode())
	assert.Equal(t, 50*time.Millisecond, time.Duration(cfg.Coordinator.PollingInterval))
	assert.Equal(t, time.Millisecond, time.Duration(cfg.Grader.ReviewDelay.Min))
	assert.Equal(t, time.Millisecond, time.Duration(cfg.Grader.Backoff))
	assert.Equal(t, int64(7), cfg.Grader.Seed)
	// untouched sections keep their defaults
	assert.Equal(t, time.Second, time.Duration(cfg.Grader.GradeDelay.Min))
	assert.Equal(t, 0.5, cfg.Grader.RevisionProbability)

	_, err = LoadConfig(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("coordinator:\n  pollingInterval: soon\n"), 0644))
	_, err = LoadConfig(context.Background(), bad)
	assert.Error(t, err)
}

func TestLoadConfig_ExpandsEnv(t *testing.T) {
	root := t.TempDir()
	t.Setenv("MARKER_ROOT", root)
	location := filepath.Join(root, "marker.yaml")
	require.NoError(t, os.WriteFile(location, []byte("rubric: ${env.MARKER_ROOT}/rubric.txt\nexams: ${env.MARKER_ROOT}/exams\n"), 0644))

	cfg, err := LoadConfig(context.Background(), location)
	require.NoError(t, err)
	assert.Equal(t, root+"/rubric.txt", cfg.RubricURL)
	assert.Equal(t, root+"/exams", cfg.ExamURL)
}
