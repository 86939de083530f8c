package marker

import (
	"context"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/marker/policy"
	"github.com/viant/marker/service/coordinator"
	"github.com/viant/marker/service/dao/exam"
	"github.com/viant/marker/service/grader"
	"github.com/viant/marker/service/meta"
	"gopkg.in/yaml.v3"
	"time"
)

// MinWorkers is the smallest supported grader pool.
const MinWorkers = 2

// Config is a serialisable representation of the engine configuration.  It
// can be populated from YAML (see LoadConfig) or built in code starting from
// DefaultConfig.
type Config struct {
	Workers     int               `json:"workers" yaml:"workers"`
	RubricURL   string            `json:"rubric" yaml:"rubric"`
	ExamURL     string            `json:"exams" yaml:"exams"`
	ExamPattern string            `json:"examPattern,omitempty" yaml:"examPattern,omitempty"`
	Discipline  string            `json:"discipline" yaml:"discipline"`
	Coordinator CoordinatorConfig `json:"coordinator" yaml:"coordinator"`
	Grader      GraderConfig      `json:"grader" yaml:"grader"`
	TraceFile   string            `json:"traceFile,omitempty" yaml:"traceFile,omitempty"`
}

type CoordinatorConfig struct {
	PollingInterval Duration `json:"pollingInterval" yaml:"pollingInterval"`
}

type GraderConfig struct {
	ReviewDelay         DelayConfig `json:"reviewDelay" yaml:"reviewDelay"`
	GradeDelay          DelayConfig `json:"gradeDelay" yaml:"gradeDelay"`
	RevisionProbability float64     `json:"revisionProbability" yaml:"revisionProbability"`
	Backoff             Duration    `json:"backoff" yaml:"backoff"`
	Seed                int64       `json:"seed,omitempty" yaml:"seed,omitempty"`
}

type DelayConfig struct {
	Min Duration `json:"min" yaml:"min"`
	Max Duration `json:"max" yaml:"max"`
}

// Duration is a time.Duration expressed as a Go duration string ("500ms") in
// configuration files.
type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

// UnmarshalYAML accepts a duration string or an integer number of nanoseconds.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var text string
	if err := node.Decode(&text); err != nil {
		return err
	}
	if parsed, err := time.ParseDuration(text); err == nil {
		*d = Duration(parsed)
		return nil
	}
	var nanos int64
	if err := node.Decode(&nanos); err != nil {
		return fmt.Errorf("invalid duration %q", text)
	}
	*d = Duration(nanos)
	return nil
}

// MarshalYAML renders the duration as a string.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// DefaultConfig returns a Config populated with the engine defaults.
func DefaultConfig() *Config {
	coordinatorDefaults := coordinator.DefaultConfig()
	graderDefaults := grader.DefaultConfig()
	return &Config{
		Workers:     MinWorkers,
		ExamPattern: exam.DefaultPattern,
		Discipline:  string(policy.ModeSynchronized),
		Coordinator: CoordinatorConfig{
			PollingInterval: Duration(coordinatorDefaults.PollingInterval),
		},
		Grader: GraderConfig{
			ReviewDelay:         DelayConfig{Min: Duration(graderDefaults.ReviewDelay.Min), Max: Duration(graderDefaults.ReviewDelay.Max)},
			GradeDelay:          DelayConfig{Min: Duration(graderDefaults.GradeDelay.Min), Max: Duration(graderDefaults.GradeDelay.Max)},
			RevisionProbability: graderDefaults.RevisionProbability,
			Backoff:             Duration(policy.DefaultPollInterval),
		},
	}
}

// Validate returns an error describing the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config was nil")
	}
	if c.Workers < MinWorkers {
		return fmt.Errorf("workers must be >= %d, got %d", MinWorkers, c.Workers)
	}
	if _, err := policy.ParseMode(c.Discipline); err != nil {
		return err
	}
	if c.Coordinator.PollingInterval <= 0 {
		return fmt.Errorf("coordinator.pollingInterval must be > 0")
	}
	if c.Grader.Backoff <= 0 {
		return fmt.Errorf("grader.backoff must be > 0")
	}
	return c.graderConfig().Validate()
}

// Mode returns the configured discipline.
func (c *Config) Mode() policy.Mode {
	mode, _ := policy.ParseMode(c.Discipline)
	return mode
}

func (c *Config) coordinatorConfig() coordinator.Config {
	return coordinator.Config{
		PollingInterval: time.Duration(c.Coordinator.PollingInterval),
		Workers:         c.Workers,
	}
}

func (c *Config) graderConfig() grader.Config {
	return grader.Config{
		WorkerCount:         c.Workers,
		ReviewDelay:         grader.Delay{Min: time.Duration(c.Grader.ReviewDelay.Min), Max: time.Duration(c.Grader.ReviewDelay.Max)},
		GradeDelay:          grader.Delay{Min: time.Duration(c.Grader.GradeDelay.Min), Max: time.Duration(c.Grader.GradeDelay.Max)},
		RevisionProbability: c.Grader.RevisionProbability,
		Seed:                c.Grader.Seed,
	}
}

// LoadConfig reads a YAML configuration from any afs supported location on
// top of DefaultConfig. ${env.KEY} expressions are expanded before decoding.
func LoadConfig(ctx context.Context, location string) (*Config, error) {
	fs := afs.New()
	URL := url.Normalize(location, file.Scheme)
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", URL, err)
	}
	cfg := DefaultConfig()
	expanded := meta.ExpandEnv(string(data))
	if err = yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	return cfg, nil
}
