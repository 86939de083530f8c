package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/viant/marker"
	"github.com/viant/marker/policy"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Options is the parsed command line.
type Options struct {
	Config    *marker.Config
	LogFormat string
	LogLevel  string
	Journal   string
}

// Parse processes command-line arguments.  It returns the parsed options, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(ctx context.Context, args []string, output io.Writer) (*Options, bool, error) {
	flagSet := flag.NewFlagSet("marker", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
marker - batch exam grading with a shared rubric.

Usage:
  marker [options] <workers> <rubric-file> <exam-dir>

Arguments:
  workers      number of graders (>= 2)
  rubric-file  rubric location, one "<n>, <letter>" line per question
  exam-dir     location of exam01.txt, exam02.txt, ...

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "YAML configuration file; positional arguments override it.")
	disciplineFlag := flagSet.String("discipline", "", "Synchronisation discipline: 'sync' or 'unsync'.")
	logFormatFlag := flagSet.String("log-format", "text", "Diagnostic log format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Diagnostic log level. Options: 'debug', 'info', 'warn', 'error'.")
	journalFlag := flagSet.String("journal", "text", "Grading log output. Options: 'text' (plain lines), 'slog' (structured) or 'both' (text on stdout, structured on stderr).")
	traceFlag := flagSet.String("trace", "", "Write OpenTelemetry spans to this file.")
	seedFlag := flagSet.Int64("seed", 0, "Random seed for graders; 0 picks one from the clock.")
	patternFlag := flagSet.String("exam-pattern", "", "Exam file name pattern, e.g. exam%02d.txt.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	cfg := marker.DefaultConfig()
	if *configFlag != "" {
		loaded, err := marker.LoadConfig(ctx, *configFlag)
		if err != nil {
			return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
		}
		cfg = loaded
	}

	switch flagSet.NArg() {
	case 3:
		workers, err := strconv.Atoi(flagSet.Arg(0))
		if err != nil {
			return nil, false, &ExitError{Code: ExitUsage, Message: fmt.Sprintf("invalid workers: %q", flagSet.Arg(0))}
		}
		cfg.Workers = workers
		cfg.RubricURL = flagSet.Arg(1)
		cfg.ExamURL = flagSet.Arg(2)
	case 0:
		if *configFlag == "" {
			flagSet.Usage()
			return nil, false, &ExitError{Code: ExitUsage, Message: "missing arguments: <workers> <rubric-file> <exam-dir>"}
		}
	default:
		flagSet.Usage()
		return nil, false, &ExitError{Code: ExitUsage, Message: fmt.Sprintf("expected 3 arguments, got %d", flagSet.NArg())}
	}

	if *disciplineFlag != "" {
		mode, err := policy.ParseMode(*disciplineFlag)
		if err != nil {
			return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
		}
		cfg.Discipline = string(mode)
	}
	if *traceFlag != "" {
		cfg.TraceFile = *traceFlag
	}
	if *seedFlag != 0 {
		cfg.Grader.Seed = *seedFlag
	}
	if *patternFlag != "" {
		cfg.ExamPattern = *patternFlag
	}
	if cfg.RubricURL == "" || cfg.ExamURL == "" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "rubric and exam locations are required"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	journal := strings.ToLower(*journalFlag)
	switch journal {
	case "text", "slog", "both":
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid journal: must be 'text', 'slog' or 'both'"}
	}

	return &Options{Config: cfg, LogFormat: logFormat, LogLevel: logLevel, Journal: journal}, false, nil
}

// NewLogger creates a slog.Logger for the supplied level and format.  It does
// not set the global logger.
func NewLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}
	return slog.New(handler)
}
