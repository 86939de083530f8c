package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/viant/marker"
	"github.com/viant/marker/internal/cli"
	"github.com/viant/marker/journal"
)

// main is the entrypoint for the marker application.
func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()
	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitFailure)
	}
}

// run parses the command line and grades the batch.  Cancelling ctx latches
// the terminate flag and lets the run wind down.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	opts, shouldExit, err := cli.Parse(ctx, args, errW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := cli.NewLogger(opts.LogLevel, opts.LogFormat, errW)
	slog.SetDefault(logger)

	var sink journal.Sink
	switch opts.Journal {
	case "slog":
		sink = journal.NewSlogSink(cli.NewLogger("info", opts.LogFormat, outW))
	case "both":
		sink = journal.Multi(journal.NewTextSink(outW), journal.NewSlogSink(cli.NewLogger("info", opts.LogFormat, errW)))
	default:
		sink = journal.NewTextSink(outW)
	}

	options := []marker.Option{
		marker.WithConfig(opts.Config),
		marker.WithSink(sink),
		marker.WithLogger(logger),
	}
	if opts.Config.TraceFile != "" {
		options = append(options, marker.WithTracing("marker", marker.Version, opts.Config.TraceFile))
	}

	srv, err := marker.New(options...)
	if err != nil {
		return &cli.ExitError{Code: cli.ExitFailure, Message: err.Error()}
	}
	if err = srv.Run(ctx); err != nil {
		return &cli.ExitError{Code: cli.ExitFailure, Message: err.Error()}
	}
	return nil
}
