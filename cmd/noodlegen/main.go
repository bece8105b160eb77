/*
Noodlegen generates the SQL bindings of the entities declared with //noodle:
directives.

Usage:

	noodlegen [flags] [packages]

It is usually run by go generate from the package declaring the entities:

	//go:generate go run github.com/glowcouch/storage-noodle/cmd/noodlegen

Packages default to the current one. For each entity a file named after the
entity with the suffix _noodle.go is written next to its declaration.
Configuration mistakes are printed as file:line:col: message, all of them in
one run.

The flags are:

	-c, --config FILE
		Read options from the given YAML file.
	--header TEXT
		Header comment of generated files.
	--suffix SUFFIX
		File name suffix of generated files.
	--workers N
		Number of files generated in parallel.
	--tags TAGS
		Comma separated build tags used when loading packages.
	-w, --watch
		Keep running and regenerate when source files change.
	-v, --verbose
		Log every generated file.

Every option can also be set with a NOODLEGEN_ environment variable, such as
NOODLEGEN_TAGS=integration. Flags override the environment, which overrides
the config file.
*/
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

	"github.com/spf13/pflag"

	"github.com/glowcouch/storage-noodle/compiler/gen"
	"github.com/glowcouch/storage-noodle/compiler/gen/sql"
	"github.com/glowcouch/storage-noodle/compiler/load"
)

const (
	exitSuccess = 0
	exitError   = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], nil, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, environ map[string]string, stderr io.Writer) int {
	opts, err := parseOptions(args, environ, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return exitSuccess
	}
	if err != nil {
		fmt.Fprintf(stderr, "noodlegen: %v\n", err)
		return exitUsage
	}
	logger := newLogger(stderr, opts.Verbose)

	cfg, err := gen.NewConfig(gen.WithBackend(sql.NewBackend()), gen.WithLogger(logger))
	if err == nil {
		err = cfg.ApplyAll(opts.GenOptions()...)
	}
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return exitUsage
	}
	g, err := gen.NewGenerator(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return exitUsage
	}

	generate := func(ctx context.Context) bool {
		_, err := g.Run(ctx, opts.Packages...)
		var diags load.Diagnostics
		switch {
		case err == nil:
			return true
		case errors.As(err, &diags):
			fmt.Fprintln(stderr, diags.Error())
		case errors.Is(err, context.Canceled):
		default:
			logger.Error("generation failed", "error", err)
		}
		return false
	}

	ok := generate(ctx)
	if !opts.Watch {
		if !ok {
			return exitError
		}
		return exitSuccess
	}

	dirs, err := packageDirs(opts.Packages, opts.BuildFlags())
	if err != nil {
		logger.Error("watch failed", "error", err)
		return exitError
	}
	w, err := newWatcher(dirs, opts.Suffix, logger)
	if err != nil {
		logger.Error("watch failed", "error", err)
		return exitError
	}
	defer w.Close()
	logger.Info("watching for changes", "dirs", len(dirs))
	err = w.run(ctx, func(ctx context.Context) { generate(ctx) })
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("watch failed", "error", err)
		return exitError
	}
	return exitSuccess
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
