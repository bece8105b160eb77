package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/tools/go/packages"
)

// settleDelay is how long the watcher waits for further changes before it
// regenerates. Editors often save a file in several steps.
const settleDelay = 200 * time.Millisecond

// watcher calls regenerate when a Go source file in one of its directories
// changes. Generated files and tests are ignored.
type watcher struct {
	fs     *fsnotify.Watcher
	suffix string
	delay  time.Duration
	logger *slog.Logger
}

func newWatcher(dirs []string, suffix string, logger *slog.Logger) (*watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			fs.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		logger.Debug("watching directory", "dir", dir)
	}
	return &watcher{fs: fs, suffix: suffix, delay: settleDelay, logger: logger}, nil
}

func (w *watcher) Close() error {
	return w.fs.Close()
}

// relevant reports whether ev changes the input of the generator.
func (w *watcher) relevant(ev fsnotify.Event) bool {
	name := filepath.Base(ev.Name)
	switch {
	case strings.HasPrefix(name, "."),
		!strings.HasSuffix(name, ".go"),
		strings.HasSuffix(name, "_test.go"),
		strings.HasSuffix(name, w.suffix):
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) ||
		ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}

// run blocks until ctx is done, calling regenerate once changes settle.
func (w *watcher) run(ctx context.Context, regenerate func(context.Context)) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("source changed", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		case <-fire:
			fire = nil
			regenerate(ctx)
		}
	}
}

// packageDirs returns the directories of the packages matching patterns.
func packageDirs(patterns, buildFlags []string) ([]string, error) {
	pkgs, err := packages.Load(&packages.Config{
		Mode:       packages.NeedName | packages.NeedFiles,
		BuildFlags: buildFlags,
	}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("resolve packages: %w", err)
	}
	var dirs []string
	for _, pkg := range pkgs {
		if len(pkg.GoFiles) == 0 {
			continue
		}
		dirs = append(dirs, filepath.Dir(pkg.GoFiles[0]))
	}
	slices.Sort(dirs)
	return slices.Compact(dirs), nil
}
