package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestWatcherRelevant(t *testing.T) {
	w := &watcher{suffix: "_noodle.go"}
	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write source", fsnotify.Event{Name: "/src/bakery/cookie.go", Op: fsnotify.Write}, true},
		{"create source", fsnotify.Event{Name: "/src/bakery/oven.go", Op: fsnotify.Create}, true},
		{"remove source", fsnotify.Event{Name: "/src/bakery/oven.go", Op: fsnotify.Remove}, true},
		{"rename source", fsnotify.Event{Name: "/src/bakery/oven.go", Op: fsnotify.Rename}, true},
		{"chmod source", fsnotify.Event{Name: "/src/bakery/cookie.go", Op: fsnotify.Chmod}, false},
		{"generated file", fsnotify.Event{Name: "/src/bakery/cookie_noodle.go", Op: fsnotify.Write}, false},
		{"test file", fsnotify.Event{Name: "/src/bakery/cookie_test.go", Op: fsnotify.Write}, false},
		{"not go", fsnotify.Event{Name: "/src/bakery/README.md", Op: fsnotify.Write}, false},
		{"hidden", fsnotify.Event{Name: "/src/bakery/.cookie.go", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.ev))
		})
	}
}

func TestWatcherRun(t *testing.T) {
	dir := t.TempDir()
	w, err := newWatcher([]string{dir}, "_noodle.go", discard)
	require.NoError(t, err)
	defer w.Close()
	w.delay = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var runs atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- w.run(ctx, func(context.Context) { runs.Add(1) })
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "cookie_noodle.go"), []byte("package bakery\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cookie.go"), []byte("package bakery\n"), 0o644))
	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := newWatcher([]string{filepath.Join(t.TempDir(), "gone")}, "_noodle.go", discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch ")
}
