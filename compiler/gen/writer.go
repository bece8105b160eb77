package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"
)

// Report summarizes a generation run.
type Report struct {
	mu sync.Mutex
	// Files are the paths of the generated files, written or unchanged.
	Files []string
	// Written counts files whose content changed.
	Written  int
	Bindings int
	Bytes    int64
}

func (r *Report) add(path string, bindings int, written bool, size int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Files = append(r.Files, path)
	r.Bindings += bindings
	r.Bytes += int64(size)
	if written {
		r.Written++
	}
}

// writeFile renders f and writes it to path, unless path already holds the
// same content. It reports whether the file was written.
func writeFile(f *jen.File, path string) (written bool, size int, err error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return false, 0, fmt.Errorf("render %s: %w", path, err)
	}
	formatted, err := imports.Process(path, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		// Write unformatted file for debugging (errors intentionally ignored as we're already in error state)
		debugPath := path + ".error"
		_ = os.WriteFile(debugPath, buf.Bytes(), 0o644)
		return false, 0, fmt.Errorf("format %s: %w (unformatted written to %s)", filepath.Base(path), err, debugPath)
	}
	if current, err := os.ReadFile(path); err == nil && bytes.Equal(current, formatted) {
		return false, len(formatted), nil
	}
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return false, 0, fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return true, len(formatted), nil
}
