package gen

import (
	"errors"
	"log/slog"
	"runtime"
	"strings"

	"github.com/glowcouch/storage-noodle/compiler/load"
)

// DefaultHeader is the header comment of generated files.
const DefaultHeader = "Code generated by noodlegen. DO NOT EDIT."

// Config configures code generation.
type Config struct {
	// Header is the comment at the top of each generated file.
	Header string
	// Suffix is the file name suffix of generated files.
	Suffix string
	// Workers bounds the number of files rendered in parallel.
	Workers int
	// BuildFlags are passed to the build system when loading packages.
	BuildFlags []string
	// Backend emits the code of the bindings.
	Backend Backend
	Logger  *slog.Logger
}

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		if header == "" {
			return NewConfigError("Header", nil, "header cannot be empty")
		}
		c.Header = header
		return nil
	}
}

// WithSuffix sets the file name suffix of generated files.
func WithSuffix(suffix string) Option {
	return func(c *Config) error {
		if !strings.HasSuffix(suffix, ".go") || strings.HasSuffix(suffix, "_test.go") {
			return NewConfigError("Suffix", suffix, "suffix must end in .go and must not name a test file")
		}
		c.Suffix = suffix
		return nil
	}
}

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("Workers", n, "at least one worker is required")
		}
		c.Workers = n
		return nil
	}
}

// WithBuildFlags sets custom build flags for loading packages.
func WithBuildFlags(flags ...string) Option {
	return func(c *Config) error {
		c.BuildFlags = append(c.BuildFlags, flags...)
		return nil
	}
}

// WithBackend sets the code emitting backend.
func WithBackend(b Backend) Option {
	return func(c *Config) error {
		if b == nil {
			return NewConfigError("Backend", nil, "backend cannot be nil")
		}
		c.Backend = b
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options applied over the
// defaults.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Header:  DefaultHeader,
		Suffix:  load.DefaultSuffix,
		Workers: runtime.GOMAXPROCS(0),
		Logger:  slog.Default(),
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
