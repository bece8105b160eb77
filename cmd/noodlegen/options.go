package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/glowcouch/storage-noodle/compiler/gen"
	"github.com/glowcouch/storage-noodle/compiler/load"
)

// envPrefix prefixes the environment variables options are read from.
const envPrefix = "NOODLEGEN_"

// Options are the settings of one noodlegen invocation.
type Options struct {
	// Config is the path of the YAML file options are read from.
	Config   string   `yaml:"-" env:"CONFIG"`
	Header   string   `yaml:"header" env:"HEADER"`
	Suffix   string   `yaml:"suffix" env:"SUFFIX"`
	Workers  int      `yaml:"workers" env:"WORKERS"`
	Tags     []string `yaml:"tags" env:"TAGS" envSeparator:","`
	Watch    bool     `yaml:"watch" env:"WATCH"`
	Verbose  bool     `yaml:"verbose" env:"VERBOSE"`
	Packages []string `yaml:"packages" env:"PACKAGES" envSeparator:","`
}

func defaultOptions() Options {
	return Options{
		Header:   gen.DefaultHeader,
		Suffix:   load.DefaultSuffix,
		Packages: []string{"."},
	}
}

// BuildFlags returns the build system flags of the options.
func (o *Options) BuildFlags() []string {
	if len(o.Tags) == 0 {
		return nil
	}
	return []string{"-tags=" + strings.Join(o.Tags, ",")}
}

// GenOptions returns the generator options of o.
func (o *Options) GenOptions() []gen.Option {
	opts := []gen.Option{
		gen.WithHeader(o.Header),
		gen.WithSuffix(o.Suffix),
		gen.WithBuildFlags(o.BuildFlags()...),
	}
	if o.Workers != 0 {
		opts = append(opts, gen.WithWorkers(o.Workers))
	}
	return opts
}

func newFlagSet(f *Options, output io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("noodlegen", pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "usage: noodlegen [flags] [packages]\n\nflags:\n")
		fs.PrintDefaults()
	}
	fs.SortFlags = false
	fs.StringVarP(&f.Config, "config", "c", "", "read options from the YAML `file`")
	fs.StringVar(&f.Header, "header", gen.DefaultHeader, "header comment of generated files")
	fs.StringVar(&f.Suffix, "suffix", load.DefaultSuffix, "file name suffix of generated files")
	fs.IntVar(&f.Workers, "workers", 0, "number of files generated in parallel (default GOMAXPROCS)")
	fs.StringSliceVar(&f.Tags, "tags", nil, "build tags used when loading packages")
	fs.BoolVarP(&f.Watch, "watch", "w", false, "regenerate when source files change")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "log every generated file")
	return fs
}

// parseOptions resolves the options of args. Later sources override
// earlier ones: defaults, the YAML file, the environment, then flags and
// positional package patterns. A nil environ reads the process environment.
func parseOptions(args []string, environ map[string]string, output io.Writer) (*Options, error) {
	var flags Options
	fs := newFlagSet(&flags, output)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// The config path itself may come from the environment.
	var fromEnv Options
	if err := parseEnv(&fromEnv, environ); err != nil {
		return nil, err
	}
	path := fromEnv.Config
	if fs.Changed("config") {
		path = flags.Config
	}

	o := defaultOptions()
	if path != "" {
		if err := readConfigFile(&o, path); err != nil {
			return nil, err
		}
		o.Config = path
	}
	if err := parseEnv(&o, environ); err != nil {
		return nil, err
	}
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "header":
			o.Header = flags.Header
		case "suffix":
			o.Suffix = flags.Suffix
		case "workers":
			o.Workers = flags.Workers
		case "tags":
			o.Tags = flags.Tags
		case "watch":
			o.Watch = flags.Watch
		case "verbose":
			o.Verbose = flags.Verbose
		}
	})
	if fs.NArg() > 0 {
		o.Packages = fs.Args()
	}
	if len(o.Packages) == 0 {
		return nil, errors.New("no packages to generate")
	}
	if o.Workers < 0 {
		return nil, fmt.Errorf("invalid number of workers %d", o.Workers)
	}
	return &o, nil
}

func parseEnv(o *Options, environ map[string]string) error {
	if err := env.ParseWithOptions(o, env.Options{Prefix: envPrefix, Environment: environ}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

func readConfigFile(o *Options, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(o); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
