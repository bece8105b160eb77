// Package gen generates persistence bindings for the entities found by the
// load package.
//
// # Architecture
//
// The code generation pipeline follows this flow:
//
//	Go package with //noodle: directives
//	        ↓
//	   load.Load (positioned diagnostics)
//	        ↓
//	   load.Entity (fields, configurations)
//	        ↓
//	   Backend.GenEntity (jennifer)
//	        ↓
//	   <entity>_noodle.go next to the declaration
//
// One file is rendered per entity and files are written in parallel, at
// most Config.Workers at a time. A file whose content did not change is
// left untouched so that build caches and file watchers stay quiet.
//
// # Error Handling
//
// The package uses structured error types:
//
//   - ConfigError: invalid options
//   - GenerationError: rendering or writing a file failed
//
// Configuration mistakes in the loaded packages are reported by load as
// load.Diagnostics before any file is written.
//
// Example:
//
//	cfg, err := gen.NewConfig(gen.WithBackend(sql.NewBackend()))
//	if err != nil {
//	    return err
//	}
//	g, err := gen.NewGenerator(cfg)
//	if err != nil {
//	    return err
//	}
//	report, err := g.Run(ctx, "./...")
package gen
