// Package app provides the application context for udm.
//
// This package wires the paths, settings, command runner, backends,
// template catalog, registry and history into one Reconciler using the
// functional options pattern, enabling easy testing through dependency
// injection.
//
// # Creating an App
//
//	// Production usage
//	a := app.New(app.WithPaths(paths))
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithPaths(config.PathsFor(t.TempDir())),
//	    app.WithSettings(config.DefaultSettings()),
//	    app.WithBackends(vm, container),
//	)
//
// # Available Options
//
//	WithPaths(paths)          // Custom path configuration
//	WithSettings(settings)    // Skip reading config.json
//	WithRunner(runner)        // Custom command runner
//	WithFS(fs)                // Custom file system for the registry
//	WithTerminal(launcher)    // Custom shell launcher
//	WithBackends(b...)        // Custom backends
//	WithTemplates(catalog)    // Custom template catalog
package app
