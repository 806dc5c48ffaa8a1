// Package app provides the application context for udm.
// It allows dependency injection for testing.
package app

import (
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/audit"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/backend"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/catalog"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/config"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/logging"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/reconcile"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/registry"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/system"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/terminal"
)

// App holds the application dependencies
type App struct {
	// Paths holds the configured paths
	Paths *config.Paths

	// Settings are the user settings, loaded once
	Settings config.Settings

	// Runner executes external commands
	Runner system.Runner

	// FS is the file system used by the registry
	FS system.FileSystem

	// Terminal opens shells in new windows
	Terminal backend.ShellLauncher

	// Backends are the adapters in listing order
	Backends []backend.Backend

	// Templates is the template catalog
	Templates *catalog.Catalog

	// Registry is the environment registry
	Registry *registry.Registry

	// History is the lifecycle event log
	History *audit.Logger

	// Reconciler is the entry point for every environment operation
	Reconciler *reconcile.Reconciler

	settingsSet bool
}

// Option is a function that configures the App
type Option func(*App)

// WithPaths sets custom paths
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithSettings sets the settings instead of reading the settings file
func WithSettings(s config.Settings) Option {
	return func(a *App) {
		a.Settings = s
		a.settingsSet = true
	}
}

// WithRunner sets a custom command runner
func WithRunner(r system.Runner) Option {
	return func(a *App) {
		a.Runner = r
	}
}

// WithFS sets a custom file system
func WithFS(fs system.FileSystem) Option {
	return func(a *App) {
		a.FS = fs
	}
}

// WithTerminal sets a custom shell launcher
func WithTerminal(t backend.ShellLauncher) Option {
	return func(a *App) {
		a.Terminal = t
	}
}

// WithBackends sets the backends instead of building them from settings
func WithBackends(backends ...backend.Backend) Option {
	return func(a *App) {
		a.Backends = backends
	}
}

// WithTemplates sets a custom template catalog
func WithTemplates(c *catalog.Catalog) Option {
	return func(a *App) {
		a.Templates = c
	}
}

// New creates a new App with the given options.
// Anything not provided is built from the paths and settings.
func New(opts ...Option) *App {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.Paths == nil {
		paths, err := config.DefaultPaths()
		if err != nil {
			logging.Warn("failed to resolve default paths, using current directory", "error", err)
			paths = config.PathsFor(".udm")
		}
		app.Paths = paths
	}

	if !app.settingsSet {
		app.Settings = LoadSettings(app.Paths)
	}

	if app.Runner == nil {
		app.Runner = system.DefaultRunner()
	}
	if app.FS == nil {
		app.FS = system.DefaultFS()
	}
	if app.Terminal == nil {
		app.Terminal = terminal.NewLauncher(app.Runner, app.Settings.TerminalEmulator)
	}
	if app.Backends == nil {
		app.Backends = backend.All(app.Runner, app.Terminal, app.Settings)
	}

	if app.Templates == nil {
		templates, err := catalog.Load(app.Paths.TemplatesDir, app.Settings.Templates.CustomTemplatesEnabled)
		if err != nil {
			logging.Warn("failed to load custom templates", "error", err)
			templates = catalog.Builtin()
		}
		app.Templates = templates
	}

	app.Registry = registry.New(app.Paths.RegistryFile(), app.FS)
	app.History = audit.NewLogger(app.Paths.HistoryDir)
	app.Reconciler = reconcile.New(app.Backends, app.Registry, app.Templates,
		reconcile.WithRecorder(app.History))

	return app
}

// LoadSettings reads the settings file. Problems are reported as warnings
// and never prevent startup.
func LoadSettings(paths *config.Paths) config.Settings {
	settings, err := config.LoadStore(paths.SettingsFile()).Settings()
	if err != nil {
		logging.Warn("invalid settings, using defaults", "error", err)
		return config.DefaultSettings()
	}
	for _, issue := range settings.Validate() {
		logging.Warn("invalid setting", "key", issue.Key, "problem", issue.Message)
	}
	return settings
}

// DefaultBackend returns the backend named by the settings, falling back
// to the VM backend when the setting is invalid.
func (a *App) DefaultBackend() backend.Kind {
	kind, err := backend.ParseKind(a.Settings.DefaultBackend)
	if err != nil {
		return backend.KindVM
	}
	return kind
}

// DefaultResources returns the resource limits from the settings.
func (a *App) DefaultResources() backend.Resources {
	return backend.Resources{
		CPUs:     a.Settings.DefaultCPUs,
		MemoryMB: a.Settings.DefaultMemory,
		DiskGB:   a.Settings.DefaultDisk,
	}
}

// Default is the application instance used by the commands. It is set
// once flags have been parsed.
var Default *App

// SetDefault sets the default application instance
func SetDefault(app *App) {
	Default = app
}

// ResetDefault rebuilds the default application instance from disk
func ResetDefault() {
	Default = New()
}
