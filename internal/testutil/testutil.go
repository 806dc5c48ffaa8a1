// Package testutil provides test utilities for integration tests
package testutil

import (
	"os"
	"testing"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/app"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/backend"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/catalog"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/config"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/registry"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/system"
)

// TestEnv holds the test environment
type TestEnv struct {
	T         *testing.T
	TmpDir    string
	Paths     *config.Paths
	Settings  config.Settings
	Runner    *system.MockRunner
	VM        *backend.MockBackend
	Container *backend.MockBackend
	App       *app.App
	cleanup   func()
}

// NewTestEnv creates a new test environment with mock backends and
// installs its App as app.Default until Cleanup.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()
	paths := config.PathsFor(tmpDir)

	for _, dir := range []string{
		paths.ConfigDir,
		paths.StateDir,
		paths.TemplatesDir,
		paths.HistoryDir,
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	settings := config.DefaultSettings()
	runner := system.NewMockRunner()
	vm := backend.NewMockBackend(backend.KindVM)
	container := backend.NewMockBackend(backend.KindContainer)

	testApp := app.New(
		app.WithPaths(paths),
		app.WithSettings(settings),
		app.WithRunner(runner),
		app.WithBackends(vm, container),
		app.WithTemplates(catalog.Builtin()),
	)

	// Save original default and set test app
	originalDefault := app.Default
	app.SetDefault(testApp)

	env := &TestEnv{
		T:         t,
		TmpDir:    tmpDir,
		Paths:     paths,
		Settings:  settings,
		Runner:    runner,
		VM:        vm,
		Container: container,
		App:       testApp,
		cleanup: func() {
			app.SetDefault(originalDefault)
		},
	}
	t.Cleanup(env.Cleanup)

	return env
}

// Cleanup restores the original app default
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
}

// AddTemplate writes a custom template and reloads the catalog
func (e *TestEnv) AddTemplate(id string, t catalog.Template) {
	e.T.Helper()

	if err := catalog.AddCustom(e.Paths.TemplatesDir, id, t); err != nil {
		e.T.Fatalf("Failed to add template: %v", err)
	}
	templates, err := catalog.Load(e.Paths.TemplatesDir, true)
	if err != nil {
		e.T.Fatalf("Failed to reload templates: %v", err)
	}
	*e.App = *app.New(
		app.WithPaths(e.Paths),
		app.WithSettings(e.Settings),
		app.WithRunner(e.Runner),
		app.WithBackends(e.VM, e.Container),
		app.WithTemplates(templates),
	)
}

// AddEnvironment adds a live instance to a mock backend and, when template
// is non-empty, records it in the registry
func (e *TestEnv) AddEnvironment(kind backend.Kind, name, rawStatus, template string) {
	e.T.Helper()

	b := e.VM
	if kind == backend.KindContainer {
		b = e.Container
	}
	b.AddInstance(name, rawStatus)

	if template != "" {
		if err := e.App.Registry.Set(name, registry.Entry{Template: template, Backend: string(kind), Created: true}); err != nil {
			e.T.Fatalf("Failed to record environment: %v", err)
		}
	}
}

// RegistryEntry loads one registry entry
func (e *TestEnv) RegistryEntry(name string) (registry.Entry, bool) {
	return e.App.Registry.Get(name)
}

// DefaultTemplate returns a basic template for testing
func DefaultTemplate() catalog.Template {
	return catalog.Template{
		Name:        "Test",
		Description: "Test template",
		BaseImage:   "22.04",
		Packages:    []string{"git"},
		SetupScript: []string{"echo ready"},
	}
}
