package testutil

import (
	"os"
	"strings"
	"testing"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/backend"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/catalog"
)

func TestFixturesPresent(t *testing.T) {
	for _, name := range []string{MultipassList, MultipassInfo, LXCList, LXCConfigShow, Malformed, Registry, CustomTemplate} {
		data, err := LoadFixture(name)
		if err != nil {
			t.Errorf("LoadFixture(%q) error: %v", name, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("fixture %s is empty", name)
		}
	}
}

func TestLoadFixture_Missing(t *testing.T) {
	if _, err := LoadFixture("nope.json"); err == nil {
		t.Error("expected error for missing fixture")
	}
}

func TestCustomTemplateFixture(t *testing.T) {
	tmpl, err := catalog.Parse([]byte(Fixture(t, CustomTemplate)))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if tmpl.Name != "Elixir Development" {
		t.Errorf("Name = %q", tmpl.Name)
	}
	if len(tmpl.SetupScript) != 3 || !strings.HasPrefix(tmpl.SetupScript[0], "mix local.hex") {
		t.Errorf("SetupScript = %q", tmpl.SetupScript)
	}
}

func TestNewTestEnv(t *testing.T) {
	env := NewTestEnv(t)

	env.AddEnvironment(backend.KindVM, "web", "Running", "web-dev")
	env.AddEnvironment(backend.KindContainer, "api", "Stopped", "")

	envs := env.App.Reconciler.List(t.Context())
	if len(envs) != 2 {
		t.Fatalf("List() = %+v", envs)
	}
	if envs[0].Template != "web-dev" || envs[1].Template != "Unknown" {
		t.Errorf("templates = %q, %q", envs[0].Template, envs[1].Template)
	}
	if _, ok := env.RegistryEntry("web"); !ok {
		t.Error("registry entry missing")
	}
}

func TestAddTemplate(t *testing.T) {
	env := NewTestEnv(t)
	env.AddTemplate("test-dev", DefaultTemplate())

	if _, ok := env.App.Templates.Get("test-dev"); !ok {
		t.Error("template not visible after AddTemplate")
	}
}

func TestRegistryFixture(t *testing.T) {
	env := NewTestEnv(t)
	if err := os.WriteFile(env.Paths.RegistryFile(), []byte(Fixture(t, Registry)), 0644); err != nil {
		t.Fatal(err)
	}

	entry, ok := env.RegistryEntry("api")
	if !ok || entry.Template != "nodejs-dev" || entry.Backend != "lxd" || !entry.Created {
		t.Errorf("api entry = %+v, %v", entry, ok)
	}
}
