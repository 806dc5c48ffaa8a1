package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/backend"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/catalog"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/config"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/reconcile"
)

func testTemplates() []catalog.Template {
	return []catalog.Template{
		{ID: "go-dev", Name: "Go Development", Description: "Go toolchain", BaseImage: "22.04"},
		{ID: "elixir-dev", Name: "Elixir Development", Description: "Elixir and OTP", BaseImage: "22.04", Custom: true},
	}
}

func testDefaults() CreateDefaults {
	return CreateDefaults{
		Backend:   backend.KindVM,
		Resources: backend.Resources{CPUs: 2, MemoryMB: 2048, DiskGB: 10},
	}
}

func TestSuggestName(t *testing.T) {
	tests := []struct {
		path     string
		template string
		want     string
	}{
		{"/home/user/my-project", "go-dev", "my-project-go-dev"},
		{"/home/user/MyProject", "nodejs-dev", "myproject-nodejs-dev"},
		{"/home/user/repo with spaces", "go-dev", "repo-with-spaces-go-dev"},
		{"/home/user/my_project", "go-dev", "my-project-go-dev"},
		{"/home/user/2048", "go-dev", "env-2048-go-dev"},
		{"", "go-dev", "env-go-dev"},
		{"/", "go-dev", "env-go-dev"},
	}

	for _, tt := range tests {
		t.Run(tt.path+"/"+tt.template, func(t *testing.T) {
			got := suggestName(tt.path, tt.template)
			if got != tt.want {
				t.Errorf("suggestName(%q, %q) = %q, want %q", tt.path, tt.template, got, tt.want)
			}
			if err := config.ValidateEnvironmentName(got); err != nil {
				t.Errorf("suggested name is invalid: %v", err)
			}
		})
	}
}

func TestSuggestNameTruncation(t *testing.T) {
	longPath := "/home/user/" + strings.Repeat("a", 60)
	name := suggestName(longPath, "go-dev")
	if len(name) > 63 {
		t.Errorf("name length %d exceeds 63", len(name))
	}
	if err := config.ValidateEnvironmentName(name); err != nil {
		t.Errorf("truncated name is invalid: %v", err)
	}
}

func TestProjectMount(t *testing.T) {
	t.Run("empty means no mount", func(t *testing.T) {
		m, err := projectMount("")
		if err != nil || m != nil {
			t.Errorf("projectMount(\"\") = %v, %v; want nil, nil", m, err)
		}
	})

	t.Run("directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "shop")
		if err := os.Mkdir(dir, 0755); err != nil {
			t.Fatal(err)
		}
		m, err := projectMount(dir)
		if err != nil {
			t.Fatalf("projectMount() error: %v", err)
		}
		if m.HostPath != dir || m.GuestPath != "/home/ubuntu/shop" {
			t.Errorf("mount = %s, want %s:/home/ubuntu/shop", m, dir)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := projectMount(filepath.Join(t.TempDir(), "nope")); err == nil {
			t.Error("expected error for missing directory")
		}
	})

	t.Run("file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "notes.txt")
		if err := os.WriteFile(file, nil, 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := projectMount(file); err == nil {
			t.Error("expected error for a regular file")
		}
	})
}

func enter(t *testing.T, w *wizardModel) (bool, *reconcile.CreateSpec) {
	t.Helper()
	done, spec, _ := w.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return done, spec
}

func TestWizardStepTransitions(t *testing.T) {
	t.Run("path to template", func(t *testing.T) {
		w := newWizardModel(testTemplates(), testDefaults())
		if w.step != stepPath {
			t.Fatalf("initial step = %v, want stepPath", w.step)
		}

		w.pathInput.SetValue(t.TempDir())
		done, spec := enter(t, &w)
		if done || spec != nil {
			t.Error("should not be done after path step")
		}
		if w.step != stepTemplate {
			t.Errorf("step = %v, want stepTemplate", w.step)
		}
		if w.selectedMount == nil {
			t.Error("project directory should become a mount")
		}
		if got := len(w.templateList.Items()); got != 2 {
			t.Errorf("template items = %d, want 2", got)
		}
	})

	t.Run("invalid path stays", func(t *testing.T) {
		w := newWizardModel(testTemplates(), testDefaults())
		w.pathInput.SetValue(filepath.Join(t.TempDir(), "missing"))
		enter(t, &w)
		if w.step != stepPath {
			t.Errorf("step = %v, want stepPath", w.step)
		}
		if w.err == "" {
			t.Error("expected an error message")
		}
	})

	t.Run("template suggests name", func(t *testing.T) {
		w := newWizardModel(testTemplates(), testDefaults())
		enter(t, &w)
		enter(t, &w)
		if w.step != stepName {
			t.Fatalf("step = %v, want stepName", w.step)
		}
		if w.selectedTemplate != "go-dev" {
			t.Errorf("selectedTemplate = %q, want go-dev", w.selectedTemplate)
		}
		if got := w.nameInput.Value(); got != "env-go-dev" {
			t.Errorf("suggested name = %q, want env-go-dev", got)
		}
	})

	t.Run("invalid name stays", func(t *testing.T) {
		w := newWizardModel(testTemplates(), testDefaults())
		enter(t, &w)
		enter(t, &w)
		w.nameInput.SetValue("bad_name")
		enter(t, &w)
		if w.step != stepName {
			t.Errorf("step = %v, want stepName", w.step)
		}
		if !strings.Contains(w.View(), "invalid environment name") {
			t.Error("View should show the validation error")
		}
	})

	t.Run("esc goes back", func(t *testing.T) {
		w := newWizardModel(testTemplates(), testDefaults())
		enter(t, &w)
		enter(t, &w)
		w.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if w.step != stepTemplate {
			t.Errorf("step = %v, want stepTemplate", w.step)
		}
		w.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if w.step != stepPath {
			t.Errorf("step = %v, want stepPath", w.step)
		}
		done, spec, _ := w.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if !done || spec != nil {
			t.Error("esc on the first step should cancel")
		}
	})

	t.Run("ctrl+c cancels", func(t *testing.T) {
		w := newWizardModel(testTemplates(), testDefaults())
		enter(t, &w)
		done, spec, _ := w.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		if !done || spec != nil {
			t.Error("ctrl+c should cancel")
		}
	})
}

func TestWizardCompletion(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shop")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}

	w := newWizardModel(testTemplates(), testDefaults())
	w.pathInput.SetValue(dir)
	enter(t, &w)
	enter(t, &w)
	enter(t, &w)
	if w.step != stepConfirm {
		t.Fatalf("step = %v, want stepConfirm", w.step)
	}

	view := w.View()
	for _, want := range []string{"shop-go-dev", "go-dev", "multipass", "/home/ubuntu/shop", "2 cpus"} {
		if !strings.Contains(view, want) {
			t.Errorf("confirm view should contain %q", want)
		}
	}

	done, spec := enter(t, &w)
	if !done || spec == nil {
		t.Fatal("enter on confirm should complete")
	}
	if spec.Name != "shop-go-dev" || spec.Template != "go-dev" || spec.Backend != backend.KindVM {
		t.Errorf("spec = %+v", spec)
	}
	if len(spec.Mounts) != 1 || spec.Mounts[0].GuestPath != "/home/ubuntu/shop" {
		t.Errorf("mounts = %v", spec.Mounts)
	}
	if spec.Resources != testDefaults().Resources {
		t.Errorf("resources = %+v, want defaults", spec.Resources)
	}
}

func TestWizardAdvanced(t *testing.T) {
	toAdvanced := func(t *testing.T) wizardModel {
		t.Helper()
		w := newWizardModel(testTemplates(), testDefaults())
		enter(t, &w)
		enter(t, &w)
		w.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
		if w.step != stepAdvanced {
			t.Fatalf("step = %v, want stepAdvanced", w.step)
		}
		return w
	}

	t.Run("switch backend and set cpus", func(t *testing.T) {
		w := toAdvanced(t)
		w.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		if w.backendKind != backend.KindContainer {
			t.Errorf("backend = %q, want lxd", w.backendKind)
		}

		w.Update(tea.KeyMsg{Type: tea.KeyTab})
		if w.advCursor != advCPUs || !w.cpuInput.Focused() {
			t.Fatal("tab should focus the cpu input")
		}
		w.cpuInput.SetValue("4")
		w.memoryInput.SetValue("")

		enter(t, &w)
		if w.step != stepConfirm {
			t.Fatalf("step = %v, want stepConfirm", w.step)
		}
		_, spec := enter(t, &w)
		if spec.Backend != backend.KindContainer {
			t.Errorf("backend = %q, want lxd", spec.Backend)
		}
		want := backend.Resources{CPUs: 4, DiskGB: 10}
		if spec.Resources != want {
			t.Errorf("resources = %+v, want %+v", spec.Resources, want)
		}
	})

	t.Run("out of range stays", func(t *testing.T) {
		w := toAdvanced(t)
		w.cpuInput.SetValue("64")
		enter(t, &w)
		if w.step != stepAdvanced {
			t.Errorf("step = %v, want stepAdvanced", w.step)
		}
		if !strings.Contains(w.err, "cpus must be between 1 and 32") {
			t.Errorf("err = %q", w.err)
		}
	})

	t.Run("cursor wraps", func(t *testing.T) {
		w := toAdvanced(t)
		w.Update(tea.KeyMsg{Type: tea.KeyUp})
		if w.advCursor != advDisk {
			t.Errorf("cursor = %v, want advDisk", w.advCursor)
		}
	})
}

func TestWizardRestart(t *testing.T) {
	w := newWizardModel(testTemplates(), testDefaults())
	enter(t, &w)
	enter(t, &w)
	enter(t, &w)
	w.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if w.step != stepPath || w.selectedName != "" {
		t.Errorf("n on confirm should restart, step = %v name = %q", w.step, w.selectedName)
	}
}

func TestWizardProgressBar(t *testing.T) {
	w := newWizardModel(testTemplates(), testDefaults())
	for _, want := range []string{"1. Path", "2. Template", "3. Name", "4. Confirm"} {
		if !strings.Contains(w.progressBar(), want) {
			t.Errorf("progress bar should contain %q", want)
		}
	}
}

func TestTemplateItem(t *testing.T) {
	item := templateItem{id: "elixir-dev", name: "Elixir Development", description: "Elixir and OTP", custom: true}
	if got := item.Title(); got != "elixir-dev (custom)" {
		t.Errorf("Title() = %q", got)
	}
	if got := item.Description(); got != "Elixir Development - Elixir and OTP" {
		t.Errorf("Description() = %q", got)
	}
	if got := item.FilterValue(); got != "elixir-dev" {
		t.Errorf("FilterValue() = %q", got)
	}
}
