package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPathsFor(t *testing.T) {
	paths := PathsFor("/tmp/udm")

	if paths.ConfigDir != "/tmp/udm" {
		t.Errorf("ConfigDir = %q, want %q", paths.ConfigDir, "/tmp/udm")
	}
	if paths.StateDir != "/tmp/udm/state" {
		t.Errorf("StateDir = %q, want %q", paths.StateDir, "/tmp/udm/state")
	}
	if paths.TemplatesDir != "/tmp/udm/templates" {
		t.Errorf("TemplatesDir = %q, want %q", paths.TemplatesDir, "/tmp/udm/templates")
	}
	if paths.HistoryDir != "/tmp/udm/state/history" {
		t.Errorf("HistoryDir = %q, want %q", paths.HistoryDir, "/tmp/udm/state/history")
	}
	if got := paths.RegistryFile(); got != "/tmp/udm/environments.json" {
		t.Errorf("RegistryFile() = %q", got)
	}
	if got := paths.SettingsFile(); got != "/tmp/udm/config.json" {
		t.Errorf("SettingsFile() = %q", got)
	}
}

func TestDefaultPaths_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_STATE_HOME", "/xdg/state")

	paths, err := DefaultPaths()
	if err != nil {
		t.Fatalf("DefaultPaths() error: %v", err)
	}

	if paths.ConfigDir != filepath.Join("/xdg/config", AppName) {
		t.Errorf("ConfigDir = %q", paths.ConfigDir)
	}
	if paths.StateDir != filepath.Join("/xdg/state", AppName) {
		t.Errorf("StateDir = %q", paths.StateDir)
	}
}

func TestValidateEnvironmentName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		// Valid names
		{"myproject", false},
		{"my-project", false},
		{"MyProject", false},
		{"project123", false},
		{"a", false},
		{"a-b-c", false},
		{"a" + strings.Repeat("b", 62), false},

		// Invalid names
		{"", true},
		{"123project", true},
		{"my_project", true},
		{"my project", true},
		{"trailing-", true},
		{"../../../etc/passwd", true},
		{"my.project", true},
		{"-starts-with-dash", true},
		{"has;semicolon", true},
		{"a" + strings.Repeat("b", 63), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEnvironmentName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEnvironmentName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
		})
	}
}

func TestSettings_Validate(t *testing.T) {
	if issues := DefaultSettings().Validate(); len(issues) != 0 {
		t.Errorf("DefaultSettings().Validate() = %v, want none", issues)
	}

	s := DefaultSettings()
	s.DefaultBackend = "docker"
	s.DefaultCPUs = 0
	s.DefaultMemory = 100000
	s.DefaultDisk = 4
	s.LogLevel = "TRACE"
	s.TerminalEmulator = "cmd.exe"

	issues := s.Validate()
	want := []string{"default_backend", "default_cpus", "default_memory", "default_disk", "log_level", "terminal_emulator"}
	if len(issues) != len(want) {
		t.Fatalf("Validate() returned %d issues, want %d: %v", len(issues), len(want), issues)
	}
	for i, key := range want {
		if issues[i].Key != key {
			t.Errorf("issues[%d].Key = %q, want %q", i, issues[i].Key, key)
		}
	}
}

func TestLoadStore_Missing(t *testing.T) {
	store := LoadStore(filepath.Join(t.TempDir(), "config.json"))

	settings, err := store.Settings()
	if err != nil {
		t.Fatalf("Settings() error: %v", err)
	}
	if settings != DefaultSettings() {
		t.Errorf("Settings() = %+v, want defaults", settings)
	}
}

func TestLoadStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadStore(path).Settings()
	if err != nil {
		t.Fatalf("Settings() error: %v", err)
	}
	if settings != DefaultSettings() {
		t.Errorf("Settings() = %+v, want defaults", settings)
	}
}

func TestLoadStore_MergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"default_backend": "lxd", "default_cpus": 4, "lxd": {"network": "br0"}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadStore(path).Settings()
	if err != nil {
		t.Fatalf("Settings() error: %v", err)
	}

	if settings.DefaultBackend != "lxd" {
		t.Errorf("DefaultBackend = %q, want %q", settings.DefaultBackend, "lxd")
	}
	if settings.DefaultCPUs != 4 {
		t.Errorf("DefaultCPUs = %d, want 4", settings.DefaultCPUs)
	}
	if settings.DefaultMemory != 2048 {
		t.Errorf("DefaultMemory = %d, want 2048", settings.DefaultMemory)
	}
	if settings.LXD.Network != "br0" {
		t.Errorf("LXD.Network = %q, want %q", settings.LXD.Network, "br0")
	}
	if settings.LXD.StoragePool != "default" {
		t.Errorf("LXD.StoragePool = %q, want %q", settings.LXD.StoragePool, "default")
	}
}

func TestStore_SetGetSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.json")
	store := LoadStore(path)

	if err := store.Set("default_cpus", "8"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := store.Set("multipass.driver", "lxd"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := store.Set("templates.custom_templates_enabled", "false"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := store.Set("no_such_key", "1"); err == nil {
		t.Error("Set(unknown) should fail")
	}

	if v, ok := store.Get("default_cpus"); !ok || v != 8 {
		t.Errorf("Get(default_cpus) = %v, %v", v, ok)
	}

	if err := store.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	settings, err := LoadStore(path).Settings()
	if err != nil {
		t.Fatalf("Settings() error: %v", err)
	}
	if settings.DefaultCPUs != 8 {
		t.Errorf("DefaultCPUs = %d, want 8", settings.DefaultCPUs)
	}
	if settings.Multipass.Driver != "lxd" {
		t.Errorf("Multipass.Driver = %q, want %q", settings.Multipass.Driver, "lxd")
	}
	if settings.Templates.CustomTemplatesEnabled {
		t.Error("CustomTemplatesEnabled = true, want false")
	}
}

func TestStore_Reset(t *testing.T) {
	store := LoadStore(filepath.Join(t.TempDir(), "config.json"))
	_ = store.Set("default_cpus", "8")
	_ = store.Set("log_level", "DEBUG")

	if err := store.ResetKey("default_cpus"); err != nil {
		t.Fatalf("ResetKey() error: %v", err)
	}
	settings, _ := store.Settings()
	if settings.DefaultCPUs != 2 {
		t.Errorf("DefaultCPUs = %d, want 2", settings.DefaultCPUs)
	}
	if settings.LogLevel != "DEBUG" {
		t.Errorf("LogLevel = %q, want DEBUG", settings.LogLevel)
	}

	if err := store.ResetKey("bogus"); err == nil {
		t.Error("ResetKey(unknown) should fail")
	}

	store.Reset()
	settings, _ = store.Settings()
	if settings != DefaultSettings() {
		t.Errorf("Settings() after Reset = %+v, want defaults", settings)
	}
}

func TestStore_ExportImport(t *testing.T) {
	dir := t.TempDir()
	src := LoadStore(filepath.Join(dir, "a.json"))
	_ = src.Set("default_backend", "lxd")
	_ = src.Set("default_disk", "40")

	exported := filepath.Join(dir, "export.json")
	if err := src.Export(exported); err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	dst := LoadStore(filepath.Join(dir, "b.json"))
	if err := dst.Import(exported); err != nil {
		t.Fatalf("Import() error: %v", err)
	}

	settings, err := dst.Settings()
	if err != nil {
		t.Fatalf("Settings() error: %v", err)
	}
	if settings.DefaultBackend != "lxd" {
		t.Errorf("DefaultBackend = %q, want lxd", settings.DefaultBackend)
	}
	if settings.DefaultDisk != 40 {
		t.Errorf("DefaultDisk = %d, want 40", settings.DefaultDisk)
	}

	if err := dst.Import(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Import(missing) should fail")
	}
}

func TestStore_Keys(t *testing.T) {
	keys := LoadStore(filepath.Join(t.TempDir(), "config.json")).Keys()

	for _, want := range []string{"default_backend", "lxd.storage_pool", "multipass.network", "templates.custom_templates_enabled"} {
		found := false
		for _, k := range keys {
			if k == want {
				found = true
			}
		}
		if !found {
			t.Errorf("Keys() missing %q: %v", want, keys)
		}
	}
}
