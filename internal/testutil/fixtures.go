package testutil

import (
	"embed"
	"testing"
)

//go:embed fixtures/*
var fixturesFS embed.FS

// Fixture names. Each holds output captured from the real tool, trimmed.
const (
	MultipassList     = "multipass_list.json"
	MultipassInfo     = "multipass_info.json"
	LXCList           = "lxc_list.json"
	LXCConfigShow     = "lxc_config_show.yaml"
	Malformed         = "malformed.json"
	Registry          = "registry.json"
	CustomTemplate    = "custom_template.toml"
	MultipassInfoName = "web"
)

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// Fixture returns a fixture as a string, failing the test if it is missing.
func Fixture(t testing.TB, name string) string {
	t.Helper()
	data, err := LoadFixture(name)
	if err != nil {
		t.Fatalf("Failed to load fixture %s: %v", name, err)
	}
	return string(data)
}
