package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName is the directory name used under the per-user config and state roots.
const AppName = "ubuntu-dev-manager"

const (
	RegistryFileName = "environments.json"
	SettingsFileName = "config.json"
)

// Paths holds the configured paths
type Paths struct {
	ConfigDir    string
	StateDir     string
	TemplatesDir string
	HistoryDir   string
}

// RegistryFile is the persisted environment registry.
func (p *Paths) RegistryFile() string {
	return filepath.Join(p.ConfigDir, RegistryFileName)
}

// SettingsFile is the persisted user settings file.
func (p *Paths) SettingsFile() string {
	return filepath.Join(p.ConfigDir, SettingsFileName)
}

// DefaultPaths resolves the XDG config and state directories for the current user.
func DefaultPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configRoot := os.Getenv("XDG_CONFIG_HOME")
	if configRoot == "" {
		configRoot = filepath.Join(home, ".config")
	}
	stateRoot := os.Getenv("XDG_STATE_HOME")
	if stateRoot == "" {
		stateRoot = filepath.Join(home, ".local", "state")
	}

	return newPaths(filepath.Join(configRoot, AppName), filepath.Join(stateRoot, AppName)), nil
}

// PathsFor places everything under a single directory, as used by --config-dir.
func PathsFor(dir string) *Paths {
	return newPaths(dir, filepath.Join(dir, "state"))
}

func newPaths(configDir, stateDir string) *Paths {
	return &Paths{
		ConfigDir:    configDir,
		StateDir:     stateDir,
		TemplatesDir: filepath.Join(configDir, "templates"),
		HistoryDir:   filepath.Join(stateDir, "history"),
	}
}
