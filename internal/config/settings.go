package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/logging"
)

// Settings is the user's configuration. It is loaded once per process and
// passed by value; nothing mutates it after load.
type Settings struct {
	DefaultBackend   string            `mapstructure:"default_backend" json:"default_backend"`
	DefaultCPUs      int               `mapstructure:"default_cpus" json:"default_cpus"`
	DefaultMemory    int               `mapstructure:"default_memory" json:"default_memory"`
	DefaultDisk      int               `mapstructure:"default_disk" json:"default_disk"`
	TerminalEmulator string            `mapstructure:"terminal_emulator" json:"terminal_emulator"`
	LogLevel         string            `mapstructure:"log_level" json:"log_level"`
	Multipass        MultipassSettings `mapstructure:"multipass" json:"multipass"`
	LXD              LXDSettings       `mapstructure:"lxd" json:"lxd"`
	Templates        TemplateSettings  `mapstructure:"templates" json:"templates"`
}

type MultipassSettings struct {
	Driver  string `mapstructure:"driver" json:"driver"`
	Network string `mapstructure:"network" json:"network"`
}

type LXDSettings struct {
	StoragePool string `mapstructure:"storage_pool" json:"storage_pool"`
	Network     string `mapstructure:"network" json:"network"`
}

type TemplateSettings struct {
	CustomTemplatesEnabled bool `mapstructure:"custom_templates_enabled" json:"custom_templates_enabled"`
}

// Valid values for enumerated settings.
var (
	ValidBackends  = []string{"multipass", "lxd"}
	ValidLogLevels = []string{"DEBUG", "INFO", "WARNING", "ERROR"}
	ValidTerminals = []string{"auto", "gnome-terminal", "konsole", "xterm", "alacritty", "wezterm", "terminator"}
)

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		DefaultBackend:   "multipass",
		DefaultCPUs:      2,
		DefaultMemory:    2048,
		DefaultDisk:      10,
		TerminalEmulator: "auto",
		LogLevel:         "INFO",
		Multipass: MultipassSettings{
			Driver:  "qemu",
			Network: "default",
		},
		LXD: LXDSettings{
			StoragePool: "default",
			Network:     "lxdbr0",
		},
		Templates: TemplateSettings{
			CustomTemplatesEnabled: true,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultSettings()
	v.SetDefault("default_backend", d.DefaultBackend)
	v.SetDefault("default_cpus", d.DefaultCPUs)
	v.SetDefault("default_memory", d.DefaultMemory)
	v.SetDefault("default_disk", d.DefaultDisk)
	v.SetDefault("terminal_emulator", d.TerminalEmulator)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("multipass.driver", d.Multipass.Driver)
	v.SetDefault("multipass.network", d.Multipass.Network)
	v.SetDefault("lxd.storage_pool", d.LXD.StoragePool)
	v.SetDefault("lxd.network", d.LXD.Network)
	v.SetDefault("templates.custom_templates_enabled", d.Templates.CustomTemplatesEnabled)
}

// Issue is one validation failure, keyed by dotted setting name.
type Issue struct {
	Key     string
	Message string
}

func (i Issue) String() string {
	return i.Key + ": " + i.Message
}

// Validate checks the settings and returns every problem found.
func (s Settings) Validate() []Issue {
	var issues []Issue

	if !slices.Contains(ValidBackends, s.DefaultBackend) {
		issues = append(issues, Issue{"default_backend", "must be 'multipass' or 'lxd'"})
	}
	if s.DefaultCPUs < 1 || s.DefaultCPUs > 32 {
		issues = append(issues, Issue{"default_cpus", "must be an integer between 1 and 32"})
	}
	if s.DefaultMemory < 512 || s.DefaultMemory > 32768 {
		issues = append(issues, Issue{"default_memory", "must be an integer between 512 and 32768 MB"})
	}
	if s.DefaultDisk < 5 || s.DefaultDisk > 1000 {
		issues = append(issues, Issue{"default_disk", "must be an integer between 5 and 1000 GB"})
	}
	if !slices.Contains(ValidLogLevels, s.LogLevel) {
		issues = append(issues, Issue{"log_level", "must be DEBUG, INFO, WARNING, or ERROR"})
	}
	if !slices.Contains(ValidTerminals, s.TerminalEmulator) {
		issues = append(issues, Issue{"terminal_emulator", "must be one of " + strings.Join(ValidTerminals, ", ")})
	}

	return issues
}

// Store is the read-write view of the settings file used by the config
// commands. The rest of the program only sees the Settings it produces.
type Store struct {
	path string
	v    *viper.Viper
}

// LoadStore reads the settings file at path. A missing file yields the
// defaults. A corrupt file is reported as a warning and also yields the
// defaults.
func LoadStore(path string) *Store {
	s := &Store{path: path, v: newViper()}

	if _, err := os.Stat(path); err != nil {
		return s
	}

	s.v.SetConfigFile(path)
	s.v.SetConfigType("json")
	if err := s.v.ReadInConfig(); err != nil {
		logging.Warn("failed to load settings, using defaults", "path", path, "error", err)
		s.v = newViper()
	}
	return s
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Settings decodes the current values.
func (s *Store) Settings() (Settings, error) {
	var cfg Settings
	if err := s.v.Unmarshal(&cfg); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse settings: %w", err)
	}
	return cfg, nil
}

// Keys lists every known dotted key, sorted.
func (s *Store) Keys() []string {
	keys := newViper().AllKeys()
	slices.Sort(keys)
	return keys
}

// Get returns the value of a dotted key.
func (s *Store) Get(key string) (any, bool) {
	key = strings.ToLower(key)
	if !s.v.IsSet(key) {
		return nil, false
	}
	return s.v.Get(key), true
}

// Set assigns a dotted key from its string form. Integers and booleans
// are parsed; anything else is stored as a string. Only keys that have a
// default can be set.
func (s *Store) Set(key, raw string) error {
	key = strings.ToLower(key)
	if !slices.Contains(s.Keys(), key) {
		return fmt.Errorf("unknown setting %q", key)
	}
	s.v.Set(key, parseValue(raw))
	return nil
}

func parseValue(raw string) any {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

// Reset restores every key to its default.
func (s *Store) Reset() {
	s.v = newViper()
}

// ResetKey restores one key to its default.
func (s *Store) ResetKey(key string) error {
	key = strings.ToLower(key)
	defaults := newViper()
	if !defaults.IsSet(key) {
		return fmt.Errorf("unknown setting %q", key)
	}
	s.v.Set(key, defaults.Get(key))
	return nil
}

// Save writes the current values to the settings file.
func (s *Store) Save() error {
	return s.Export(s.path)
}

// Export writes the current values to path as indented JSON.
func (s *Store) Export(path string) error {
	data, err := json.MarshalIndent(s.v.AllSettings(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// Import merges the values in the JSON file at path over the current ones.
func (s *Store) Import(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("failed to parse settings: %w", err)
	}

	if err := s.v.MergeConfigMap(values); err != nil {
		return fmt.Errorf("failed to merge settings: %w", err)
	}
	return nil
}
