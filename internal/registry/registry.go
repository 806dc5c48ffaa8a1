// Package registry persists the metadata backends do not track themselves:
// which template an environment was created from and which backend owns it.
//
// The file is a JSON object keyed by environment name. It is read fully
// and rewritten fully on every mutation. Live status, IP and mounts are
// never stored here.
package registry

import (
	"encoding/json"
	"path/filepath"
	"slices"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/errors"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/logging"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/system"
)

// Entry is the persisted record for one environment.
type Entry struct {
	Template string `json:"template"`
	Backend  string `json:"backend"`
	Created  bool   `json:"created"`
}

// Registry reads and writes the registry file.
type Registry struct {
	path string
	fs   system.FileSystem
}

// New returns a Registry backed by the file at path.
func New(path string, fs system.FileSystem) *Registry {
	if fs == nil {
		fs = system.DefaultFS()
	}
	return &Registry{path: path, fs: fs}
}

// Path returns the registry file location.
func (r *Registry) Path() string {
	return r.path
}

// Load returns the persisted entries. A missing, unreadable or corrupt
// file yields an empty mapping.
func (r *Registry) Load() map[string]Entry {
	entries := make(map[string]Entry)

	data, err := r.fs.ReadFile(r.path)
	if err != nil {
		return entries
	}

	if err := json.Unmarshal(data, &entries); err != nil {
		logging.Debug("ignoring corrupt registry", "path", r.path, "error", err)
		return make(map[string]Entry)
	}
	if entries == nil {
		entries = make(map[string]Entry)
	}
	return entries
}

// Save replaces the registry file with entries.
func (r *Registry) Save(entries map[string]Entry) error {
	if entries == nil {
		entries = make(map[string]Entry)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.PersistenceFailed("failed to encode registry", err)
	}

	if err := r.fs.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return errors.PersistenceFailed("failed to create registry directory", err)
	}

	tmp := r.path + ".tmp"
	if err := r.fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.PersistenceFailed("failed to write registry", err)
	}
	if err := r.fs.Rename(tmp, r.path); err != nil {
		_ = r.fs.Remove(tmp)
		return errors.PersistenceFailed("failed to replace registry", err)
	}
	return nil
}

// Get returns the entry for name.
func (r *Registry) Get(name string) (Entry, bool) {
	e, ok := r.Load()[name]
	return e, ok
}

// Set inserts or replaces the entry for name.
func (r *Registry) Set(name string, entry Entry) error {
	entries := r.Load()
	entries[name] = entry
	return r.Save(entries)
}

// Remove deletes the entry for name. Removing an absent name is not an error.
func (r *Registry) Remove(name string) error {
	entries := r.Load()
	if _, ok := entries[name]; !ok {
		return nil
	}
	delete(entries, name)
	return r.Save(entries)
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	entries := r.Load()
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
