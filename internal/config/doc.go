// Package config provides paths, name validation and user settings for udm.
//
// # Paths
//
// Paths follow the XDG base directory layout:
//
//   - ConfigDir: $XDG_CONFIG_HOME/ubuntu-dev-manager (environments.json, config.json, templates/)
//   - StateDir: $XDG_STATE_HOME/ubuntu-dev-manager (history/)
//
// PathsFor places both under one directory for --config-dir.
//
// # Settings
//
// Settings are read from config.json through viper with built-in
// defaults, so a partial file only overrides what it names. A missing or
// corrupt file yields the defaults. The decoded Settings value is
// immutable and injected wherever it is needed; only the config commands
// go through Store to change the file:
//
//	store := config.LoadStore(paths.SettingsFile())
//	_ = store.Set("default_cpus", "4")
//	_ = store.Save()
//
// # Environment Names
//
// ValidateEnvironmentName enforces the intersection of the multipass and
// LXD instance naming rules.
package config
