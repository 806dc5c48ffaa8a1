package backend

import (
	"context"
	"fmt"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/config"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/logging"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/system"
)

// New constructs the adapter for kind, configured from settings.
func New(kind Kind, runner system.Runner, terminal ShellLauncher, settings config.Settings) (Backend, error) {
	switch kind {
	case KindVM:
		return NewMultipass(runner, terminal, MultipassOptions{
			Network: settings.Multipass.Network,
			Driver:  settings.Multipass.Driver,
		}), nil
	case KindContainer:
		return NewLXD(runner, terminal, LXDOptions{
			StoragePool: settings.LXD.StoragePool,
			Network:     settings.LXD.Network,
		}), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", kind)
	}
}

// All constructs every adapter in listing order.
func All(runner system.Runner, terminal ShellLauncher, settings config.Settings) []Backend {
	backends := make([]Backend, 0, len(Kinds))
	for _, kind := range Kinds {
		b, err := New(kind, runner, terminal, settings)
		if err != nil {
			continue
		}
		backends = append(backends, b)
	}
	return backends
}

// Availability reports whether one backend's tool is usable.
type Availability struct {
	Kind      Kind   `json:"backend"`
	Class     string `json:"class"`
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Driver    string `json:"driver,omitempty"`
	Warning   string `json:"warning,omitempty"`
}

// driverChecker is implemented by backends with a host-side driver setting.
type driverChecker interface {
	CheckDriver(ctx context.Context) (driver, warning string)
}

// Detect probes each backend in order. Probes do not fail; an unusable
// tool is reported as unavailable.
func Detect(ctx context.Context, backends []Backend) []Availability {
	statuses := make([]Availability, 0, len(backends))
	for _, b := range backends {
		st := Availability{Kind: b.Kind(), Class: b.Kind().Class()}
		if b.IsAvailable(ctx) {
			st.Available = true
			if v, err := b.Version(ctx); err == nil {
				st.Version = v
			} else {
				logging.Debug("version probe failed", "backend", b.Kind(), "error", err)
			}
			if dc, ok := b.(driverChecker); ok {
				st.Driver, st.Warning = dc.CheckDriver(ctx)
			}
		}
		logging.Debug("detected backend", "backend", st.Kind, "available", st.Available)
		statuses = append(statuses, st)
	}
	return statuses
}
