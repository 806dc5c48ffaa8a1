package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/catalog"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/system"
)

// Kind identifies a backend. The values double as the registry's
// persisted backend tag.
type Kind string

const (
	KindVM        Kind = "multipass"
	KindContainer Kind = "lxd"
)

// Kinds lists every backend in listing order.
var Kinds = []Kind{KindVM, KindContainer}

// ParseKind accepts a backend tag or its generic alias.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "multipass", "vm":
		return KindVM, nil
	case "lxd", "lxc", "container":
		return KindContainer, nil
	default:
		return "", fmt.Errorf("unknown backend %q (must be multipass or lxd)", s)
	}
}

// Class returns the generic backend class, "vm" or "container".
func (k Kind) Class() string {
	switch k {
	case KindVM:
		return "vm"
	case KindContainer:
		return "container"
	default:
		return "unknown"
	}
}

// Status is the normalized instance state.
type Status string

const (
	StatusRunning Status = "Running"
	StatusStopped Status = "Stopped"
	StatusUnknown Status = "Unknown"
)

// NormalizeStatus maps a backend-reported state onto Status.
func NormalizeStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "running":
		return StatusRunning
	case "stopped":
		return StatusStopped
	default:
		return StatusUnknown
	}
}

// IPNotAvailable is reported when an instance has no usable IPv4 address.
const IPNotAvailable = "Not available"

// Mount binds a host directory to a path inside an environment.
type Mount struct {
	HostPath  string `json:"host"`
	GuestPath string `json:"guest"`
}

func (m Mount) String() string {
	return m.HostPath + ":" + m.GuestPath
}

// ParseMount parses "host:guest". Both sides must be absolute; the host
// side is cleaned.
func ParseMount(s string) (Mount, error) {
	host, guest, ok := strings.Cut(s, ":")
	if !ok || host == "" || guest == "" {
		return Mount{}, fmt.Errorf("invalid mount %q: expected host:guest", s)
	}
	if !filepath.IsAbs(host) {
		return Mount{}, fmt.Errorf("invalid mount %q: host path must be absolute", s)
	}
	if !strings.HasPrefix(guest, "/") {
		return Mount{}, fmt.Errorf("invalid mount %q: guest path must be absolute", s)
	}
	return Mount{HostPath: filepath.Clean(host), GuestPath: guest}, nil
}

// Resources are the requested limits for a new environment. Zero values
// leave the backend default in place.
type Resources struct {
	CPUs     int `json:"cpus,omitempty"`
	MemoryMB int `json:"memory_mb,omitempty"`
	DiskGB   int `json:"disk_gb,omitempty"`
}

// RawInstance is one instance as reported by a backend listing.
type RawInstance struct {
	Name      string
	RawStatus string
	IP        string
	Mounts    []Mount
}

// Info is the detailed view of one instance.
type Info struct {
	Name    string         `json:"name"`
	Backend Kind           `json:"backend"`
	Details map[string]any `json:"details,omitempty"`
	Raw     string         `json:"raw_info,omitempty"`
	Mounts  []Mount        `json:"mounts"`
}

// ShellLauncher opens a shell command in a new, detached terminal window.
type ShellLauncher interface {
	Launch(title string, shell []string) error
}

// Backend translates environment operations into invocations of one
// virtualization tool. Implementations hold no mutable state and are safe
// to call concurrently.
type Backend interface {
	// Kind returns the backend identifier.
	Kind() Kind

	// IsAvailable probes the tool. Any failure reports false.
	IsAvailable(ctx context.Context) bool

	// Version returns the tool's version banner.
	Version(ctx context.Context) (string, error)

	// List returns every instance the tool knows about, in reported order.
	List(ctx context.Context) ([]RawInstance, error)

	// Create launches and provisions a new instance. A failure after launch
	// leaves the partially provisioned instance in place.
	Create(ctx context.Context, name string, tmpl catalog.Template, mounts []Mount, res Resources) error

	// Start starts a stopped instance.
	Start(ctx context.Context, name string) error

	// Stop stops a running instance.
	Stop(ctx context.Context, name string) error

	// Delete removes an instance and reclaims its resources.
	Delete(ctx context.Context, name string) error

	// Exec runs a command inside a running instance and captures its output.
	Exec(ctx context.Context, name string, command []string) (system.Result, error)

	// ExecInteractive runs a command inside a running instance attached to the terminal.
	ExecInteractive(ctx context.Context, name string, command []string) error

	// ShellCommand is the host argv that opens an interactive guest shell.
	ShellCommand(name string) []string

	// OpenShell spawns a terminal running ShellCommand and returns without
	// waiting for it.
	OpenShell(ctx context.Context, name string) error

	// Info returns the detailed view of one instance.
	Info(ctx context.Context, name string) (*Info, error)
}
