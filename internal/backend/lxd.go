package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/catalog"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/errors"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/logging"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/system"
)

const lxcCommand = "lxc"

// LXDOptions configures the container backend.
type LXDOptions struct {
	// StoragePool is passed as --storage on launch unless empty or "default".
	StoragePool string
	// Network is passed as --network on launch unless empty or "lxdbr0".
	Network string
}

// LXD implements Backend using the lxc CLI.
type LXD struct {
	runner   system.Runner
	terminal ShellLauncher
	opts     LXDOptions
}

// NewLXD creates a container backend.
func NewLXD(runner system.Runner, terminal ShellLauncher, opts LXDOptions) *LXD {
	if runner == nil {
		runner = system.DefaultRunner()
	}
	return &LXD{runner: runner, terminal: terminal, opts: opts}
}

// Kind returns the backend identifier
func (l *LXD) Kind() Kind {
	return KindContainer
}

// runCmd executes an lxc subcommand
func (l *LXD) runCmd(ctx context.Context, args ...string) (string, error) {
	res, err := l.runner.Run(ctx, append([]string{lxcCommand}, args...)...)
	return res.Stdout, err
}

func (l *LXD) IsAvailable(ctx context.Context) bool {
	_, err := l.runCmd(ctx, "version")
	if err != nil {
		logging.Debug("lxd unavailable", "error", err)
	}
	return err == nil
}

func (l *LXD) Version(ctx context.Context) (string, error) {
	out, err := l.runCmd(ctx, "version")
	if err != nil {
		return "", err
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, ", "), nil
}

// lxdInstance is one element of `lxc list --format json`
type lxdInstance struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	State  *struct {
		Network orderedObject[lxdInterface] `json:"network"`
	} `json:"state"`
}

type lxdInterface struct {
	Addresses []struct {
		Family  string `json:"family"`
		Address string `json:"address"`
	} `json:"addresses"`
}

func (l *LXD) List(ctx context.Context) ([]RawInstance, error) {
	out, err := l.runCmd(ctx, "list", "--format", "json")
	if err != nil {
		return nil, err
	}

	instances, err := parseLXDList([]byte(out))
	if err != nil {
		return nil, errors.AdapterFailed(string(KindContainer), "list", err)
	}

	for i := range instances {
		instances[i].Mounts = l.mounts(ctx, instances[i].Name)
	}
	return instances, nil
}

func parseLXDList(data []byte) ([]RawInstance, error) {
	var list []lxdInstance
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}

	instances := make([]RawInstance, 0, len(list))
	for _, inst := range list {
		if inst.Name == "" {
			return nil, fmt.Errorf("instance without a name")
		}
		ip := IPNotAvailable
		if inst.State != nil {
			ip = pickIPv4(inst.State.Network)
		}
		instances = append(instances, RawInstance{
			Name:      inst.Name,
			RawStatus: inst.Status,
			IP:        ip,
		})
	}
	return instances, nil
}

// pickIPv4 returns the first IPv4 address across interfaces in reported
// order, skipping loopback.
func pickIPv4(network orderedObject[lxdInterface]) string {
	for _, iface := range network {
		if iface.Key == "lo" {
			continue
		}
		for _, addr := range iface.Value.Addresses {
			if addr.Family == "inet" && addr.Address != "" {
				return addr.Address
			}
		}
	}
	return IPNotAvailable
}

// mounts reads the disk devices of an instance. Any failure yields none.
func (l *LXD) mounts(ctx context.Context, name string) []Mount {
	out, err := l.runCmd(ctx, "config", "show", name)
	if err != nil {
		logging.Debug("lxc config show failed", "instance", name, "error", err)
		return []Mount{}
	}

	mounts, err := parseLXDMounts([]byte(out))
	if err != nil {
		logging.Debug("unexpected lxc config output", "instance", name, "error", err)
		return []Mount{}
	}
	return mounts
}

type lxdDevice struct {
	Type   string `yaml:"type"`
	Source string `yaml:"source"`
	Path   string `yaml:"path"`
}

// parseLXDMounts extracts disk devices that bind a host source to a guest
// path from `lxc config show` output, in document order. The root disk
// has no source and is skipped.
func parseLXDMounts(data []byte) ([]Mount, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	mounts := []Mount{}
	if len(doc.Content) == 0 {
		return mounts, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping at top level")
	}

	devices := lookup(root, "devices")
	if devices == nil || devices.Kind != yaml.MappingNode {
		return mounts, nil
	}

	for i := 0; i+1 < len(devices.Content); i += 2 {
		var dev lxdDevice
		if err := devices.Content[i+1].Decode(&dev); err != nil {
			return nil, fmt.Errorf("device %s: %w", devices.Content[i].Value, err)
		}
		if dev.Type == "disk" && dev.Source != "" && dev.Path != "" {
			mounts = append(mounts, Mount{HostPath: dev.Source, GuestPath: dev.Path})
		}
	}
	return mounts, nil
}

func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// resolveImage qualifies a bare release such as "22.04" with the ubuntu: remote.
func resolveImage(image string) string {
	if strings.Contains(image, ":") {
		return image
	}
	return "ubuntu:" + image
}

// launchArgs builds the `lxc launch` argv.
func (l *LXD) launchArgs(name, image string) []string {
	args := []string{"launch", resolveImage(image), name}
	if l.opts.StoragePool != "" && l.opts.StoragePool != "default" {
		args = append(args, "--storage", l.opts.StoragePool)
	}
	if l.opts.Network != "" && l.opts.Network != "lxdbr0" {
		args = append(args, "--network", l.opts.Network)
	}
	return args
}

func (l *LXD) Create(ctx context.Context, name string, tmpl catalog.Template, mounts []Mount, res Resources) error {
	logging.Debug("creating container", "name", name, "image", tmpl.BaseImage)

	if _, err := l.runCmd(ctx, l.launchArgs(name, tmpl.BaseImage)...); err != nil {
		return creationStep(name, "launch", false, err)
	}

	if res.CPUs > 0 {
		if _, err := l.runCmd(ctx, "config", "set", name, "limits.cpu="+strconv.Itoa(res.CPUs)); err != nil {
			return creationStep(name, "set cpu limit", true, err)
		}
	}
	if res.MemoryMB > 0 {
		if _, err := l.runCmd(ctx, "config", "set", name, "limits.memory="+strconv.Itoa(res.MemoryMB)+"MB"); err != nil {
			return creationStep(name, "set memory limit", true, err)
		}
	}

	p := &provisioner{
		runner: l.runner,
		name:   name,
		exec:   []string{lxcCommand, "exec", name, "--"},
	}
	return p.provision(ctx, tmpl, mounts, func(i int, mt Mount) error {
		_, err := l.runCmd(ctx, "config", "device", "add", name, "mount"+strconv.Itoa(i), "disk",
			"source="+mt.HostPath, "path="+mt.GuestPath)
		return err
	})
}

func (l *LXD) Start(ctx context.Context, name string) error {
	logging.Debug("starting container", "name", name)
	_, err := l.runCmd(ctx, "start", name)
	return err
}

func (l *LXD) Stop(ctx context.Context, name string) error {
	logging.Debug("stopping container", "name", name)
	_, err := l.runCmd(ctx, "stop", name)
	return err
}

func (l *LXD) Delete(ctx context.Context, name string) error {
	logging.Debug("deleting container", "name", name)
	_, err := l.runCmd(ctx, "delete", name)
	return err
}

func (l *LXD) Exec(ctx context.Context, name string, command []string) (system.Result, error) {
	argv := append([]string{lxcCommand, "exec", name, "--"}, command...)
	return l.runner.Run(ctx, argv...)
}

func (l *LXD) ExecInteractive(ctx context.Context, name string, command []string) error {
	argv := append([]string{lxcCommand, "exec", name, "--"}, command...)
	return l.runner.RunInteractive(ctx, argv...)
}

func (l *LXD) ShellCommand(name string) []string {
	return []string{lxcCommand, "exec", name, "--", "/bin/bash"}
}

func (l *LXD) OpenShell(ctx context.Context, name string) error {
	if l.terminal == nil {
		return fmt.Errorf("no terminal launcher configured")
	}
	return l.terminal.Launch(name, l.ShellCommand(name))
}

// Info returns the raw `lxc info` text; lxc has no structured form of it.
func (l *LXD) Info(ctx context.Context, name string) (*Info, error) {
	out, err := l.runCmd(ctx, "info", name)
	if err != nil {
		return nil, err
	}

	return &Info{
		Name:    name,
		Backend: KindContainer,
		Raw:     out,
		Mounts:  l.mounts(ctx, name),
	}, nil
}

var _ Backend = (*LXD)(nil)
