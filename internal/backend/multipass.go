package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/catalog"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/errors"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/logging"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/system"
)

const multipassCommand = "multipass"

// MultipassOptions configures the VM backend.
type MultipassOptions struct {
	// Network is passed as --network on launch unless empty or "default".
	Network string
	// Driver is the hypervisor driver the user expects multipassd to use.
	// Multipass owns the setting; udm only compares against it.
	Driver string
}

// Multipass implements Backend using the multipass CLI.
type Multipass struct {
	runner   system.Runner
	terminal ShellLauncher
	opts     MultipassOptions
}

// NewMultipass creates a VM backend.
func NewMultipass(runner system.Runner, terminal ShellLauncher, opts MultipassOptions) *Multipass {
	if runner == nil {
		runner = system.DefaultRunner()
	}
	return &Multipass{runner: runner, terminal: terminal, opts: opts}
}

// Kind returns the backend identifier
func (m *Multipass) Kind() Kind {
	return KindVM
}

// runCmd executes a multipass subcommand
func (m *Multipass) runCmd(ctx context.Context, args ...string) (string, error) {
	res, err := m.runner.Run(ctx, append([]string{multipassCommand}, args...)...)
	return res.Stdout, err
}

func (m *Multipass) IsAvailable(ctx context.Context) bool {
	_, err := m.runCmd(ctx, "version")
	if err != nil {
		logging.Debug("multipass unavailable", "error", err)
	}
	return err == nil
}

func (m *Multipass) Version(ctx context.Context) (string, error) {
	out, err := m.runCmd(ctx, "version")
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	return strings.Join(strings.Fields(line), " "), nil
}

// CheckDriver reads the daemon's local.driver setting and returns it with
// a warning when it differs from the configured driver.
func (m *Multipass) CheckDriver(ctx context.Context) (driver, warning string) {
	out, err := m.runCmd(ctx, "get", "local.driver")
	if err != nil {
		logging.Debug("driver probe failed", "error", err)
		return "", ""
	}
	driver = strings.TrimSpace(out)
	if m.opts.Driver != "" && driver != "" && driver != m.opts.Driver {
		warning = fmt.Sprintf("multipass uses the %s driver but multipass.driver is %s; change it with: multipass set local.driver=%s",
			driver, m.opts.Driver, m.opts.Driver)
	}
	return driver, warning
}

// multipassList is the shape of `multipass list --format json`
type multipassList struct {
	List []struct {
		Name  string   `json:"name"`
		State string   `json:"state"`
		IPv4  []string `json:"ipv4"`
	} `json:"list"`
}

// multipassMount is one entry of info.<name>.mounts
type multipassMount struct {
	SourcePath string `json:"source_path"`
}

// multipassInfo is the shape of `multipass info <name> --format json`
type multipassInfo struct {
	Info map[string]json.RawMessage `json:"info"`
}

type multipassInstanceMounts struct {
	Mounts orderedObject[multipassMount] `json:"mounts"`
}

func (m *Multipass) List(ctx context.Context) ([]RawInstance, error) {
	out, err := m.runCmd(ctx, "list", "--format", "json")
	if err != nil {
		return nil, err
	}

	instances, err := parseMultipassList([]byte(out))
	if err != nil {
		return nil, errors.AdapterFailed(string(KindVM), "list", err)
	}

	for i := range instances {
		instances[i].Mounts = m.mounts(ctx, instances[i].Name)
	}
	return instances, nil
}

func parseMultipassList(data []byte) ([]RawInstance, error) {
	var list multipassList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}

	instances := make([]RawInstance, 0, len(list.List))
	for _, inst := range list.List {
		if inst.Name == "" {
			return nil, fmt.Errorf("instance without a name")
		}
		ip := IPNotAvailable
		if len(inst.IPv4) > 0 && inst.IPv4[0] != "" {
			ip = inst.IPv4[0]
		}
		instances = append(instances, RawInstance{
			Name:      inst.Name,
			RawStatus: inst.State,
			IP:        ip,
		})
	}
	return instances, nil
}

// mounts reads the live mounts of an instance. Any failure yields none.
func (m *Multipass) mounts(ctx context.Context, name string) []Mount {
	out, err := m.runCmd(ctx, "info", name, "--format", "json")
	if err != nil {
		logging.Debug("multipass info failed", "instance", name, "error", err)
		return []Mount{}
	}

	mounts, err := parseMultipassMounts([]byte(out), name)
	if err != nil {
		logging.Debug("unexpected multipass info output", "instance", name, "error", err)
		return []Mount{}
	}
	return mounts
}

func parseMultipassMounts(data []byte, name string) ([]Mount, error) {
	var info multipassInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}

	mounts := []Mount{}
	raw, ok := info.Info[name]
	if !ok {
		return mounts, nil
	}

	var inst multipassInstanceMounts
	if err := json.Unmarshal(raw, &inst); err != nil {
		return nil, err
	}
	for _, mt := range inst.Mounts {
		mounts = append(mounts, Mount{HostPath: mt.Value.SourcePath, GuestPath: mt.Key})
	}
	return mounts, nil
}

// launchArgs builds the `multipass launch` argv.
func (m *Multipass) launchArgs(name, image string, res Resources) []string {
	args := []string{"launch"}
	if res.CPUs > 0 {
		args = append(args, "--cpus", strconv.Itoa(res.CPUs))
	}
	if res.MemoryMB > 0 {
		args = append(args, "--memory", strconv.Itoa(res.MemoryMB)+"M")
	}
	if res.DiskGB > 0 {
		args = append(args, "--disk", strconv.Itoa(res.DiskGB)+"G")
	}
	if m.opts.Network != "" && m.opts.Network != "default" {
		args = append(args, "--network", m.opts.Network)
	}
	return append(args, image, "--name", name)
}

func (m *Multipass) Create(ctx context.Context, name string, tmpl catalog.Template, mounts []Mount, res Resources) error {
	logging.Debug("creating vm", "name", name, "image", tmpl.BaseImage)

	if _, err := m.runCmd(ctx, m.launchArgs(name, tmpl.BaseImage, res)...); err != nil {
		return creationStep(name, "launch", false, err)
	}

	p := &provisioner{
		runner: m.runner,
		name:   name,
		exec:   []string{multipassCommand, "exec", name, "--"},
		sudo:   true,
	}
	return p.provision(ctx, tmpl, mounts, func(_ int, mt Mount) error {
		_, err := m.runCmd(ctx, "mount", mt.HostPath, name+":"+mt.GuestPath)
		return err
	})
}

func (m *Multipass) Start(ctx context.Context, name string) error {
	logging.Debug("starting vm", "name", name)
	_, err := m.runCmd(ctx, "start", name)
	return err
}

func (m *Multipass) Stop(ctx context.Context, name string) error {
	logging.Debug("stopping vm", "name", name)
	_, err := m.runCmd(ctx, "stop", name)
	return err
}

// Delete removes the instance, then purges so its disk is reclaimed.
func (m *Multipass) Delete(ctx context.Context, name string) error {
	logging.Debug("deleting vm", "name", name)
	if _, err := m.runCmd(ctx, "delete", name); err != nil {
		return err
	}
	_, err := m.runCmd(ctx, "purge")
	return err
}

func (m *Multipass) Exec(ctx context.Context, name string, command []string) (system.Result, error) {
	argv := append([]string{multipassCommand, "exec", name, "--"}, command...)
	return m.runner.Run(ctx, argv...)
}

func (m *Multipass) ExecInteractive(ctx context.Context, name string, command []string) error {
	argv := append([]string{multipassCommand, "exec", name, "--"}, command...)
	return m.runner.RunInteractive(ctx, argv...)
}

func (m *Multipass) ShellCommand(name string) []string {
	return []string{multipassCommand, "shell", name}
}

func (m *Multipass) OpenShell(ctx context.Context, name string) error {
	if m.terminal == nil {
		return fmt.Errorf("no terminal launcher configured")
	}
	return m.terminal.Launch(name, m.ShellCommand(name))
}

func (m *Multipass) Info(ctx context.Context, name string) (*Info, error) {
	out, err := m.runCmd(ctx, "info", name, "--format", "json")
	if err != nil {
		return nil, err
	}

	var info multipassInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		return nil, errors.AdapterFailed(string(KindVM), "info", err)
	}

	details := map[string]any{}
	if raw, ok := info.Info[name]; ok {
		if err := json.Unmarshal(raw, &details); err != nil {
			return nil, errors.AdapterFailed(string(KindVM), "info", err)
		}
	}

	mounts, err := parseMultipassMounts([]byte(out), name)
	if err != nil {
		return nil, errors.AdapterFailed(string(KindVM), "info", err)
	}

	return &Info{
		Name:    name,
		Backend: KindVM,
		Details: details,
		Mounts:  mounts,
	}, nil
}

var _ Backend = (*Multipass)(nil)
