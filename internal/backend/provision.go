package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/catalog"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/errors"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/logging"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/system"
)

// provisioner runs the guest-side creation steps shared by both
// backends. exec is the argv prefix that runs a guest command (for
// example "lxc exec web --"). sudo is set when that prefix runs as an
// unprivileged user.
type provisioner struct {
	runner system.Runner
	name   string
	exec   []string
	sudo   bool
}

func (p *provisioner) guest(ctx context.Context, args ...string) error {
	argv := make([]string, 0, len(p.exec)+len(args))
	argv = append(argv, p.exec...)
	argv = append(argv, args...)
	_, err := p.runner.Run(ctx, argv...)
	return err
}

func (p *provisioner) run(ctx context.Context, args ...string) error {
	if p.sudo {
		args = append([]string{"sudo"}, args...)
	}
	return p.guest(ctx, args...)
}

// waitReady blocks until cloud-init inside the guest has finished.
func (p *provisioner) waitReady(ctx context.Context) error {
	return p.guest(ctx, "cloud-init", "status", "--wait")
}

// install refreshes the package index and installs the template packages.
func (p *provisioner) install(ctx context.Context, packages []string) error {
	if err := p.run(ctx, "apt-get", "update"); err != nil {
		return err
	}
	if len(packages) == 0 {
		return nil
	}
	args := append([]string{"apt-get", "install", "-y"}, packages...)
	return p.run(ctx, args...)
}

// setup runs each non-blank setup line as its own guest shell invocation.
func (p *provisioner) setup(ctx context.Context, lines []string) error {
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		logging.Debug("running setup line", "instance", p.name, "line", i+1)
		if err := p.run(ctx, "bash", "-c", line); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return nil
}

// provision runs the post-launch steps in order: guest readiness, mounts
// (through the backend's attach), packages, then the setup script.
func (p *provisioner) provision(ctx context.Context, tmpl catalog.Template, mounts []Mount, attach func(int, Mount) error) error {
	if err := p.waitReady(ctx); err != nil {
		return creationStep(p.name, "wait for guest init", true, err)
	}

	for i, m := range mounts {
		if err := attach(i, m); err != nil {
			return creationStep(p.name, "mount "+m.String(), true, err)
		}
	}

	if err := p.install(ctx, tmpl.Packages); err != nil {
		return creationStep(p.name, "install packages", true, err)
	}

	if err := p.setup(ctx, tmpl.SetupScript); err != nil {
		return creationStep(p.name, "setup script", true, err)
	}

	return nil
}

// creationStep wraps a failed creation step. Once the instance exists it
// is left in place and the error says so.
func creationStep(name, step string, launched bool, err error) error {
	if launched {
		err = fmt.Errorf("%s: %w (instance %s was left partially provisioned)", step, err, name)
	} else {
		err = fmt.Errorf("%s: %w", step, err)
	}
	return errors.CreationFailed(name, err)
}
