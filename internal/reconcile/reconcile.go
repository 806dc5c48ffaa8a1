package reconcile

import (
	"context"
	"fmt"
	"slices"

	shellquote "github.com/kballard/go-shellquote"
	"golang.org/x/sync/errgroup"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/audit"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/backend"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/catalog"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/config"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/errors"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/logging"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/registry"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/system"
)

// UnknownTemplate is reported for instances the registry has no entry for.
const UnknownTemplate = "Unknown"

// Environment is the merged view of one instance.
type Environment struct {
	Name     string          `json:"name"`
	Status   backend.Status  `json:"status"`
	Backend  backend.Kind    `json:"backend"`
	IP       string          `json:"ip"`
	Template string          `json:"template"`
	Mounts   []backend.Mount `json:"mounts"`
}

// Running reports whether the environment is running.
func (e Environment) Running() bool {
	return e.Status == backend.StatusRunning
}

// Templates resolves template IDs.
type Templates interface {
	Get(id string) (catalog.Template, bool)
}

// Reconciler merges live backend state with the registry and routes
// operations to the backend that owns each environment. It holds no state
// between calls.
type Reconciler struct {
	backends  []backend.Backend
	registry  *registry.Registry
	templates Templates
	audit     audit.Recorder
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithRecorder records lifecycle events.
func WithRecorder(rec audit.Recorder) Option {
	return func(r *Reconciler) {
		r.audit = rec
	}
}

// New creates a Reconciler over backends, listed in the given order.
func New(backends []backend.Backend, reg *registry.Registry, templates Templates, opts ...Option) *Reconciler {
	r := &Reconciler{
		backends:  backends,
		registry:  reg,
		templates: templates,
		audit:     audit.Nop{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Backends returns the configured backends in listing order.
func (r *Reconciler) Backends() []backend.Backend {
	return r.backends
}

// Backend returns the adapter for kind.
func (r *Reconciler) Backend(kind backend.Kind) (backend.Backend, bool) {
	i := slices.IndexFunc(r.backends, func(b backend.Backend) bool { return b.Kind() == kind })
	if i < 0 {
		return nil, false
	}
	return r.backends[i], true
}

// Snapshot is the outcome of one listing pass.
type Snapshot struct {
	Environments []Environment
	// Unavailable lists backends whose probe failed.
	Unavailable []backend.Kind
	// Failed holds the error of each available backend whose listing failed.
	Failed map[backend.Kind]error
}

// Listed reports whether kind contributed a complete listing.
func (s *Snapshot) Listed(kind backend.Kind) bool {
	if slices.Contains(s.Unavailable, kind) {
		return false
	}
	_, failed := s.Failed[kind]
	return !failed
}

type listing struct {
	instances   []backend.RawInstance
	unavailable bool
	err         error
}

// Snapshot lists every backend in parallel and merges the results with
// the registry. A backend that is unavailable or fails contributes no
// environments. Order is backend order, then the order each backend reported.
func (r *Reconciler) Snapshot(ctx context.Context) *Snapshot {
	results := make([]listing, len(r.backends))

	var g errgroup.Group
	for i, b := range r.backends {
		g.Go(func() error {
			if !b.IsAvailable(ctx) {
				results[i].unavailable = true
				return nil
			}
			results[i].instances, results[i].err = b.List(ctx)
			return nil
		})
	}
	_ = g.Wait()

	entries := r.registry.Load()
	snap := &Snapshot{
		Environments: []Environment{},
		Failed:       map[backend.Kind]error{},
	}

	for i, b := range r.backends {
		kind := b.Kind()
		res := results[i]
		switch {
		case res.unavailable:
			logging.Debug("backend unavailable, skipping", "backend", kind)
			snap.Unavailable = append(snap.Unavailable, kind)
			continue
		case res.err != nil:
			logging.Warn("failed to list backend", "backend", kind, "error", res.err)
			snap.Failed[kind] = res.err
			continue
		}

		for _, inst := range res.instances {
			snap.Environments = append(snap.Environments, merge(kind, inst, entries))
		}
	}

	return snap
}

// List returns every environment across backends. It does not fail.
func (r *Reconciler) List(ctx context.Context) []Environment {
	return r.Snapshot(ctx).Environments
}

func merge(kind backend.Kind, inst backend.RawInstance, entries map[string]registry.Entry) Environment {
	env := Environment{
		Name:     inst.Name,
		Status:   backend.NormalizeStatus(inst.RawStatus),
		Backend:  kind,
		IP:       inst.IP,
		Template: UnknownTemplate,
		Mounts:   inst.Mounts,
	}
	if env.IP == "" {
		env.IP = backend.IPNotAvailable
	}
	if env.Mounts == nil {
		env.Mounts = []backend.Mount{}
	}
	if entry, ok := entries[inst.Name]; ok && entry.Template != "" && (entry.Backend == "" || entry.Backend == string(kind)) {
		env.Template = entry.Template
	}
	return env
}

// Find locates an environment by name in a fresh listing. When both
// backends report the name, the one recorded in the registry wins.
func (r *Reconciler) Find(ctx context.Context, name string) (Environment, backend.Backend, error) {
	var matches []Environment
	for _, env := range r.List(ctx) {
		if env.Name == name {
			matches = append(matches, env)
		}
	}
	if len(matches) == 0 {
		return Environment{}, nil, errors.EnvironmentNotFound(name)
	}

	env := matches[0]
	if entry, ok := r.registry.Get(name); ok && len(matches) > 1 {
		for _, m := range matches {
			if string(m.Backend) == entry.Backend {
				env = m
				break
			}
		}
	}

	b, ok := r.Backend(env.Backend)
	if !ok {
		return Environment{}, nil, errors.BackendUnavailable(string(env.Backend))
	}
	return env, b, nil
}

// CreateSpec describes a new environment.
type CreateSpec struct {
	Name      string
	Template  string
	Backend   backend.Kind
	Mounts    []backend.Mount
	Resources backend.Resources
}

// Create provisions a new environment and records it in the registry. The
// registry is written only when the backend reports success.
func (r *Reconciler) Create(ctx context.Context, spec CreateSpec) error {
	logging.Debug("creating environment", "name", spec.Name, "template", spec.Template, "backend", spec.Backend)

	if err := config.ValidateEnvironmentName(spec.Name); err != nil {
		return errors.ValidationError(fmt.Sprintf("invalid environment name: %v", err))
	}

	b, ok := r.Backend(spec.Backend)
	if !ok || !b.IsAvailable(ctx) {
		return errors.BackendUnavailable(string(spec.Backend))
	}

	tmpl, ok := r.templates.Get(spec.Template)
	if !ok {
		return errors.TemplateNotFound(spec.Template)
	}

	if existing, err := b.List(ctx); err == nil {
		if slices.ContainsFunc(existing, func(inst backend.RawInstance) bool { return inst.Name == spec.Name }) {
			return errors.ValidationError(fmt.Sprintf("environment %s already exists on %s", spec.Name, spec.Backend))
		}
	}

	err := b.Create(ctx, spec.Name, tmpl, spec.Mounts, spec.Resources)
	if err != nil && !errors.IsKind(err, errors.KindCreation) {
		err = errors.CreationFailed(spec.Name, err)
	}
	if err == nil {
		err = r.registry.Set(spec.Name, registry.Entry{
			Template: spec.Template,
			Backend:  string(spec.Backend),
			Created:  true,
		})
	}

	event := audit.Result(audit.EventCreate, spec.Name, string(spec.Backend), err)
	event.Details = "template=" + spec.Template
	r.audit.Record(event)

	return err
}

// Start starts a stopped environment. It reports whether a command was
// dispatched; starting a running environment is a no-op.
func (r *Reconciler) Start(ctx context.Context, name string) (bool, error) {
	env, b, err := r.Find(ctx, name)
	if err != nil {
		return false, err
	}
	if env.Status == backend.StatusRunning {
		logging.Debug("environment already running", "name", name)
		return false, nil
	}

	if err := b.Start(ctx, name); err != nil {
		err = errors.OperationFailed("start", name, err)
		r.audit.Record(audit.Result(audit.EventStart, name, string(env.Backend), err))
		return true, err
	}
	r.audit.Record(audit.Result(audit.EventStart, name, string(env.Backend), nil))
	return true, nil
}

// Stop stops a running environment. It reports whether a command was
// dispatched; stopping a stopped environment is a no-op.
func (r *Reconciler) Stop(ctx context.Context, name string) (bool, error) {
	env, b, err := r.Find(ctx, name)
	if err != nil {
		return false, err
	}
	if env.Status == backend.StatusStopped {
		logging.Debug("environment already stopped", "name", name)
		return false, nil
	}

	if err := b.Stop(ctx, name); err != nil {
		err = errors.OperationFailed("stop", name, err)
		r.audit.Record(audit.Result(audit.EventStop, name, string(env.Backend), err))
		return true, err
	}
	r.audit.Record(audit.Result(audit.EventStop, name, string(env.Backend), nil))
	return true, nil
}

// Delete stops a running environment, removes it from its backend, then
// drops its registry entry. A backend failure leaves the entry in place.
func (r *Reconciler) Delete(ctx context.Context, name string) error {
	env, b, err := r.Find(ctx, name)
	if err != nil {
		return err
	}

	err = r.delete(ctx, env, b)
	r.audit.Record(audit.Result(audit.EventDelete, name, string(env.Backend), err))
	return err
}

func (r *Reconciler) delete(ctx context.Context, env Environment, b backend.Backend) error {
	if env.Running() {
		logging.Debug("stopping environment before delete", "name", env.Name)
		if err := b.Stop(ctx, env.Name); err != nil {
			return errors.OperationFailed("stop", env.Name, err)
		}
	}

	if err := b.Delete(ctx, env.Name); err != nil {
		return errors.OperationFailed("delete", env.Name, err)
	}

	return r.registry.Remove(env.Name)
}

// OpenShell opens an interactive shell in a new terminal window. The
// environment must be running.
func (r *Reconciler) OpenShell(ctx context.Context, name string) error {
	env, b, err := r.Find(ctx, name)
	if err != nil {
		return err
	}
	if !env.Running() {
		return errors.NotRunning(name)
	}

	if err := b.OpenShell(ctx, name); err != nil {
		if errors.IsKind(err, errors.KindOperation) {
			return err
		}
		return errors.OperationFailed("open shell", name, err)
	}
	return nil
}

// EnvironmentInfo is the detailed view of one environment.
type EnvironmentInfo struct {
	Environment
	Details map[string]any `json:"details,omitempty"`
	Raw     string         `json:"raw_info,omitempty"`
}

// Info returns the merged environment plus the backend's detailed view.
func (r *Reconciler) Info(ctx context.Context, name string) (*EnvironmentInfo, error) {
	env, b, err := r.Find(ctx, name)
	if err != nil {
		return nil, err
	}

	info, err := b.Info(ctx, name)
	if err != nil {
		return nil, errors.OperationFailed("inspect", name, err)
	}

	out := &EnvironmentInfo{
		Environment: env,
		Details:     info.Details,
		Raw:         info.Raw,
	}
	if info.Mounts != nil {
		out.Mounts = info.Mounts
	}
	return out, nil
}

// Exec runs command inside a running environment and captures its output.
func (r *Reconciler) Exec(ctx context.Context, name string, command []string) (system.Result, error) {
	env, b, err := r.Find(ctx, name)
	if err != nil {
		return system.Result{}, err
	}
	if !env.Running() {
		return system.Result{}, errors.NotRunning(name)
	}

	res, err := b.Exec(ctx, name, command)
	event := audit.Result(audit.EventExec, name, string(env.Backend), err)
	event.Details = shellquote.Join(command...)
	r.audit.Record(event)
	return res, err
}

// ExecInteractive runs command inside a running environment attached to
// the caller's terminal.
func (r *Reconciler) ExecInteractive(ctx context.Context, name string, command []string) error {
	env, b, err := r.Find(ctx, name)
	if err != nil {
		return err
	}
	if !env.Running() {
		return errors.NotRunning(name)
	}

	err = b.ExecInteractive(ctx, name, command)
	event := audit.Result(audit.EventExec, name, string(env.Backend), err)
	event.Details = shellquote.Join(command...)
	r.audit.Record(event)
	return err
}
