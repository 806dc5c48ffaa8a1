package reconcile

import (
	"context"
	"slices"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/audit"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/backend"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/logging"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/registry"
)

// Orphan is a registry entry with no live instance behind it.
type Orphan struct {
	Name  string         `json:"name"`
	Entry registry.Entry `json:"entry"`
}

// Orphans returns registry entries whose backend listed successfully but
// did not report the instance. Entries for a backend that could not be
// listed are never reported.
func (r *Reconciler) Orphans(ctx context.Context) []Orphan {
	snap := r.Snapshot(ctx)

	live := map[backend.Kind][]string{}
	for _, env := range snap.Environments {
		live[env.Backend] = append(live[env.Backend], env.Name)
	}

	entries := r.registry.Load()
	var orphans []Orphan
	for _, name := range r.registry.Names() {
		entry, ok := entries[name]
		if !ok {
			continue
		}
		kind, err := backend.ParseKind(entry.Backend)
		if err != nil {
			orphans = append(orphans, Orphan{Name: name, Entry: entry})
			continue
		}
		if !snap.Listed(kind) {
			continue
		}
		if !slices.Contains(live[kind], name) {
			orphans = append(orphans, Orphan{Name: name, Entry: entry})
		}
	}
	return orphans
}

// Prune removes the given orphans from the registry in one write.
func (r *Reconciler) Prune(orphans []Orphan) error {
	if len(orphans) == 0 {
		return nil
	}

	entries := r.registry.Load()
	for _, o := range orphans {
		delete(entries, o.Name)
	}
	if err := r.registry.Save(entries); err != nil {
		return err
	}

	for _, o := range orphans {
		logging.Debug("pruned registry entry", "name", o.Name)
		event := audit.Result(audit.EventPrune, o.Name, o.Entry.Backend, nil)
		event.Details = "template=" + o.Entry.Template
		r.audit.Record(event)
	}
	return nil
}
