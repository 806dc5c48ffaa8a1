// Package reconcile merges live backend state with the environment
// registry and routes lifecycle operations to the owning backend.
//
// Every call re-queries the backends; nothing is cached. Listing runs the
// backends in parallel and never fails: an unavailable backend or one whose
// output cannot be parsed contributes no environments.
//
// Mutating operations are not serialized. Callers must not run two
// operations on the same environment at once.
//
// # Operations
//
//	List, Snapshot       merged view of every backend
//	Create               validate, provision, then record in the registry
//	Start, Stop          skipped when already in the target state
//	Delete               stop if running, delete, then drop the registry entry
//	OpenShell            detached terminal, running environments only
//	Info, Exec           detailed view and one-off commands
//	Orphans, Prune       registry entries with no live instance
package reconcile
