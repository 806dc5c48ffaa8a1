// Package backend adapts environment operations to the virtualization
// tools that actually run them.
//
// Two adapters are provided:
//   - Multipass drives full VMs through the multipass CLI
//   - LXD drives system containers through the lxc CLI
//
// Both parse the tool's machine-readable output into RawInstance values
// that keep the order the tool reported. Neither keeps any state between
// calls; the tool is the source of truth.
//
// Creation is a fixed sequence of launch, wait for cloud-init, attach
// mounts, install packages, and run setup lines. The first failing step
// aborts with a creation error. An instance that was launched before the
// failure is left in place.
//
// MockBackend records calls and supports per-method error injection for
// tests of higher layers.
package backend
