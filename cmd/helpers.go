package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/app"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/config"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/reconcile"
)

// paths returns the configured paths.
func paths() *config.Paths {
	return app.Default.Paths
}

// reconciler returns the entry point for environment operations.
func reconciler() *reconcile.Reconciler {
	return app.Default.Reconciler
}

// commandContext returns the command's context, or a background context
// when the command was run without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// warnUnlisted reports backends that contributed nothing to a listing.
func warnUnlisted(snap *reconcile.Snapshot) {
	for _, kind := range snap.Unavailable {
		logWarning("%s is not available; its environments are not shown", kind)
	}
	for _, b := range reconciler().Backends() {
		if err, ok := snap.Failed[b.Kind()]; ok {
			logWarning("failed to list %s environments: %v", b.Kind(), err)
		}
	}
}

// expandHome expands a leading ~ in the host side of a mount argument.
func expandHome(s string) string {
	if s != "~" && !strings.HasPrefix(s, "~/") && !strings.HasPrefix(s, "~:") {
		return s
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return s
	}
	return home + s[1:]
}
