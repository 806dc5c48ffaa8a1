package logging

import (
	"fmt"
	"io"
	"os"
)

// User-facing output functions with status prefixes.
// These write to stdout/stderr directly for CLI output,
// separate from the structured debug logging.

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetUserOutput redirects user-facing output. Nil writers restore the
// process defaults.
func SetUserOutput(out, errOut io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	stdout, stderr = out, errOut
}

// UserInfo prints an info message to stdout.
func UserInfo(format string, args ...any) {
	fmt.Fprintf(stdout, "ℹ "+format+"\n", args...)
}

// UserSuccess prints a success message to stdout.
func UserSuccess(format string, args ...any) {
	fmt.Fprintf(stdout, "✓ "+format+"\n", args...)
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...any) {
	fmt.Fprintf(stderr, "⚠ "+format+"\n", args...)
}

// UserError prints an error message to stderr.
func UserError(format string, args ...any) {
	fmt.Fprintf(stderr, "✗ "+format+"\n", args...)
}
