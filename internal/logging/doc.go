// Package logging provides logging utilities for udm.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog, backed by a charmbracelet/log
// handler, and controlled by verbosity settings and the configured
// log_level:
//
//	logging.Debug("running command", "argv", argv)
//	logging.Warn("backend probe failed", "backend", kind, "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Creating %s from %s...", name, templateID)
//	logging.UserSuccess("Environment %s created", name)
//	logging.UserWarning("No terminal emulator found")
//	logging.UserError("Failed to create environment: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
